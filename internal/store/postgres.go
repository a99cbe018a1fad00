package store

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PratikDhanave/interest-registration-service/internal/models"
)

// schemaSQL is embedded so the service can self-bootstrap its table.
//
//go:embed schema.sql
var schemaSQL string

// PostgresStore persists registrations into the managed Postgres database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a connection pool and fails fast if DB is unreachable.
func NewPostgresStore(ctx context.Context, dbURL string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnLifetime = time.Hour
	cfg.ConnConfig.Tracer = otelpgx.NewTracer()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schemaSQL)
	return err
}

// Ping is used by the readiness endpoint to validate DB connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (p *PostgresStore) Close() {
	p.pool.Close()
}

// InsertRegistration appends one row. The caller's timestamp is stored as-is.
func (p *PostgresStore) InsertRegistration(ctx context.Context, reg models.Registration) error {
	if err := checkRequired(reg); err != nil {
		return err
	}

	_, err := p.pool.Exec(ctx, `
		INSERT INTO interest_registrations
			(id, name, email, phone, interest_type, other_details, ip_address, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, reg.ID, reg.Name, reg.Email, reg.Phone, reg.InterestType, reg.OtherDetails, reg.IPAddress, reg.CreatedAt)
	return err
}

// CountRegistrations returns the number of rows in the window [from,to).
// An empty interestType counts every type.
func (p *PostgresStore) CountRegistrations(
	ctx context.Context,
	interestType string,
	from time.Time,
	to time.Time,
) (int64, error) {

	var count int64
	err := p.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM interest_registrations
		WHERE ($1::text = '' OR interest_type = $1)
		  AND created_at >= $2
		  AND created_at <  $3
	`, interestType, from, to).Scan(&count)

	return count, err
}
