package store

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/PratikDhanave/interest-registration-service/internal/models"
)

//go:embed schema_sqlite.sql
var sqliteSchemaSQL string

// sqliteTimeLayout is fixed-width so that text comparison orders like time.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore is a file-backed store for local development without a managed database.
type SQLiteStore struct {
	db *sqlx.DB
}

type sqliteRow struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Email        string  `db:"email"`
	Phone        string  `db:"phone"`
	InterestType string  `db:"interest_type"`
	OtherDetails *string `db:"other_details"`
	IPAddress    string  `db:"ip_address"`
	CreatedAt    string  `db:"created_at"`
}

func sqliteTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

// NewSQLiteStore opens (or creates) the database file and applies the schema.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() {
	_ = s.db.Close()
}

func (s *SQLiteStore) InsertRegistration(ctx context.Context, reg models.Registration) error {
	if err := checkRequired(reg); err != nil {
		return err
	}

	row := sqliteRow{
		ID:           reg.ID.String(),
		Name:         reg.Name,
		Email:        reg.Email,
		Phone:        reg.Phone,
		InterestType: reg.InterestType,
		OtherDetails: reg.OtherDetails,
		IPAddress:    reg.IPAddress,
		CreatedAt:    sqliteTime(reg.CreatedAt),
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO interest_registrations
			(id, name, email, phone, interest_type, other_details, ip_address, created_at)
		VALUES (:id, :name, :email, :phone, :interest_type, :other_details, :ip_address, :created_at)
	`, row)
	return err
}

func (s *SQLiteStore) CountRegistrations(ctx context.Context, interestType string, from, to time.Time) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM interest_registrations
		WHERE (? = '' OR interest_type = ?)
		  AND created_at >= ?
		  AND created_at <  ?
	`, interestType, interestType, sqliteTime(from), sqliteTime(to))
	return count, err
}
