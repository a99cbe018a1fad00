package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PratikDhanave/interest-registration-service/internal/models"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()

	st, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "registrations.db"))
	require.NoError(t, err)
	t.Cleanup(st.Close)
	return st
}

func registration(interestType string, at time.Time) models.Registration {
	return models.NewRegistration(models.RegisterRequest{
		Name:         "Omar",
		Email:        "omar@example.com",
		Phone:        "0500000000",
		InterestType: interestType,
	}, "203.0.113.9", at)
}

func TestSQLite_InsertPersistsFields(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	at := time.Date(2026, 5, 2, 9, 30, 0, 120, time.UTC)
	reg := registration("reader", at)
	details := "wants early access"
	reg.OtherDetails = &details

	require.NoError(t, st.InsertRegistration(ctx, reg))

	var row sqliteRow
	require.NoError(t, st.db.GetContext(ctx, &row, `SELECT * FROM interest_registrations WHERE id = ?`, reg.ID.String()))

	assert.Equal(t, "Omar", row.Name)
	assert.Equal(t, "omar@example.com", row.Email)
	assert.Equal(t, "reader", row.InterestType)
	assert.Equal(t, "203.0.113.9", row.IPAddress)
	require.NotNil(t, row.OtherDetails)
	assert.Equal(t, details, *row.OtherDetails)
	assert.Equal(t, "2026-05-02T09:30:00.000000120Z", row.CreatedAt)
}

func TestSQLite_NullDetails(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	reg := registration("writer", time.Now())
	require.NoError(t, st.InsertRegistration(ctx, reg))

	var details *string
	require.NoError(t, st.db.GetContext(ctx, &details, `SELECT other_details FROM interest_registrations WHERE id = ?`, reg.ID.String()))
	assert.Nil(t, details)
}

func TestSQLite_RejectsMissingRequired(t *testing.T) {
	st := newTestSQLite(t)

	reg := registration("", time.Now())
	err := st.InsertRegistration(context.Background(), reg)
	require.ErrorIs(t, err, ErrInvalidRegistration)

	n, err := st.CountRegistrations(context.Background(), "", time.Time{}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLite_CountWindowIsHalfOpen(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, st.InsertRegistration(ctx, registration("reader", base)))
	require.NoError(t, st.InsertRegistration(ctx, registration("reader", base.Add(30*time.Minute))))
	require.NoError(t, st.InsertRegistration(ctx, registration("writer", base.Add(45*time.Minute))))
	require.NoError(t, st.InsertRegistration(ctx, registration("reader", base.Add(time.Hour))))

	all, err := st.CountRegistrations(ctx, "", base, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(3), all)

	readers, err := st.CountRegistrations(ctx, "reader", base, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), readers)

	later, err := st.CountRegistrations(ctx, "reader", base.Add(time.Hour), base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), later)
}

func TestSQLite_Ping(t *testing.T) {
	st := newTestSQLite(t)
	assert.NoError(t, st.Ping(context.Background()))
}
