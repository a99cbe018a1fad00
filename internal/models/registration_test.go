package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_TrimsAndLowercasesEmail(t *testing.T) {
	req := RegisterRequest{
		Name:         "  Layla Hassan ",
		Email:        "  Layla@Example.COM ",
		Phone:        " +966 55 123 4567\t",
		InterestType: " writer ",
		OtherDetails: "   ",
	}
	req.Normalize()

	assert.Equal(t, "Layla Hassan", req.Name)
	assert.Equal(t, "layla@example.com", req.Email)
	assert.Equal(t, "+966 55 123 4567", req.Phone)
	assert.Equal(t, "writer", req.InterestType)
	assert.Empty(t, req.OtherDetails)
}

func TestNewRegistration_EmptyDetailsIsNull(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("AST", 3*3600))

	reg := NewRegistration(RegisterRequest{Name: "a", Email: "b", Phone: "c", InterestType: "d"}, "10.0.0.1", now)

	assert.Nil(t, reg.OtherDetails)
	assert.Equal(t, "", reg.Details())
	assert.Equal(t, time.UTC, reg.CreatedAt.Location())
	assert.True(t, reg.CreatedAt.Equal(now))
	assert.NotEqual(t, [16]byte{}, [16]byte(reg.ID))
}

func TestNewRegistration_KeepsDetails(t *testing.T) {
	reg := NewRegistration(RegisterRequest{OtherDetails: "publisher"}, "N/A", time.Now())

	require.NotNil(t, reg.OtherDetails)
	assert.Equal(t, "publisher", reg.Details())
	assert.Equal(t, "N/A", reg.IPAddress)
}
