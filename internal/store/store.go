package store

import (
	"context"
	"errors"
	"time"

	"github.com/PratikDhanave/interest-registration-service/internal/models"
)

// ErrInvalidRegistration is returned when a row violates the required-field invariant.
var ErrInvalidRegistration = errors.New("name/email/phone/interest_type required")

// RegistrationStore is the durable, append-only persistence layer for registrations.
type RegistrationStore interface {
	InsertRegistration(ctx context.Context, reg models.Registration) error
	CountRegistrations(ctx context.Context, interestType string, from, to time.Time) (int64, error)
	Ping(ctx context.Context) error
	Close()
}

func checkRequired(reg models.Registration) error {
	if reg.Name == "" || reg.Email == "" || reg.Phone == "" || reg.InterestType == "" {
		return ErrInvalidRegistration
	}
	return nil
}
