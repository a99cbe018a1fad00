package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RegisterRequest is the POST /api/register payload.
// The form page posts JSON; plain HTML form posts arrive URL-encoded.
type RegisterRequest struct {
	Name         string `json:"name" form:"name" validate:"required"`
	Email        string `json:"email" form:"email" validate:"required"`
	Phone        string `json:"phone" form:"phone" validate:"required"`
	InterestType string `json:"interestType" form:"interestType" validate:"required"`
	OtherDetails string `json:"otherDetails" form:"otherDetails"`
}

// Normalize trims every field and lowercases the email.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.InterestType = strings.TrimSpace(r.InterestType)
	r.OtherDetails = strings.TrimSpace(r.OtherDetails)
}

// RegisterResponse is returned by POST /api/register for every outcome.
type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Registration is one row of interest_registrations. Rows are never updated.
type Registration struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	InterestType string    `db:"interest_type" json:"interest_type"`
	OtherDetails *string   `db:"other_details" json:"other_details,omitempty"`
	IPAddress    string    `db:"ip_address" json:"ip_address"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// NewRegistration builds a row from a normalized request.
// An empty OtherDetails is stored as NULL.
func NewRegistration(req RegisterRequest, ip string, now time.Time) Registration {
	reg := Registration{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		InterestType: req.InterestType,
		IPAddress:    ip,
		CreatedAt:    now.UTC(),
	}
	if req.OtherDetails != "" {
		details := req.OtherDetails
		reg.OtherDetails = &details
	}
	return reg
}

// Details returns OtherDetails or "" when it was not provided.
func (r Registration) Details() string {
	if r.OtherDetails == nil {
		return ""
	}
	return *r.OtherDetails
}

// CountResponse is returned by GET /api/admin/registrations/count.
type CountResponse struct {
	InterestType string `json:"interest_type,omitempty"`
	Count        int64  `json:"count"`
}
