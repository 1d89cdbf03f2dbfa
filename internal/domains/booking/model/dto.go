package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateBookingRequest cho POST /bookings
type CreateBookingRequest struct {
	EventID string `json:"event_id" form:"event_id"`
	Email   string `json:"email" form:"email"`
}

// Normalize trim cả hai field và lowercase email
func (r *CreateBookingRequest) Normalize() {
	r.EventID = strings.TrimSpace(r.EventID)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Validate chỉ kiểm tra presence, không chạm database
func (r CreateBookingRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.EventID, validation.Required),
		validation.Field(&r.Email, validation.Required),
	)
	if err != nil {
		return ErrMissingFields
	}
	return nil
}
