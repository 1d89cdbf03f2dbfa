package model

import (
	"time"

	"github.com/google/uuid"
)

// Booking là một lượt đặt chỗ của email cho một event.
// EventID là reference không sở hữu, không có foreign key ở database.
type Booking struct {
	ID        uuid.UUID `json:"id"`
	EventID   uuid.UUID `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	// Unique (event_id, email)
	UniqueEventEmailConstraint = "bookings_event_id_email_key"

	FieldEventID = "event_id"
	FieldEmail   = "email"
)
