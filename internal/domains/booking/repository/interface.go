package repository

import (
	"context"

	"devevent-backend/internal/domains/booking/model"
)

type BookingRepository interface {
	// Create insert booking; trùng (event_id, email) trả về model.ErrAlreadyBooked
	Create(ctx context.Context, booking *model.Booking) error
}
