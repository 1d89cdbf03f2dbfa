package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"devevent-backend/internal/domains/booking/model"
	"devevent-backend/internal/infrastructure/database"
)

type postgresBookingRepository struct {
	db database.Provider
}

func NewPostgresBookingRepository(db database.Provider) BookingRepository {
	return &postgresBookingRepository{db: db}
}

func (r *postgresBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	query := `
		INSERT INTO bookings (id, event_id, email)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err = conn.QueryRow(ctx, query, booking.ID, booking.EventID, booking.Email).
		Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		if name, ok := database.UniqueViolation(err); ok && name == model.UniqueEventEmailConstraint {
			return model.ErrAlreadyBooked
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}
