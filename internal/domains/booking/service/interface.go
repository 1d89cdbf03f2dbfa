package service

import (
	"context"

	"github.com/google/uuid"

	"devevent-backend/internal/domains/booking/model"
)

type ServiceInterface interface {
	// CreateBooking: missing fields -> email pattern -> event tồn tại -> insert
	CreateBooking(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error)
}

// EventLookup là capability kiểm tra event tồn tại, inject từ event domain
type EventLookup interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
