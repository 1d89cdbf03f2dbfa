package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"devevent-backend/internal/domains/booking/model"
	"devevent-backend/internal/domains/booking/repository"
	"devevent-backend/pkg/logger"
)

type bookingService struct {
	repo   repository.BookingRepository
	events EventLookup
}

func NewBookingService(repo repository.BookingRepository, events EventLookup) ServiceInterface {
	return &bookingService{
		repo:   repo,
		events: events,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	// Step 1: Reject local, không chạm database
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Pattern validation trước referential check
	eventID, parseErr := uuid.Parse(req.EventID)
	booking := &model.Booking{EventID: eventID, Email: req.Email}
	if err := model.Validate(booking); err != nil {
		// event_id không parse được hoặc là nil UUID thì không thể trỏ tới event nào
		var vErr *model.ValidationError
		if errors.As(err, &vErr) && vErr.Field == model.FieldEventID && (parseErr != nil || eventID == uuid.Nil) {
			return nil, &model.ReferenceError{EventID: req.EventID}
		}
		return nil, err
	}

	// Step 3: Referential check
	if err := s.checkReferentialIntegrity(ctx, eventID); err != nil {
		return nil, err
	}

	// Step 4: Persist, unique (event_id, email) quyết định duplicate
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	logger.Info("Booking created", map[string]interface{}{
		"booking_id": booking.ID.String(),
		"event_id":   booking.EventID.String(),
	})
	return booking, nil
}

func (s *bookingService) checkReferentialIntegrity(ctx context.Context, eventID uuid.UUID) error {
	exists, err := s.events.Exists(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to validate event reference: %w", err)
	}
	if !exists {
		return &model.ReferenceError{EventID: eventID.String()}
	}
	return nil
}
