package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"devevent-backend/internal/domains/booking/model"
	"devevent-backend/internal/domains/booking/service"
	"devevent-backend/internal/shared/response"
)

type BookingHandler struct {
	bookingService service.ServiceInterface
}

func NewBookingHandler(bookingService service.ServiceInterface) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBooking nhận JSON hoặc form {event_id, email}
// POST /bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) handleError(c *gin.Context, err error) {
	var refErr *model.ReferenceError
	var vErr *model.ValidationError

	switch {
	case errors.Is(err, model.ErrMissingFields):
		response.BadRequest(c, "Booking Failed", "Event ID and email are required")
	case errors.As(err, &vErr):
		response.BadRequest(c, "Booking Failed", vErr.Reason)
	case errors.As(err, &refErr):
		response.NotFound(c, "Booking Failed", refErr.Error())
	case errors.Is(err, model.ErrAlreadyBooked):
		response.Conflict(c, "Booking Failed", "You have already booked this event with this email address.")
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Msg("Create booking failed")
		response.InternalServerError(c, "Booking Failed", err.Error())
	}
}
