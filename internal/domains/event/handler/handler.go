package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"devevent-backend/internal/domains/event/model"
	"devevent-backend/internal/domains/event/service"
	"devevent-backend/internal/shared/response"
)

// =====================================================
// EVENT HANDLER
// =====================================================

type EventHandler struct {
	eventService  service.ServiceInterface
	maxImageBytes int64
}

func NewEventHandler(eventService service.ServiceInterface, maxImageBytes int64) *EventHandler {
	return &EventHandler{
		eventService:  eventService,
		maxImageBytes: maxImageBytes,
	}
}

// CreateEvent nhận multipart form: scalar fields, file "image", repeated agenda/tags
// POST /events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	// Step 1: Bind scalar + repeated fields
	var form model.CreateEventForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, "Invalid form data", err.Error())
		return
	}

	// Step 2: Đọc ảnh vào memory
	image, err := h.readImage(c)
	if err != nil {
		response.BadRequest(c, "Image file is required.", "No file provided or corrupted file.")
		return
	}

	// Step 3: Call service
	event, err := h.eventService.CreateEvent(c.Request.Context(), &form, image)
	if err != nil {
		handleEventError(c, err, "Event Creation Failed")
		return
	}

	response.Success(c, http.StatusCreated, "Event created successfully", event)
}

// readImage đọc tối đa maxImageBytes+1 bytes để service có thể reject ảnh quá lớn
func (h *EventHandler) readImage(c *gin.Context) (*model.ImageUpload, error) {
	header, err := c.FormFile("image")
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := io.Reader(file)
	if h.maxImageBytes > 0 {
		reader = io.LimitReader(file, h.maxImageBytes+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, model.ErrImageRequired
	}

	return &model.ImageUpload{Filename: header.Filename, Data: data}, nil
}

// ListEvents trả về events mới nhất trước; limit=0 hoặc không có là không giới hạn
// GET /events?limit=12
func (h *EventHandler) ListEvents(c *gin.Context) {
	var query model.ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", err.Error())
		return
	}
	if query.Limit > model.MaxListLimit {
		response.BadRequest(c, "Invalid query parameters", fmt.Sprintf("limit must be at most %d", model.MaxListLimit))
		return
	}

	events, err := h.eventService.ListRecent(c.Request.Context(), query.Limit)
	if err != nil {
		handleEventError(c, err, "Event Fetching Failed")
		return
	}

	response.Success(c, http.StatusOK, "Events fetched successfully", events)
}

// ListHomeFeed trả về feed trang chủ, cap theo FEED_HOME_LIMIT
// GET /feed
func (h *EventHandler) ListHomeFeed(c *gin.Context) {
	events, err := h.eventService.ListHomeFeed(c.Request.Context())
	if err != nil {
		handleEventError(c, err, "Event Fetching Failed")
		return
	}

	response.Success(c, http.StatusOK, "Events fetched successfully", events)
}

// GetEvent
// GET /events/:slug
func (h *EventHandler) GetEvent(c *gin.Context) {
	slug := c.Param("slug")

	event, err := h.eventService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			response.NotFound(c, "Event not found", fmt.Sprintf("No event found with slug: %s", model.NormalizeSlug(slug)))
			return
		}
		handleEventError(c, err, "Failed to fetch event")
		return
	}

	response.Success(c, http.StatusOK, "Event fetched successfully", event)
}

// ListSimilarEvents
// GET /events/:slug/similar?limit=3
func (h *EventHandler) ListSimilarEvents(c *gin.Context) {
	var query model.SimilarEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	events, err := h.eventService.ListSimilarBySlug(c.Request.Context(), c.Param("slug"), query.Limit)
	if err != nil {
		handleEventError(c, err, "Failed to fetch similar events")
		return
	}

	response.Success(c, http.StatusOK, "Similar events fetched successfully", events)
}

// =====================================================
// ERROR MAPPING
// =====================================================

var eventErrorMap = map[error]struct {
	Status  int
	Message string
	Detail  string // rỗng thì dùng err.Error()
}{
	model.ErrImageRequired: {Status: http.StatusBadRequest, Message: "Image file is required.", Detail: "No file provided or corrupted file."},
	model.ErrInvalidImage:  {Status: http.StatusBadRequest, Message: "Invalid image file"},
	model.ErrBlankSlug:     {Status: http.StatusBadRequest, Message: "Invalid slug parameter", Detail: "Slug cannot be empty or undefined"},
	model.ErrEventNotFound: {Status: http.StatusNotFound, Message: "Event not found"},
	model.ErrSlugTaken:     {Status: http.StatusConflict, Message: "Event already exists", Detail: "An event with the same slug already exists"},
}

func handleEventError(c *gin.Context, err error, fallback string) {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		response.BadRequest(c, "Invalid event data", vErr.Reason)
		return
	}

	for target, cfg := range eventErrorMap {
		if errors.Is(err, target) {
			detail := cfg.Detail
			if detail == "" {
				detail = err.Error()
			}
			response.Error(c, cfg.Status, cfg.Message, detail)
			return
		}
	}

	// Upload, database và các lỗi không xác định
	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Msg(fallback)
	response.InternalServerError(c, fallback, err.Error())
}
