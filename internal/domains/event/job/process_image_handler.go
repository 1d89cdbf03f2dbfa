package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	eventService "devevent-backend/internal/domains/event/service"
	"devevent-backend/internal/shared"
)

// ProcessImageHandler tạo thumbnail cho ảnh của event vừa tạo
type ProcessImageHandler struct {
	eventService eventService.ServiceInterface
}

func NewProcessImageHandler(eventService eventService.ServiceInterface) *ProcessImageHandler {
	return &ProcessImageHandler{
		eventService: eventService,
	}
}

// ProcessTask xử lý task event:process_image
func (h *ProcessImageHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ProcessEventImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ProcessEventImage payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	eventID, err := uuid.Parse(payload.EventID)
	if err != nil {
		log.Error().Str("event_id", payload.EventID).Msg("Invalid event id in payload")
		return fmt.Errorf("parse event id: %v: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Str("event_id", payload.EventID).
		Msg("Processing event thumbnail")

	if err := h.eventService.ProcessImage(ctx, eventID); err != nil {
		log.Error().
			Err(err).
			Str("event_id", payload.EventID).
			Msg("Failed to process event image")
		return fmt.Errorf("process image: %w", err)
	}

	return nil
}
