package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	eventService "devevent-backend/internal/domains/event/service"
)

// WarmHomeFeedHandler nạp lại cache home feed theo lịch
type WarmHomeFeedHandler struct {
	eventService eventService.ServiceInterface
}

func NewWarmHomeFeedHandler(eventService eventService.ServiceInterface) *WarmHomeFeedHandler {
	return &WarmHomeFeedHandler{eventService: eventService}
}

func (h *WarmHomeFeedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	if err := h.eventService.WarmHomeFeed(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to warm home feed")
		return fmt.Errorf("warm home feed: %w", err)
	}

	log.Debug().Msg("Home feed cache warmed")
	return nil
}
