package main

import (
	"github.com/hibiken/asynq"

	eventJob "devevent-backend/internal/domains/event/job"
	"devevent-backend/internal/shared"
	"devevent-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	processEventImage *eventJob.ProcessImageHandler
	warmHomeFeed      *eventJob.WarmHomeFeedHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		processEventImage: eventJob.NewProcessImageHandler(c.EventService),
		warmHomeFeed:      eventJob.NewWarmHomeFeedHandler(c.EventService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeProcessEventImage, h.processEventImage.ProcessTask)
	mux.HandleFunc(shared.TypeWarmHomeFeed, h.warmHomeFeed.ProcessTask)
}
