package repository

import (
	"context"

	"github.com/google/uuid"

	"devevent-backend/internal/domains/event/model"
)

// =====================================================
// EVENT REPOSITORY INTERFACE
// =====================================================

type EventRepository interface {
	// Create insert event mới, set CreatedAt/UpdatedAt từ database
	Create(ctx context.Context, event *model.Event) error

	// Replace ghi đè toàn bộ document theo ID
	Replace(ctx context.Context, event *model.Event) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	GetBySlug(ctx context.Context, slug string) (*model.Event, error)

	// ListRecent sort created_at DESC; limit <= 0 là không giới hạn
	ListRecent(ctx context.Context, limit int) ([]*model.Event, error)

	// ListSimilar trả về event khác anchor có ít nhất một tag chung
	ListSimilar(ctx context.Context, anchor *model.Event, limit int) ([]*model.Event, error)

	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
