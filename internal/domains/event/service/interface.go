package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"devevent-backend/internal/domains/event/model"
)

// =====================================================
// EVENT SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// ========================================
	// WRITE
	// ========================================

	// CreateEvent upload ảnh, assemble, validate + normalize rồi persist
	CreateEvent(ctx context.Context, form *model.CreateEventForm, image *model.ImageUpload) (*model.Event, error)

	// ReplaceEvent ghi đè toàn bộ event (dùng bởi worker)
	ReplaceEvent(ctx context.Context, event *model.Event) (*model.Event, error)

	// ========================================
	// READ
	// ========================================

	GetBySlug(ctx context.Context, slug string) (*model.Event, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Event, error)
	ListHomeFeed(ctx context.Context) ([]*model.Event, error)
	ListSimilarBySlug(ctx context.Context, slug string, limit int) ([]*model.Event, error)

	// Exists là capability được inject vào booking service
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ========================================
	// BACKGROUND
	// ========================================

	ProcessImage(ctx context.Context, eventID uuid.UUID) error
	WarmHomeFeed(ctx context.Context) error
}

// ImageHost nhận bytes + folder, trả về public URL
type ImageHost interface {
	UploadImage(ctx context.Context, data []byte, folder string) (string, error)
	DownloadURL(ctx context.Context, url string) ([]byte, error)
}

// ImageProcessor check ảnh trước upload và tạo thumbnail
type ImageProcessor interface {
	ValidateImage(data []byte) error
	Thumbnail(data []byte, width int) ([]byte, error)
}

// TaskEnqueuer là subset của *asynq.Client
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
