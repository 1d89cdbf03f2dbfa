package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"devevent-backend/internal/domains/event/model"
	"devevent-backend/internal/domains/event/repository"
	"devevent-backend/internal/infrastructure/storage"
	"devevent-backend/internal/shared"
	"devevent-backend/pkg/cache"
	"devevent-backend/pkg/logger"
)

// Options là các tham số runtime của service, lấy từ config
type Options struct {
	Folder        string
	UploadTimeout time.Duration
	HomeLimit     int
	FeedCacheTTL  time.Duration
}

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type eventService struct {
	repo      repository.EventRepository
	host      ImageHost
	processor ImageProcessor
	cache     cache.Cache  // optional
	queue     TaskEnqueuer // optional
	opts      Options
}

func NewEventService(
	repo repository.EventRepository,
	host ImageHost,
	processor ImageProcessor,
	feedCache cache.Cache,
	queue TaskEnqueuer,
	opts Options,
) ServiceInterface {
	if opts.HomeLimit <= 0 {
		opts.HomeLimit = model.DefaultHomeFeedLimit
	}
	if opts.FeedCacheTTL <= 0 {
		opts.FeedCacheTTL = time.Hour
	}
	return &eventService{
		repo:      repo,
		host:      host,
		processor: processor,
		cache:     feedCache,
		queue:     queue,
		opts:      opts,
	}
}

// =====================================================
// CREATE EVENT
// =====================================================

func (s *eventService) CreateEvent(
	ctx context.Context,
	form *model.CreateEventForm,
	image *model.ImageUpload,
) (*model.Event, error) {
	// Step 1: Ảnh là bắt buộc
	if image == nil || len(image.Data) == 0 {
		return nil, model.ErrImageRequired
	}
	if err := s.processor.ValidateImage(image.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidImage, err)
	}

	// Step 2: Upload một lần, không retry
	imageURL, err := s.uploadImage(ctx, image.Data, s.opts.Folder)
	if err != nil {
		return nil, err
	}

	// Step 3: Assemble candidate
	// Từ đây nếu fail thì ảnh đã upload sẽ bị orphan
	candidate := form.ToEvent(imageURL)
	model.Sanitize(&candidate)

	// Step 4: Validate + normalize
	if err := model.Validate(&candidate); err != nil {
		return nil, err
	}
	event, err := model.PrepareForPersist(candidate, true, nil)
	if err != nil {
		return nil, err
	}

	// Step 5: Persist
	if err := s.repo.Create(ctx, &event); err != nil {
		return nil, err
	}

	logger.Info("Event created", map[string]interface{}{
		"event_id": event.ID.String(),
		"slug":     event.Slug,
	})

	// Step 6: Side effects, không làm fail request
	s.invalidateFeed(ctx)
	s.enqueueThumbnail(ctx, event.ID)

	return &event, nil
}

func (s *eventService) uploadImage(ctx context.Context, data []byte, folder string) (string, error) {
	if s.opts.UploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.UploadTimeout)
		defer cancel()
	}

	url, err := s.host.UploadImage(ctx, data, folder)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrImageUpload, err)
	}
	return url, nil
}

// =====================================================
// REPLACE EVENT
// =====================================================

func (s *eventService) ReplaceEvent(ctx context.Context, next *model.Event) (*model.Event, error) {
	// Step 1: Load bản đang lưu
	prev, err := s.repo.GetByID(ctx, next.ID)
	if err != nil {
		return nil, err
	}

	// Step 2: Build candidate, giữ các field hệ thống quản lý.
	// Slug luôn lấy từ bản đã lưu, chỉ derive lại khi title đổi
	candidate := *next
	candidate.CreatedAt = prev.CreatedAt
	candidate.Slug = prev.Slug
	model.Sanitize(&candidate)

	// Step 3: Validate + normalize, slug chỉ đổi khi title đổi
	if err := model.Validate(&candidate); err != nil {
		return nil, err
	}
	event, err := model.PrepareForPersist(candidate, false, model.Changes(prev, &candidate))
	if err != nil {
		return nil, err
	}

	// Step 4: Persist
	if err := s.repo.Replace(ctx, &event); err != nil {
		return nil, err
	}

	s.invalidateFeed(ctx)
	return &event, nil
}

// =====================================================
// READ
// =====================================================

func (s *eventService) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	slug = model.NormalizeSlug(slug)
	if slug == "" {
		return nil, model.ErrBlankSlug
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *eventService) ListRecent(ctx context.Context, limit int) ([]*model.Event, error) {
	if limit < 0 {
		limit = 0
	}
	key := fmt.Sprintf("%s%d", model.CacheKeyRecentPrefix, limit)

	if s.cache != nil {
		var cached []*model.Event
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("Feed cache read failed", err, map[string]interface{}{"key": key})
		} else if found {
			return cached, nil
		}
	}

	events, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, events, s.opts.FeedCacheTTL); err != nil {
			logger.Warn("Feed cache write failed", err, map[string]interface{}{"key": key})
		}
	}
	return events, nil
}

func (s *eventService) ListHomeFeed(ctx context.Context) ([]*model.Event, error) {
	return s.ListRecent(ctx, s.opts.HomeLimit)
}

// ListSimilarBySlug trả về list rỗng (không phải lỗi) khi anchor không tồn tại
func (s *eventService) ListSimilarBySlug(ctx context.Context, slug string, limit int) ([]*model.Event, error) {
	if limit <= 0 {
		limit = model.DefaultSimilarLimit
	}

	anchor, err := s.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, model.ErrEventNotFound) || errors.Is(err, model.ErrBlankSlug) {
			return []*model.Event{}, nil
		}
		return nil, err
	}

	return s.repo.ListSimilar(ctx, anchor, limit)
}

func (s *eventService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// =====================================================
// BACKGROUND
// =====================================================

// ProcessImage tạo thumbnail từ ảnh gốc và gắn vào event
func (s *eventService) ProcessImage(ctx context.Context, eventID uuid.UUID) error {
	// Step 1: Load event
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	// Step 2: Download ảnh gốc
	original, err := s.host.DownloadURL(ctx, event.Image)
	if err != nil {
		return fmt.Errorf("download original: %w", err)
	}

	// Step 3: Resize
	thumb, err := s.processor.Thumbnail(original, storage.ThumbnailWidth)
	if err != nil {
		return fmt.Errorf("build thumbnail: %w", err)
	}

	// Step 4: Upload thumbnail
	url, err := s.uploadImage(ctx, thumb, path.Join(s.opts.Folder, "thumbnails"))
	if err != nil {
		return err
	}

	// Step 5: Replace event với thumbnail mới
	updated := *event
	updated.Thumbnail = url
	if _, err := s.ReplaceEvent(ctx, &updated); err != nil {
		return fmt.Errorf("attach thumbnail: %w", err)
	}

	logger.Info("Event thumbnail attached", map[string]interface{}{
		"event_id":  eventID.String(),
		"thumbnail": url,
	})
	return nil
}

// WarmHomeFeed nạp lại cache của home feed
func (s *eventService) WarmHomeFeed(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	events, err := s.repo.ListRecent(ctx, s.opts.HomeLimit)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s%d", model.CacheKeyRecentPrefix, s.opts.HomeLimit)
	if err := s.cache.Set(ctx, key, events, s.opts.FeedCacheTTL); err != nil {
		return fmt.Errorf("warm home feed: %w", err)
	}
	return nil
}

func (s *eventService) invalidateFeed(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, model.CacheKeyRecentPattern); err != nil {
		logger.Warn("Failed to invalidate feed cache", err, nil)
	}
}

func (s *eventService) enqueueThumbnail(ctx context.Context, eventID uuid.UUID) {
	if s.queue == nil {
		return
	}

	payload, err := json.Marshal(shared.ProcessEventImagePayload{EventID: eventID.String()})
	if err != nil {
		logger.Error("Failed to marshal thumbnail payload", err)
		return
	}

	task := asynq.NewTask(shared.TypeProcessEventImage, payload)
	if _, err := s.queue.EnqueueContext(ctx, task, asynq.Queue(shared.QueueLow), asynq.MaxRetry(0)); err != nil {
		logger.Warn("Failed to enqueue thumbnail job", err, map[string]interface{}{
			"event_id": eventID.String(),
		})
	}
}
