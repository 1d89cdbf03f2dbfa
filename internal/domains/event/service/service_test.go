package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devevent-backend/internal/domains/event/model"
	"devevent-backend/internal/infrastructure/storage"
	"devevent-backend/internal/shared"
)

// =====================================================
// FAKES
// =====================================================

type fakeRepo struct {
	mu       sync.Mutex
	events   map[uuid.UUID]*model.Event
	calls    map[string]int
	clock    time.Time
	failWith error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		events: map[uuid.UUID]*model.Event{},
		calls:  map[string]int{},
		clock:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeRepo) count(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[op]
}

func (r *fakeRepo) Create(ctx context.Context, e *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["Create"]++
	if r.failWith != nil {
		return r.failWith
	}
	for _, existing := range r.events {
		if existing.Slug == e.Slug {
			return model.ErrSlugTaken
		}
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.clock = r.clock.Add(time.Minute)
	e.CreatedAt, e.UpdatedAt = r.clock, r.clock
	stored := *e
	r.events[e.ID] = &stored
	return nil
}

func (r *fakeRepo) Replace(ctx context.Context, e *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["Replace"]++
	if _, ok := r.events[e.ID]; !ok {
		return model.ErrEventNotFound
	}
	stored := *e
	r.events[e.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["GetByID"]++
	e, ok := r.events[id]
	if !ok {
		return nil, model.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeRepo) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["GetBySlug"]++
	for _, e := range r.events {
		if e.Slug == slug {
			cp := *e
			return &cp, nil
		}
	}
	return nil, model.ErrEventNotFound
}

func (r *fakeRepo) sorted() []*model.Event {
	out := make([]*model.Event, 0, len(r.events))
	for _, e := range r.events {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeRepo) ListRecent(ctx context.Context, limit int) ([]*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls["ListRecent"]++
	out := r.sorted()
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) ListSimilar(ctx context.Context, anchor *model.Event, limit int) ([]*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Event{}
	for _, e := range r.sorted() {
		if e.ID == anchor.ID || !overlaps(e.Tags, anchor.Tags) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func (r *fakeRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.events[id]
	return ok, nil
}

type fakeHost struct {
	mu      sync.Mutex
	objects map[string][]byte
	uploads []string
	err     error
}

func newFakeHost() *fakeHost {
	return &fakeHost{objects: map[string][]byte{}}
}

func (h *fakeHost) UploadImage(ctx context.Context, data []byte, folder string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return "", h.err
	}
	url := fmt.Sprintf("http://images.local/%s/%d.img", folder, len(h.uploads))
	h.objects[url] = data
	h.uploads = append(h.uploads, url)
	return url, nil
}

func (h *fakeHost) DownloadURL(ctx context.Context, url string) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	data, ok := h.objects[url]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error { return nil }

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: uuid.NewString(), Type: task.Type()}, nil
}

// =====================================================
// HELPERS
// =====================================================

type fixture struct {
	svc   ServiceInterface
	repo  *fakeRepo
	host  *fakeHost
	cache *memoryCache
	queue *fakeQueue
}

func newFixture() *fixture {
	f := &fixture{
		repo:  newFakeRepo(),
		host:  newFakeHost(),
		cache: newMemoryCache(),
		queue: &fakeQueue{},
	}
	f.svc = NewEventService(f.repo, f.host, storage.NewImageProcessor(0), f.cache, f.queue, Options{
		Folder:        "devevent",
		UploadTimeout: time.Second,
		HomeLimit:     12,
		FeedCacheTTL:  time.Hour,
	})
	return f
}

func pngImage(t *testing.T, w, h int) *model.ImageUpload {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return &model.ImageUpload{Filename: "cover.png", Data: buf.Bytes()}
}

func validForm(title string, tags ...string) *model.CreateEventForm {
	if len(tags) == 0 {
		tags = []string{"go"}
	}
	return &model.CreateEventForm{
		Title:       title,
		Description: "desc",
		Overview:    "overview",
		Venue:       "Hall A",
		Location:    "Berlin",
		Date:        "March 5, 2025",
		Time:        "18:00",
		Mode:        "offline",
		Audience:    "devs",
		Organizer:   "gophers",
		Agenda:      []string{"Intro", " "},
		Tags:        tags,
	}
}

// =====================================================
// TESTS
// =====================================================

func TestCreateEvent_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Warm cache để kiểm tra invalidation
	_, err := f.svc.ListHomeFeed(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, f.cache.data)

	event, err := f.svc.CreateEvent(ctx, validForm("Re-Invent 2024!!"), pngImage(t, 10, 10))

	require.NoError(t, err)
	assert.Equal(t, "re-invent-2024", event.Slug)
	assert.Equal(t, "2025-03-05", event.Date)
	assert.Equal(t, []string{"Intro"}, event.Agenda)
	assert.True(t, strings.HasPrefix(event.Image, "http://images.local/devevent/"))
	assert.Empty(t, f.cache.data, "feed cache should be invalidated")

	require.Len(t, f.queue.tasks, 1)
	assert.Equal(t, shared.TypeProcessEventImage, f.queue.tasks[0].Type())
	var payload shared.ProcessEventImagePayload
	require.NoError(t, json.Unmarshal(f.queue.tasks[0].Payload(), &payload))
	assert.Equal(t, event.ID.String(), payload.EventID)
}

func TestCreateEvent_Failures(t *testing.T) {
	t.Run("missing image", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.CreateEvent(context.Background(), validForm("Go"), nil)

		assert.ErrorIs(t, err, model.ErrImageRequired)
		assert.Empty(t, f.host.uploads)
	})

	t.Run("not an image", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.CreateEvent(context.Background(), validForm("Go"), &model.ImageUpload{Data: []byte("plain text")})

		assert.ErrorIs(t, err, model.ErrInvalidImage)
		assert.Empty(t, f.host.uploads)
	})

	t.Run("upload failure is not retried", func(t *testing.T) {
		f := newFixture()
		f.host.err = errors.New("host down")

		_, err := f.svc.CreateEvent(context.Background(), validForm("Go"), pngImage(t, 4, 4))

		assert.ErrorIs(t, err, model.ErrImageUpload)
		assert.Equal(t, 0, f.repo.count("Create"))
	})

	t.Run("validation after upload blocks persistence", func(t *testing.T) {
		f := newFixture()
		form := validForm("Go")
		form.Tags = []string{"", "  "}

		_, err := f.svc.CreateEvent(context.Background(), form, pngImage(t, 4, 4))

		var vErr *model.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, model.FieldTags, vErr.Field)
		assert.Len(t, f.host.uploads, 1)
		assert.Equal(t, 0, f.repo.count("Create"))
	})

	t.Run("bad date", func(t *testing.T) {
		f := newFixture()
		form := validForm("Go")
		form.Date = "notadate"

		_, err := f.svc.CreateEvent(context.Background(), form, pngImage(t, 4, 4))

		assert.ErrorIs(t, err, model.ErrInvalidDate)
		assert.Equal(t, 0, f.repo.count("Create"))
	})

	t.Run("duplicate slug", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.CreateEvent(context.Background(), validForm("Go Meetup"), pngImage(t, 4, 4))
		require.NoError(t, err)

		_, err = f.svc.CreateEvent(context.Background(), validForm("go meetup!"), pngImage(t, 4, 4))

		assert.ErrorIs(t, err, model.ErrSlugTaken)
	})

	t.Run("enqueue failure does not fail create", func(t *testing.T) {
		f := newFixture()
		f.queue.err = errors.New("redis down")

		event, err := f.svc.CreateEvent(context.Background(), validForm("Go"), pngImage(t, 4, 4))

		require.NoError(t, err)
		assert.NotEmpty(t, event.Slug)
	})
}

func TestGetBySlug(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.svc.CreateEvent(ctx, validForm("Go Meetup"), pngImage(t, 4, 4))
	require.NoError(t, err)

	for _, blank := range []string{"", "   "} {
		_, err := f.svc.GetBySlug(ctx, blank)
		assert.ErrorIs(t, err, model.ErrBlankSlug)
	}
	assert.Equal(t, 0, f.repo.count("GetBySlug"), "blank slug must not reach the repository")

	got, err := f.svc.GetBySlug(ctx, "  GO-MEETUP ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = f.svc.GetBySlug(ctx, "UNKNOWN")
	assert.ErrorIs(t, err, model.ErrEventNotFound)
}

func TestListSimilarBySlug(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	anchor, err := f.svc.CreateEvent(ctx, validForm("Anchor", "go", "cloud"), pngImage(t, 4, 4))
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, err := f.svc.CreateEvent(ctx, validForm(fmt.Sprintf("Cloud %d", i), "cloud"), pngImage(t, 4, 4))
		require.NoError(t, err)
	}
	_, err = f.svc.CreateEvent(ctx, validForm("Unrelated", "rust"), pngImage(t, 4, 4))
	require.NoError(t, err)

	similar, err := f.svc.ListSimilarBySlug(ctx, anchor.Slug, 0)
	require.NoError(t, err)
	assert.Len(t, similar, model.DefaultSimilarLimit)
	for _, e := range similar {
		assert.NotEqual(t, anchor.ID, e.ID)
		assert.Contains(t, e.Tags, "cloud")
	}

	missing, err := f.svc.ListSimilarBySlug(ctx, "does-not-exist", 3)
	require.NoError(t, err)
	assert.NotNil(t, missing)
	assert.Empty(t, missing)
}

func TestListRecent_UsesCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.CreateEvent(ctx, validForm("First"), pngImage(t, 4, 4))
	require.NoError(t, err)
	_, err = f.svc.CreateEvent(ctx, validForm("Second"), pngImage(t, 4, 4))
	require.NoError(t, err)

	first, err := f.svc.ListRecent(ctx, 0)
	require.NoError(t, err)
	second, err := f.svc.ListRecent(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, f.repo.count("ListRecent"))
	require.Len(t, second, 2)
	assert.Equal(t, "second", first[0].Slug)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestReplaceEvent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.svc.CreateEvent(ctx, validForm("Go Meetup"), pngImage(t, 4, 4))
	require.NoError(t, err)

	t.Run("non-title change keeps slug", func(t *testing.T) {
		next := *created
		next.Venue = "Hall B"
		next.Date = "2025-04-01"

		out, err := f.svc.ReplaceEvent(ctx, &next)

		require.NoError(t, err)
		assert.Equal(t, "go-meetup", out.Slug)
		assert.Equal(t, "Hall B", out.Venue)
	})

	t.Run("title change regenerates slug", func(t *testing.T) {
		next := *created
		next.Title = "Go Meetup Berlin"

		out, err := f.svc.ReplaceEvent(ctx, &next)

		require.NoError(t, err)
		assert.Equal(t, "go-meetup-berlin", out.Slug)
	})

	t.Run("caller slug is ignored when title is unchanged", func(t *testing.T) {
		fresh := newFixture()
		original, err := fresh.svc.CreateEvent(ctx, validForm("Go Meetup"), pngImage(t, 4, 4))
		require.NoError(t, err)

		next := *original
		next.Slug = "Totally Different Slug!!"

		out, err := fresh.svc.ReplaceEvent(ctx, &next)

		require.NoError(t, err)
		assert.Equal(t, "go-meetup", out.Slug)
		stored, err := fresh.repo.GetByID(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, "go-meetup", stored.Slug)
	})

	t.Run("empty tags rejected", func(t *testing.T) {
		next := *created
		next.Tags = []string{}

		_, err := f.svc.ReplaceEvent(ctx, &next)

		var vErr *model.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("unknown event", func(t *testing.T) {
		next := *created
		next.ID = uuid.New()

		_, err := f.svc.ReplaceEvent(ctx, &next)

		assert.ErrorIs(t, err, model.ErrEventNotFound)
	})
}

func TestProcessImage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.svc.CreateEvent(ctx, validForm("Go Meetup"), pngImage(t, 800, 600))
	require.NoError(t, err)

	require.NoError(t, f.svc.ProcessImage(ctx, created.ID))

	stored, err := f.repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Thumbnail, "http://images.local/devevent/thumbnails/"))
	assert.Equal(t, created.Slug, stored.Slug)

	thumb, err := f.host.DownloadURL(ctx, stored.Thumbnail)
	require.NoError(t, err)
	img, _, err := image.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, storage.ThumbnailWidth, img.Bounds().Dx())
}

func TestWarmHomeFeed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.CreateEvent(ctx, validForm("Go"), pngImage(t, 4, 4))
	require.NoError(t, err)

	require.NoError(t, f.svc.WarmHomeFeed(ctx))

	_, ok := f.cache.data[model.CacheKeyRecentPrefix+"12"]
	assert.True(t, ok)
}
