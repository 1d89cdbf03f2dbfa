package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"devevent-backend/internal/domains/event/model"
	"devevent-backend/internal/infrastructure/database"
)

const slugConstraint = "events_slug_key"

const eventColumns = `
	id, title, slug, description, overview, image, thumbnail,
	venue, location, event_date, event_time, mode,
	audience, agenda, organizer, tags, created_at, updated_at`

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresEventRepository struct {
	db database.Provider
}

func NewPostgresEventRepository(db database.Provider) EventRepository {
	return &postgresEventRepository{db: db}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresEventRepository) Create(ctx context.Context, event *model.Event) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	query := `
		INSERT INTO events (
			id, title, slug, description, overview, image, thumbnail,
			venue, location, event_date, event_time, mode,
			audience, agenda, organizer, tags
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`

	err = conn.QueryRow(ctx, query,
		event.ID,
		event.Title,
		event.Slug,
		event.Description,
		event.Overview,
		event.Image,
		event.Thumbnail,
		event.Venue,
		event.Location,
		event.Date,
		event.Time,
		string(event.Mode),
		event.Audience,
		event.Agenda,
		event.Organizer,
		event.Tags,
	).Scan(&event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		if name, ok := database.UniqueViolation(err); ok && name == slugConstraint {
			return model.ErrSlugTaken
		}
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// =====================================================
// REPLACE
// =====================================================

func (r *postgresEventRepository) Replace(ctx context.Context, event *model.Event) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE events SET
			title = $2, slug = $3, description = $4, overview = $5,
			image = $6, thumbnail = $7, venue = $8, location = $9,
			event_date = $10, event_time = $11, mode = $12, audience = $13,
			agenda = $14, organizer = $15, tags = $16, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err = conn.QueryRow(ctx, query,
		event.ID,
		event.Title,
		event.Slug,
		event.Description,
		event.Overview,
		event.Image,
		event.Thumbnail,
		event.Venue,
		event.Location,
		event.Date,
		event.Time,
		string(event.Mode),
		event.Audience,
		event.Agenda,
		event.Organizer,
		event.Tags,
	).Scan(&event.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrEventNotFound
		}
		if name, ok := database.UniqueViolation(err); ok && name == slugConstraint {
			return model.ErrSlugTaken
		}
		return fmt.Errorf("failed to replace event: %w", err)
	}

	return nil
}

// =====================================================
// GET
// =====================================================

func (r *postgresEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	return r.getOne(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
}

func (r *postgresEventRepository) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	return r.getOne(ctx, `SELECT `+eventColumns+` FROM events WHERE slug = $1`, slug)
}

func (r *postgresEventRepository) getOne(ctx context.Context, query string, arg any) (*model.Event, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	event, err := scanEvent(conn.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (r *postgresEventRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := conn.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check event: %w", err)
	}
	return exists, nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresEventRepository) ListRecent(ctx context.Context, limit int) ([]*model.Event, error) {
	if limit > 0 {
		return r.list(ctx, `SELECT `+eventColumns+` FROM events ORDER BY created_at DESC LIMIT $1`, limit)
	}
	return r.list(ctx, `SELECT `+eventColumns+` FROM events ORDER BY created_at DESC`)
}

func (r *postgresEventRepository) ListSimilar(ctx context.Context, anchor *model.Event, limit int) ([]*model.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE id <> $1 AND tags && $2
		ORDER BY created_at DESC
		LIMIT $3`
	return r.list(ctx, query, anchor.ID, anchor.Tags, limit)
}

func (r *postgresEventRepository) list(ctx context.Context, query string, args ...any) ([]*model.Event, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// scanEvent dùng chung cho pgx.Row và pgx.Rows
func scanEvent(row pgx.Row) (*model.Event, error) {
	event := &model.Event{}
	var mode string

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Slug,
		&event.Description,
		&event.Overview,
		&event.Image,
		&event.Thumbnail,
		&event.Venue,
		&event.Location,
		&event.Date,
		&event.Time,
		&mode,
		&event.Audience,
		&event.Agenda,
		&event.Organizer,
		&event.Tags,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.Mode = model.Mode(mode)
	return event, nil
}
