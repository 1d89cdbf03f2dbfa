package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Event represents an event listing
type Event struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`

	// Image URL do image host trả về, không nhận trực tiếp từ client
	Image     string `json:"image"`
	Thumbnail string `json:"thumbnail,omitempty"`

	Venue    string `json:"venue"`
	Location string `json:"location"`
	Date     string `json:"date"` // YYYY-MM-DD
	Time     string `json:"time"` // HH:MM, 24h
	Mode     Mode   `json:"mode"`

	Audience  string   `json:"audience"`
	Agenda    []string `json:"agenda"`
	Organizer string   `json:"organizer"`
	Tags      []string `json:"tags"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChangeSet là tập field khác nhau giữa bản đã lưu và bản mới
type ChangeSet map[string]bool

func (c ChangeSet) Has(field string) bool {
	return c[field]
}

// Changes so sánh prev và next theo từng field do client quản lý
func Changes(prev, next *Event) ChangeSet {
	changed := ChangeSet{}
	mark := func(field string, differs bool) {
		if differs {
			changed[field] = true
		}
	}

	mark(FieldTitle, prev.Title != next.Title)
	mark(FieldSlug, prev.Slug != next.Slug)
	mark(FieldDescription, prev.Description != next.Description)
	mark(FieldOverview, prev.Overview != next.Overview)
	mark(FieldImage, prev.Image != next.Image)
	mark(FieldThumbnail, prev.Thumbnail != next.Thumbnail)
	mark(FieldVenue, prev.Venue != next.Venue)
	mark(FieldLocation, prev.Location != next.Location)
	mark(FieldDate, prev.Date != next.Date)
	mark(FieldTime, prev.Time != next.Time)
	mark(FieldMode, prev.Mode != next.Mode)
	mark(FieldAudience, prev.Audience != next.Audience)
	mark(FieldAgenda, !slices.Equal(prev.Agenda, next.Agenda))
	mark(FieldOrganizer, prev.Organizer != next.Organizer)
	mark(FieldTags, !slices.Equal(prev.Tags, next.Tags))

	return changed
}
