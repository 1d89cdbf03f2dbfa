package model

import (
	"strings"
	"time"
)

// Các layout date được chấp nhận khi organizer nhập tay
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"Monday, January 2, 2006",
	"Mon, Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"01/02/2006",
	"1/2/2006",
}

const isoDate = "2006-01-02"

// NormalizeDate parse date theo các layout trên và trả về dạng YYYY-MM-DD
func NormalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(isoDate), nil
		}
	}
	return "", newValidationError(FieldDate, "Invalid date format", ErrInvalidDate)
}

// ValidateTime chỉ gate-check HH:MM, không reformat
func ValidateTime(raw string) error {
	if !timePattern.MatchString(raw) {
		return newValidationError(FieldTime, "Time must be in HH:MM format (24-hour)", ErrInvalidTime)
	}
	return nil
}

// Sanitize trim tất cả string fields và từng item của agenda/tags
func Sanitize(e *Event) {
	e.Title = strings.TrimSpace(e.Title)
	e.Slug = strings.ToLower(strings.TrimSpace(e.Slug))
	e.Description = strings.TrimSpace(e.Description)
	e.Overview = strings.TrimSpace(e.Overview)
	e.Image = strings.TrimSpace(e.Image)
	e.Thumbnail = strings.TrimSpace(e.Thumbnail)
	e.Venue = strings.TrimSpace(e.Venue)
	e.Location = strings.TrimSpace(e.Location)
	e.Date = strings.TrimSpace(e.Date)
	e.Time = strings.TrimSpace(e.Time)
	e.Mode = Mode(strings.TrimSpace(string(e.Mode)))
	e.Audience = strings.TrimSpace(e.Audience)
	e.Organizer = strings.TrimSpace(e.Organizer)
	e.Agenda = trimAll(e.Agenda)
	e.Tags = trimAll(e.Tags)
}

func trimAll(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = strings.TrimSpace(item)
	}
	return out
}

// CleanList trim và bỏ các entry rỗng của một field lặp lại trong form
func CleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// PrepareForPersist chạy trước mọi lần ghi (create hay replace):
//   - slug chỉ derive lại khi event mới hoặc title đổi
//   - date luôn được normalize về YYYY-MM-DD
//   - time chỉ được validate
func PrepareForPersist(candidate Event, isNew bool, changed ChangeSet) (Event, error) {
	if isNew || changed.Has(FieldTitle) {
		candidate.Slug = GenerateSlug(candidate.Title)
	}
	if candidate.Slug == "" {
		return Event{}, newValidationError(FieldSlug, "Title must contain at least one letter or digit", ErrSlugUnderivable)
	}

	date, err := NormalizeDate(candidate.Date)
	if err != nil {
		return Event{}, err
	}
	candidate.Date = date

	if err := ValidateTime(candidate.Time); err != nil {
		return Event{}, err
	}

	return candidate, nil
}
