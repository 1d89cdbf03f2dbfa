package model

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// Thứ tự field khi report lỗi, để kết quả deterministic
var fieldOrder = []string{
	FieldTitle, FieldDescription, FieldOverview, FieldImage, FieldVenue, FieldLocation,
	FieldDate, FieldTime, FieldMode, FieldAudience, FieldAgenda, FieldOrganizer, FieldTags,
}

// Validate kiểm tra required fields, enum mode, pattern time và agenda/tags không rỗng.
// Chỉ field vi phạm đầu tiên được trả về.
func Validate(e *Event) error {
	err := validation.ValidateStruct(e,
		validation.Field(&e.Title, validation.Required.Error("Event title is required")),
		validation.Field(&e.Description, validation.Required.Error("Event description is required")),
		validation.Field(&e.Overview, validation.Required.Error("Event overview is required")),
		validation.Field(&e.Image, validation.Required.Error("Event image is required")),
		validation.Field(&e.Venue, validation.Required.Error("Event venue is required")),
		validation.Field(&e.Location, validation.Required.Error("Event location is required")),
		validation.Field(&e.Date, validation.Required.Error("Event date is required")),
		validation.Field(&e.Time,
			validation.Required.Error("Event time is required"),
			validation.Match(timePattern).Error("Time must be in HH:MM format (24-hour)"),
		),
		validation.Field(&e.Mode,
			validation.Required.Error("Event mode is required"),
			validation.In(ModeOnline, ModeOffline, ModeHybrid).Error("Mode must be either online, offline, or hybrid"),
		),
		validation.Field(&e.Audience, validation.Required.Error("Event audience is required")),
		validation.Field(&e.Agenda,
			validation.Required.Error("Agenda must contain at least one item"),
			validation.Each(validation.Required.Error("Agenda items cannot be blank")),
		),
		validation.Field(&e.Organizer, validation.Required.Error("Event organizer is required")),
		validation.Field(&e.Tags,
			validation.Required.Error("Tags must contain at least one item"),
			validation.Each(validation.Required.Error("Tags cannot be blank")),
		),
	)
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		// Internal error của ozzo (rule sai cấu hình)
		return err
	}

	for _, field := range fieldOrder {
		if fieldErr, ok := errs[field]; ok {
			return newValidationError(field, reason(fieldErr), sentinelFor(field))
		}
	}
	return newValidationError("event", err.Error(), ErrValidation)
}

// reason lấy message gọn cho lỗi của Each (dạng "0: Tags cannot be blank.")
func reason(err error) string {
	var nested validation.Errors
	if errors.As(err, &nested) {
		for _, inner := range nested {
			return inner.Error()
		}
	}
	return strings.TrimSuffix(err.Error(), ".")
}

func sentinelFor(field string) error {
	if field == FieldTime {
		return ErrInvalidTime
	}
	return ErrValidation
}
