package model

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate kiểm tra record trước khi persist: event id có, email đúng pattern.
// Referential check nằm ở service vì cần lookup event.
func Validate(b *Booking) error {
	err := validation.ValidateStruct(b,
		validation.Field(&b.Email,
			validation.Required.Error("Email is required"),
			validation.Match(emailPattern).Error("Please provide a valid email address"),
		),
		validation.Field(&b.EventID, validation.By(requireEventID)),
	)
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}

	// email báo trước event_id
	for _, field := range []string{FieldEmail, FieldEventID} {
		if fieldErr, ok := errs[field]; ok {
			return &ValidationError{Field: field, Reason: strings.TrimSuffix(fieldErr.Error(), ".")}
		}
	}
	return err
}

func requireEventID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return errors.New("Event ID is required")
	}
	return nil
}
