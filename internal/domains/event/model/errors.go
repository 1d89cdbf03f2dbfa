package model

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrSlugTaken       = errors.New("slug already exists")
	ErrBlankSlug       = errors.New("slug cannot be empty or undefined")
	ErrImageRequired   = errors.New("no file provided or corrupted file")
	ErrInvalidImage    = errors.New("invalid image")
	ErrImageUpload     = errors.New("image upload failed")
	ErrValidation      = errors.New("event validation failed")
	ErrInvalidDate     = errors.New("invalid date format")
	ErrInvalidTime     = errors.New("time must be in HH:MM format (24-hour)")
	ErrSlugUnderivable = errors.New("slug cannot be derived from title")
)

// ValidationError mô tả field đầu tiên vi phạm rule
type ValidationError struct {
	Field  string
	Reason string
	Err    error // sentinel: ErrValidation, ErrInvalidDate, ErrInvalidTime...
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrValidation
	}
	return e.Err
}

func newValidationError(field, reason string, sentinel error) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Err: sentinel}
}
