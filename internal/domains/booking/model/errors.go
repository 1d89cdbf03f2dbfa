package model

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFields = errors.New("event ID and email are required")
	ErrInvalidEmail  = errors.New("please provide a valid email address")
	ErrEventNotFound = errors.New("referenced event does not exist")
	ErrAlreadyBooked = errors.New("you have already booked this event with this email address")
)

// ReferenceError: booking trỏ tới event không tồn tại
type ReferenceError struct {
	EventID string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("Event with ID %s does not exist", e.EventID)
}

func (e *ReferenceError) Unwrap() error {
	return ErrEventNotFound
}

// ValidationError mô tả field đầu tiên vi phạm rule
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	if e.Field == FieldEmail {
		return ErrInvalidEmail
	}
	return ErrMissingFields
}
