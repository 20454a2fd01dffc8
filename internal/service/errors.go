package service

import (
	"errors"
	"fmt"

	"workflowhub/internal/model"

	"github.com/google/uuid"
)

const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeVersionConflict      = "VERSION_CONFLICT"
	CodeTransitionNotAllowed = "TRANSITION_NOT_ALLOWED"
	CodePersistence          = "PERSISTENCE_ERROR"
)

// Error is the structured failure returned by every service operation.
type Error struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsCode reports whether err is a service error with the given code.
func IsCode(err error, code string) bool {
	var svcErr *Error
	return errors.As(err, &svcErr) && svcErr.Code == code
}

func NewValidationError(field, reason string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: fmt.Sprintf("invalid value for '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewNotFound(resource string, id uuid.UUID) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s not found", resource, id),
		Details: map[string]any{
			"resource": resource,
			"id":       id.String(),
		},
	}
}

func newVersionConflict(id uuid.UUID, expected int, err error) *Error {
	return &Error{
		Code:    CodeVersionConflict,
		Message: fmt.Sprintf("task %s was modified by someone else", id),
		Details: map[string]any{
			"id":              id.String(),
			"expectedVersion": expected,
		},
		Err: err,
	}
}

func newTransitionError(from, to model.TaskStatus) *Error {
	return &Error{
		Code:    CodeTransitionNotAllowed,
		Message: fmt.Sprintf("moving a task from %s to %s is not allowed", from, to),
		Details: map[string]any{
			"from": from,
			"to":   to,
		},
	}
}

func persistenceError(op string, err error) *Error {
	return &Error{
		Code:    CodePersistence,
		Message: op,
		Err:     err,
	}
}
