package todos

import (
	"fmt"
	"strings"

	apperrors "github.com/arjunms/dailydo/pkg/errors"
)

var (
	ErrTitleRequired   = fmt.Errorf("%w: title must not be empty", apperrors.ErrInvalidArgument)
	ErrInvalidPriority = fmt.Errorf("%w: priority must be one of low, medium, high", apperrors.ErrInvalidArgument)
	ErrEmptyUpdate     = fmt.Errorf("%w: no fields to update", apperrors.ErrInvalidArgument)
)

// ValidateCreateTodo rejects whitespace-only titles and unknown priorities
func ValidateCreateTodo(req *CreateTodoRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return ErrTitleRequired
	}
	if !req.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// ValidateUpdateTodo rejects empty patches and, for the fields that are
// present, applies the same rules as creation
func ValidateUpdateTodo(req *UpdateTodoRequest) error {
	if req.isEmpty() {
		return ErrEmptyUpdate
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return ErrTitleRequired
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}
