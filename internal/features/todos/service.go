package todos

import (
	"context"
	"fmt"

	apperrors "github.com/arjunms/dailydo/pkg/errors"
)

// Service owns the todo rules: every operation takes the caller identity as
// an explicit argument, authentication is checked before anything else, and
// for writes against an existing record the order is fixed — input
// validation, then existence, then ownership, then the store write. A record
// is only ever touched by its owner.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// ListAll returns every todo owned by caller, most recently created first.
func (s *Service) ListAll(ctx context.Context, caller string) ([]Todo, error) {
	if caller == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.store.ListByOwner(ctx, caller)
}

// ListByStatus returns caller's todos filtered by completion state, most
// recently created first. Served from the composite (owner, completed) index.
func (s *Service) ListByStatus(ctx context.Context, caller string, completed bool) ([]Todo, error) {
	if caller == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.store.ListByOwnerAndStatus(ctx, caller, completed)
}

// Create validates the input and inserts a new todo owned by caller. New
// todos always start uncompleted; the store assigns id and creation time.
func (s *Service) Create(ctx context.Context, caller string, req CreateTodoRequest) (*Todo, error) {
	if caller == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := ValidateCreateTodo(&req); err != nil {
		return nil, err
	}

	todo := &Todo{
		UserID:      caller,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}

	if err := s.store.Insert(ctx, todo); err != nil {
		return nil, err
	}

	return todo, nil
}

// Update applies a sparse patch to a todo owned by caller and returns the
// post-update record. Nothing is written when any check fails.
func (s *Service) Update(ctx context.Context, caller, id string, req UpdateTodoRequest) (*Todo, error) {
	if caller == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := ValidateUpdateTodo(&req); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, caller, id); err != nil {
		return nil, err
	}

	return s.store.Patch(ctx, id, req.fields())
}

// Toggle flips the completion state of a todo owned by caller. The flip is a
// single atomic read-modify-write at the store, not a read followed by an
// absolute write, so concurrent toggles cannot lose updates.
func (s *Service) Toggle(ctx context.Context, caller, id string) (*Todo, error) {
	if caller == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.authorize(ctx, caller, id); err != nil {
		return nil, err
	}

	return s.store.ToggleCompleted(ctx, id)
}

// Delete permanently removes a todo owned by caller.
func (s *Service) Delete(ctx context.Context, caller, id string) error {
	if caller == "" {
		return apperrors.ErrUnauthenticated
	}
	if err := s.authorize(ctx, caller, id); err != nil {
		return err
	}

	return s.store.Delete(ctx, id)
}

// Stats returns aggregate counters over caller's todos.
func (s *Service) Stats(ctx context.Context, caller string) (*Stats, error) {
	if caller == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.store.CountsByOwner(ctx, caller)
}

// authorize resolves existence before ownership so a caller can always tell
// "it never existed" apart from "it's not yours".
func (s *Service) authorize(ctx context.Context, caller, id string) error {
	todo, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if todo.UserID != caller {
		return fmt.Errorf("%w: todo %s belongs to another user", apperrors.ErrForbidden, id)
	}
	return nil
}
