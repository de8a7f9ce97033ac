package todos

import "context"

// Store is the indexed document store the service runs against. Any backend
// works as long as it can answer the two owner-scoped range queries in
// descending creation order and apply single-record writes atomically.
//
// Implementations report failures using the sentinels in pkg/errors:
// ErrNotFound when id resolves to nothing, ErrInvalidArgument when id is
// malformed, and ErrStoreUnavailable when the backend itself fails. Patch and
// ToggleCompleted must be atomic read-modify-writes: concurrent writes to the
// same record may interleave in any order but never produce a partial result.
type Store interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Todo, error)
	ListByOwnerAndStatus(ctx context.Context, ownerID string, completed bool) ([]Todo, error)
	FindByID(ctx context.Context, id string) (*Todo, error)
	Insert(ctx context.Context, todo *Todo) error
	Patch(ctx context.Context, id string, fields map[string]interface{}) (*Todo, error)
	ToggleCompleted(ctx context.Context, id string) (*Todo, error)
	Delete(ctx context.Context, id string) error
	CountsByOwner(ctx context.Context, ownerID string) (*Stats, error)
}
