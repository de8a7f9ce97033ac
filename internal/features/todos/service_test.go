package todos

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/arjunms/dailydo/pkg/errors"
)

// fakeStore is an in-memory Store with the same contract as the Mongo one:
// descending creation order, atomic single-record writes, sentinel errors.
type fakeStore struct {
	mu    sync.Mutex
	now   time.Time
	todos map[string]*Todo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		now:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		todos: make(map[string]*Todo),
	}
}

// tick advances the fake clock so every insert gets a distinct createdAt
func (f *fakeStore) tick() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

func (f *fakeStore) ListByOwner(_ context.Context, ownerID string) ([]Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Todo
	for _, t := range f.todos {
		if t.UserID == ownerID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if out == nil {
		out = []Todo{}
	}
	return out, nil
}

func (f *fakeStore) ListByOwnerAndStatus(ctx context.Context, ownerID string, completed bool) ([]Todo, error) {
	all, err := f.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := []Todo{}
	for _, t := range all {
		if t.Completed == completed {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByID(_ context.Context, id string) (*Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: malformed todo id %q", apperrors.ErrInvalidArgument, id)
	}
	t, ok := f.todos[id]
	if !ok {
		return nil, fmt.Errorf("%w: todo %s", apperrors.ErrNotFound, id)
	}
	copied := *t
	return &copied, nil
}

func (f *fakeStore) Insert(_ context.Context, todo *Todo) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	todo.ID = primitive.NewObjectID()
	todo.Completed = false
	todo.CreatedAt = f.tick()
	todo.UpdatedAt = todo.CreatedAt

	copied := *todo
	f.todos[todo.ID.Hex()] = &copied
	return nil
}

func (f *fakeStore) Patch(_ context.Context, id string, fields map[string]interface{}) (*Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.todos[id]
	if !ok {
		return nil, fmt.Errorf("%w: todo %s", apperrors.ErrNotFound, id)
	}

	for key, value := range fields {
		switch key {
		case "title":
			t.Title = value.(string)
		case "description":
			t.Description = value.(string)
		case "completed":
			t.Completed = value.(bool)
		case "priority":
			t.Priority = value.(Priority)
		case "dueDate":
			due := value.(time.Time)
			t.DueDate = &due
		}
	}
	t.UpdatedAt = f.tick()

	copied := *t
	return &copied, nil
}

func (f *fakeStore) ToggleCompleted(_ context.Context, id string) (*Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.todos[id]
	if !ok {
		return nil, fmt.Errorf("%w: todo %s", apperrors.ErrNotFound, id)
	}
	t.Completed = !t.Completed
	t.UpdatedAt = f.tick()

	copied := *t
	return &copied, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.todos[id]; !ok {
		return fmt.Errorf("%w: todo %s", apperrors.ErrNotFound, id)
	}
	delete(f.todos, id)
	return nil
}

func (f *fakeStore) CountsByOwner(ctx context.Context, ownerID string) (*Stats, error) {
	all, err := f.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{ByPriority: map[Priority]int64{}}
	now := f.now
	for _, t := range all {
		stats.Total++
		if t.Completed {
			stats.Completed++
		} else {
			stats.Pending++
			if t.DueDate != nil && t.DueDate.Before(now) {
				stats.Overdue++
			}
		}
		stats.ByPriority[t.Priority]++
	}
	return stats, nil
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	return NewService(store), store
}

func mustCreate(t *testing.T, svc *Service, caller, title string, priority Priority) *Todo {
	t.Helper()
	todo, err := svc.Create(context.Background(), caller, CreateTodoRequest{
		Title:    title,
		Priority: priority,
	})
	require.NoError(t, err)
	return todo
}

func TestCreate_SetsOwnerAndDefaults(t *testing.T) {
	svc, _ := newTestService()

	todo, err := svc.Create(context.Background(), "alice", CreateTodoRequest{
		Title:       "Buy milk",
		Description: "2 liters",
		Priority:    PriorityLow,
	})
	require.NoError(t, err)
	require.Equal(t, "alice", todo.UserID)
	require.Equal(t, "Buy milk", todo.Title)
	require.Equal(t, PriorityLow, todo.Priority)
	require.False(t, todo.Completed)
	require.False(t, todo.ID.IsZero())
	require.False(t, todo.CreatedAt.IsZero())

	all, err := svc.ListAll(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "Buy milk", all[0].Title)
	require.False(t, all[0].Completed)
	require.Equal(t, PriorityLow, all[0].Priority)
}

func TestCreate_RejectsWhitespaceTitle(t *testing.T) {
	svc, store := newTestService()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(context.Background(), "alice", CreateTodoRequest{
			Title:    title,
			Priority: PriorityMedium,
		})
		require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	}
	require.Empty(t, store.todos, "failed creates must insert nothing")
}

func TestCreate_RejectsUnknownPriority(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), "alice", CreateTodoRequest{
		Title:    "Buy milk",
		Priority: "urgent",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestCreate_RequiresCaller(t *testing.T) {
	svc, _ := newTestService()

	// authentication is checked before validation: an empty title must not
	// surface as invalid argument for an anonymous caller
	_, err := svc.Create(context.Background(), "", CreateTodoRequest{Title: ""})
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestListAll_OrderedNewestFirst(t *testing.T) {
	svc, _ := newTestService()

	mustCreate(t, svc, "alice", "first", PriorityLow)
	mustCreate(t, svc, "alice", "second", PriorityMedium)
	mustCreate(t, svc, "alice", "third", PriorityHigh)

	all, err := svc.ListAll(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "third", all[0].Title)
	require.Equal(t, "second", all[1].Title)
	require.Equal(t, "first", all[2].Title)
}

func TestListAll_EmptyForNewUser(t *testing.T) {
	svc, _ := newTestService()

	all, err := svc.ListAll(context.Background(), "nobody")
	require.NoError(t, err)
	require.NotNil(t, all)
	require.Empty(t, all)
}

func TestListAll_DoesNotLeakOtherOwners(t *testing.T) {
	svc, _ := newTestService()

	mustCreate(t, svc, "alice", "hers", PriorityLow)
	mustCreate(t, svc, "bob", "his", PriorityLow)

	all, err := svc.ListAll(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "hers", all[0].Title)
}

func TestListByStatus_PartitionsListAll(t *testing.T) {
	svc, _ := newTestService()

	mustCreate(t, svc, "alice", "a", PriorityLow)
	done := mustCreate(t, svc, "alice", "b", PriorityMedium)
	mustCreate(t, svc, "alice", "c", PriorityHigh)

	_, err := svc.Toggle(context.Background(), "alice", done.ID.Hex())
	require.NoError(t, err)

	completed, err := svc.ListByStatus(context.Background(), "alice", true)
	require.NoError(t, err)
	pending, err := svc.ListByStatus(context.Background(), "alice", false)
	require.NoError(t, err)
	all, err := svc.ListAll(context.Background(), "alice")
	require.NoError(t, err)

	require.Len(t, completed, 1)
	require.Len(t, pending, 2)

	// completed ∪ pending == all, as sets of ids
	seen := map[string]bool{}
	for _, todo := range append(completed, pending...) {
		seen[todo.ID.Hex()] = true
	}
	require.Len(t, seen, len(all))
	for _, todo := range all {
		require.True(t, seen[todo.ID.Hex()])
	}
}

func TestUpdate_AppliesOnlySuppliedFields(t *testing.T) {
	svc, _ := newTestService()

	created := mustCreate(t, svc, "alice", "Buy milk", PriorityLow)

	newTitle := "Buy oat milk"
	updated, err := svc.Update(context.Background(), "alice", created.ID.Hex(), UpdateTodoRequest{
		Title: &newTitle,
	})
	require.NoError(t, err)
	require.Equal(t, "Buy oat milk", updated.Title)
	require.Equal(t, PriorityLow, updated.Priority, "omitted fields keep prior values")
	require.Equal(t, created.Description, updated.Description)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdate_OwnerIsImmutable(t *testing.T) {
	svc, _ := newTestService()

	created := mustCreate(t, svc, "alice", "Buy milk", PriorityLow)

	title := "x"
	completed := true
	priority := PriorityHigh
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Update(context.Background(), "alice", created.ID.Hex(), UpdateTodoRequest{
		Title:     &title,
		Completed: &completed,
		Priority:  &priority,
		DueDate:   &due,
	})
	require.NoError(t, err)
	require.Equal(t, "alice", updated.UserID)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdate_Idempotent(t *testing.T) {
	svc, _ := newTestService()

	created := mustCreate(t, svc, "alice", "Buy milk", PriorityLow)

	title := "X"
	first, err := svc.Update(context.Background(), "alice", created.ID.Hex(), UpdateTodoRequest{Title: &title})
	require.NoError(t, err)
	second, err := svc.Update(context.Background(), "alice", created.ID.Hex(), UpdateTodoRequest{Title: &title})
	require.NoError(t, err)

	require.Equal(t, first.Title, second.Title)
	require.Equal(t, first.Completed, second.Completed)
	require.Equal(t, first.Priority, second.Priority)
}

func TestUpdate_EmptyPatchRejected(t *testing.T) {
	svc, _ := newTestService()

	created := mustCreate(t, svc, "alice", "Buy milk", PriorityLow)

	_, err := svc.Update(context.Background(), "alice", created.ID.Hex(), UpdateTodoRequest{})
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService()

	title := "x"
	_, err := svc.Update(context.Background(), "alice", primitive.NewObjectID().Hex(), UpdateTodoRequest{Title: &title})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdate_ForbiddenLeavesRecordUnchanged(t *testing.T) {
	svc, store := newTestService()

	created := mustCreate(t, svc, "alice", "Buy milk", PriorityLow)

	title := "stolen"
	_, err := svc.Update(context.Background(), "mallory", created.ID.Hex(), UpdateTodoRequest{Title: &title})
	require.ErrorIs(t, err, apperrors.ErrForbidden)
	require.NotErrorIs(t, err, apperrors.ErrNotFound, "forbidden must stay distinct from not found")

	stored := store.todos[created.ID.Hex()]
	require.Equal(t, "Buy milk", stored.Title)
	require.Equal(t, "alice", stored.UserID)
}

func TestToggle_IsItsOwnInverse(t *testing.T) {
	svc, _ := newTestService()

	created := mustCreate(t, svc, "alice", "Buy milk", PriorityLow)

	once, err := svc.Toggle(context.Background(), "alice", created.ID.Hex())
	require.NoError(t, err)
	require.True(t, once.Completed)

	twice, err := svc.Toggle(context.Background(), "alice", created.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, created.Completed, twice.Completed)
}

func TestToggle_ChecksExistenceBeforeOwnership(t *testing.T) {
	svc, _ := newTestService()

	created := mustCreate(t, svc, "alice", "Buy milk", PriorityLow)

	_, err := svc.Toggle(context.Background(), "mallory", created.ID.Hex())
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Toggle(context.Background(), "mallory", primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDelete_RemovesFromBothListings(t *testing.T) {
	svc, _ := newTestService()

	created := mustCreate(t, svc, "alice", "Buy milk", PriorityLow)
	mustCreate(t, svc, "alice", "Walk dog", PriorityMedium)

	err := svc.Delete(context.Background(), "alice", created.ID.Hex())
	require.NoError(t, err)

	all, err := svc.ListAll(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, all, 1)

	pending, err := svc.ListByStatus(context.Background(), "alice", false)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	err = svc.Delete(context.Background(), "alice", created.ID.Hex())
	require.ErrorIs(t, err, apperrors.ErrNotFound, "double delete reports not found")
}

func TestDelete_ForbiddenForNonOwner(t *testing.T) {
	svc, store := newTestService()

	created := mustCreate(t, svc, "alice", "Buy milk", PriorityLow)

	err := svc.Delete(context.Background(), "mallory", created.ID.Hex())
	require.ErrorIs(t, err, apperrors.ErrForbidden)
	require.Contains(t, store.todos, created.ID.Hex(), "record survives a forbidden delete")
}

func TestMutations_MalformedID(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Toggle(context.Background(), "alice", "not-an-object-id")
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	err = svc.Delete(context.Background(), "alice", "not-an-object-id")
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestAllOperations_RequireCaller(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	id := primitive.NewObjectID().Hex()

	_, err := svc.ListAll(ctx, "")
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = svc.ListByStatus(ctx, "", true)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	title := "x"
	_, err = svc.Update(ctx, "", id, UpdateTodoRequest{Title: &title})
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = svc.Toggle(ctx, "", id)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	err = svc.Delete(ctx, "", id)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = svc.Stats(ctx, "")
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestStats_CountsPartitions(t *testing.T) {
	svc, store := newTestService()

	overdueDate := store.now.Add(-time.Hour)
	_, err := svc.Create(context.Background(), "alice", CreateTodoRequest{
		Title:    "late",
		Priority: PriorityHigh,
		DueDate:  &overdueDate,
	})
	require.NoError(t, err)

	mustCreate(t, svc, "alice", "a", PriorityLow)
	done := mustCreate(t, svc, "alice", "b", PriorityLow)
	_, err = svc.Toggle(context.Background(), "alice", done.ID.Hex())
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.Total)
	require.Equal(t, int64(1), stats.Completed)
	require.Equal(t, int64(2), stats.Pending)
	require.Equal(t, int64(1), stats.Overdue)
	require.Equal(t, int64(2), stats.ByPriority[PriorityLow])
	require.Equal(t, int64(1), stats.ByPriority[PriorityHigh])
}
