package todos

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/arjunms/dailydo/pkg/errors"
)

// testRouter wires the handlers against a fake store, with a stub auth
// middleware that trusts the X-Test-User header.
func testRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(NewService(store))

	r := gin.New()
	grp := r.Group("/api/v1/todos")
	grp.Use(func(c *gin.Context) {
		if user := c.GetHeader("X-Test-User"); user != "" {
			c.Set("userID", user)
		}
		c.Next()
	})
	{
		grp.POST("/", handler.Create)
		grp.GET("/", handler.List)
		grp.GET("/stats", handler.Stats)
		grp.PUT("/:id", handler.Update)
		grp.PATCH("/:id/toggle", handler.Toggle)
		grp.DELETE("/:id", handler.Delete)
	}
	return r
}

func doJSON(r *gin.Engine, method, path, user string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandlerCreate_DefaultsPriorityToMedium(t *testing.T) {
	r := testRouter(newFakeStore())

	w := doJSON(r, "POST", "/api/v1/todos/", "alice", gin.H{"title": "Buy milk"})
	require.Equal(t, 201, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	require.Equal(t, "Buy milk", data["title"])
	require.Equal(t, "medium", data["priority"])
	require.Equal(t, false, data["completed"])
	require.Equal(t, "alice", data["userId"])
}

func TestHandlerCreate_EmptyTitle(t *testing.T) {
	r := testRouter(newFakeStore())

	w := doJSON(r, "POST", "/api/v1/todos/", "alice", gin.H{"title": "   "})
	require.Equal(t, 400, w.Code)
	require.Equal(t, "INVALID_ARGUMENT", decodeBody(t, w)["code"])
}

func TestHandlerCreate_Unauthenticated(t *testing.T) {
	r := testRouter(newFakeStore())

	w := doJSON(r, "POST", "/api/v1/todos/", "", gin.H{"title": "Buy milk"})
	require.Equal(t, 401, w.Code)
	require.Equal(t, "AUTH_REQUIRED", decodeBody(t, w)["code"])
}

func TestHandlerList_FiltersByStatus(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	r := testRouter(store)

	first, err := svc.Create(context.Background(), "alice", CreateTodoRequest{Title: "a", Priority: PriorityLow})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "alice", CreateTodoRequest{Title: "b", Priority: PriorityLow})
	require.NoError(t, err)
	_, err = svc.Toggle(context.Background(), "alice", first.ID.Hex())
	require.NoError(t, err)

	w := doJSON(r, "GET", "/api/v1/todos/?completed=true", "alice", nil)
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	require.Equal(t, "a", data[0].(map[string]any)["title"])

	w = doJSON(r, "GET", "/api/v1/todos/", "alice", nil)
	require.Equal(t, 200, w.Code)
	body = decodeBody(t, w)
	require.Equal(t, float64(2), body["total"])
	data = body["data"].([]any)
	require.Equal(t, "b", data[0].(map[string]any)["title"], "newest first")
}

func TestHandlerList_BadCompletedParam(t *testing.T) {
	r := testRouter(newFakeStore())

	w := doJSON(r, "GET", "/api/v1/todos/?completed=maybe", "alice", nil)
	require.Equal(t, 400, w.Code)
}

func TestHandlerUpdate_ForbiddenAndNotFound(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	r := testRouter(store)

	created, err := svc.Create(context.Background(), "alice", CreateTodoRequest{Title: "hers", Priority: PriorityLow})
	require.NoError(t, err)

	w := doJSON(r, "PUT", "/api/v1/todos/"+created.ID.Hex(), "mallory", gin.H{"title": "mine now"})
	require.Equal(t, 403, w.Code)
	require.Equal(t, "NOT_OWNER", decodeBody(t, w)["code"])

	w = doJSON(r, "PUT", "/api/v1/todos/"+primitive.NewObjectID().Hex(), "alice", gin.H{"title": "x"})
	require.Equal(t, 404, w.Code)
	require.Equal(t, "TODO_NOT_FOUND", decodeBody(t, w)["code"])
}

func TestHandlerToggleAndDelete(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	r := testRouter(store)

	created, err := svc.Create(context.Background(), "alice", CreateTodoRequest{Title: "x", Priority: PriorityLow})
	require.NoError(t, err)

	w := doJSON(r, "PATCH", "/api/v1/todos/"+created.ID.Hex()+"/toggle", "alice", nil)
	require.Equal(t, 200, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	require.Equal(t, true, data["completed"])

	w = doJSON(r, "DELETE", "/api/v1/todos/"+created.ID.Hex(), "alice", nil)
	require.Equal(t, 200, w.Code)

	w = doJSON(r, "DELETE", "/api/v1/todos/"+created.ID.Hex(), "alice", nil)
	require.Equal(t, 404, w.Code)
}

// downStore simulates a backend outage on every call.
type downStore struct{}

func (downStore) down() error { return apperrors.ErrStoreUnavailable }

func (d downStore) ListByOwner(context.Context, string) ([]Todo, error) { return nil, d.down() }
func (d downStore) ListByOwnerAndStatus(context.Context, string, bool) ([]Todo, error) {
	return nil, d.down()
}
func (d downStore) FindByID(context.Context, string) (*Todo, error) { return nil, d.down() }
func (d downStore) Insert(context.Context, *Todo) error            { return d.down() }
func (d downStore) Patch(context.Context, string, map[string]interface{}) (*Todo, error) {
	return nil, d.down()
}
func (d downStore) ToggleCompleted(context.Context, string) (*Todo, error) { return nil, d.down() }
func (d downStore) Delete(context.Context, string) error                   { return d.down() }
func (d downStore) CountsByOwner(context.Context, string) (*Stats, error)  { return nil, d.down() }

func TestHandler_StoreOutageMapsTo503(t *testing.T) {
	r := testRouter(downStore{})

	w := doJSON(r, "GET", "/api/v1/todos/", "alice", nil)
	require.Equal(t, 503, w.Code)
	require.Equal(t, "STORE_UNAVAILABLE", decodeBody(t, w)["code"])
}

func TestHandlerStats(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	r := testRouter(store)

	_, err := svc.Create(context.Background(), "alice", CreateTodoRequest{Title: "x", Priority: PriorityLow})
	require.NoError(t, err)

	w := doJSON(r, "GET", "/api/v1/todos/stats", "alice", nil)
	require.Equal(t, 200, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	require.Equal(t, float64(1), data["total"])
	require.Equal(t, float64(0), data["completed"])
	require.Equal(t, float64(1), data["pending"])
}
