package todos

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arjunms/dailydo/internal/pkg/pagination"
	"github.com/arjunms/dailydo/internal/pkg/response"
	apperrors "github.com/arjunms/dailydo/pkg/errors"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary Create a new todo
// @Description Create a new todo for the authenticated user
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTodoRequest true "Todo creation data"
// @Success 201 {object} response.SuccessResponse{data=Todo}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /todos/ [post]
func (h *Handler) Create(c *gin.Context) {
	caller := c.GetString("userID")

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	// The form defaults priority to medium; keep that for clients that omit
	// it. The service itself requires an explicit, valid priority.
	if req.Priority == "" {
		req.Priority = PriorityMedium
	}

	todo, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Created(c, todo)
}

// List godoc
// @Summary List todos
// @Description List the authenticated user's todos, newest first, optionally filtered by completion status
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param completed query bool false "Filter by completion status"
// @Param limit query int false "Maximum number of todos to return (default: 50, max: 100)"
// @Success 200 {object} response.PaginatedResponse{data=[]Todo}
// @Failure 401 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /todos/ [get]
func (h *Handler) List(c *gin.Context) {
	caller := c.GetString("userID")

	var (
		todos []Todo
		err   error
	)

	if completedStr := c.Query("completed"); completedStr != "" {
		completed, parseErr := strconv.ParseBool(completedStr)
		if parseErr != nil {
			response.BadRequest(c, "completed must be true or false", "INVALID_QUERY")
			return
		}
		todos, err = h.service.ListByStatus(c.Request.Context(), caller, completed)
	} else {
		todos, err = h.service.ListAll(c.Request.Context(), caller)
	}

	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Response-size cap only; the service itself does not paginate.
	page := pagination.FromRequest(c.Query("page"), c.Query("limit"))
	total := int64(len(todos))
	if len(todos) > page.Limit {
		todos = todos[:page.Limit]
	}

	response.Paginated(c, todos, total, page.Limit)
}

// Stats godoc
// @Summary Todo statistics
// @Description Aggregated counters over the authenticated user's todos
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=Stats}
// @Failure 401 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /todos/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	caller := c.GetString("userID")

	stats, err := h.service.Stats(c.Request.Context(), caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, stats)
}

// Update godoc
// @Summary Update a todo
// @Description Apply a partial update to an existing todo owned by the authenticated user
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Param request body UpdateTodoRequest true "Fields to update"
// @Success 200 {object} response.SuccessResponse{data=Todo}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /todos/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	caller := c.GetString("userID")
	todoID := c.Param("id")

	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	todo, err := h.service.Update(c.Request.Context(), caller, todoID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, todo)
}

// Toggle godoc
// @Summary Toggle todo completion
// @Description Flip the completed flag of a todo owned by the authenticated user
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 200 {object} response.SuccessResponse{data=Todo}
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /todos/{id}/toggle [patch]
func (h *Handler) Toggle(c *gin.Context) {
	caller := c.GetString("userID")
	todoID := c.Param("id")

	todo, err := h.service.Toggle(c.Request.Context(), caller, todoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, todo)
}

// Delete godoc
// @Summary Delete a todo
// @Description Permanently delete a todo owned by the authenticated user
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /todos/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	caller := c.GetString("userID")
	todoID := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), caller, todoID); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, map[string]string{"message": "Todo deleted successfully"})
}

// respondServiceError maps service failure kinds onto HTTP statuses
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
	case errors.Is(err, apperrors.ErrInvalidArgument):
		response.BadRequest(c, err.Error(), "INVALID_ARGUMENT")
	case errors.Is(err, apperrors.ErrNotFound):
		response.NotFound(c, "Todo not found", "TODO_NOT_FOUND")
	case errors.Is(err, apperrors.ErrForbidden):
		response.Forbidden(c, "You do not own this todo", "NOT_OWNER")
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		response.ServiceUnavailable(c, "Storage is temporarily unavailable", "STORE_UNAVAILABLE")
	default:
		response.InternalServerError(c, "Something went wrong", "INTERNAL_ERROR")
	}
}
