package todos

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Priority of a todo item
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Todo represents a todo item
// @Description Todo item with all its properties
type Todo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id" example:"507f1f77bcf86cd799439011"`
	UserID      string             `bson:"userId" json:"userId" example:"507f1f77bcf86cd799439011"`
	Title       string             `bson:"title" json:"title" example:"Buy groceries"`
	Description string             `bson:"description" json:"description" example:"Get milk, bread, and eggs"`
	Completed   bool               `bson:"completed" json:"completed" example:"false"`
	Priority    Priority           `bson:"priority" json:"priority" example:"medium" enums:"low,medium,high"`
	DueDate     *time.Time         `bson:"dueDate,omitempty" json:"dueDate,omitempty" example:"2026-12-31T23:59:59Z"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt" example:"2026-01-01T00:00:00Z"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt" example:"2026-01-01T00:00:00Z"`
}

// CreateTodoRequest carries the data to create a new todo. Owner, completion
// state and timestamps are never caller-supplied.
type CreateTodoRequest struct {
	Title       string     `json:"title" example:"Buy groceries"`
	Description string     `json:"description" example:"Get milk, bread, and eggs"`
	Priority    Priority   `json:"priority" example:"medium" enums:"low,medium,high"`
	DueDate     *time.Time `json:"dueDate" example:"2026-12-31T23:59:59Z"`
}

// UpdateTodoRequest is a sparse patch: nil fields are left untouched. The
// immutable fields (id, owner, createdAt) are not representable here at all.
type UpdateTodoRequest struct {
	Title       *string    `json:"title" example:"Buy groceries"`
	Description *string    `json:"description" example:"Get milk, bread, and eggs"`
	Completed   *bool      `json:"completed" example:"true"`
	Priority    *Priority  `json:"priority" example:"high" enums:"low,medium,high"`
	DueDate     *time.Time `json:"dueDate" example:"2026-12-31T23:59:59Z"`
}

func (r *UpdateTodoRequest) isEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Completed == nil &&
		r.Priority == nil && r.DueDate == nil
}

// fields returns the supplied assignments keyed by their stored names
func (r *UpdateTodoRequest) fields() map[string]interface{} {
	set := map[string]interface{}{}
	if r.Title != nil {
		set["title"] = *r.Title
	}
	if r.Description != nil {
		set["description"] = *r.Description
	}
	if r.Completed != nil {
		set["completed"] = *r.Completed
	}
	if r.Priority != nil {
		set["priority"] = *r.Priority
	}
	if r.DueDate != nil {
		set["dueDate"] = *r.DueDate
	}
	return set
}

// Stats summarizes one user's todos
// @Description Aggregated counters over the caller's todos
type Stats struct {
	Total      int64              `json:"total" example:"12"`
	Completed  int64              `json:"completed" example:"5"`
	Pending    int64              `json:"pending" example:"7"`
	Overdue    int64              `json:"overdue" example:"2"`
	ByPriority map[Priority]int64 `json:"byPriority"`
}
