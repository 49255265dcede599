package domain

import (
	"context"
	"time"
)

// EventCategory groups events (e.g. "Music", "Sports").
// swagger:model EventCategory
type EventCategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Color       *string   `json:"color"`
	EventCount  int       `json:"event_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEventCategory returns a new EventCategory. ID is set by the repository on create.
func NewEventCategory(name string, description, color *string, createdAt, updatedAt time.Time) *EventCategory {
	return &EventCategory{
		Name:        name,
		Description: description,
		Color:       color,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventCategoryRepository defines storage for categories. List and GetByID fill EventCount.
type EventCategoryRepository interface {
	Create(ctx context.Context, c *EventCategory) error
	GetByID(ctx context.Context, id string) (*EventCategory, error)
	// GetByNameIgnoreCase returns ErrNotFound when no category has that name in any casing.
	GetByNameIgnoreCase(ctx context.Context, name string) (*EventCategory, error)
	List(ctx context.Context) ([]*EventCategory, error)
	Update(ctx context.Context, c *EventCategory) error
	Delete(ctx context.Context, id string) error
}

// EventCategoryService defines category management operations.
type EventCategoryService interface {
	CreateCategory(ctx context.Context, name string, description, color *string) (*EventCategory, error)
	UpdateCategory(ctx context.Context, id, name string, description, color *string) (*EventCategory, error)
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]*EventCategory, error)
	GetCategory(ctx context.Context, id string) (*EventCategory, error)
}
