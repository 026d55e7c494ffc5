// Package todos provides PostgreSQL-backed storage for per-owner todo items.
package todos

import (
	"context"

	"github.com/dmitrijs2005/gotodo/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	ListByOwner(ctx context.Context, ownerID string, offset int, limit int) ([]*models.Todo, error)
	GetByID(ctx context.Context, id string, ownerID string) (*models.Todo, error)
	Update(ctx context.Context, id string, ownerID string, update *models.TodoUpdate) (*models.Todo, error)
	Delete(ctx context.Context, id string, ownerID string) error
}
