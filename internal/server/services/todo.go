package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gotodo/internal/common"
	"github.com/dmitrijs2005/gotodo/internal/server/models"
	"github.com/dmitrijs2005/gotodo/internal/server/repositories/repomanager"
)

const defaultListLimit = 100

// TodoService provides CRUD on a user's todo items. Every operation is
// scoped to the owner; a todo belonging to another user is indistinguishable
// from a missing one.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTodoService(db *sql.DB, m repomanager.RepositoryManager) *TodoService {
	return &TodoService{db: db, repomanager: m}
}

func (s *TodoService) Create(ctx context.Context, ownerID, title, description string, completed bool) (*models.Todo, error) {
	repo := s.repomanager.Todos(s.db)
	todo := &models.Todo{OwnerID: ownerID, Title: title, Description: description, Completed: completed}
	t, err := repo.Create(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("error creating todo: %v", err)
	}
	return t, nil
}

// List returns a page of the owner's todos. A non-positive limit falls back
// to defaultListLimit, a negative offset to zero.
func (s *TodoService) List(ctx context.Context, ownerID string, offset, limit int) ([]*models.Todo, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	repo := s.repomanager.Todos(s.db)
	result, err := repo.ListByOwner(ctx, ownerID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing todos: %v", err)
	}
	return result, nil
}

func (s *TodoService) Get(ctx context.Context, id, ownerID string) (*models.Todo, error) {
	repo := s.repomanager.Todos(s.db)
	todo, err := repo.GetByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, id, ownerID string, update *models.TodoUpdate) (*models.Todo, error) {
	repo := s.repomanager.Todos(s.db)
	todo, err := repo.Update(ctx, id, ownerID, update)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id, ownerID string) error {
	repo := s.repomanager.Todos(s.db)
	if err := repo.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}
