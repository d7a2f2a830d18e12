package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/internal/auth"
	"taskboard/internal/model"
)

type TodoPatch struct {
	Text        *string
	Priority    *string
	IsCompleted *bool
}

type TodoRepositoryInterface interface {
	ListByUser(ctx context.Context, userID string) ([]model.Todo, error)
	Create(ctx context.Context, todo *model.Todo) error
	Update(ctx context.Context, id uint, actorID string, patch TodoPatch) (*model.Todo, error)
	Delete(ctx context.Context, id uint, actorID string) error
}

var _ TodoRepositoryInterface = (*TodoRepository)(nil)

type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

const priorityRankSQL = "CASE priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3 ELSE 4 END"

// ListByUser returns open todos before completed ones, high priority first.
func (r *TodoRepository) ListByUser(ctx context.Context, userID string) ([]model.Todo, error) {
	todos := []model.Todo{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_completed ASC").
		Order(priorityRankSQL).
		Order("created_at DESC").
		Order("id DESC").
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	if todo.Priority == "" {
		todo.Priority = model.PriorityMedium
	}
	return r.db.WithContext(ctx).Create(todo).Error
}

// lockOwnedTodo loads the row FOR UPDATE and checks ownership before any write.
func lockOwnedTodo(tx *gorm.DB, id uint, actorID string) (*model.Todo, error) {
	var todo model.Todo
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&todo, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	if err := auth.RequireOwner(todo.UserID, actorID); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *TodoRepository) Update(ctx context.Context, id uint, actorID string, patch TodoPatch) (*model.Todo, error) {
	var todo *model.Todo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if todo, err = lockOwnedTodo(tx, id, actorID); err != nil {
			return err
		}

		cols := map[string]interface{}{}
		if patch.Text != nil {
			cols["text"] = *patch.Text
		}
		if patch.Priority != nil {
			cols["priority"] = *patch.Priority
		}
		if patch.IsCompleted != nil {
			cols["is_completed"] = *patch.IsCompleted
		}
		if len(cols) == 0 {
			return nil
		}
		if err := tx.Model(todo).Updates(cols).Error; err != nil {
			return err
		}
		return tx.First(todo, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id uint, actorID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		todo, err := lockOwnedTodo(tx, id, actorID)
		if err != nil {
			return err
		}
		return tx.Delete(todo).Error
	})
}
