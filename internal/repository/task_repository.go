package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

// TaskPatch carries the fields of a partial task update. Nil fields keep
// their stored value.
type TaskPatch struct {
	Assignee         *string
	TaskName         *string
	IsUrgent         *bool
	IsCompleted      *bool
	Deadline         *datatypes.Date
	SubmissionTarget *string
	Notes            *string
}

func (p TaskPatch) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Assignee != nil {
		cols["assignee"] = *p.Assignee
	}
	if p.TaskName != nil {
		cols["task_name"] = *p.TaskName
	}
	if p.IsUrgent != nil {
		cols["is_urgent"] = *p.IsUrgent
	}
	if p.IsCompleted != nil {
		cols["is_completed"] = *p.IsCompleted
	}
	if p.Deadline != nil {
		cols["deadline"] = *p.Deadline
	}
	if p.SubmissionTarget != nil {
		cols["submission_target"] = *p.SubmissionTarget
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	return cols
}

type TaskRepositoryInterface interface {
	List(ctx context.Context) ([]model.Task, error)
	GetByID(ctx context.Context, id uint) (*model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, id uint, patch TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*model.TaskStats, error)
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns every task, urgent first, newest first within each group.
func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	tasks := []model.Task{}
	result := r.db.WithContext(ctx).
		Order("is_urgent DESC").
		Order("created_date DESC").
		Order("id DESC").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Update applies the non-nil fields of patch and returns the stored row.
func (r *TaskRepository) Update(ctx context.Context, id uint, patch TaskPatch) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		cols := patch.columns()
		if len(cols) == 0 {
			return nil
		}
		if err := tx.Model(&task).Updates(cols).Error; err != nil {
			return fmt.Errorf("update task %d: %w", id, err)
		}
		return tx.First(&task, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task by its ID
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Stats recomputes the task summary. Totals come from a single statement so
// that Pending is always Total - Completed for one snapshot.
func (r *TaskRepository) Stats(ctx context.Context) (*model.TaskStats, error) {
	db := r.db.WithContext(ctx)

	var totals struct {
		Total     int64
		Completed int64
		Urgent    int64
	}
	err := db.Raw(`SELECT
		COUNT(*) AS total,
		COALESCE(SUM(CASE WHEN is_completed THEN 1 ELSE 0 END), 0) AS completed,
		COALESCE(SUM(CASE WHEN is_urgent AND NOT is_completed THEN 1 ELSE 0 END), 0) AS urgent
		FROM tasks`).Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("task totals: %w", err)
	}

	assignees := []model.AssigneeStats{}
	err = db.Raw(`SELECT
		assignee,
		COUNT(*) AS total_tasks,
		COALESCE(SUM(CASE WHEN is_completed THEN 1 ELSE 0 END), 0) AS completed_tasks,
		COALESCE(SUM(CASE WHEN is_urgent AND NOT is_completed THEN 1 ELSE 0 END), 0) AS urgent_tasks
		FROM tasks
		GROUP BY assignee
		ORDER BY total_tasks DESC, assignee ASC`).Scan(&assignees).Error
	if err != nil {
		return nil, fmt.Errorf("assignee stats: %w", err)
	}

	return &model.TaskStats{
		Total:     totals.Total,
		Completed: totals.Completed,
		Urgent:    totals.Urgent,
		Pending:   totals.Total - totals.Completed,
		Assignees: assignees,
	}, nil
}
