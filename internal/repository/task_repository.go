package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tasktrack/internal/model"
)

// TaskFilter narrows a task listing by exact-match status and/or priority.
// Nil fields are not applied.
type TaskFilter struct {
	Status   *model.TaskStatus
	Priority *model.TaskPriority
}

// TaskRepository defines task persistence operations. Every lookup and
// mutation is keyed by owner as well as id, so a caller can never reach a
// record outside their own ownership scope.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter TaskFilter) ([]model.Task, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter TaskFilter) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		q = q.Where("priority = ?", *filter.Priority)
	}

	tasks := make([]model.Task, 0)
	if err := q.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// DeleteByIDAndOwner removes the task and reports whether a record matched.
func (r *taskRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&model.Task{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
