package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tasktrack/internal/errors"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
)

// CreateTaskInput carries the client-supplied fields for task creation. The
// owner is never part of the input; it is stamped from the caller identity.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
}

// UpdateTaskInput carries a partial update; nil fields are left untouched.
// Owner and id are not representable here and therefore immutable.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
}

// TaskService enforces ownership on every read and write, validates and
// normalizes task fields, and keeps status/priority closed under their
// enumerations. Status and priority are unordered: any value may move to any
// other value, the only guarantee is membership in the enumeration.
type TaskService interface {
	List(ctx context.Context, callerID uuid.UUID, status, priority string) ([]model.Task, error)
	Create(ctx context.Context, callerID uuid.UUID, in CreateTaskInput) (*model.Task, error)
	Update(ctx context.Context, callerID, taskID uuid.UUID, in UpdateTaskInput) (*model.Task, error)
	Delete(ctx context.Context, callerID, taskID uuid.UUID) error
}

type taskService struct {
	tasks repository.TaskRepository
}

// NewTaskService creates a new task service.
func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

// List returns the caller's tasks, newest-created first, optionally narrowed
// by exact-match status and/or priority. The owner scope is applied
// unconditionally, so filter values can never widen visibility.
func (s *taskService) List(ctx context.Context, callerID uuid.UUID, status, priority string) ([]model.Task, error) {
	var filter repository.TaskFilter
	if status != "" {
		st := model.TaskStatus(status)
		if !st.Valid() {
			return nil, errors.ErrInvalidStatus
		}
		filter.Status = &st
	}
	if priority != "" {
		pr := model.TaskPriority(priority)
		if !pr.Valid() {
			return nil, errors.ErrInvalidPriority
		}
		filter.Priority = &pr
	}

	tasks, err := s.tasks.ListByOwner(ctx, callerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Create validates the input, applies defaults (status pending, priority
// medium), stamps the caller as owner and persists the task. Nothing is
// persisted unless all validation passes.
func (s *taskService) Create(ctx context.Context, callerID uuid.UUID, in CreateTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errors.ErrEmptyTitle
	}

	priority := model.TaskPriorityMedium
	if in.Priority != "" {
		priority = model.TaskPriority(in.Priority)
		if !priority.Valid() {
			return nil, errors.ErrInvalidPriority
		}
	}

	task := &model.Task{
		ID:          uuid.New(),
		UserID:      callerID,
		Title:       title,
		Description: in.Description,
		Status:      model.TaskStatusPending,
		Priority:    priority,
		DueDate:     in.DueDate,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Update applies the supplied fields to the caller's task. A task that does
// not exist and a task owned by someone else are both reported as not found.
// All validation happens before the first persisted write.
func (s *taskService) Update(ctx context.Context, callerID, taskID uuid.UUID, in UpdateTaskInput) (*model.Task, error) {
	task, err := s.tasks.FindByIDAndOwner(ctx, taskID, callerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, errors.ErrEmptyTitle
		}
		task.Title = title
	}
	if in.Status != nil {
		status := model.TaskStatus(*in.Status)
		if !status.Valid() {
			return nil, errors.ErrInvalidStatus
		}
		task.Status = status
	}
	if in.Priority != nil {
		priority := model.TaskPriority(*in.Priority)
		if !priority.Valid() {
			return nil, errors.ErrInvalidPriority
		}
		task.Priority = priority
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete permanently removes the caller's task, with the same not-found
// semantics as Update.
func (s *taskService) Delete(ctx context.Context, callerID, taskID uuid.UUID) error {
	deleted, err := s.tasks.DeleteByIDAndOwner(ctx, taskID, callerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !deleted {
		return errors.ErrTaskNotFound
	}
	return nil
}
