package service

import (
	"context"
	"errors"
	"time"

	"github.com/jhoownogueira/TaskFlowAPI/internal/api/domain"
	"github.com/jhoownogueira/TaskFlowAPI/internal/api/store"
	"github.com/jhoownogueira/TaskFlowAPI/pkg/idx"
)

var (
	ErrTaskNotFound  = errors.New("task_not_found")
	ErrTaskForbidden = errors.New("task_forbidden")
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// TaskService implements per-user task CRUD with ownership checks.
type TaskService struct {
	Store store.Store
}

// ListTasksQuery narrows and pages a listing. Zero values mean "no filter" /
// first page / default size.
type ListTasksQuery struct {
	Status   domain.TaskStatus
	Query    string
	Page     int
	PageSize int
}

// UpdateTaskInput is a partial update; nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

// List returns one page of the user's tasks, newest first.
func (s *TaskService) List(ctx context.Context, userID string, q ListTasksQuery) (*domain.TaskPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	items, total, err := s.Store.Tasks().ListTasks(ctx, userID, store.TaskFilter{
		Status:   q.Status,
		Query:    q.Query,
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Task{}
	}

	return &domain.TaskPage{
		Items:      items,
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: (total + size - 1) / size,
	}, nil
}

// Create inserts a new task owned by the user, starting as PENDING.
func (s *TaskService) Create(ctx context.Context, userID, title, description string) (domain.Task, error) {
	now := time.Now().UTC()
	task := domain.Task{
		ID:          idx.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      domain.TaskStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Tasks().CreateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// Update applies a partial update after checking the task exists and belongs
// to the caller; those two failures stay distinct (404 vs 403).
func (s *TaskService) Update(ctx context.Context, userID, id string, in UpdateTaskInput) (domain.Task, error) {
	task, err := s.ownedTask(ctx, userID, id)
	if err != nil {
		return domain.Task{}, err
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.Store.Tasks().UpdateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// Delete removes the task after the same existence and ownership checks.
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.ownedTask(ctx, userID, id); err != nil {
		return err
	}
	return s.Store.Tasks().DeleteTask(ctx, id)
}

func (s *TaskService) ownedTask(ctx context.Context, userID, id string) (domain.Task, error) {
	task, err := s.Store.Tasks().GetTaskByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	if task.UserID != userID {
		return domain.Task{}, ErrTaskForbidden
	}
	return task, nil
}
