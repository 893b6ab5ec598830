package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskrooms/internal/cache"
	apperrors "taskrooms/internal/errors"
	"taskrooms/internal/model"
	"taskrooms/internal/repository"
)

const tasksCacheKey = "tasks:all"

// TaskService exposes task collection operations.
type TaskService interface {
	Create(ctx context.Context, title, description, status, roomID string) (*model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	Update(ctx context.Context, id uuid.UUID, title, description, status, roomID string) (*model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type taskService struct {
	repo  repository.TaskRepository
	cache *cache.Client
}

// NewTaskService builds a TaskService with repository and cache.
func NewTaskService(repo repository.TaskRepository, cache *cache.Client) TaskService {
	return &taskService{repo: repo, cache: cache}
}

// Create inserts a new task. Status defaults to "To Do" when omitted. The room
// id is stored as given; it is never checked against the rooms table.
func (s *taskService) Create(ctx context.Context, title, description, status, roomID string) (*model.Task, error) {
	if title == "" {
		return nil, apperrors.NewValidationError("title is required")
	}
	if description == "" {
		return nil, apperrors.NewValidationError("description is required")
	}
	if roomID == "" {
		return nil, apperrors.NewValidationError("roomId is required")
	}
	if status == "" {
		status = model.StatusToDo
	}
	if !model.ValidStatus(status) {
		return nil, apperrors.NewValidationError("status must be one of %q, %q, %q",
			model.StatusToDo, model.StatusInProgress, model.StatusDone)
	}

	task := &model.Task{
		Title:       title,
		Description: description,
		Status:      status,
		RoomID:      roomID,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	_ = s.cache.Delete(ctx, tasksCacheKey)
	return task, nil
}

func (s *taskService) List(ctx context.Context) ([]model.Task, error) {
	if data, _ := s.cache.Get(ctx, tasksCacheKey); data != nil {
		var cached []model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(tasks); err == nil {
		_ = s.cache.Set(ctx, tasksCacheKey, payload, listCacheTTL)
	}
	return tasks, nil
}

// Update performs a full overwrite: every field is replaced by the request
// value, so an omitted field is stored empty rather than preserved. A
// non-empty status must still be one of the three allowed values.
func (s *taskService) Update(ctx context.Context, id uuid.UUID, title, description, status, roomID string) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	if status != "" && !model.ValidStatus(status) {
		return nil, apperrors.NewValidationError("status must be one of %q, %q, %q",
			model.StatusToDo, model.StatusInProgress, model.StatusDone)
	}

	task.Title = title
	task.Description = description
	task.Status = status
	task.RoomID = roomID

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	_ = s.cache.Delete(ctx, tasksCacheKey)
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("find task: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	_ = s.cache.Delete(ctx, tasksCacheKey)
	return nil
}
