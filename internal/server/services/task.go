package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/tasklist/internal/common"
	"github.com/dmitrijs2005/tasklist/internal/server/models"
	"github.com/dmitrijs2005/tasklist/internal/server/repositories/tasks"
	"github.com/google/uuid"
)

const maxTitleLength = 500

// TaskService implements per-user task CRUD. Every operation takes the
// authenticated subject id and enforces ownership before mutating.
type TaskService struct {
	repo tasks.Repository
}

func NewTaskService(repo tasks.Repository) *TaskService {
	return &TaskService{repo: repo}
}

// Create stores a new task owned by subjectID. The title is trimmed and must
// be non-empty and at most maxTitleLength characters afterwards.
func (s *TaskService) Create(ctx context.Context, subjectID, title string) (*models.Task, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:        uuid.NewString(),
		UserID:    subjectID,
		Title:     title,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return task, nil
}

// List returns all tasks owned by subjectID, newest-created first.
func (s *TaskService) List(ctx context.Context, subjectID string) ([]*models.Task, error) {
	result, err := s.repo.ListByOwner(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return result, nil
}

// SetCompletion updates the completed flag of an owned task and refreshes
// its updated_at timestamp.
func (s *TaskService) SetCompletion(ctx context.Context, subjectID, taskID string, completed bool) (*models.Task, error) {
	task, err := s.getOwned(ctx, subjectID, taskID)
	if err != nil {
		return nil, err
	}

	task.Completed = completed
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("error updating task: %w", err)
	}

	return task, nil
}

// Rename updates the title of an owned task and refreshes its updated_at
// timestamp. The title is validated the same way as in Create.
func (s *TaskService) Rename(ctx context.Context, subjectID, taskID, title string) (*models.Task, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}

	task, err := s.getOwned(ctx, subjectID, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("error updating task: %w", err)
	}

	return task, nil
}

// Delete permanently removes an owned task.
func (s *TaskService) Delete(ctx context.Context, subjectID, taskID string) error {
	if _, err := s.getOwned(ctx, subjectID, taskID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting task: %w", err)
	}

	return nil
}

// getOwned fetches a task and enforces the ownership contract. Existence is
// checked before ownership: a non-owner probing a nonexistent id sees
// NotFound, never Forbidden.
func (s *TaskService) getOwned(ctx context.Context, subjectID, taskID string) (*models.Task, error) {
	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error fetching task: %w", err)
	}

	if task.UserID != subjectID {
		return nil, common.ErrorForbidden
	}

	return task, nil
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
	}
	// the limit is in characters, matching the varchar(500) column
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", fmt.Errorf("%w: title must be at most %d characters", common.ErrorValidation, maxTitleLength)
	}
	return title, nil
}
