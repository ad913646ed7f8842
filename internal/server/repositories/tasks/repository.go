package tasks

import (
	"context"

	"github.com/dmitrijs2005/tasklist/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	// ListByOwner returns the owner's tasks newest-created first,
	// ties broken by id so the order is deterministic.
	ListByOwner(ctx context.Context, userID string) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
}
