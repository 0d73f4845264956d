package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vedran77/taskdeck/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) (*domain.User, error)
}

// TaskRepository operations other than Create are scoped to the owning
// user: a mismatched owner behaves exactly like a missing record.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByOwner(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter domain.TaskFilter) ([]domain.Task, error)
	UpdateByOwner(ctx context.Context, ownerID, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
	DeleteByOwner(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}
