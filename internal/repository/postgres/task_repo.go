package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vedran77/taskdeck/internal/domain"
)

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, description, status, priority, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		task.ID, task.UserID, task.Title, task.Description,
		task.Status, task.Priority, task.CreatedAt, task.UpdatedAt,
	)
	return err
}

func (r *TaskRepo) GetByOwner(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE id = $1 AND user_id = $2"

	var t domain.Task
	err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description,
		&t.Status, &t.Priority, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter domain.TaskFilter) ([]domain.Task, error) {
	query, args := buildTaskQuery(ownerID, filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Title, &t.Description,
			&t.Status, &t.Priority, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// UpdateByOwner merges the patch in a single conditional UPDATE, so the
// ownership check and the mutation cannot race. Returns (nil, nil) when the
// row is missing or owned by someone else.
func (r *TaskRepo) UpdateByOwner(ctx context.Context, ownerID, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	query := `
		UPDATE tasks SET
			title = COALESCE($3, title),
			description = COALESCE($4, description),
			status = COALESCE($5, status),
			priority = COALESCE($6, priority),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns

	var t domain.Task
	err := r.pool.QueryRow(ctx, query, id, ownerID,
		patch.Title, patch.Description, patch.Status, patch.Priority,
	).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description,
		&t.Status, &t.Priority, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepo) DeleteByOwner(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1 AND user_id = $2", id, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
