package postgres

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vedran77/taskdeck/internal/domain"
)

const taskColumns = "id, user_id, title, description, status, priority, created_at, updated_at"

// Sort fields accepted from the outside world, mapped to real columns.
// Anything else silently falls back to created_at.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"status":    "status",
	"priority":  "priority",
}

// buildTaskQuery assembles the listing query for one owner. The owner
// predicate always comes first and cannot be filtered away. Ties on the
// sort key break on id so the ordering is deterministic.
func buildTaskQuery(ownerID uuid.UUID, filter domain.TaskFilter) (string, []any) {
	var sb strings.Builder
	args := []any{ownerID}

	sb.WriteString("SELECT " + taskColumns + " FROM tasks WHERE user_id = $1")

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		fmt.Fprintf(&sb, " AND (title ILIKE $%d OR description ILIKE $%d)", n, n)
	}

	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}

	if filter.Priority != "" {
		args = append(args, filter.Priority)
		fmt.Fprintf(&sb, " AND priority = $%d", len(args))
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}

	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	fmt.Fprintf(&sb, " ORDER BY %s %s, id %s", column, direction, direction)

	return sb.String(), args
}
