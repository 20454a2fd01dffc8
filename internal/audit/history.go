package audit

import (
	"context"
	"fmt"

	"workflowhub/internal/model"

	"github.com/google/uuid"
)

// SystemActor is shown for entries without an attributed user.
const SystemActor = "System"

const DefaultRecentLimit = 10

type Reader interface {
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]model.AuditLog, error)
	ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error)
}

// TimelineEntry is an audit row with its actor resolved to a display name.
type TimelineEntry struct {
	model.AuditLog
	ActorName string `json:"actorName"`
}

type History struct {
	reader Reader
}

func NewHistory(reader Reader) *History {
	return &History{reader: reader}
}

// Timeline returns the full history of one entity, newest first.
func (h *History) Timeline(ctx context.Context, entityID uuid.UUID) ([]TimelineEntry, error) {
	rows, err := h.reader.ListByEntity(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("load timeline: %w", err)
	}
	return resolve(rows), nil
}

// Recent returns the latest entries system-wide, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]TimelineEntry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	rows, err := h.reader.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load recent activity: %w", err)
	}
	return resolve(rows), nil
}

func resolve(rows []model.AuditLog) []TimelineEntry {
	entries := make([]TimelineEntry, 0, len(rows))
	for _, row := range rows {
		name := SystemActor
		if row.User != nil {
			name = row.User.Name
		}
		entries = append(entries, TimelineEntry{AuditLog: row, ActorName: name})
	}
	return entries
}
