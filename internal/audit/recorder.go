// Package audit appends activity records for tasks and projects and reads them back
// as timelines. Recording is best-effort: a failed write is logged and never
// reaches the caller whose mutation is being described.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"workflowhub/internal/logger"
	"workflowhub/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const writeTimeout = 5 * time.Second

// Entry is one observed change, before it is persisted.
type Entry struct {
	EntityID   uuid.UUID
	EntityType model.EntityType
	Action     model.AuditAction
	// UserID is nil when no authenticated actor performed the change.
	UserID  *uuid.UUID
	Details any
	At      time.Time
}

type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

type Store interface {
	Create(ctx context.Context, entry *model.AuditLog) error
}

// SyncRecorder writes each entry before returning.
type SyncRecorder struct {
	store Store
}

func NewRecorder(store Store) *SyncRecorder {
	return &SyncRecorder{store: store}
}

func (r *SyncRecorder) Record(ctx context.Context, entry Entry) {
	if entry.At.IsZero() {
		entry.At = time.Now()
	}
	_ = r.write(ctx, entry)
}

func (r *SyncRecorder) write(ctx context.Context, entry Entry) error {
	row := &model.AuditLog{
		EntityID:   entry.EntityID,
		EntityType: entry.EntityType,
		Action:     entry.Action,
		UserID:     entry.UserID,
		CreatedAt:  entry.At,
	}

	if entry.Details != nil {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			logger.Error("Audit: failed to encode details", err, entryFields(entry)...)
			return err
		}
		row.Details = datatypes.JSON(raw)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := r.store.Create(ctx, row); err != nil {
		logger.Error("Audit: failed to record activity", err, entryFields(entry)...)
		return err
	}
	return nil
}

func entryFields(entry Entry) []zap.Field {
	return []zap.Field{
		zap.String("entity_id", entry.EntityID.String()),
		zap.String("entity_type", string(entry.EntityType)),
		zap.String("action", string(entry.Action)),
	}
}
