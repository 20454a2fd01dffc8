package repository

import (
	"context"

	"workflowhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuditRepository only inserts and reads; audit rows are never updated or deleted.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error
}

// ListByEntity returns the history of one task or project, newest first
func (r *AuditRepository) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("entity_id = ?", entityID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// ListRecent returns the latest entries across all entities
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
