// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"workflowhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with foreign keys enforced
// and the full schema migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&model.User{},
		&model.TaskType{},
		&model.Project{},
		&model.Task{},
		&model.Comment{},
		&model.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CreateUser inserts an active member.
func CreateUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := &model.User{
		Email:    fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		Name:     name,
		Role:     model.RoleMember,
		IsActive: true,
	}
	if err := db.WithContext(context.Background()).Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// CreateProject inserts a project with the given status.
func CreateProject(t *testing.T, db *gorm.DB, name string, status model.ProjectStatus) *model.Project {
	t.Helper()
	project := &model.Project{
		Name:   name,
		Status: status,
		Color:  model.DefaultProjectColor,
		Icon:   model.DefaultProjectIcon,
	}
	if err := db.Omit("Owner").Create(project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return project
}

// CountAudit returns the number of audit rows recorded for an entity.
func CountAudit(t *testing.T, db *gorm.DB, entityID uuid.UUID, action model.AuditAction) int64 {
	t.Helper()
	var count int64
	q := db.Model(&model.AuditLog{}).Where("entity_id = ?", entityID)
	if action != "" {
		q = q.Where("action = ?", action)
	}
	if err := q.Count(&count).Error; err != nil {
		t.Fatalf("failed to count audit rows: %v", err)
	}
	return count
}
