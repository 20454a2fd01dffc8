package service_test

import (
	"testing"

	"workflowhub/internal/audit"
	"workflowhub/internal/model"
	"workflowhub/internal/repository"
	"workflowhub/internal/service"
	"workflowhub/internal/testutil"

	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	taskRepo  *repository.TaskRepository
	tasks     *service.TaskService
	comments  *service.CommentService
	projects  *service.ProjectService
	kanban    *service.KanbanService
	history   *audit.History
	dashboard *service.DashboardService
	user      *model.User
	project   *model.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	taskRepo := repository.NewTaskRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	userRepo := repository.NewUserRepository(db)
	typeRepo := repository.NewTaskTypeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	recorder := audit.NewRecorder(auditRepo)
	history := audit.NewHistory(auditRepo)
	tasks := service.NewTaskService(taskRepo, projectRepo, userRepo, typeRepo, recorder)

	return &fixture{
		db:        db,
		taskRepo:  taskRepo,
		tasks:     tasks,
		comments:  service.NewCommentService(commentRepo, taskRepo, recorder),
		projects:  service.NewProjectService(projectRepo, userRepo, recorder),
		kanban:    service.NewKanbanService(tasks, projectRepo),
		history:   history,
		dashboard: service.NewDashboardService(projectRepo, taskRepo, history),
		user:      testutil.CreateUser(t, db, "alice"),
		project:   testutil.CreateProject(t, db, "Website", model.ProjectStatusActive),
	}
}

func (f *fixture) projectRepo() *repository.ProjectRepository {
	return repository.NewProjectRepository(f.db)
}

func (f *fixture) auditCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := f.db.Model(&model.AuditLog{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count audit rows: %v", err)
	}
	return count
}

func ptr[T any](v T) *T {
	return &v
}
