package service

import (
	"context"
	"math"
	"time"

	"workflowhub/internal/audit"
	"workflowhub/internal/model"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultActiveProjectLimit = 5
	DefaultActivityLimit      = 10
)

type ProjectSnapshot interface {
	List(ctx context.Context) ([]model.Project, error)
}

type TaskSnapshot interface {
	Snapshot(ctx context.Context) ([]model.Task, error)
}

type ActivityFeed interface {
	Recent(ctx context.Context, limit int) ([]audit.TimelineEntry, error)
}

type ProjectStats struct {
	Total    int                         `json:"total"`
	ByStatus map[model.ProjectStatus]int `json:"byStatus"`
}

type TaskStats struct {
	Total    int                      `json:"total"`
	ByStatus map[model.TaskStatus]int `json:"byStatus"`
	Overdue  int                      `json:"overdue"`
}

type ProjectProgress struct {
	model.Project
	TaskCount      int `json:"taskCount"`
	CompletedTasks int `json:"completedTasks"`
	Progress       int `json:"progress"`
}

type Dashboard struct {
	Projects       ProjectStats          `json:"projects"`
	Tasks          TaskStats             `json:"tasks"`
	ActiveProjects []ProjectProgress     `json:"activeProjects"`
	RecentActivity []audit.TimelineEntry `json:"recentActivity"`
}

type DashboardOptions struct {
	ActiveProjectLimit int
	ActivityLimit      int
}

// DashboardService computes read-only rollups on every call.
type DashboardService struct {
	projects ProjectSnapshot
	tasks    TaskSnapshot
	activity ActivityFeed
	now      func() time.Time
}

func NewDashboardService(projects ProjectSnapshot, tasks TaskSnapshot, activity ActivityFeed) *DashboardService {
	return &DashboardService{
		projects: projects,
		tasks:    tasks,
		activity: activity,
		now:      time.Now,
	}
}

func (s *DashboardService) Overview(ctx context.Context, opts DashboardOptions) (*Dashboard, error) {
	if opts.ActiveProjectLimit <= 0 {
		opts.ActiveProjectLimit = DefaultActiveProjectLimit
	}
	if opts.ActivityLimit <= 0 {
		opts.ActivityLimit = DefaultActivityLimit
	}

	var (
		projects []model.Project
		tasks    []model.Task
		recent   []audit.TimelineEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = s.projects.List(gctx)
		if err != nil {
			return persistenceError("failed to load projects", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tasks, err = s.tasks.Snapshot(gctx)
		if err != nil {
			return persistenceError("failed to load tasks", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		recent, err = s.activity.Recent(gctx, opts.ActivityLimit)
		if err != nil {
			return persistenceError("failed to load recent activity", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{
		Projects:       countProjects(projects),
		Tasks:          countTasks(tasks, s.now()),
		ActiveProjects: activeProgress(projects, tasks, opts.ActiveProjectLimit),
		RecentActivity: recent,
	}, nil
}

// RecentActivity returns the latest audit entries across the system.
func (s *DashboardService) RecentActivity(ctx context.Context, limit int) ([]audit.TimelineEntry, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	entries, err := s.activity.Recent(ctx, limit)
	if err != nil {
		return nil, persistenceError("failed to load recent activity", err)
	}
	return entries, nil
}

// Progress is the rounded completion percentage, 0 for an empty project.
func Progress(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func countProjects(projects []model.Project) ProjectStats {
	stats := ProjectStats{Total: len(projects), ByStatus: make(map[model.ProjectStatus]int, len(model.ProjectStatuses))}
	for _, status := range model.ProjectStatuses {
		stats.ByStatus[status] = 0
	}
	for _, p := range projects {
		stats.ByStatus[p.Status]++
	}
	return stats
}

func countTasks(tasks []model.Task, now time.Time) TaskStats {
	stats := TaskStats{Total: len(tasks), ByStatus: make(map[model.TaskStatus]int, len(model.TaskStatuses))}
	for _, status := range model.TaskStatuses {
		stats.ByStatus[status] = 0
	}
	for i := range tasks {
		stats.ByStatus[tasks[i].Status]++
		if tasks[i].IsOverdue(now) {
			stats.Overdue++
		}
	}
	return stats
}

func activeProgress(projects []model.Project, tasks []model.Task, limit int) []ProjectProgress {
	type counts struct{ total, completed int }
	perProject := make(map[uuid.UUID]*counts)
	for _, t := range tasks {
		c, ok := perProject[t.ProjectID]
		if !ok {
			c = &counts{}
			perProject[t.ProjectID] = c
		}
		c.total++
		if t.Status == model.TaskStatusCompleted {
			c.completed++
		}
	}

	result := make([]ProjectProgress, 0, limit)
	for _, p := range projects {
		if p.Status != model.ProjectStatusActive {
			continue
		}
		if len(result) == limit {
			break
		}
		item := ProjectProgress{Project: p}
		if c, ok := perProject[p.ID]; ok {
			item.TaskCount = c.total
			item.CompletedTasks = c.completed
		}
		item.Progress = Progress(item.CompletedTasks, item.TaskCount)
		result = append(result, item)
	}
	return result
}
