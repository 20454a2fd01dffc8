package service

import (
	"context"
	"fmt"

	"workflowhub/internal/logger"
	"workflowhub/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultUserEmail = "admin@workflowhub.local"
	DefaultUserName  = "WorkFlow Admin"
)

var defaultTaskTypes = []model.TaskType{
	{Name: "Development", Icon: "💻", Color: "#3b82f6"},
	{Name: "Design", Icon: "🎨", Color: "#ec4899"},
	{Name: "Meeting", Icon: "🤝", Color: "#8b5cf6"},
	{Name: "Bug", Icon: "🐛", Color: "#ef4444"},
	{Name: "Documentation", Icon: "📄", Color: "#6b7280"},
}

type SeedUsers interface {
	Create(ctx context.Context, user *model.User) error
	FirstActive(ctx context.Context) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Activate(ctx context.Context, id uuid.UUID) error
}

type SeedTaskTypes interface {
	Create(ctx context.Context, taskType *model.TaskType) error
	FindByName(ctx context.Context, name string) (*model.TaskType, error)
}

// Seeder creates the data a fresh installation needs: one owner and the
// default task types.
type Seeder struct {
	users SeedUsers
	types SeedTaskTypes
}

func NewSeeder(users SeedUsers, types SeedTaskTypes) *Seeder {
	return &Seeder{users: users, types: types}
}

// Seed is safe to run repeatedly. It returns the id of the first active user.
func (s *Seeder) Seed(ctx context.Context) (uuid.UUID, error) {
	user, err := s.users.FirstActive(ctx)
	if err != nil {
		return uuid.Nil, persistenceError("failed to look up users", err)
	}
	if user == nil {
		user, err = s.ensureOwner(ctx)
		if err != nil {
			return uuid.Nil, err
		}
	}

	for _, tt := range defaultTaskTypes {
		existing, err := s.types.FindByName(ctx, tt.Name)
		if err != nil {
			return uuid.Nil, persistenceError("failed to look up task type", err)
		}
		if existing != nil {
			continue
		}
		taskType := tt
		taskType.IsActive = true
		if err := s.types.Create(ctx, &taskType); err != nil {
			return uuid.Nil, persistenceError(fmt.Sprintf("failed to create task type %s", tt.Name), err)
		}
		logger.Info("Seed: task type created", zap.String("name", tt.Name))
	}

	return user.ID, nil
}

func (s *Seeder) ensureOwner(ctx context.Context) (*model.User, error) {
	// a deactivated default owner keeps its email; reactivate it
	existing, err := s.users.FindByEmail(ctx, DefaultUserEmail)
	if err != nil {
		return nil, persistenceError("failed to look up default user", err)
	}
	if existing != nil {
		if !existing.IsActive {
			if err := s.users.Activate(ctx, existing.ID); err != nil {
				return nil, persistenceError("failed to reactivate default user", err)
			}
			existing.IsActive = true
			logger.Info("Seed: default owner reactivated", zap.String("user_id", existing.ID.String()))
		}
		return existing, nil
	}

	user := &model.User{
		Email:    DefaultUserEmail,
		Name:     DefaultUserName,
		Role:     model.RoleOwner,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, persistenceError("failed to create default user", err)
	}
	logger.Info("Seed: default owner created", zap.String("user_id", user.ID.String()))
	return user, nil
}

// DefaultUserID returns the first active user, seeding an installation that
// has none.
func (s *Seeder) DefaultUserID(ctx context.Context) (uuid.UUID, error) {
	user, err := s.users.FirstActive(ctx)
	if err != nil {
		return uuid.Nil, persistenceError("failed to look up users", err)
	}
	if user != nil {
		return user.ID, nil
	}
	return s.Seed(ctx)
}
