package repository_test

import (
	"context"
	"testing"
	"time"

	"workflowhub/internal/model"
	"workflowhub/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_Create(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	users := repository.NewUserRepository(gormDB)

	user := &model.User{
		ID:             uuid.New(),
		Email:          "dev@example.com",
		Name:           "Dev",
		Role:           model.RoleMember,
		IsActive:       true,
		HashedPassword: "hashed_password",
	}

	// Порядок колонок совпадает с порядком полей модели
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users"`).
		WithArgs(user.ID, user.Email, user.Name, sqlmock.AnyArg(), "MEMBER", true, user.HashedPassword, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, users.Create(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	const email = "dev@example.com"
	userID := uuid.New()

	tests := []struct {
		name    string
		expect  func(q *sqlmock.ExpectedQuery)
		wantNil bool
		wantErr bool
	}{
		{
			name: "found",
			expect: func(q *sqlmock.ExpectedQuery) {
				q.WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "role", "is_active", "created_at"}).
					AddRow(userID.String(), email, "Dev", "OWNER", true, time.Now()))
			},
		},
		{
			// отсутствие записи не ошибка
			name: "missing",
			expect: func(q *sqlmock.ExpectedQuery) {
				q.WillReturnError(gorm.ErrRecordNotFound)
			},
			wantNil: true,
		},
		{
			name: "driver failure",
			expect: func(q *sqlmock.ExpectedQuery) {
				q.WillReturnError(assert.AnError)
			},
			wantNil: true,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gormDB, mock := setupMockDB(t)
			users := repository.NewUserRepository(gormDB)

			tt.expect(mock.ExpectQuery(`SELECT .* FROM "users" WHERE email = .* LIMIT`).WithArgs(email, 1))

			user, err := users.FindByEmail(context.Background(), email)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.wantNil {
				assert.Nil(t, user)
			} else {
				require.NotNil(t, user)
				assert.Equal(t, userID, user.ID)
				assert.Equal(t, model.RoleOwner, user.Role)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_FirstActive_None(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	users := repository.NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE is_active = .* ORDER BY created_at`).
		WithArgs(true, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := users.FirstActive(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_Missing(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	users := repository.NewUserRepository(gormDB)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE id = .* LIMIT`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := users.GetByID(context.Background(), id)

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}
