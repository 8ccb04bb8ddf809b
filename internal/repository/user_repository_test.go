package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Havertz69/rental-app/internal/models"
)

var userCols = []string{"id", "email", "password_hash", "full_name", "is_staff", "created_at"}

func TestUserRepository_GetByEmail_Normalises(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	id := uuid.New()
	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("admin@example.com").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(id, "admin@example.com", "hash", "Admin", true, time.Now()))

	u, err := repo.GetByEmail(context.Background(), "  Admin@Example.com ")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, id, u.ID)
	assert.True(t, u.IsStaff)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("nobody@example.com").
		WillReturnRows(pgxmock.NewRows(userCols))

	u, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), "staff@example.com", "hash", "Staff", true).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	u := &models.User{Email: "Staff@Example.com", PasswordHash: "hash", FullName: "Staff", IsStaff: true}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, "staff@example.com", u.Email)
}
