package auth_test

import (
	"testing"

	"workflowhub/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, auth.CheckPassword(hash, "password123"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))

	// Сидированные пользователи без пароля не могут войти
	assert.False(t, auth.CheckPassword("", "password123"))
	assert.False(t, auth.CheckPassword("", ""))
}
