package auth_test

import (
	"testing"
	"time"

	"workflowhub/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	manager := auth.NewJWTManager(testSecret, 24*time.Hour)

	// Генерируем токен
	userID := uuid.New()
	token, err := manager.GenerateToken(userID)

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Парсим токен
	parsedUserID, err := manager.ParseToken(token)

	assert.NoError(t, err)
	assert.Equal(t, userID, parsedUserID)
}

func TestParseToken_InvalidToken(t *testing.T) {
	manager := auth.NewJWTManager(testSecret, time.Hour)

	_, err := manager.ParseToken("invalid-token")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	issuer := auth.NewJWTManager("other-secret", time.Hour)
	token, err := issuer.GenerateToken(uuid.New())
	assert.NoError(t, err)

	_, err = auth.NewJWTManager(testSecret, time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_ExpiredToken(t *testing.T) {
	manager := auth.NewJWTManager(testSecret, time.Hour)

	// Токен истек 1 час назад
	claims := jwt.MapClaims{
		"user_id": uuid.NewString(),
		"exp":     time.Now().Add(-1 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredToken, _ := token.SignedString([]byte(testSecret))

	_, err := manager.ParseToken(expiredToken)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_MissingClaims(t *testing.T) {
	manager := auth.NewJWTManager(testSecret, time.Hour)

	// Отсутствует "user_id"
	claims := jwt.MapClaims{
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenWithoutUserID, _ := token.SignedString([]byte(testSecret))

	_, err := manager.ParseToken(tokenWithoutUserID)

	assert.ErrorIs(t, err, auth.ErrInvalidClaims)
}

func TestParseToken_MalformedUserID(t *testing.T) {
	manager := auth.NewJWTManager(testSecret, time.Hour)

	claims := jwt.MapClaims{
		"user_id": "not-a-valid-uuid",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(testSecret))

	_, err := manager.ParseToken(signed)

	assert.ErrorIs(t, err, auth.ErrInvalidUserID)
}
