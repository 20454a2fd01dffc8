package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"workflowhub/internal/auth"
	"workflowhub/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key"

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// Защищенный маршрут возвращает текущего пользователя
	protected := r.Group("/protected")
	protected.Use(middleware.JWTAuthMiddleware(auth.NewJWTManager(testSecret, time.Hour)))
	protected.GET("/whoami", func(c *gin.Context) {
		actor := middleware.ActorFrom(c)
		if actor == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "actor missing"})
			return
		}
		c.String(http.StatusOK, actor.String())
	})

	return r
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestJWTAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	valid, _ := auth.NewJWTManager(testSecret, time.Hour).GenerateToken(userID)
	inAnHour := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{
			name:    "valid token",
			header:  "Bearer " + valid,
			status:  http.StatusOK,
			message: userID.String(),
		},
		{
			name:    "missing header",
			header:  "",
			status:  http.StatusUnauthorized,
			message: "Authorization header is required",
		},
		{
			name:    "wrong scheme",
			header:  "Token " + valid,
			status:  http.StatusUnauthorized,
			message: "Authorization header format must be Bearer {token}",
		},
		{
			name:    "empty bearer",
			header:  "Bearer ",
			status:  http.StatusUnauthorized,
			message: "Authorization header format must be Bearer {token}",
		},
		{
			name:    "garbage token",
			header:  "Bearer invalid-token",
			status:  http.StatusUnauthorized,
			message: "Invalid or expired token",
		},
		{
			name:    "foreign signature",
			header:  "Bearer " + signed(t, "someone-else", jwt.MapClaims{"user_id": userID.String(), "exp": inAnHour}),
			status:  http.StatusUnauthorized,
			message: "Invalid or expired token",
		},
		{
			name:    "expired",
			header:  "Bearer " + signed(t, testSecret, jwt.MapClaims{"user_id": userID.String(), "exp": jwt.NewNumericDate(time.Now().Add(-time.Minute))}),
			status:  http.StatusUnauthorized,
			message: "Invalid or expired token",
		},
		{
			name:    "malformed user id",
			header:  "Bearer " + signed(t, testSecret, jwt.MapClaims{"user_id": "not-a-valid-uuid", "exp": inAnHour}),
			status:  http.StatusUnauthorized,
			message: "Invalid user ID in token",
		},
	}

	router := setupRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/protected/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			assert.Equal(t, tt.status, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.message)
		})
	}
}

func TestActorFrom_Anonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, middleware.ActorFrom(c))

	c.Set(middleware.UserIDKey, "not-a-uuid")
	assert.Nil(t, middleware.ActorFrom(c))
}
