package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temcen/anirec/internal/config"
	"github.com/temcen/anirec/internal/services"
	"github.com/temcen/anirec/internal/validation"
	"github.com/temcen/anirec/pkg/models"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func signedToken(t *testing.T, secret string, subject uuid.UUID) string {
	t.Helper()
	claims := &models.JWTClaims{
		Role: "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	code, _ := body["error"]["code"].(string)
	return code
}

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()
	authService := services.NewAuthService(&config.AuthConfig{JWTSecret: "secret"}, newTestLogger())

	router := gin.New()
	router.GET("/users/:userId/ratings", Auth(authService, newTestLogger()), func(c *gin.Context) {
		id, ok := GetUserFromContext(c)
		require.True(t, ok)
		c.String(http.StatusOK, id.String())
	})

	tests := []struct {
		name           string
		path           string
		header         string
		expectedStatus int
		expectedCode   string
	}{
		{"own ratings", "/users/" + userID.String() + "/ratings", "Bearer " + signedToken(t, "secret", userID), http.StatusOK, ""},
		{"missing header", "/users/" + userID.String() + "/ratings", "", http.StatusUnauthorized, "MISSING_AUTHORIZATION"},
		{"wrong scheme", "/users/" + userID.String() + "/ratings", "Basic abc", http.StatusUnauthorized, "INVALID_AUTHORIZATION_FORMAT"},
		{"bad signature", "/users/" + userID.String() + "/ratings", "Bearer " + signedToken(t, "other", userID), http.StatusUnauthorized, "INVALID_TOKEN"},
		{"other user", "/users/" + uuid.New().String() + "/ratings", "Bearer " + signedToken(t, "secret", userID), http.StatusForbidden, "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, w))
			} else {
				assert.Equal(t, userID.String(), w.Body.String())
			}
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	authService := services.NewAuthService(&config.AuthConfig{}, newTestLogger())
	router := gin.New()
	router.GET("/users/:userId/ratings", Auth(authService, newTestLogger()), func(c *gin.Context) {
		_, ok := GetUserFromContext(c)
		assert.False(t, ok)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/"+uuid.New().String()+"/ratings", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestValidationMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sv, err := validation.NewDefaultValidator()
	require.NoError(t, err)
	vm := NewValidationMiddleware(sv)

	router := gin.New()
	router.Use(RequestID())
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.PUT("/users/:userId/ratings", vm.ValidatePathParams(), vm.ValidateRating(), ok)
	router.DELETE("/users/:userId/ratings/:animeId", vm.ValidatePathParams(), ok)
	router.POST("/preview", vm.ValidatePreview(), ok)

	userPath := "/users/" + uuid.New().String() + "/ratings"

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expectedCode   string
	}{
		{"valid rating", http.MethodPut, userPath, `{"anime_id": 5114, "rating": 9}`, http.StatusOK, ""},
		{"rating out of range", http.MethodPut, userPath, `{"anime_id": 5114, "rating": 11}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"empty body", http.MethodPut, userPath, ``, http.StatusBadRequest, "EMPTY_BODY"},
		{"malformed json", http.MethodPut, userPath, `{"anime_id":`, http.StatusBadRequest, "INVALID_JSON"},
		{"bad user id", http.MethodPut, "/users/abc/ratings", `{"anime_id": 5114, "rating": 9}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad anime id", http.MethodDelete, userPath + "/zero", ``, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"valid delete", http.MethodDelete, userPath + "/5114", ``, http.StatusOK, ""},
		{"valid preview", http.MethodPost, "/preview", `{"ratings": [{"anime_id": 5114, "rating": 10}]}`, http.StatusOK, ""},
		{"preview limit too high", http.MethodPost, "/preview", `{"ratings": [], "limit": 1000}`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, w))
			}
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		})
	}
}

func TestRequestID_ReusesCallerID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Body.String())
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Recovery(newTestLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", errorCode(t, w))
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.CORSConfig{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "PUT"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}
	router := gin.New()
	router.Use(CORS(cfg))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := services.NewRateLimitService(&config.RateLimitConfig{Requests: 1}, newTestLogger(), nil)
	router := gin.New()
	router.GET("/", RateLimit(limiter, newTestLogger()), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimit_OverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	limiter := services.NewRateLimitService(&config.RateLimitConfig{Requests: 1, Window: time.Minute}, newTestLogger(), client)
	userID := uuid.New()

	router := gin.New()
	router.GET("/anon", RateLimit(limiter, newTestLogger()), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/user", func(c *gin.Context) { c.Set("user_id", userID) }, RateLimit(limiter, newTestLogger()),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func(path, remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := get("/anon", "192.0.2.1:1234")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))

	w = get("/anon", "192.0.2.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", errorCode(t, w))

	w = get("/anon", "192.0.2.2:1234")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get("/user", "192.0.2.1:1234")
	assert.Equal(t, http.StatusOK, w.Code, "authenticated callers are keyed by user")
	w = get("/user", "192.0.2.3:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	assert.True(t, mr.Exists("rate_limit:user:"+userID.String()))
	assert.True(t, mr.Exists("rate_limit:ip:192.0.2.1"))
}
