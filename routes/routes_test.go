// File: /routes/routes_test.go
package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"notedefrais-api/config"
	"notedefrais-api/models"
	"notedefrais-api/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	cfg := &config.Config{
		Port:      "9090",
		JWTSecret: "test-secret",
		UploadDir: t.TempDir(),
	}

	router := gin.New()
	SetupRoutes(router, db, cfg, services.NewEmailService(cfg))
	return router
}

func TestVerificationCodeRouteHiddenInReleaseMode(t *testing.T) {
	previous := gin.Mode()
	defer gin.SetMode(previous)

	gin.SetMode(gin.ReleaseMode)
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/debug/verification-code?email=a@b.fr", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerificationCodeRouteOnlyInDebugMode(t *testing.T) {
	previous := gin.Mode()
	defer gin.SetMode(previous)

	gin.SetMode(gin.DebugMode)
	router := newTestRouter(t)

	// Registered in debug mode: the handler answers, not the 404 fallback
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/debug/verification-code", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	previous := gin.Mode()
	defer gin.SetMode(previous)

	gin.SetMode(gin.ReleaseMode)
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/trips/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
