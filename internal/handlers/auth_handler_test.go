package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/salonvoice/booking-api/internal/config"
	dbpkg "github.com/salonvoice/booking-api/internal/db"
	"github.com/salonvoice/booking-api/internal/middleware"
)

func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))

	cfg := &config.Config{JWTSecret: "test-secret"}
	h := NewAuthHandler(db, cfg)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)

	secured := r.Group("/api", middleware.AuthMiddleware(cfg))
	secured.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"customer_id": c.GetUint(middleware.ContextCustomerID)})
	})

	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	r := newAuthTestRouter(t)

	w := postJSON(t, r, "/api/auth/register", gin.H{
		"name":     "Dana",
		"email":    "Dana@Example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var registered struct {
		Customer struct {
			ID    uint   `json:"id"`
			Email string `json:"email"`
		} `json:"customer"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "dana@example.com", registered.Customer.Email)

	// email is normalized, so the same address re-registers as a duplicate
	w = postJSON(t, r, "/api/auth/register", gin.H{
		"name":     "Dana again",
		"email":    "dana@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email_already_registered")

	w = postJSON(t, r, "/api/auth/login", gin.H{
		"email":    "dana@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/api/auth/login", gin.H{
		"email":    "dana@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_credentials")

	w = postJSON(t, r, "/api/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_ValidationErrors(t *testing.T) {
	r := newAuthTestRouter(t)

	w := postJSON(t, r, "/api/auth/register", gin.H{
		"name":     "Dana",
		"email":    "not-an-email",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/api/auth/register", gin.H{
		"name":     "Dana",
		"email":    "dana@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthMiddleware_TokenRoundTrip(t *testing.T) {
	r := newAuthTestRouter(t)

	w := postJSON(t, r, "/api/auth/register", gin.H{
		"name":     "Dana",
		"email":    "dana@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var registered struct {
		Customer struct {
			ID uint `json:"id"`
		} `json:"customer"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+registered.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), fmt.Sprintf(`"customer_id":%d`, registered.Customer.ID))

	// missing and malformed credentials are both rejected
	req = httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
