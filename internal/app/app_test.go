package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"juaconnect_backend/internal/config"
	"juaconnect_backend/internal/database"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTLDays = 30
	config.AppConfig = cfg

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	return SetupRouter(cfg, db)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestAPI_SignupSigninAndRequestFlow(t *testing.T) {
	router := newTestRouter(t)

	w, resp := doJSON(t, router, http.MethodPost, "/v1/auth/signup", "", gin.H{
		"username":  "wanjiku",
		"email":     "wanjiku@example.com",
		"password":  "secret123",
		"user_type": "client",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]interface{})
	clientToken := data["token"].(string)
	require.NotEmpty(t, clientToken)

	w, resp = doJSON(t, router, http.MethodPost, "/v1/auth/signup", "", gin.H{
		"username":         "otieno",
		"email":            "otieno@example.com",
		"password":         "secret123",
		"user_type":        "artisan",
		"service_category": "plumbing",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	artisanToken := resp["data"].(map[string]interface{})["token"].(string)

	// Unauthenticated and wrong-role callers are rejected.
	w, _ = doJSON(t, router, http.MethodPost, "/v1/client/requests", "", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/v1/client/requests", artisanToken, gin.H{
		"service_category": "plumbing",
		"description":      "Fix sink",
		"location":         "Westlands",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp = doJSON(t, router, http.MethodPost, "/v1/client/requests", clientToken, gin.H{
		"service_category": "plumbing",
		"description":      "Fix sink",
		"location":         "Westlands",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	request := resp["data"].(map[string]interface{})
	requestID := request["id"].(string)
	assert.Equal(t, "pending", request["status"])

	w, resp = doJSON(t, router, http.MethodPost, "/v1/artisan/requests/"+requestID+"/accept", artisanToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "accepted", resp["data"].(map[string]interface{})["status"])

	// The client sees the acceptance notification.
	w, resp = doJSON(t, router, http.MethodGet, "/v1/notifications", clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notifData := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), notifData["unread_count"])

	// Signin with the same credentials still works.
	w, resp = doJSON(t, router, http.MethodPost, "/v1/auth/signin", "", gin.H{
		"email":    "wanjiku@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
}

func TestAPI_ValidationAndErrorEnvelope(t *testing.T) {
	router := newTestRouter(t)

	w, resp := doJSON(t, router, http.MethodPost, "/v1/auth/signup", "", gin.H{
		"username": "x",
		"email":    "not-an-email",
		"password": "123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.NotEmpty(t, resp["message"])

	w, resp = doJSON(t, router, http.MethodPost, "/v1/auth/signin", "", gin.H{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestAPI_ArtisanDirectoryIsPublic(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/v1/auth/signup", "", gin.H{
		"username":         "otieno",
		"email":            "otieno@example.com",
		"password":         "secret123",
		"user_type":        "artisan",
		"service_category": "plumbing",
	})

	w, resp := doJSON(t, router, http.MethodGet, "/v1/artisan/search?service_category=plumb", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
}
