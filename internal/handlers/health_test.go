package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/proconnect-app/backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthReportsDisconnectedDatabase(t *testing.T) {
	e := echo.New()
	NewHealthHandler(&config.DB{}, "test").RegisterHealthRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "test", body["environment"])
	assert.NotEmpty(t, body["timestamp"])

	database := body["database"].(map[string]interface{})
	assert.Equal(t, false, database["healthy"])
	assert.Equal(t, "database not connected", database["error"])
}

func TestKeepAliveReportsDisconnectedDatabase(t *testing.T) {
	e := echo.New()
	NewHealthHandler(&config.DB{}, "test").RegisterHealthRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/api/keep-alive", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
}
