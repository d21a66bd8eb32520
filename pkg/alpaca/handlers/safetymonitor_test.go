package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hofis/alpacad/internal/devices"
	"github.com/hofis/alpacad/pkg/alpaca"
)

func safetyMonitorRouter(t *testing.T, cfg devices.SafetyMonitorConfig) *gin.Engine {
	t.Helper()
	station, _ := weatherRouter(t)
	monitor := devices.NewSafetyMonitor(cfg, station, nil)
	return newTestRouter(t, NewSafetyMonitorHandler(0, monitor, nil))
}

func TestSafetyMonitorIsSafe(t *testing.T) {
	t.Run("calm limits report safe", func(t *testing.T) {
		router := safetyMonitorRouter(t, devices.SafetyMonitorConfig{WindLimit: 1000, CloudLimit: 100})

		_, env := get(t, router, "/api/v1/safetymonitor/0/issafe")
		require.Equal(t, alpaca.ErrSuccess, env.ErrorNumber)
		var safe bool
		decodeValue(t, env, &safe)
		assert.True(t, safe)
	})

	t.Run("breached limits report unsafe", func(t *testing.T) {
		router := safetyMonitorRouter(t, devices.SafetyMonitorConfig{WindLimit: -1, CloudLimit: 100})

		_, env := get(t, router, "/api/v1/safetymonitor/0/issafe")
		var safe bool
		decodeValue(t, env, &safe)
		assert.False(t, safe)
	})

	t.Run("issafe is read only", func(t *testing.T) {
		router := safetyMonitorRouter(t, devices.SafetyMonitorConfig{WindLimit: 1000, CloudLimit: 100})

		req := httptest.NewRequest(http.MethodPut, "/api/v1/safetymonitor/0/issafe", nil)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
