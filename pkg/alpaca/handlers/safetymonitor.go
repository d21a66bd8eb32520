package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hofis/alpacad/internal/devices"
)

// SafetyMonitorHandler adapts a SafetyMonitor to the Alpaca safety
// monitor interface.
type SafetyMonitorHandler struct {
	BaseHandler
	monitor *devices.SafetyMonitor
}

// NewSafetyMonitorHandler creates a safety monitor adapter.
func NewSafetyMonitorHandler(deviceNumber int, monitor *devices.SafetyMonitor, logger *zap.Logger) *SafetyMonitorHandler {
	return &SafetyMonitorHandler{
		BaseHandler: newBaseHandler("safetymonitor", deviceNumber, 1,
			"Safety Monitor", "Hofis safety monitor", logger),
		monitor: monitor,
	}
}

// RegisterRoutes registers all safety monitor endpoints.
func (h *SafetyMonitorHandler) RegisterRoutes(router *gin.RouterGroup) {
	h.registerCommonRoutes(router)

	router.GET("/issafe", h.isSafe)
}

func (h *SafetyMonitorHandler) isSafe(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.boolean(c, txn, h.monitor.IsSafe())
}
