package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hofis/alpacad/internal/devices"
)

// FilterWheelHandler adapts a FilterWheel to the Alpaca filter wheel
// interface.
type FilterWheelHandler struct {
	BaseHandler
	wheel *devices.FilterWheel
}

// NewFilterWheelHandler creates a filter wheel adapter.
func NewFilterWheelHandler(deviceNumber int, wheel *devices.FilterWheel, logger *zap.Logger) *FilterWheelHandler {
	return &FilterWheelHandler{
		BaseHandler: newBaseHandler("filterwheel", deviceNumber, 2,
			"Filter Wheel", "Hofis filter wheel", logger),
		wheel: wheel,
	}
}

// RegisterRoutes registers all filter wheel endpoints.
func (h *FilterWheelHandler) RegisterRoutes(router *gin.RouterGroup) {
	h.registerCommonRoutes(router)

	router.GET("/focusoffsets", h.focusOffsets)
	router.GET("/names", h.names)
	router.GET("/position", h.positionGet)
	router.PUT("/position", h.positionPut)
}

func (h *FilterWheelHandler) focusOffsets(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.intList(c, txn, h.wheel.FocusOffsets())
}

func (h *FilterWheelHandler) names(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.stringList(c, txn, h.wheel.Names())
}

func (h *FilterWheelHandler) positionGet(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.integer(c, txn, int32(h.wheel.Position()))
}

func (h *FilterWheelHandler) positionPut(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	slot, ok := h.intParam(c, txn, "Position", true)
	if !ok {
		return
	}
	h.wheel.SetPosition(slot)
	h.ok(c, txn)
}
