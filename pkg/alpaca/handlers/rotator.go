package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hofis/alpacad/internal/devices"
)

// RotatorHandler adapts a Rotator to the Alpaca rotator interface.
type RotatorHandler struct {
	BaseHandler
	rotator *devices.Rotator
}

// NewRotatorHandler creates a rotator adapter.
func NewRotatorHandler(deviceNumber int, rotator *devices.Rotator, logger *zap.Logger) *RotatorHandler {
	return &RotatorHandler{
		BaseHandler: newBaseHandler("rotator", deviceNumber, 2,
			"Field Rotator", "Hofis field rotator", logger),
		rotator: rotator,
	}
}

// RegisterRoutes registers all rotator endpoints.
func (h *RotatorHandler) RegisterRoutes(router *gin.RouterGroup) {
	h.registerCommonRoutes(router)

	router.GET("/canreverse", h.canReverse)
	router.GET("/ismoving", h.isMoving)
	router.GET("/mechanicalposition", h.mechanicalPosition)
	router.GET("/position", h.position)
	router.GET("/reverse", h.reverseGet)
	router.PUT("/reverse", h.reversePut)
	router.GET("/stepsize", h.stepSize)
	router.GET("/targetposition", h.targetPosition)

	router.PUT("/halt", h.halt)
	router.PUT("/move", h.move)
	router.PUT("/moveabsolute", h.moveAbsolute)
	router.PUT("/movemechanical", h.moveMechanical)
	router.PUT("/sync", h.sync)
}

func (h *RotatorHandler) canReverse(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.boolean(c, txn, h.rotator.CanReverse())
}

func (h *RotatorHandler) isMoving(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.boolean(c, txn, h.rotator.IsMoving())
}

func (h *RotatorHandler) position(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.double(c, txn, h.rotator.Position())
}

func (h *RotatorHandler) mechanicalPosition(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.double(c, txn, h.rotator.MechanicalPosition())
}

func (h *RotatorHandler) targetPosition(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.double(c, txn, h.rotator.TargetPosition())
}

func (h *RotatorHandler) stepSize(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.double(c, txn, h.rotator.StepSize())
}

func (h *RotatorHandler) reverseGet(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.boolean(c, txn, h.rotator.Reverse())
}

func (h *RotatorHandler) reversePut(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	v, ok := h.boolParam(c, txn, "Reverse", true)
	if !ok {
		return
	}
	h.rotator.SetReverse(v)
	h.ok(c, txn)
}

func (h *RotatorHandler) halt(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	h.rotator.Halt()
	h.ok(c, txn)
}

func (h *RotatorHandler) move(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	delta, ok := h.doubleParam(c, txn, "Position", true)
	if !ok {
		return
	}
	h.rotator.Move(delta)
	h.ok(c, txn)
}

func (h *RotatorHandler) moveAbsolute(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	pos, ok := h.doubleParam(c, txn, "Position", true)
	if !ok {
		return
	}
	h.rotator.MoveAbsolute(pos)
	h.ok(c, txn)
}

func (h *RotatorHandler) moveMechanical(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	pos, ok := h.doubleParam(c, txn, "Position", true)
	if !ok {
		return
	}
	h.rotator.MoveMechanical(pos)
	h.ok(c, txn)
}

func (h *RotatorHandler) sync(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	pos, ok := h.doubleParam(c, txn, "Position", true)
	if !ok {
		return
	}
	h.rotator.Sync(pos)
	h.ok(c, txn)
}
