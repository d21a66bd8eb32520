package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hofis/alpacad/internal/devices"
)

// FocuserHandler adapts a Focuser to the Alpaca focuser interface.
type FocuserHandler struct {
	BaseHandler
	focuser *devices.Focuser
}

// NewFocuserHandler creates a focuser adapter.
func NewFocuserHandler(deviceNumber int, focuser *devices.Focuser, logger *zap.Logger) *FocuserHandler {
	return &FocuserHandler{
		BaseHandler: newBaseHandler("focuser", deviceNumber, 3,
			"Primary Focuser", "Hofis absolute focuser", logger),
		focuser: focuser,
	}
}

// RegisterRoutes registers all focuser endpoints.
func (h *FocuserHandler) RegisterRoutes(router *gin.RouterGroup) {
	h.registerCommonRoutes(router)

	router.GET("/absolute", h.absolute)
	router.GET("/ismoving", h.isMoving)
	router.GET("/maxincrement", h.maxIncrement)
	router.GET("/maxstep", h.maxStep)
	router.GET("/position", h.position)
	router.GET("/stepsize", h.stepSize)
	router.GET("/tempcomp", h.tempCompGet)
	router.PUT("/tempcomp", h.tempCompPut)
	router.GET("/tempcompavailable", h.tempCompAvailable)
	router.GET("/temperature", h.temperature)

	router.PUT("/halt", h.halt)
	router.PUT("/move", h.move)
}

func (h *FocuserHandler) absolute(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.boolean(c, txn, h.focuser.Absolute())
}

func (h *FocuserHandler) isMoving(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.boolean(c, txn, h.focuser.IsMoving())
}

func (h *FocuserHandler) maxIncrement(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.integer(c, txn, int32(h.focuser.MaxIncrement()))
}

func (h *FocuserHandler) maxStep(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.integer(c, txn, int32(h.focuser.MaxStep()))
}

func (h *FocuserHandler) position(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.integer(c, txn, int32(h.focuser.Position()))
}

func (h *FocuserHandler) stepSize(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.double(c, txn, h.focuser.StepSize())
}

func (h *FocuserHandler) temperature(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.double(c, txn, h.focuser.Temperature())
}

func (h *FocuserHandler) tempCompGet(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.boolean(c, txn, h.focuser.TempComp())
}

func (h *FocuserHandler) tempCompAvailable(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.boolean(c, txn, h.focuser.TempCompAvailable())
}

func (h *FocuserHandler) tempCompPut(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	v, ok := h.boolParam(c, txn, "TempComp", true)
	if !ok {
		return
	}
	h.focuser.SetTempComp(v)
	h.ok(c, txn)
}

func (h *FocuserHandler) halt(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	h.focuser.Halt()
	h.ok(c, txn)
}

func (h *FocuserHandler) move(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	pos, ok := h.intParam(c, txn, "Position", true)
	if !ok {
		return
	}
	h.focuser.Move(pos)
	h.ok(c, txn)
}
