package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hofis/alpacad/internal/devices"
)

// CoverCalibratorHandler adapts a CoverCalibrator to the Alpaca cover
// calibrator interface.
type CoverCalibratorHandler struct {
	BaseHandler
	device *devices.CoverCalibrator
}

// NewCoverCalibratorHandler creates a cover calibrator adapter.
func NewCoverCalibratorHandler(deviceNumber int, device *devices.CoverCalibrator, logger *zap.Logger) *CoverCalibratorHandler {
	return &CoverCalibratorHandler{
		BaseHandler: newBaseHandler("covercalibrator", deviceNumber, 1,
			"Flat Panel", "Hofis cover calibrator", logger),
		device: device,
	}
}

// RegisterRoutes registers all cover calibrator endpoints.
func (h *CoverCalibratorHandler) RegisterRoutes(router *gin.RouterGroup) {
	h.registerCommonRoutes(router)

	router.GET("/brightness", h.brightness)
	router.GET("/calibratorchanging", h.calibratorChanging)
	router.GET("/calibratorstate", h.calibratorState)
	router.GET("/covermoving", h.coverMoving)
	router.GET("/coverstate", h.coverState)
	router.GET("/maxbrightness", h.maxBrightness)

	router.PUT("/calibratoroff", h.calibratorOff)
	router.PUT("/calibratoron", h.calibratorOn)
	router.PUT("/closecover", h.closeCover)
	router.PUT("/haltcover", h.haltCover)
	router.PUT("/opencover", h.openCover)
}

func (h *CoverCalibratorHandler) brightness(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	v, err := h.device.Brightness()
	if err != nil {
		h.fail(c, txn, err)
		return
	}
	h.integer(c, txn, int32(v))
}

func (h *CoverCalibratorHandler) maxBrightness(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	v, err := h.device.MaxBrightness()
	if err != nil {
		h.fail(c, txn, err)
		return
	}
	h.integer(c, txn, int32(v))
}

func (h *CoverCalibratorHandler) calibratorState(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.integer(c, txn, int32(h.device.CalibratorStatus()))
}

func (h *CoverCalibratorHandler) calibratorChanging(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.boolean(c, txn, h.device.CalibratorChanging())
}

func (h *CoverCalibratorHandler) coverState(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.integer(c, txn, int32(h.device.CoverStatus()))
}

func (h *CoverCalibratorHandler) coverMoving(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.boolean(c, txn, h.device.CoverMoving())
}

func (h *CoverCalibratorHandler) calibratorOn(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	brightness, ok := h.intParam(c, txn, "Brightness", true)
	if !ok {
		return
	}
	if err := h.device.CalibratorOn(brightness); err != nil {
		h.fail(c, txn, err)
		return
	}
	h.ok(c, txn)
}

func (h *CoverCalibratorHandler) calibratorOff(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	if err := h.device.CalibratorOff(); err != nil {
		h.fail(c, txn, err)
		return
	}
	h.ok(c, txn)
}

func (h *CoverCalibratorHandler) openCover(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	if err := h.device.OpenCover(); err != nil {
		h.fail(c, txn, err)
		return
	}
	h.ok(c, txn)
}

func (h *CoverCalibratorHandler) closeCover(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	if err := h.device.CloseCover(); err != nil {
		h.fail(c, txn, err)
		return
	}
	h.ok(c, txn)
}

func (h *CoverCalibratorHandler) haltCover(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	if err := h.device.HaltCover(); err != nil {
		h.fail(c, txn, err)
		return
	}
	h.ok(c, txn)
}
