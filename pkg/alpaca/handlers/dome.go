package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hofis/alpacad/internal/devices"
)

// DomeHandler adapts a Dome to the Alpaca dome interface.
type DomeHandler struct {
	BaseHandler
	dome *devices.Dome
}

// NewDomeHandler creates a dome adapter.
func NewDomeHandler(deviceNumber int, dome *devices.Dome, logger *zap.Logger) *DomeHandler {
	return &DomeHandler{
		BaseHandler: newBaseHandler("dome", deviceNumber, 2,
			"Observatory Dome", "Hofis dome controller", logger),
		dome: dome,
	}
}

// RegisterRoutes registers all dome endpoints.
func (h *DomeHandler) RegisterRoutes(router *gin.RouterGroup) {
	h.registerCommonRoutes(router)

	router.GET("/altitude", h.altitude)
	router.GET("/athome", h.atHome)
	router.GET("/atpark", h.atPark)
	router.GET("/azimuth", h.azimuth)
	router.GET("/canfindhome", func(c *gin.Context) { h.capability(c, h.dome.CanFindHome()) })
	router.GET("/canpark", func(c *gin.Context) { h.capability(c, h.dome.CanPark()) })
	router.GET("/cansetaltitude", func(c *gin.Context) { h.capability(c, h.dome.CanSetAltitude()) })
	router.GET("/cansetazimuth", func(c *gin.Context) { h.capability(c, h.dome.CanSetAzimuth()) })
	router.GET("/cansetpark", func(c *gin.Context) { h.capability(c, h.dome.CanSetPark()) })
	router.GET("/cansetshutter", func(c *gin.Context) { h.capability(c, h.dome.CanSetShutter()) })
	router.GET("/canslave", func(c *gin.Context) { h.capability(c, h.dome.CanSlave()) })
	router.GET("/cansyncazimuth", func(c *gin.Context) { h.capability(c, h.dome.CanSyncAzimuth()) })
	router.GET("/shutterstatus", h.shutterStatus)
	router.GET("/slaved", h.slavedGet)
	router.PUT("/slaved", h.slavedPut)
	router.GET("/slewing", h.slewing)

	router.PUT("/abortslew", h.abortSlew)
	router.PUT("/closeshutter", h.closeShutter)
	router.PUT("/findhome", h.findHome)
	router.PUT("/openshutter", h.openShutter)
	router.PUT("/park", h.park)
	router.PUT("/setpark", h.setPark)
	router.PUT("/slewtoaltitude", h.slewToAltitude)
	router.PUT("/slewtoazimuth", h.slewToAzimuth)
	router.PUT("/synctoazimuth", h.syncToAzimuth)
}

func (h *DomeHandler) capability(c *gin.Context, v bool) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.boolean(c, txn, v)
}

func (h *DomeHandler) altitude(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.double(c, txn, h.dome.Altitude())
}

func (h *DomeHandler) azimuth(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.double(c, txn, h.dome.Azimuth())
}

func (h *DomeHandler) atHome(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.boolean(c, txn, h.dome.AtHome())
}

func (h *DomeHandler) atPark(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.boolean(c, txn, h.dome.AtPark())
}

func (h *DomeHandler) shutterStatus(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.integer(c, txn, int32(h.dome.ShutterStatus()))
}

func (h *DomeHandler) slewing(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.boolean(c, txn, h.dome.Slewing())
}

func (h *DomeHandler) slavedGet(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.boolean(c, txn, h.dome.Slaved())
}

func (h *DomeHandler) slavedPut(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	v, ok := h.boolParam(c, txn, "Slaved", true)
	if !ok {
		return
	}
	h.dome.SetSlaved(v)
	h.ok(c, txn)
}

func (h *DomeHandler) slewToAzimuth(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	az, ok := h.doubleParam(c, txn, "Azimuth", true)
	if !ok {
		return
	}
	if err := h.dome.SlewToAzimuth(az); err != nil {
		h.fail(c, txn, err)
		return
	}
	h.ok(c, txn)
}

func (h *DomeHandler) slewToAltitude(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	alt, ok := h.doubleParam(c, txn, "Altitude", true)
	if !ok {
		return
	}
	if err := h.dome.SlewToAltitude(alt); err != nil {
		h.fail(c, txn, err)
		return
	}
	h.ok(c, txn)
}

func (h *DomeHandler) syncToAzimuth(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	az, ok := h.doubleParam(c, txn, "Azimuth", true)
	if !ok {
		return
	}
	if err := h.dome.SyncToAzimuth(az); err != nil {
		h.fail(c, txn, err)
		return
	}
	h.ok(c, txn)
}

func (h *DomeHandler) park(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	if err := h.dome.Park(); err != nil {
		h.fail(c, txn, err)
		return
	}
	h.ok(c, txn)
}

func (h *DomeHandler) findHome(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	if err := h.dome.FindHome(); err != nil {
		h.fail(c, txn, err)
		return
	}
	h.ok(c, txn)
}

func (h *DomeHandler) setPark(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	h.dome.SetPark()
	h.ok(c, txn)
}

func (h *DomeHandler) abortSlew(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	h.dome.AbortSlew()
	h.ok(c, txn)
}

func (h *DomeHandler) openShutter(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	h.dome.OpenShutter()
	h.ok(c, txn)
}

func (h *DomeHandler) closeShutter(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	h.dome.CloseShutter()
	h.ok(c, txn)
}
