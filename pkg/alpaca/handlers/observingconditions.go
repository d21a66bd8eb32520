package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hofis/alpacad/internal/devices"
	"github.com/hofis/alpacad/pkg/alpaca"
)

// ObservingConditionsHandler adapts the weather station to the Alpaca
// observing conditions interface.
type ObservingConditionsHandler struct {
	BaseHandler
	station *devices.ObservingConditions
}

// NewObservingConditionsHandler creates an observing conditions
// adapter.
func NewObservingConditionsHandler(deviceNumber int, station *devices.ObservingConditions, logger *zap.Logger) *ObservingConditionsHandler {
	return &ObservingConditionsHandler{
		BaseHandler: newBaseHandler("observingconditions", deviceNumber, 1,
			"Weather Station", "Hofis observing conditions", logger),
		station: station,
	}
}

// RegisterRoutes registers all observing conditions endpoints.
func (h *ObservingConditionsHandler) RegisterRoutes(router *gin.RouterGroup) {
	h.registerCommonRoutes(router)

	router.GET("/averageperiod", h.averagePeriodGet)
	router.PUT("/averageperiod", h.averagePeriodPut)
	router.GET("/cloudcover", func(c *gin.Context) { h.sensor(c, h.station.CloudCover) })
	router.GET("/dewpoint", func(c *gin.Context) { h.sensor(c, h.station.DewPoint) })
	router.GET("/humidity", func(c *gin.Context) { h.sensor(c, h.station.Humidity) })
	router.GET("/pressure", func(c *gin.Context) { h.sensor(c, h.station.Pressure) })
	router.GET("/rainrate", func(c *gin.Context) { h.sensor(c, h.station.RainRate) })
	router.GET("/skybrightness", func(c *gin.Context) { h.sensor(c, h.station.SkyBrightness) })
	router.GET("/skyquality", func(c *gin.Context) { h.sensor(c, h.station.SkyQuality) })
	router.GET("/skytemperature", func(c *gin.Context) { h.sensor(c, h.station.SkyTemperature) })
	router.GET("/starfwhm", func(c *gin.Context) { h.sensor(c, h.station.StarFWHM) })
	router.GET("/temperature", func(c *gin.Context) { h.sensor(c, h.station.Temperature) })
	router.GET("/winddirection", func(c *gin.Context) { h.sensor(c, h.station.WindDirection) })
	router.GET("/windgust", func(c *gin.Context) { h.sensor(c, h.station.WindGust) })
	router.GET("/windspeed", func(c *gin.Context) { h.sensor(c, h.station.WindSpeed) })
	router.GET("/sensordescription", h.sensorDescription)
	router.GET("/timesincelastupdate", h.timeSinceLastUpdate)

	router.PUT("/refresh", h.refresh)
}

func (h *ObservingConditionsHandler) sensor(c *gin.Context, read func() float64) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.double(c, txn, read())
}

func (h *ObservingConditionsHandler) averagePeriodGet(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.double(c, txn, h.station.AveragePeriod())
}

func (h *ObservingConditionsHandler) averagePeriodPut(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	hours, ok := h.doubleParam(c, txn, "AveragePeriod", true)
	if !ok {
		return
	}
	if err := h.station.SetAveragePeriod(hours); err != nil {
		h.fail(c, txn, err)
		return
	}
	h.ok(c, txn)
}

func (h *ObservingConditionsHandler) sensorDescription(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	name, ok := h.stringParam(c, txn, "SensorName", false)
	if !ok {
		return
	}
	desc, found := h.station.SensorDescription(name)
	if !found {
		h.fail(c, txn, alpaca.InvalidValueError("Unknown sensor: %s", name))
		return
	}
	h.str(c, txn, desc)
}

// timeSinceLastUpdate accepts an absent or empty SensorName, meaning
// the suite as a whole; all sensors share one acquisition cycle.
func (h *ObservingConditionsHandler) timeSinceLastUpdate(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	name, _ := alpaca.OptionalStringParam(c, "SensorName", false)
	secs, found := h.station.TimeSinceLastUpdate(name)
	if !found {
		h.fail(c, txn, alpaca.InvalidValueError("Unknown sensor: %s", name))
		return
	}
	h.double(c, txn, secs)
}

func (h *ObservingConditionsHandler) refresh(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	h.station.Refresh()
	h.ok(c, txn)
}
