// Package handlers contains one protocol adapter per device type. An
// adapter owns the routing table for its device, validates every
// request against the Alpaca parameter rules, assigns the server
// transaction ID and invokes exactly one capability method per
// request.
package handlers

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hofis/alpacad/pkg/alpaca"
)

// DeviceHandler is implemented by every device adapter.
type DeviceHandler interface {
	RegisterRoutes(router *gin.RouterGroup)
	DeviceType() string
	DeviceNumber() int
	DeviceName() string
	InterfaceVersion() int
}

// driverInfo and driverVersion are reported by every device.
const (
	driverInfo    = "Hofis observatory device server"
	driverVersion = "0.1.0"
)

// BaseHandler carries the per-device protocol state shared by all
// adapters: identity strings and the server transaction counter. The
// counter advances exactly once per handled request, rejected requests
// included.
type BaseHandler struct {
	deviceType       string
	deviceNumber     int
	interfaceVersion int
	name             string
	description      string
	logger           *zap.Logger

	txn atomic.Uint32
}

func newBaseHandler(deviceType string, deviceNumber, interfaceVersion int, name, description string, logger *zap.Logger) BaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return BaseHandler{
		deviceType:       deviceType,
		deviceNumber:     deviceNumber,
		interfaceVersion: interfaceVersion,
		name:             name,
		description:      description,
		logger: logger.With(
			zap.String("handler", deviceType),
			zap.Int("device_number", deviceNumber),
		),
	}
}

func (b *BaseHandler) DeviceType() string         { return b.deviceType }
func (b *BaseHandler) DeviceNumber() int          { return b.deviceNumber }
func (b *BaseHandler) DeviceName() string         { return b.name }
func (b *BaseHandler) InterfaceVersion() int      { return b.interfaceVersion }
func (b *BaseHandler) SupportedActions() []string { return []string{} }

// begin validates ClientID and ClientTransactionID and assigns this
// request its server transaction ID. On a malformed field it writes
// the 400 response and reports false; the caller must return.
func (b *BaseHandler) begin(c *gin.Context, fromBody bool) (alpaca.Txn, bool) {
	txn := alpaca.Txn{ServerTransactionID: b.txn.Add(1)}

	clientID, err := alpaca.ClientField(c, "ClientID", fromBody)
	if err != nil {
		b.badParam(c, txn, "ClientID")
		return txn, false
	}
	txn.ClientID = clientID

	clientTxn, err := alpaca.ClientField(c, "ClientTransactionID", fromBody)
	if err != nil {
		b.badParam(c, txn, "ClientTransactionID")
		return txn, false
	}
	txn.ClientTransactionID = clientTxn
	return txn, true
}

// Response writers. Success and domain errors are HTTP 200; only
// malformed requests leave the 200 path.

func (b *BaseHandler) ok(c *gin.Context, txn alpaca.Txn) {
	c.JSON(http.StatusOK, txn.OK())
}

func (b *BaseHandler) str(c *gin.Context, txn alpaca.Txn, v string) {
	c.JSON(http.StatusOK, txn.String(v))
}

func (b *BaseHandler) boolean(c *gin.Context, txn alpaca.Txn, v bool) {
	c.JSON(http.StatusOK, txn.Bool(v))
}

func (b *BaseHandler) integer(c *gin.Context, txn alpaca.Txn, v int32) {
	c.JSON(http.StatusOK, txn.Int(v))
}

func (b *BaseHandler) double(c *gin.Context, txn alpaca.Txn, v float64) {
	c.JSON(http.StatusOK, txn.Double(v))
}

func (b *BaseHandler) stringList(c *gin.Context, txn alpaca.Txn, v []string) {
	c.JSON(http.StatusOK, txn.Strings(v))
}

func (b *BaseHandler) intList(c *gin.Context, txn alpaca.Txn, v []int32) {
	c.JSON(http.StatusOK, txn.Ints(v))
}

// fail reports a device-level error in the response body.
func (b *BaseHandler) fail(c *gin.Context, txn alpaca.Txn, err *alpaca.DeviceError) {
	b.logger.Debug("Device error",
		zap.String("path", c.Request.URL.Path),
		zap.Int("error_number", err.Number),
		zap.String("error_message", err.Message))
	c.JSON(http.StatusOK, txn.Err(err))
}

// badParam rejects a malformed request, naming the offending
// parameter.
func (b *BaseHandler) badParam(c *gin.Context, txn alpaca.Txn, name string) {
	b.logger.Debug("Rejecting malformed request",
		zap.String("path", c.Request.URL.Path),
		zap.String("parameter", name))
	err := alpaca.InvalidValueError("Missing or invalid required parameter: %s", name)
	c.JSON(http.StatusBadRequest, txn.Err(err))
}

// Typed parameter readers. A failed read has already written the 400
// response; the caller must return.

func (b *BaseHandler) stringParam(c *gin.Context, txn alpaca.Txn, name string, fromBody bool) (string, bool) {
	v, err := alpaca.StringParam(c, name, fromBody)
	if err != nil {
		b.badParam(c, txn, name)
		return "", false
	}
	return v, true
}

func (b *BaseHandler) intParam(c *gin.Context, txn alpaca.Txn, name string, fromBody bool) (int, bool) {
	v, err := alpaca.IntParam(c, name, fromBody)
	if err != nil {
		b.badParam(c, txn, name)
		return 0, false
	}
	return v, true
}

func (b *BaseHandler) doubleParam(c *gin.Context, txn alpaca.Txn, name string, fromBody bool) (float64, bool) {
	v, err := alpaca.DoubleParam(c, name, fromBody)
	if err != nil {
		b.badParam(c, txn, name)
		return 0, false
	}
	return v, true
}

func (b *BaseHandler) boolParam(c *gin.Context, txn alpaca.Txn, name string, fromBody bool) (bool, bool) {
	v, err := alpaca.BoolParam(c, name, fromBody)
	if err != nil {
		b.badParam(c, txn, name)
		return false, false
	}
	return v, true
}

// registerCommonRoutes registers the endpoints every device type
// shares. Action and the command endpoints are deliberate stubs: no
// device here accepts free-form commands, and per the protocol these
// report their error with a 400 status.
func (b *BaseHandler) registerCommonRoutes(router *gin.RouterGroup) {
	router.PUT("/action", b.action)
	router.PUT("/commandblind", func(c *gin.Context) { b.command(c, "CommandBlind") })
	router.PUT("/commandbool", func(c *gin.Context) { b.command(c, "CommandBool") })
	router.PUT("/commandstring", func(c *gin.Context) { b.command(c, "CommandString") })

	router.PUT("/connect", b.connect)
	router.PUT("/disconnect", b.connect)
	router.GET("/connecting", b.connecting)
	router.GET("/connected", b.connectedGet)
	router.PUT("/connected", b.connectedPut)

	router.GET("/description", func(c *gin.Context) { b.constString(c, b.description) })
	router.GET("/driverinfo", func(c *gin.Context) { b.constString(c, driverInfo) })
	router.GET("/driverversion", func(c *gin.Context) { b.constString(c, driverVersion) })
	router.GET("/name", func(c *gin.Context) { b.constString(c, b.name) })

	router.GET("/interfaceversion", b.interfaceVersionGet)
	router.GET("/supportedactions", b.supportedActions)
	router.GET("/devicestate", b.deviceState)
}

func (b *BaseHandler) action(c *gin.Context) {
	txn, ok := b.begin(c, true)
	if !ok {
		return
	}
	name, ok := b.stringParam(c, txn, "Action", true)
	if !ok {
		return
	}
	err := alpaca.NewDeviceError(alpaca.ErrActionNotImplemented, "Action %s is not implemented", name)
	c.JSON(http.StatusBadRequest, txn.Err(err))
}

func (b *BaseHandler) command(c *gin.Context, name string) {
	txn, ok := b.begin(c, true)
	if !ok {
		return
	}
	c.JSON(http.StatusBadRequest, txn.Err(alpaca.NotImplementedError(name)))
}

func (b *BaseHandler) connect(c *gin.Context) {
	txn, ok := b.begin(c, true)
	if !ok {
		return
	}
	b.ok(c, txn)
}

func (b *BaseHandler) connecting(c *gin.Context) {
	txn, ok := b.begin(c, false)
	if !ok {
		return
	}
	b.boolean(c, txn, false)
}

// connectedGet always reports true: simulated hardware is permanently
// attached.
func (b *BaseHandler) connectedGet(c *gin.Context) {
	txn, ok := b.begin(c, false)
	if !ok {
		return
	}
	b.boolean(c, txn, true)
}

func (b *BaseHandler) connectedPut(c *gin.Context) {
	txn, ok := b.begin(c, true)
	if !ok {
		return
	}
	if _, ok := b.boolParam(c, txn, "Connected", true); !ok {
		return
	}
	b.ok(c, txn)
}

func (b *BaseHandler) constString(c *gin.Context, v string) {
	txn, ok := b.begin(c, false)
	if !ok {
		return
	}
	b.str(c, txn, v)
}

func (b *BaseHandler) interfaceVersionGet(c *gin.Context) {
	txn, ok := b.begin(c, false)
	if !ok {
		return
	}
	b.integer(c, txn, int32(b.interfaceVersion))
}

func (b *BaseHandler) supportedActions(c *gin.Context) {
	txn, ok := b.begin(c, false)
	if !ok {
		return
	}
	b.stringList(c, txn, b.SupportedActions())
}

func (b *BaseHandler) deviceState(c *gin.Context) {
	txn, ok := b.begin(c, false)
	if !ok {
		return
	}
	c.JSON(http.StatusBadRequest, txn.Err(alpaca.NotImplementedError("DeviceState")))
}
