package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hofis/alpacad/internal/devices"
	"github.com/hofis/alpacad/pkg/alpaca"
)

// SwitchHandler adapts a SwitchBank to the Alpaca switch interface.
type SwitchHandler struct {
	BaseHandler
	bank *devices.SwitchBank
}

// NewSwitchHandler creates a switch adapter.
func NewSwitchHandler(deviceNumber int, bank *devices.SwitchBank, logger *zap.Logger) *SwitchHandler {
	return &SwitchHandler{
		BaseHandler: newBaseHandler("switch", deviceNumber, 2,
			"Power Switch Bank", "Hofis switch bank", logger),
		bank: bank,
	}
}

// RegisterRoutes registers all switch endpoints.
func (h *SwitchHandler) RegisterRoutes(router *gin.RouterGroup) {
	h.registerCommonRoutes(router)

	router.GET("/maxswitch", h.maxSwitch)
	router.GET("/canasync", h.canAsync)
	router.GET("/canwrite", h.canWrite)
	router.GET("/getswitch", h.getSwitch)
	router.GET("/getswitchdescription", h.getDescription)
	router.GET("/getswitchname", h.getName)
	router.GET("/getswitchvalue", h.getValue)
	router.GET("/maxswitchvalue", h.maxValue)
	router.GET("/minswitchvalue", h.minValue)
	router.GET("/statechangecomplete", h.stateChangeComplete)
	router.GET("/switchstep", h.step)

	router.PUT("/setasync", h.setAsync)
	router.PUT("/setasyncvalue", h.setAsyncValue)
	router.PUT("/setswitch", h.setSwitch)
	router.PUT("/setswitchname", h.setName)
	router.PUT("/setswitchvalue", h.setValue)
}

func (h *SwitchHandler) maxSwitch(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	h.integer(c, txn, int32(h.bank.MaxSwitch()))
}

// idQuery validates the Id query parameter common to all per-switch
// reads.
func (h *SwitchHandler) idQuery(c *gin.Context, txn alpaca.Txn) (int, bool) {
	return h.intParam(c, txn, "Id", false)
}

func (h *SwitchHandler) canAsync(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	id, ok := h.idQuery(c, txn)
	if !ok {
		return
	}
	v, err := h.bank.CanAsync(id)
	if err != nil {
		h.fail(c, txn, err)
		return
	}
	h.boolean(c, txn, v)
}

func (h *SwitchHandler) canWrite(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	id, ok := h.idQuery(c, txn)
	if !ok {
		return
	}
	v, err := h.bank.CanWrite(id)
	if err != nil {
		h.fail(c, txn, err)
		return
	}
	h.boolean(c, txn, v)
}

func (h *SwitchHandler) getSwitch(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	id, ok := h.idQuery(c, txn)
	if !ok {
		return
	}
	v, err := h.bank.State(id)
	if err != nil {
		h.fail(c, txn, err)
		return
	}
	h.boolean(c, txn, v)
}

func (h *SwitchHandler) getValue(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	id, ok := h.idQuery(c, txn)
	if !ok {
		return
	}
	v, err := h.bank.Value(id)
	if err != nil {
		h.fail(c, txn, err)
		return
	}
	h.double(c, txn, v)
}

func (h *SwitchHandler) getName(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	id, ok := h.idQuery(c, txn)
	if !ok {
		return
	}
	v, err := h.bank.Name(id)
	if err != nil {
		h.fail(c, txn, err)
		return
	}
	h.str(c, txn, v)
}

func (h *SwitchHandler) getDescription(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	id, ok := h.idQuery(c, txn)
	if !ok {
		return
	}
	v, err := h.bank.Description(id)
	if err != nil {
		h.fail(c, txn, err)
		return
	}
	h.str(c, txn, v)
}

func (h *SwitchHandler) minValue(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	id, ok := h.idQuery(c, txn)
	if !ok {
		return
	}
	v, err := h.bank.MinValue(id)
	if err != nil {
		h.fail(c, txn, err)
		return
	}
	h.double(c, txn, v)
}

func (h *SwitchHandler) maxValue(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	id, ok := h.idQuery(c, txn)
	if !ok {
		return
	}
	v, err := h.bank.MaxValue(id)
	if err != nil {
		h.fail(c, txn, err)
		return
	}
	h.double(c, txn, v)
}

func (h *SwitchHandler) step(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	id, ok := h.idQuery(c, txn)
	if !ok {
		return
	}
	v, err := h.bank.Step(id)
	if err != nil {
		h.fail(c, txn, err)
		return
	}
	h.double(c, txn, v)
}

func (h *SwitchHandler) stateChangeComplete(c *gin.Context) {
	txn, ok := h.begin(c, false)
	if !ok {
		return
	}
	id, ok := h.idQuery(c, txn)
	if !ok {
		return
	}
	v, err := h.bank.StateChangeComplete(id)
	if err != nil {
		h.fail(c, txn, err)
		return
	}
	h.boolean(c, txn, v)
}

func (h *SwitchHandler) setSwitch(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	id, ok := h.intParam(c, txn, "Id", true)
	if !ok {
		return
	}
	state, ok := h.boolParam(c, txn, "State", true)
	if !ok {
		return
	}
	if err := h.bank.SetState(id, state); err != nil {
		h.fail(c, txn, err)
		return
	}
	h.ok(c, txn)
}

func (h *SwitchHandler) setValue(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	id, ok := h.intParam(c, txn, "Id", true)
	if !ok {
		return
	}
	value, ok := h.doubleParam(c, txn, "Value", true)
	if !ok {
		return
	}
	if err := h.bank.SetValue(id, value); err != nil {
		h.fail(c, txn, err)
		return
	}
	h.ok(c, txn)
}

func (h *SwitchHandler) setName(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	id, ok := h.intParam(c, txn, "Id", true)
	if !ok {
		return
	}
	name, ok := h.stringParam(c, txn, "Name", true)
	if !ok {
		return
	}
	if err := h.bank.SetName(id, name); err != nil {
		h.fail(c, txn, err)
		return
	}
	h.ok(c, txn)
}

func (h *SwitchHandler) setAsync(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	id, ok := h.intParam(c, txn, "Id", true)
	if !ok {
		return
	}
	state, ok := h.boolParam(c, txn, "State", true)
	if !ok {
		return
	}
	if err := h.bank.SetStateAsync(id, state); err != nil {
		h.fail(c, txn, err)
		return
	}
	h.ok(c, txn)
}

func (h *SwitchHandler) setAsyncValue(c *gin.Context) {
	txn, ok := h.begin(c, true)
	if !ok {
		return
	}
	id, ok := h.intParam(c, txn, "Id", true)
	if !ok {
		return
	}
	value, ok := h.doubleParam(c, txn, "Value", true)
	if !ok {
		return
	}
	if err := h.bank.SetValueAsync(id, value); err != nil {
		h.fail(c, txn, err)
		return
	}
	h.ok(c, txn)
}
