package handlers

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hofis/alpacad/internal/devices"
	"github.com/hofis/alpacad/pkg/alpaca"
)

func TestFocuserMove(t *testing.T) {
	foc := devices.NewFocuser(devices.DefaultFocuserConfig(), nil)
	router := newTestRouter(t, NewFocuserHandler(0, foc, nil))

	readInt := func(path string) int {
		_, env := get(t, router, "/api/v1/focuser/0/"+path)
		var v int
		decodeValue(t, env, &v)
		return v
	}

	require.Equal(t, 5000, readInt("position"))

	w, env := put(t, router, "/api/v1/focuser/0/move", url.Values{"Position": {"5500"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, alpaca.ErrSuccess, env.ErrorNumber)

	_, env = get(t, router, "/api/v1/focuser/0/ismoving")
	var moving bool
	decodeValue(t, env, &moving)
	assert.True(t, moving)

	// 500 steps per second; the second tick snaps onto the target.
	foc.Tick(time.Second)
	foc.Tick(time.Second)
	assert.Equal(t, 5500, readInt("position"))

	_, env = get(t, router, "/api/v1/focuser/0/ismoving")
	decodeValue(t, env, &moving)
	assert.False(t, moving)
}

func TestFocuserMoveValidation(t *testing.T) {
	foc := devices.NewFocuser(devices.DefaultFocuserConfig(), nil)
	router := newTestRouter(t, NewFocuserHandler(0, foc, nil))

	t.Run("missing position", func(t *testing.T) {
		w, env := put(t, router, "/api/v1/focuser/0/move", url.Values{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing or invalid required parameter: Position", env.ErrorMessage)
	})

	t.Run("decimal position rejected", func(t *testing.T) {
		w, _ := put(t, router, "/api/v1/focuser/0/move", url.Values{"Position": {"10.5"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("out of range accepted and ignored", func(t *testing.T) {
		w, env := put(t, router, "/api/v1/focuser/0/move", url.Values{"Position": {"999999"}})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, alpaca.ErrSuccess, env.ErrorNumber)
		assert.False(t, foc.IsMoving())
	})
}

func TestFocuserTempComp(t *testing.T) {
	foc := devices.NewFocuser(devices.DefaultFocuserConfig(), nil)
	router := newTestRouter(t, NewFocuserHandler(0, foc, nil))

	_, env := get(t, router, "/api/v1/focuser/0/tempcompavailable")
	var available bool
	decodeValue(t, env, &available)
	require.True(t, available)

	w, env := put(t, router, "/api/v1/focuser/0/tempcomp", url.Values{"TempComp": {"true"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, alpaca.ErrSuccess, env.ErrorNumber)

	_, env = get(t, router, "/api/v1/focuser/0/tempcomp")
	var enabled bool
	decodeValue(t, env, &enabled)
	assert.True(t, enabled)
}

func TestFocuserGeometry(t *testing.T) {
	foc := devices.NewFocuser(devices.DefaultFocuserConfig(), nil)
	router := newTestRouter(t, NewFocuserHandler(0, foc, nil))

	_, env := get(t, router, "/api/v1/focuser/0/maxstep")
	var maxStep int
	decodeValue(t, env, &maxStep)
	assert.Equal(t, 10000, maxStep)

	_, env = get(t, router, "/api/v1/focuser/0/maxincrement")
	var maxInc int
	decodeValue(t, env, &maxInc)
	assert.Equal(t, 1000, maxInc)

	_, env = get(t, router, "/api/v1/focuser/0/absolute")
	var absolute bool
	decodeValue(t, env, &absolute)
	assert.True(t, absolute)

	_, env = get(t, router, "/api/v1/focuser/0/stepsize")
	var stepSize float64
	decodeValue(t, env, &stepSize)
	assert.InDelta(t, 2.0, stepSize, 1e-9)
}
