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

func weatherRouter(t *testing.T) (*devices.ObservingConditions, *ObservingConditionsHandler) {
	t.Helper()
	cfg := devices.DefaultObservingConditionsConfig()
	cfg.Seed = 42
	station := devices.NewObservingConditions(cfg, nil)
	return station, NewObservingConditionsHandler(0, station, nil)
}

func TestObservingConditionsSensors(t *testing.T) {
	station, h := weatherRouter(t)
	router := newTestRouter(t, h)

	sensors := []string{
		"cloudcover", "dewpoint", "humidity", "pressure", "rainrate",
		"skybrightness", "skyquality", "skytemperature", "starfwhm",
		"temperature", "winddirection", "windgust", "windspeed",
	}
	for _, name := range sensors {
		t.Run(name, func(t *testing.T) {
			w, env := get(t, router, "/api/v1/observingconditions/0/"+name)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, alpaca.ErrSuccess, env.ErrorNumber)
		})
	}

	t.Run("values match the station", func(t *testing.T) {
		_, env := get(t, router, "/api/v1/observingconditions/0/humidity")
		var humidity float64
		decodeValue(t, env, &humidity)
		assert.InDelta(t, station.Humidity(), humidity, 1e-9)
	})
}

func TestObservingConditionsAveragePeriod(t *testing.T) {
	_, h := weatherRouter(t)
	router := newTestRouter(t, h)

	t.Run("defaults to zero", func(t *testing.T) {
		_, env := get(t, router, "/api/v1/observingconditions/0/averageperiod")
		var hours float64
		decodeValue(t, env, &hours)
		assert.Zero(t, hours)
	})

	t.Run("accepts a positive period", func(t *testing.T) {
		w, env := put(t, router, "/api/v1/observingconditions/0/averageperiod",
			url.Values{"AveragePeriod": {"0.5"}})
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, alpaca.ErrSuccess, env.ErrorNumber)

		_, env = get(t, router, "/api/v1/observingconditions/0/averageperiod")
		var hours float64
		decodeValue(t, env, &hours)
		assert.InDelta(t, 0.5, hours, 1e-9)
	})

	t.Run("rejects a negative period", func(t *testing.T) {
		w, env := put(t, router, "/api/v1/observingconditions/0/averageperiod",
			url.Values{"AveragePeriod": {"-1"}})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, alpaca.ErrInvalidValue, env.ErrorNumber)
	})
}

func TestObservingConditionsSensorDescription(t *testing.T) {
	_, h := weatherRouter(t)
	router := newTestRouter(t, h)

	t.Run("known sensor", func(t *testing.T) {
		_, env := get(t, router, "/api/v1/observingconditions/0/sensordescription?SensorName=Humidity")
		require.Equal(t, alpaca.ErrSuccess, env.ErrorNumber)
		var desc string
		decodeValue(t, env, &desc)
		assert.NotEmpty(t, desc)
	})

	t.Run("unknown sensor", func(t *testing.T) {
		w, env := get(t, router, "/api/v1/observingconditions/0/sensordescription?SensorName=Barometer")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, alpaca.ErrInvalidValue, env.ErrorNumber)
		assert.Contains(t, env.ErrorMessage, "Barometer")
	})

	t.Run("missing name is malformed", func(t *testing.T) {
		w, env := get(t, router, "/api/v1/observingconditions/0/sensordescription")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing or invalid required parameter: SensorName", env.ErrorMessage)
	})
}

func TestObservingConditionsTimeSinceLastUpdate(t *testing.T) {
	station, h := weatherRouter(t)
	router := newTestRouter(t, h)

	t.Run("suite wide without a name", func(t *testing.T) {
		station.Refresh()
		_, env := get(t, router, "/api/v1/observingconditions/0/timesincelastupdate")
		require.Equal(t, alpaca.ErrSuccess, env.ErrorNumber)
		var secs float64
		decodeValue(t, env, &secs)
		assert.Zero(t, secs)
	})

	t.Run("advances with ticks", func(t *testing.T) {
		station.Refresh()
		station.Tick(5 * time.Second)

		_, env := get(t, router, "/api/v1/observingconditions/0/timesincelastupdate?SensorName=WindSpeed")
		require.Equal(t, alpaca.ErrSuccess, env.ErrorNumber)
		var secs float64
		decodeValue(t, env, &secs)
		assert.InDelta(t, 5, secs, 1e-9)
	})

	t.Run("unknown sensor", func(t *testing.T) {
		w, env := get(t, router, "/api/v1/observingconditions/0/timesincelastupdate?SensorName=Barometer")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, alpaca.ErrInvalidValue, env.ErrorNumber)
	})
}
