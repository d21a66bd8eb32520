package devices

import (
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hofis/alpacad/pkg/alpaca"
)

// Conditions is one reading of the full simulated sensor suite.
type Conditions struct {
	CloudCover     float64 `json:"cloud_cover"`
	DewPoint       float64 `json:"dew_point"`
	Humidity       float64 `json:"humidity"`
	Pressure       float64 `json:"pressure"`
	RainRate       float64 `json:"rain_rate"`
	SkyBrightness  float64 `json:"sky_brightness"`
	SkyQuality     float64 `json:"sky_quality"`
	SkyTemperature float64 `json:"sky_temperature"`
	StarFWHM       float64 `json:"star_fwhm"`
	Temperature    float64 `json:"temperature"`
	WindDirection  float64 `json:"wind_direction"`
	WindGust       float64 `json:"wind_gust"`
	WindSpeed      float64 `json:"wind_speed"`
}

// ObservingConditionsConfig holds the simulation parameters.
type ObservingConditionsConfig struct {
	RefreshEvery time.Duration `mapstructure:"refresh_every"`
	Seed         int64         `mapstructure:"seed"`
}

// DefaultObservingConditionsConfig returns the simulator defaults.
func DefaultObservingConditionsConfig() ObservingConditionsConfig {
	return ObservingConditionsConfig{RefreshEvery: 30 * time.Second}
}

// sensorDescriptions maps lowercase sensor names to their reported
// descriptions. The keys double as the set of valid SensorName values.
var sensorDescriptions = map[string]string{
	"cloudcover":     "Sky quality meter cloud fraction",
	"dewpoint":       "Dew point derived from temperature and humidity",
	"humidity":       "Capacitive relative humidity sensor",
	"pressure":       "Barometric pressure at the observatory",
	"rainrate":       "Tipping bucket rain gauge",
	"skybrightness":  "Sky brightness photometer",
	"skyquality":     "Sky quality meter, magnitudes per square arcsecond",
	"skytemperature": "Infrared sky temperature sensor",
	"starfwhm":       "Star FWHM from the guide camera",
	"temperature":    "Ambient temperature sensor",
	"winddirection":  "Wind vane bearing",
	"windgust":       "Anemometer peak over the last two minutes",
	"windspeed":      "Anemometer average wind speed",
}

// ObservingConditions simulates a weather station. All sensors share
// one acquisition cycle: readings regenerate together on the refresh
// period, so the time since last update is the same for every sensor.
type ObservingConditions struct {
	mu     sync.Mutex
	logger *zap.Logger

	avgPeriod    float64
	refreshEvery time.Duration
	sinceRefresh time.Duration
	current      Conditions
	rng          *rand.Rand
}

// NewObservingConditions creates the sensor suite and takes an initial
// reading.
func NewObservingConditions(cfg ObservingConditionsConfig, logger *zap.Logger) *ObservingConditions {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	refreshEvery := cfg.RefreshEvery
	if refreshEvery <= 0 {
		refreshEvery = 30 * time.Second
	}
	oc := &ObservingConditions{
		logger:       logger.With(zap.String("device", "observingconditions")),
		refreshEvery: refreshEvery,
		rng:          rand.New(rand.NewSource(seed)),
	}
	oc.refreshLocked()
	return oc
}

// Tick accumulates time and refreshes the readings when the cycle
// elapses.
func (oc *ObservingConditions) Tick(elapsed time.Duration) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.sinceRefresh += elapsed
	if oc.sinceRefresh >= oc.refreshEvery {
		oc.refreshLocked()
	}
}

func (oc *ObservingConditions) refreshLocked() {
	jitter := func(base, spread float64) float64 {
		return base + (oc.rng.Float64()*2-1)*spread
	}

	temp := jitter(10, 4)
	humidity := math.Min(math.Max(jitter(55, 20), 0), 100)

	// Magnus approximation.
	gamma := math.Log(humidity/100) + 17.62*temp/(243.12+temp)
	dewPoint := 243.12 * gamma / (17.62 - gamma)

	wind := math.Max(jitter(3, 3), 0)

	oc.current = Conditions{
		CloudCover:     math.Min(math.Max(jitter(10, 10), 0), 100),
		DewPoint:       dewPoint,
		Humidity:       humidity,
		Pressure:       jitter(1013, 6),
		RainRate:       0,
		SkyBrightness:  math.Max(jitter(0.1, 0.05), 0),
		SkyQuality:     jitter(21.3, 0.4),
		SkyTemperature: temp - jitter(25, 5),
		StarFWHM:       math.Max(jitter(2.4, 0.8), 0.5),
		Temperature:    temp,
		WindDirection:  oc.rng.Float64() * 360,
		WindGust:       wind + math.Max(jitter(2, 2), 0),
		WindSpeed:      wind,
	}
	oc.sinceRefresh = 0
	oc.logger.Debug("Sensor readings refreshed")
}

// AveragePeriod returns the averaging period in hours.
func (oc *ObservingConditions) AveragePeriod() float64 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.avgPeriod
}

// SetAveragePeriod sets the averaging period in hours. Negative
// periods are invalid.
func (oc *ObservingConditions) SetAveragePeriod(hours float64) *alpaca.DeviceError {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if hours < 0 {
		return alpaca.InvalidValueError("Average period must not be negative")
	}
	oc.avgPeriod = hours
	return nil
}

// Refresh regenerates all readings immediately.
func (oc *ObservingConditions) Refresh() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.refreshLocked()
}

// SensorDescription returns the description for a sensor name, which
// is matched case-insensitively.
func (oc *ObservingConditions) SensorDescription(name string) (string, bool) {
	desc, ok := sensorDescriptions[strings.ToLower(name)]
	return desc, ok
}

// TimeSinceLastUpdate returns seconds since the last acquisition
// cycle. An empty name means the suite as a whole; a named sensor must
// exist.
func (oc *ObservingConditions) TimeSinceLastUpdate(name string) (float64, bool) {
	if name != "" {
		if _, ok := sensorDescriptions[strings.ToLower(name)]; !ok {
			return 0, false
		}
	}
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.sinceRefresh.Seconds(), true
}

// Snapshot returns the current readings.
func (oc *ObservingConditions) Snapshot() Conditions {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.current
}

func (oc *ObservingConditions) CloudCover() float64     { return oc.Snapshot().CloudCover }
func (oc *ObservingConditions) DewPoint() float64       { return oc.Snapshot().DewPoint }
func (oc *ObservingConditions) Humidity() float64       { return oc.Snapshot().Humidity }
func (oc *ObservingConditions) Pressure() float64       { return oc.Snapshot().Pressure }
func (oc *ObservingConditions) RainRate() float64       { return oc.Snapshot().RainRate }
func (oc *ObservingConditions) SkyBrightness() float64  { return oc.Snapshot().SkyBrightness }
func (oc *ObservingConditions) SkyQuality() float64     { return oc.Snapshot().SkyQuality }
func (oc *ObservingConditions) SkyTemperature() float64 { return oc.Snapshot().SkyTemperature }
func (oc *ObservingConditions) StarFWHM() float64       { return oc.Snapshot().StarFWHM }
func (oc *ObservingConditions) Temperature() float64    { return oc.Snapshot().Temperature }
func (oc *ObservingConditions) WindDirection() float64  { return oc.Snapshot().WindDirection }
func (oc *ObservingConditions) WindGust() float64       { return oc.Snapshot().WindGust }
func (oc *ObservingConditions) WindSpeed() float64      { return oc.Snapshot().WindSpeed }

// Status returns a telemetry snapshot.
func (oc *ObservingConditions) Status() interface{} {
	return oc.Snapshot()
}
