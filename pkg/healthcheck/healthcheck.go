// Package healthcheck aggregates component liveness probes into one
// report, served by the HTTP API for process supervisors.
package healthcheck

import (
	"sync"
	"time"
)

// Status is the health of one component or of the whole process.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
	StatusUnknown   Status = "unknown"
)

// Result is the outcome of one component probe.
type Result struct {
	Component string    `json:"component"`
	Status    Status    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Checker probes one component.
type Checker interface {
	Name() string
	Check() Result
}

// namedChecker adapts a plain function into a Checker.
type namedChecker struct {
	name string
	fn   func() Result
}

func (c namedChecker) Name() string  { return c.name }
func (c namedChecker) Check() Result { return c.fn() }

// Named wraps a function as a Checker with the given component name.
func Named(name string, fn func() Result) Checker {
	return namedChecker{name: name, fn: fn}
}

// Ok builds a healthy result for the component.
func Ok(component string) Result {
	return Result{Component: component, Status: StatusHealthy, Timestamp: time.Now().UTC()}
}

// Degraded builds a degraded result with an explanatory message.
func Degraded(component, message string) Result {
	return Result{Component: component, Status: StatusDegraded, Message: message, Timestamp: time.Now().UTC()}
}

// Unhealthy builds an unhealthy result with an explanatory message.
func Unhealthy(component, message string) Result {
	return Result{Component: component, Status: StatusUnhealthy, Message: message, Timestamp: time.Now().UTC()}
}

// Report aggregates the individual probe results.
type Report struct {
	Status     Status            `json:"status"`
	Components map[string]Result `json:"components"`
	Timestamp  time.Time         `json:"timestamp"`
}

// Registry holds the registered checkers.
type Registry struct {
	mu       sync.RWMutex
	checkers []Checker
}

// NewRegistry creates an empty checker registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a checker.
func (r *Registry) Add(c Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers = append(r.checkers, c)
}

// Run probes every component and aggregates the results. With no
// checkers registered the report is healthy: an empty registry means
// nothing to supervise, not an error.
func (r *Registry) Run() Report {
	r.mu.RLock()
	checkers := make([]Checker, len(r.checkers))
	copy(checkers, r.checkers)
	r.mu.RUnlock()

	report := Report{
		Status:     StatusHealthy,
		Components: make(map[string]Result, len(checkers)),
		Timestamp:  time.Now().UTC(),
	}
	for _, c := range checkers {
		result := c.Check()
		report.Components[c.Name()] = result
		report.Status = worse(report.Status, result.Status)
	}
	return report
}

var ranks = map[Status]int{
	StatusHealthy:   0,
	StatusUnknown:   1,
	StatusDegraded:  1,
	StatusUnhealthy: 2,
}

// worse keeps the more severe of two statuses. Unknown counts as
// degraded in the aggregate.
func worse(a, b Status) Status {
	if b == StatusUnknown {
		b = StatusDegraded
	}
	if ranks[b] > ranks[a] {
		return b
	}
	return a
}
