package alpaca

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Identity describes one registered device as reported by the
// management API. UniqueID is derived from the type, number and name,
// so it is stable across restarts.
type Identity struct {
	Name     string
	Type     string
	Number   int
	UniqueID string
}

// NewIdentity builds a device identity with a deterministic UniqueID.
func NewIdentity(name, deviceType string, number int) Identity {
	seed := fmt.Sprintf("%s-%d-%s", deviceType, number, name)
	return Identity{
		Name:     name,
		Type:     deviceType,
		Number:   number,
		UniqueID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String(),
	}
}

// Key returns the registry key "{type}-{number}".
func (i Identity) Key() string {
	return fmt.Sprintf("%s-%d", i.Type, i.Number)
}

// Registry holds the set of configured devices. It performs no network
// activity; the server and management API read from it.
//
// Registering two devices with the same name, type and number is not
// rejected: both remain listable, distinguished by registration order.
type Registry struct {
	mu      sync.RWMutex
	devices []Identity
}

// NewRegistry creates an empty device registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a device.
func (r *Registry) Add(id Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices = append(r.devices, id)
}

// Remove unregisters the first device matching type and number.
// It reports whether a device was removed.
func (r *Registry) Remove(deviceType string, number int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.devices {
		if d.Type == deviceType && d.Number == number {
			r.devices = append(r.devices[:i], r.devices[i+1:]...)
			return true
		}
	}
	return false
}

// List returns all registered devices ordered by type then number.
func (r *Registry) List() []Identity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Identity, len(r.devices))
	copy(out, r.devices)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Number < out[j].Number
	})
	return out
}

// Count returns the number of registered devices.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}
