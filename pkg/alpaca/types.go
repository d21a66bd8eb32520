// Package alpaca implements the server side of the ASCOM Alpaca protocol:
// request parameter validation, response envelopes, transaction bookkeeping,
// device registry, UDP discovery and the management API.
package alpaca

import "fmt"

const (
	// APIVersion is the Alpaca API version served under /api/v1.
	APIVersion = 1

	// DiscoveryMessage is the magic datagram clients broadcast to locate
	// Alpaca servers on the local network.
	DiscoveryMessage = "alpacadiscovery1"

	// DefaultDiscoveryPort is the standard Alpaca UDP discovery port.
	DefaultDiscoveryPort = 32227

	// DefaultAPIPort is the conventional Alpaca HTTP port.
	DefaultAPIPort = 11111

	// MaxTransactionID is the largest transaction ID before wrap-around.
	MaxTransactionID = 2147483647
)

// ASCOM error codes as defined by the Alpaca specification.
// Errors are reported in the response body with HTTP 200; HTTP 400 is
// reserved for malformed requests (bad ClientID, missing parameters).
const (
	ErrSuccess              = 0x000
	ErrNotImplemented       = 0x400
	ErrInvalidValue         = 0x401
	ErrValueNotSet          = 0x402
	ErrNotConnected         = 0x407
	ErrInvalidWhileParked   = 0x408
	ErrInvalidWhileSlaved   = 0x409
	ErrInvalidOperation     = 0x40B
	ErrActionNotImplemented = 0x40C
	ErrUnspecified          = 0x4FF
)

// DeviceError carries an ASCOM error number alongside the message so
// handlers can place it in the response envelope unchanged.
type DeviceError struct {
	Number  int
	Message string
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("ascom error 0x%03X: %s", e.Number, e.Message)
}

// NewDeviceError creates a DeviceError with the given code and message.
func NewDeviceError(number int, format string, args ...interface{}) *DeviceError {
	return &DeviceError{Number: number, Message: fmt.Sprintf(format, args...)}
}

// NotImplementedError reports that a device does not implement the
// named property or method.
func NotImplementedError(name string) *DeviceError {
	return &DeviceError{Number: ErrNotImplemented, Message: fmt.Sprintf("Property or method %s is not implemented", name)}
}

// InvalidValueError reports a semantically invalid value for a
// well-formed parameter.
func InvalidValueError(format string, args ...interface{}) *DeviceError {
	return &DeviceError{Number: ErrInvalidValue, Message: fmt.Sprintf(format, args...)}
}

// InvalidOperationError reports an operation that is not valid in the
// device's current state.
func InvalidOperationError(format string, args ...interface{}) *DeviceError {
	return &DeviceError{Number: ErrInvalidOperation, Message: fmt.Sprintf(format, args...)}
}
