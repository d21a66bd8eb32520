package alpaca

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Parameter validation errors. Handlers treat both the same way, with
// an HTTP 400 response naming the parameter; they are distinguished so
// optional parameters can fall back to a default only when absent.
var (
	ErrParamAbsent  = errors.New("parameter absent")
	ErrParamInvalid = errors.New("parameter invalid")
)

// paramValue reads a raw parameter from the query string or, for PUT
// requests, the form body. Parameter names are matched exactly.
func paramValue(c *gin.Context, name string, fromBody bool) (string, bool) {
	if fromBody {
		if v, ok := c.GetPostForm(name); ok {
			return v, true
		}
		return "", false
	}
	if v, ok := c.GetQuery(name); ok {
		return v, true
	}
	return "", false
}

func isUnsignedNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isSignedNumber(s string) bool {
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	return isUnsignedNumber(s)
}

func isDecimalNumber(s string) bool {
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	digits := 0
	dots := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// ClientField reads ClientID or ClientTransactionID. The exact name is
// tried first, then the all-lowercase spelling some clients send.
// Absent fields default to zero; a present value must be an unsigned
// number, so negative or non-numeric values are rejected.
func ClientField(c *gin.Context, name string, fromBody bool) (uint32, error) {
	raw, ok := paramValue(c, name, fromBody)
	if !ok {
		raw, ok = paramValue(c, strings.ToLower(name), fromBody)
	}
	if !ok || raw == "" {
		return 0, nil
	}
	if !isUnsignedNumber(raw) {
		return 0, ErrParamInvalid
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, ErrParamInvalid
	}
	return uint32(v), nil
}

// StringParam reads a required non-empty string parameter.
func StringParam(c *gin.Context, name string, fromBody bool) (string, error) {
	raw, ok := paramValue(c, name, fromBody)
	if !ok {
		return "", ErrParamAbsent
	}
	if raw == "" {
		return "", ErrParamInvalid
	}
	return raw, nil
}

// OptionalStringParam reads a string parameter that may be absent.
func OptionalStringParam(c *gin.Context, name string, fromBody bool) (string, bool) {
	raw, ok := paramValue(c, name, fromBody)
	return raw, ok
}

// IntParam reads a required integer parameter: an optional sign
// followed by digits only.
func IntParam(c *gin.Context, name string, fromBody bool) (int, error) {
	raw, ok := paramValue(c, name, fromBody)
	if !ok {
		return 0, ErrParamAbsent
	}
	if !isSignedNumber(raw) {
		return 0, ErrParamInvalid
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrParamInvalid
	}
	return v, nil
}

// DoubleParam reads a required decimal parameter: an optional sign,
// at least one digit and at most one decimal point.
func DoubleParam(c *gin.Context, name string, fromBody bool) (float64, error) {
	raw, ok := paramValue(c, name, fromBody)
	if !ok {
		return 0, ErrParamAbsent
	}
	if !isDecimalNumber(raw) {
		return 0, ErrParamInvalid
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, ErrParamInvalid
	}
	return v, nil
}

// BoolParam reads a required boolean parameter. Accepted spellings are
// true/1 and false/0, case insensitive.
func BoolParam(c *gin.Context, name string, fromBody bool) (bool, error) {
	raw, ok := paramValue(c, name, fromBody)
	if !ok {
		return false, ErrParamAbsent
	}
	switch strings.ToLower(raw) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, ErrParamInvalid
	}
}
