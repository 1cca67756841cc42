package config

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// parser converts raw layer text into a field value. ok is false when the
// text must not replace the field.
type parser[T any] func(raw string) (value T, ok bool)

// overlay replaces *dst with the parsed raw value when the layer supplied one
// (present) and it parses. Otherwise *dst keeps the previous layer's value.
func overlay[T any](dst *T, raw string, present bool, parse parser[T]) bool {
	if !present {
		return false
	}
	value, ok := parse(raw)
	if !ok {
		return false
	}
	*dst = value
	return true
}

func parseRaw(raw string) (string, bool) {
	return raw, true
}

func parseNonEmpty(raw string) (string, bool) {
	return raw, raw != ""
}

// maxTimeoutSeconds is the largest timeout whose time.Duration does not
// overflow.
const maxTimeoutSeconds = uint64(math.MaxInt64 / int64(time.Second))

// parseUnsigned accepts decimal digits with at most one leading '+'.
func parseUnsigned(raw string, bitSize int) (uint64, bool) {
	digits := strings.TrimPrefix(raw, "+")
	if digits == "" || digits[0] == '+' {
		return 0, false
	}
	v, err := strconv.ParseUint(digits, 10, bitSize)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseUint16(raw string) (uint16, bool) {
	v, ok := parseUnsigned(raw, 16)
	return uint16(v), ok
}

func parseUint32(raw string) (uint32, bool) {
	v, ok := parseUnsigned(raw, 32)
	return uint32(v), ok
}

// parseTimeout reads whole seconds, rejecting values that cannot be
// expressed as a time.Duration.
func parseTimeout(raw string) (uint64, bool) {
	v, ok := parseUnsigned(raw, 64)
	if !ok || v > maxTimeoutSeconds {
		return 0, false
	}
	return v, true
}

// parseBool accepts the boolean spellings UCI uses for option values.
func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on", "enabled":
		return true, true
	case "0", "false", "no", "off", "disabled":
		return false, true
	default:
		return false, false
	}
}

// parseConnectionType is strict: only the exact tokens are recognised.
func parseConnectionType(raw string) (ConnectionType, bool) {
	switch raw {
	case serialToken:
		return Serial, true
	case networkToken:
		return Network, true
	default:
		return Network, false
	}
}

// connectionTypeOrFailSafe never rejects. Anything other than the exact
// SERIAL token, including the empty string, selects Network. The store layer
// uses this instead of parseConnectionType.
func connectionTypeOrFailSafe(raw string) ConnectionType {
	if raw == serialToken {
		return Serial
	}
	return Network
}
