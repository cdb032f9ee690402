package clue

import (
	"errors"
	"strconv"
)

// ScalarKind identifies the primitive value type a destination stores.
type scalarKind int

const (
	kindBool scalarKind = iota
	kindInt
	kindFloat
	kindDouble
	kindString
)

func (k scalarKind) String() string {
	switch k {
	case kindBool:
		return "bool"
	case kindInt:
		return "int"
	case kindFloat:
		return "float"
	case kindDouble:
		return "double"
	case kindString:
		return "string"
	default:
		return "unknown"
	}
}

// Article returns the kind name with its indefinite article, for error
// messages ("an int value", "a float value").
func (k scalarKind) article() string {
	if k == kindInt {
		return "an int"
	}
	return "a " + k.String()
}

// KindOf maps a Value type parameter to its scalarKind.
func kindOf[S Value]() scalarKind {
	var s S
	switch any(s).(type) {
	case bool:
		return kindBool
	case int:
		return kindInt
	case float32:
		return kindFloat
	case float64:
		return kindDouble
	case string:
		return kindString
	default:
		// Unreachable: the Value constraint is closed.
		panic("clue: unsupported scalar type")
	}
}

// ParseScalar converts one token to a value of the given kind. The returned
// any holds bool, int, float32, float64, or string. argName is the display
// name of the demanding argument, used in diagnostics.
//
// Integers are base-10 and must consume the whole token; values outside the
// 32-bit signed range fail with ErrOutOfRange. Floats must also consume the
// whole token, so a garbage token reports ErrMalformedValue rather than
// silently yielding zero. Strings are taken verbatim.
func parseScalar(k scalarKind, argName, token string) (any, error) {
	switch k {
	case kindInt:
		n, err := strconv.ParseInt(token, 10, 32)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, errIntOutOfRange(argName, token)
			}
			return 0, errMalformed(argName, k, token)
		}
		return int(n), nil

	case kindFloat:
		f, err := strconv.ParseFloat(token, 32)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return float32(0), errFloatOutOfRange(argName, k, token)
			}
			return float32(0), errMalformed(argName, k, token)
		}
		return float32(f), nil

	case kindDouble:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return float64(0), errFloatOutOfRange(argName, k, token)
			}
			return float64(0), errMalformed(argName, k, token)
		}
		return f, nil

	case kindString:
		return token, nil

	default:
		panic("clue: no parser for kind " + k.String())
	}
}

// FormatScalar renders a parsed value for default display. Floats use the
// shortest representation that round-trips to the same value.
func formatScalar(v any) string {
	switch t := v.(type) {
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		return t
	default:
		return ""
	}
}
