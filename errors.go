package clue

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned (wrapped) by ParseArgs when the NoExitOnError
// flag is set. Use errors.Is to classify a failure.
var (
	// ErrUnrecognized indicates a token that matched neither a registered
	// optional argument nor a remaining positional argument.
	ErrUnrecognized = errors.New("unrecognized argument")

	// ErrMissingValue indicates an argument that demanded a value token
	// where none remained.
	ErrMissingValue = errors.New("missing value")

	// ErrMalformedValue indicates a value token that could not be parsed
	// as the destination's scalar kind.
	ErrMalformedValue = errors.New("malformed value")

	// ErrOutOfRange indicates a numeric value token outside the
	// destination's representable range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrArity indicates a sequence destination that consumed a number of
	// values outside its declared [min, max] bounds.
	ErrArity = errors.New("wrong number of values")

	// ErrMissingRequired indicates required arguments absent from the
	// command line; the diagnostic lists them after the usage text.
	ErrMissingRequired = errors.New("missing required arguments")

	// ErrHelp is returned when one of the help tokens was encountered and
	// usage text has been printed.
	ErrHelp = errors.New("help requested")
)

func errUnrecognized(token string) error {
	return fmt.Errorf("%w %q", ErrUnrecognized, token)
}

func errMissingValue(argName string, kind scalarKind) error {
	return fmt.Errorf("%q expected %s value: %w",
		argName, kind.article(), ErrMissingValue)
}

func errMalformed(argName string, kind scalarKind, token string) error {
	return fmt.Errorf("%q expected a string representing %s but instead found %q: %w",
		argName, kind.article(), token, ErrMalformedValue)
}

func errIntOutOfRange(argName, token string) error {
	return fmt.Errorf("%q int value %q out of range [%d, %d]: %w",
		argName, token, math.MinInt32, math.MaxInt32, ErrOutOfRange)
}

func errFloatOutOfRange(argName string, kind scalarKind, token string) error {
	return fmt.Errorf("%q %s value %q out of range: %w",
		argName, kind, token, ErrOutOfRange)
}

func errArity(argName string, got, min, max int) error {
	if max == Unbounded {
		return fmt.Errorf("%q expected at least %d values, got %d: %w",
			argName, min, got, ErrArity)
	}
	return fmt.Errorf("%q expected between %d and %d values, got %d: %w",
		argName, min, max, got, ErrArity)
}
