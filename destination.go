package clue

import (
	"fmt"
	"math"
)

// Value is the set of types a scalar destination may store. Bool
// destinations act as flags: they consume no value token.
type Value interface {
	bool | int | float32 | float64 | string
}

// Element is the set of types array, sequence, and composite sub-value
// destinations may store. Flags take no value token, so there is no such
// thing as a sequence of bool.
type Element interface {
	int | float32 | float64 | string
}

// Unbounded marks a sequence destination with no upper arity limit.
const Unbounded = math.MaxInt

type destKind int

const (
	destScalar destKind = iota
	destArray
	destSequence
	destComposite
)

// Destination binds one command-line argument to caller-owned storage or to
// a field of the output aggregate T. Exactly one kind is active per
// Destination and the kind is fixed for the lifetime of the binding. A
// Destination never owns the storage it points into; standalone storage must
// outlive the CommandLine it is registered with.
type Destination[T any] struct {
	kind     destKind
	scalar   scalarKind
	min, max int          // sequence arity bounds
	subs     []scalarKind // composite sub-parser kinds, in order

	write     func(t *T, v any)
	read      func(t *T) any
	writeAt   func(t *T, i int, v any)
	readAll   func(t *T) []any
	clear     func(t *T)
	appendTo  func(t *T, v any)
	seqLen    func(t *T) int
	construct func(t *T, vs []any)
}

func boxSlice[S Element](s []S) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

// Var binds an argument to a caller-owned variable. The variable's value at
// registration time serves as the default shown in the usage text.
func Var[T any, S Value](p *S) *Destination[T] {
	return &Destination[T]{
		kind:   destScalar,
		scalar: kindOf[S](),
		write:  func(_ *T, v any) { *p = v.(S) },
		read:   func(_ *T) any { return *p },
	}
}

// Field binds an argument to a field of the output aggregate, addressed by
// an accessor closure. The accessor is invoked against the live parse target
// during parsing and against a default-constructed aggregate when rendering
// defaults.
func Field[T any, S Value](f func(*T) *S) *Destination[T] {
	return &Destination[T]{
		kind:   destScalar,
		scalar: kindOf[S](),
		write:  func(t *T, v any) { *f(t) = v.(S) },
		read:   func(t *T) any { return *f(t) },
	}
}

// Array binds an argument to a fixed run of caller-owned slots, typically a
// slice of an array ("v[:]"). The argument consumes exactly len(p) value
// tokens. len(p) must be in [1, 10]; registration panics otherwise.
func Array[T any, S Element](p []S) *Destination[T] {
	return &Destination[T]{
		kind:    destArray,
		scalar:  kindOf[S](),
		writeAt: func(_ *T, i int, v any) { p[i] = v.(S) },
		readAll: func(_ *T) []any { return boxSlice(p) },
	}
}

// ArrayField is Array for a fixed run of slots inside the output aggregate.
// The accessor should return a full slice of the backing array field, as in
// "func(t *T) []int { return t.Vec[:] }".
func ArrayField[T any, S Element](f func(*T) []S) *Destination[T] {
	return &Destination[T]{
		kind:    destArray,
		scalar:  kindOf[S](),
		writeAt: func(t *T, i int, v any) { f(t)[i] = v.(S) },
		readAll: func(t *T) []any { return boxSlice(f(t)) },
	}
}

// Slice binds an argument to a caller-owned growable sequence that consumes
// between min and max value tokens. Pass Unbounded for max to leave the
// upper bound open. Parsing clears the sequence before appending.
func Slice[T any, S Element](p *[]S, min, max int) *Destination[T] {
	checkArity(min, max)
	return &Destination[T]{
		kind:     destSequence,
		scalar:   kindOf[S](),
		min:      min,
		max:      max,
		clear:    func(_ *T) { *p = (*p)[:0] },
		appendTo: func(_ *T, v any) { *p = append(*p, v.(S)) },
		seqLen:   func(_ *T) int { return len(*p) },
		readAll:  func(_ *T) []any { return boxSlice(*p) },
	}
}

// SliceField is Slice for a sequence field of the output aggregate.
func SliceField[T any, S Element](f func(*T) *[]S, min, max int) *Destination[T] {
	checkArity(min, max)
	return &Destination[T]{
		kind:     destSequence,
		scalar:   kindOf[S](),
		min:      min,
		max:      max,
		clear:    func(t *T) { p := f(t); *p = (*p)[:0] },
		appendTo: func(t *T, v any) { p := f(t); *p = append(*p, v.(S)) },
		seqLen:   func(t *T) int { return len(*f(t)) },
		readAll:  func(t *T) []any { return boxSlice(*f(t)) },
	}
}

// Composite2 binds an argument to a user-defined value built from two
// ordered sub-values. The argument consumes two value tokens, parses them as
// A and B, and stores ctor(a, b) through the accessor.
func Composite2[T, U any, A, B Element](f func(*T) *U, ctor func(A, B) U) *Destination[T] {
	return &Destination[T]{
		kind: destComposite,
		subs: []scalarKind{kindOf[A](), kindOf[B]()},
		construct: func(t *T, vs []any) {
			*f(t) = ctor(vs[0].(A), vs[1].(B))
		},
		read: func(t *T) any { return *f(t) },
	}
}

// Composite3 binds an argument to a user-defined value built from three
// ordered sub-values.
func Composite3[T, U any, A, B, C Element](f func(*T) *U, ctor func(A, B, C) U) *Destination[T] {
	return &Destination[T]{
		kind: destComposite,
		subs: []scalarKind{kindOf[A](), kindOf[B](), kindOf[C]()},
		construct: func(t *T, vs []any) {
			*f(t) = ctor(vs[0].(A), vs[1].(B), vs[2].(C))
		},
		read: func(t *T) any { return *f(t) },
	}
}

func checkArity(min, max int) {
	if min < 0 || max < min {
		panic(fmt.Sprintf("clue: invalid arity bounds [%d, %d]", min, max))
	}
}

// ArraySize reports the slot count of a fixed array destination, measured
// against the given aggregate.
func (d *Destination[T]) arraySize(t *T) int {
	return len(d.readAll(t))
}
