package clue

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ef-ds/deque/v2"
	"github.com/fatih/color"
	"github.com/google/shlex"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Flags adjust parsing and help rendering. They combine with bitwise or;
// Required and NoDefault may also be attached to individual arguments at
// registration time.
type Flags uint64

const (
	// NoExitOnError returns a structured error from ParseArgs instead of
	// calling os.Exit(1). The diagnostic text is emitted either way.
	NoExitOnError Flags = 1 << iota

	// SkipUnrecognized silently skips tokens that match no argument.
	// Normal behavior is to fail on the first unrecognized token.
	SkipUnrecognized

	// NoAutoHelp disables the built-in help tokens
	// ("-h", "-help", "--help", "/?").
	NoAutoHelp

	// NoDefault suppresses "(Default: ...)" in the usage text, for the
	// whole command line or for a single argument.
	NoDefault

	// Required marks one argument (at registration) or every argument
	// (at parse) as mandatory. Missing required arguments fail the parse
	// after the token loop, listing them below the usage text.
	Required
)

// None requests the default behavior.
const None Flags = 0

func combine(flags []Flags) Flags {
	var fl Flags
	for _, f := range flags {
		fl |= f
	}
	return fl
}

type argument[T any] struct {
	name        string
	description string
	dest        *Destination[T]
	flags       Flags
	positional  bool
	wasSet      bool
}

// DisplayName is the name as it appears on the command line: dash-prefixed
// for optionals, bare for positionals.
func (a *argument[T]) displayName() string {
	if a.positional {
		return a.name
	}
	return "-" + a.name
}

// CommandLine parses argv into an output aggregate of type T. Register
// destinations with Optional and Positional, then call one of the Parse
// entry points. A CommandLine is not safe for concurrent use; one parse
// invocation fully consumes one token slice before returning.
type CommandLine[T any] struct {
	name        string
	description string

	optionals   *orderedmap.OrderedMap[string, *argument[T]]
	positionals []*argument[T]

	newT     func() T
	out      io.Writer
	errOut   io.Writer
	exit     func(int)
	errColor *color.Color

	argv0 string // usage-line fallback when name is empty
}

// New creates a CommandLine producing aggregates of type T. name appears in
// the usage line (the program name from argv is substituted when empty);
// description is rendered, word-wrapped, at the top of the help text.
func New[T any](name, description string) *CommandLine[T] {
	return &CommandLine[T]{
		name:        name,
		description: description,
		optionals:   orderedmap.New[string, *argument[T]](),
		newT:        func() T { var t T; return t },
		out:         os.Stdout,
		errOut:      os.Stderr,
		exit:        os.Exit,
		errColor:    color.New(color.FgRed),
	}
}

// WithDefaults installs a factory for default-initialized aggregates. The
// factory is invoked once per parse for the output aggregate and once per
// help render for default-value display. Without it the zero value of T is
// used.
func (cl *CommandLine[T]) WithDefaults(make func() T) *CommandLine[T] {
	cl.newT = make
	return cl
}

// WithOutput redirects help output and error diagnostics, which go to
// os.Stdout and os.Stderr by default.
func (cl *CommandLine[T]) WithOutput(out, errOut io.Writer) *CommandLine[T] {
	cl.out = out
	cl.errOut = errOut
	return cl
}

// Optional registers a named argument. name must be non-empty and unique
// among optional arguments, and is matched against command-line tokens with
// their leading dash stripped (register "count", match "-count").
//
// Optional panics on an empty or duplicate name, or on an array destination
// with a slot count outside [1, 10]: these are defects in the calling
// program, not user input.
func (cl *CommandLine[T]) Optional(name string, dest *Destination[T], description string, flags ...Flags) {
	if name == "" {
		panic("clue: optional argument name must not be empty")
	}
	if _, ok := cl.optionals.Get(name); ok {
		panic(fmt.Sprintf("clue: name %q already registered", name))
	}
	cl.optionals.Set(name, cl.newArgument(name, dest, description, false, flags))
}

// Positional registers a positional argument. Positionals are filled in
// registration order as non-option tokens are encountered. The name is only
// used in help and diagnostics and may be empty.
//
// Positional panics on a bool destination (a flag has no value token to
// consume, so a positional flag is meaningless) or on an array destination
// with a slot count outside [1, 10].
func (cl *CommandLine[T]) Positional(dest *Destination[T], name, description string, flags ...Flags) {
	if dest.kind == destScalar && dest.scalar == kindBool {
		panic("clue: positional arguments cannot bind bool destinations")
	}
	cl.positionals = append(cl.positionals, cl.newArgument(name, dest, description, true, flags))
}

func (cl *CommandLine[T]) newArgument(name string, dest *Destination[T], description string, positional bool, flags []Flags) *argument[T] {
	if dest.kind == destArray {
		var tmp T
		if n := dest.arraySize(&tmp); n < 1 || n > 10 {
			panic(fmt.Sprintf("clue: array destination for %q has %d slots, want 1 to 10", name, n))
		}
	}
	return &argument[T]{
		name:        name,
		description: description,
		dest:        dest,
		flags:       combine(flags),
		positional:  positional,
	}
}

// Parse parses os.Args.
func (cl *CommandLine[T]) Parse(flags ...Flags) (*T, error) {
	return cl.ParseArgs(os.Args, flags...)
}

// ParseString splits s with shell-style quoting rules and parses the
// resulting tokens. Like ParseArgs, the first token is taken as the program
// name.
func (cl *CommandLine[T]) ParseString(s string, flags ...Flags) (*T, error) {
	argv, err := shlex.Split(s)
	if err != nil {
		t := cl.newT()
		return &t, cl.fail(combine(flags), fmt.Errorf("tokenizing command line: %w", err))
	}
	return cl.ParseArgs(argv, flags...)
}

// ParseArgs parses argv, whose first element is the program name. It
// returns the output aggregate and nil on success. On failure the returned
// aggregate holds whatever was filled before the failing token; by default
// the process exits with status 1 after printing a diagnostic, and with
// NoExitOnError a wrapped sentinel error is returned instead (see errors.go
// for the error kinds).
//
// Tokens equal to "-h", "-help", "--help", or "/?" print the usage text to
// stdout and terminate the parse without touching any destination (unless
// NoAutoHelp is set).
func (cl *CommandLine[T]) ParseArgs(argv []string, flags ...Flags) (*T, error) {
	fl := combine(flags)

	if len(argv) > 0 {
		cl.argv0 = argv[0]
	}
	t := cl.newT()

	var tokens deque.Deque[string]
	for i := 1; i < len(argv); i++ {
		tokens.PushBack(argv[i])
	}

	nextPositional := 0

	for {
		token, ok := tokens.PopFront()
		if !ok {
			break
		}

		if fl&NoAutoHelp == 0 && isHelpToken(token) {
			cl.WriteUsage(cl.out, terminalWidth(), fl)
			if fl&NoExitOnError == 0 {
				cl.exit(1)
			}
			return &t, ErrHelp
		}

		var arg *argument[T]
		if name, dashed := strings.CutPrefix(token, "-"); dashed {
			if a, ok := cl.optionals.Get(name); ok {
				arg = a
			}
		}
		if arg == nil {
			if nextPositional < len(cl.positionals) {
				arg = cl.positionals[nextPositional]
				nextPositional++
				// The token itself is the first value to parse.
				tokens.PushFront(token)
			} else if fl&SkipUnrecognized != 0 {
				slog.Debug("skipping unrecognized token", "token", token)
				continue
			} else {
				return &t, cl.fail(fl, errUnrecognized(token))
			}
		}

		slog.Debug("dispatching argument",
			"name", arg.name, "positional", arg.positional)

		if err := cl.dispatch(&t, arg, &tokens); err != nil {
			return &t, cl.fail(fl, err)
		}
		arg.wasSet = true
	}

	if err := cl.checkRequired(fl); err != nil {
		return &t, cl.fail(fl, err)
	}

	return &t, nil
}

// Dispatch consumes the value tokens for one matched argument and writes
// them through its destination.
func (cl *CommandLine[T]) dispatch(t *T, arg *argument[T], tokens *deque.Deque[string]) error {
	d := arg.dest
	name := arg.displayName()

	next := func(kind scalarKind) (any, error) {
		tok, ok := tokens.PopFront()
		if !ok {
			return nil, errMissingValue(name, kind)
		}
		return parseScalar(kind, name, tok)
	}

	switch d.kind {
	case destScalar:
		if d.scalar == kindBool {
			// Presence toggles the current value. Naming the flag twice
			// in one parse therefore restores the default.
			d.write(t, !d.read(t).(bool))
			return nil
		}
		v, err := next(d.scalar)
		if err != nil {
			return err
		}
		d.write(t, v)

	case destArray:
		// Elements are committed as they parse, so a failure part way
		// through leaves the already-written prefix behind.
		n := d.arraySize(t)
		for i := 0; i < n; i++ {
			v, err := next(d.scalar)
			if err != nil {
				return err
			}
			d.writeAt(t, i, v)
		}

	case destSequence:
		d.clear(t)
		count := 0
		for {
			tok, ok := tokens.Front()
			if !ok {
				break
			}
			if cl.matchesOptional(tok) {
				// Never swallow the next flag.
				break
			}
			v, err := parseScalar(d.scalar, name, tok)
			if err != nil {
				// Not an element; leave it for the outer loop.
				break
			}
			if count == d.max {
				return errArity(name, count+1, d.min, d.max)
			}
			tokens.PopFront()
			d.appendTo(t, v)
			count++
		}
		if count < d.min {
			return errArity(name, count, d.min, d.max)
		}

	case destComposite:
		vs := make([]any, 0, len(d.subs))
		for _, kind := range d.subs {
			v, err := next(kind)
			if err != nil {
				return err
			}
			vs = append(vs, v)
		}
		d.construct(t, vs)
	}

	return nil
}

// CheckRequired sweeps positionals then optionals for required arguments
// that were never set, prints the usage text followed by a report naming
// them, and fails.
func (cl *CommandLine[T]) checkRequired(fl Flags) error {
	def := cl.newT()

	var missing []string
	collect := func(a *argument[T]) {
		if (a.flags|fl)&Required != 0 && !a.wasSet {
			missing = append(missing, cl.fragment(a, &def))
		}
	}
	for _, a := range cl.positionals {
		collect(a)
	}
	for pair := cl.optionals.Oldest(); pair != nil; pair = pair.Next() {
		collect(pair.Value)
	}

	if len(missing) == 0 {
		return nil
	}

	cl.WriteUsage(cl.out, terminalWidth(), fl)
	return fmt.Errorf("%w:\n    %s",
		ErrMissingRequired, strings.Join(missing, "\n    "))
}

func (cl *CommandLine[T]) matchesOptional(token string) bool {
	name, dashed := strings.CutPrefix(token, "-")
	if !dashed {
		return false
	}
	_, ok := cl.optionals.Get(name)
	return ok
}

func isHelpToken(token string) bool {
	switch token {
	case "-h", "-help", "--help", "/?":
		return true
	}
	return false
}

// Fail emits the diagnostic and, unless NoExitOnError is set, terminates
// the process with status 1. It returns err for the NoExitOnError path.
func (cl *CommandLine[T]) fail(fl Flags, err error) error {
	cl.errColor.Fprintln(cl.errOut, err.Error())
	if fl&NoExitOnError == 0 {
		cl.exit(1)
	}
	return err
}
