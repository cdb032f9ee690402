/*
Package clue implements a declarative command-line parser. Given a set
of argument descriptors bound to typed destinations, the package will
tokenize the command line, populate the destinations with validated,
type-checked values, and generate word-wrapped usage text.

# Overview

A CommandLine[T] produces one output aggregate of type T per parse.
Arguments are registered up front, each binding a name (or a position)
to a Destination, then one of the Parse entry points consumes the
tokens:

	type Args struct {
	    Count   int
	    Message string
	}

	cl := clue.New[Args]("prog", "Print a message count times.").
	    WithDefaults(func() Args { return Args{Count: 1, Message: "Hello"} })

	cl.Optional("count", clue.Field(func(a *Args) *int { return &a.Count }),
	    "Number of times to print the message")
	cl.Positional(clue.Field(func(a *Args) *string { return &a.Message }),
	    "message", "A message to print")

	args, err := cl.ParseArgs(os.Args)

# Destinations

A Destination never owns its storage; it is a non-owning accessor into
either caller-owned standalone storage (Var, Array, Slice) or a field of
the output aggregate addressed by a closure (Field, ArrayField,
SliceField, Composite2, Composite3). The supported scalar kinds are

	bool
	int
	float32 (rendered as "float")
	float64 (rendered as "double")
	string

Bool destinations act as flags: naming the flag consumes no value token
and toggles the current value. Array destinations consume exactly N
tokens, N in [1, 10]. Slice destinations consume greedily within
inclusive [min, max] arity bounds, stopping before any token that names
a registered optional argument. Composite destinations consume one
token per declared sub-value and invoke a fixed constructor.

# Optionals, Positionals, and Matching

Optional arguments are matched by stripping a single leading "-" from a
token and comparing the remainder to the registered name, so names are
registered without a dash. A token that matches no optional is assigned
to the next unfilled positional argument, in registration order; the
token itself is the positional's first value. Anything else is an
unrecognized argument, which fails the parse unless SkipUnrecognized is
set.

The tokens "-h", "-help", "--help", and "/?" print the usage text to
standard output and terminate the parse (suppress with NoAutoHelp).

# Failure Behavior

Every parse failure short-circuits immediately: a diagnostic naming the
offending argument and token goes to standard error and the process
exits with status 1. With NoExitOnError the same diagnostic is emitted
but ParseArgs returns a wrapped sentinel error (ErrUnrecognized,
ErrMissingValue, ErrMalformedValue, ErrOutOfRange, ErrArity,
ErrMissingRequired, ErrHelp) for the caller to classify with errors.Is.
The returned aggregate holds whatever was filled before the failure.

Registration mistakes, such as duplicate optional names, bool
positionals, or array destinations outside [1, 10] slots, are defects
in the calling program rather than user input, and panic at
registration time.

# Usage Text

The usage text is wrapped to 80 columns (or the terminal width, when
standard output is a terminal). The synopsis places one unsplittable
fragment per argument, continuation lines aligned under the program
name; required arguments render bare, others in brackets. Each
argument's description is wrapped at natural break points, followed by
its default value read against a freshly default-constructed aggregate:

	usage: prog [-count <int>] [message <string>]

	Print a message count times.

	    -count <int>: Number of times to print the message (Default: 1)

	    message <string>: A message to print (Default: Hello)
*/
package clue
