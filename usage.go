package clue

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// PrintUsage writes the usage text to standard output. When stdout is a
// terminal the text is wrapped to the terminal width, otherwise to 80
// columns.
func (cl *CommandLine[T]) PrintUsage(flags ...Flags) {
	cl.WriteUsage(os.Stdout, terminalWidth(), combine(flags))
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return defaultLineLen
}

// WriteUsage writes the usage text to w, wrapped to the given width.
//
// The text has two parts. First a synopsis of one atomic fragment per
// argument, continuation lines indented to align under the program name:
//
//	usage: prog [-count <int>] [-vec <float[3]>] [message <string>]
//
// Then the program description and one wrapped entry per argument:
//
//	-count <int>: Number of times to print the message (Default: 1)
//
// Required arguments render without brackets in the synopsis. Default
// values are read through each destination against a freshly
// default-constructed aggregate, never the live parse target; NoDefault
// (global or per argument) suppresses them.
func (cl *CommandLine[T]) WriteUsage(w io.Writer, width int, fl Flags) {
	usage := newStringBuilder(width)
	desc := newStringBuilder(width)

	def := cl.newT()

	head := "usage:"
	switch {
	case cl.name != "":
		head = "usage: " + cl.name
	case cl.argv0 != "":
		head = "usage: " + cl.argv0
	}
	indent := runewidth.StringWidth(head)
	usage.appendAtomic(0, head)

	if cl.description != "" {
		desc.appendNatural(0, cl.description)
		desc.newLine(2)
	}

	render := func(a *argument[T]) {
		frag := cl.fragment(a, &def)
		if (a.flags|fl)&Required != 0 {
			usage.appendAtomic(indent, " "+frag)
		} else {
			usage.appendAtomic(indent, " ["+frag+"]")
		}

		prefix := "    " + frag + ": "
		descIndent := runewidth.StringWidth(prefix)
		desc.appendAtomic(0, prefix)
		desc.appendNatural(descIndent, a.description)
		if (a.flags|fl)&NoDefault == 0 {
			desc.writeString(" ")
			desc.appendAtomic(descIndent, "(Default: "+cl.defaultString(a, &def)+")")
		}
		desc.newLine(2)
	}

	for pair := cl.optionals.Oldest(); pair != nil; pair = pair.Next() {
		render(pair.Value)
	}
	for _, a := range cl.positionals {
		render(a)
	}

	fmt.Fprintf(w, "%s\n\n", usage.String())
	fmt.Fprint(w, desc.String())
}

// Fragment renders an argument's synopsis form, e.g. "-count <int>",
// "-vec <float[3]>", "message <string>", or "-verbose" for a flag.
func (cl *CommandLine[T]) fragment(a *argument[T], def *T) string {
	name := a.displayName()
	suffix := typeSuffix(a.dest, def)
	switch {
	case suffix == "":
		return name
	case name == "":
		return suffix
	}
	return name + " " + suffix
}

func typeSuffix[T any](d *Destination[T], def *T) string {
	switch d.kind {
	case destScalar:
		if d.scalar == kindBool {
			return ""
		}
		return fmt.Sprintf("<%s>", d.scalar)

	case destArray:
		return fmt.Sprintf("<%s[%d]>", d.scalar, d.arraySize(def))

	case destSequence:
		switch {
		case d.min == 0 && d.max == Unbounded:
			return fmt.Sprintf("<%s...>", d.scalar)
		case d.max == Unbounded:
			return fmt.Sprintf("<%s[%d..]>", d.scalar, d.min)
		default:
			return fmt.Sprintf("<%s[%d..%d]>", d.scalar, d.min, d.max)
		}

	case destComposite:
		names := make([]string, len(d.subs))
		for i, k := range d.subs {
			names[i] = k.String()
		}
		return "<" + strings.Join(names, ",") + ">"
	}
	return ""
}

// DefaultString renders an argument's default value against a
// default-constructed aggregate. Arrays and sequences are space-joined;
// composites use their natural Go formatting.
func (cl *CommandLine[T]) defaultString(a *argument[T], def *T) string {
	d := a.dest
	switch d.kind {
	case destScalar:
		return formatScalar(d.read(def))

	case destComposite:
		return fmt.Sprintf("%v", d.read(def))

	case destArray, destSequence:
		vs := d.readAll(def)
		parts := make([]string, len(vs))
		for i, v := range vs {
			parts[i] = formatScalar(v)
		}
		return strings.Join(parts, " ")
	}
	return ""
}
