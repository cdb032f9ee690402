package clue

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const defaultLineLen = 80

// StringBuilder accumulates help text with line-width-aware wrapping. It
// offers two primitives: appendAtomic for fragments that must never be split
// across a line break, and appendNatural for free text that breaks at
// whitespace runs and embedded newlines. Widths are display widths, so
// wide runes count as two columns.
type stringBuilder struct {
	buf        strings.Builder
	lineLen    int
	maxLineLen int
}

func newStringBuilder(width int) *stringBuilder {
	if width <= 0 {
		width = defaultLineLen
	}
	return &stringBuilder{maxLineLen: width}
}

func (b *stringBuilder) newLine(count int) {
	for i := 0; i < count; i++ {
		b.buf.WriteByte('\n')
	}
	b.lineLen = 0
}

func (b *stringBuilder) spaces(count int) {
	for i := 0; i < count; i++ {
		b.buf.WriteByte(' ')
	}
	b.lineLen += count
}

func (b *stringBuilder) writeString(s string) {
	b.buf.WriteString(s)
	b.lineLen += runewidth.StringWidth(s)
}

// AppendAtomic appends an unsplittable fragment. If the fragment would push
// the current line past the width limit, a line break plus indent spaces are
// inserted first.
func (b *stringBuilder) appendAtomic(indent int, s string) {
	if b.lineLen+runewidth.StringWidth(s) > b.maxLineLen {
		b.newLine(1)
		b.spaces(indent)
	}
	b.writeString(s)
}

// AppendNatural appends free text, breaking preferentially at whitespace
// runs and always at embedded newlines. When a line would exceed the width
// limit the break backs up to the last whitespace position; a single word
// wider than the limit is hard-broken rather than looping.
func (b *stringBuilder) appendNatural(indent int, s string) {
	runes := []rune(s)

	// lineStart marks the start of the in-progress segment, lastBreakable
	// the last whitespace seen within it (-1 when none).
	lineStart := 0
	lastBreakable := -1
	cursor := 0

	segWidth := func(from, to int) int {
		return runewidth.StringWidth(string(runes[from:to]))
	}

	for cursor < len(runes) {
		switch runes[cursor] {
		case ' ', '\t':
			lastBreakable = cursor
		case '\n':
			// The text supplies its own break.
			b.buf.WriteString(string(runes[lineStart : cursor+1]))
			b.lineLen = 0
			b.spaces(indent)
			cursor++
			lineStart = cursor
			lastBreakable = -1
			continue
		}

		if b.lineLen+segWidth(lineStart, cursor+1) > b.maxLineLen {
			if lastBreakable >= lineStart {
				b.buf.WriteString(string(runes[lineStart : lastBreakable+1]))
				cursor = lastBreakable + 1
			} else {
				// No whitespace to back up to: hard break. Always
				// consume at least one rune so narrow widths make
				// progress.
				if cursor == lineStart {
					cursor++
				}
				b.buf.WriteString(string(runes[lineStart:cursor]))
			}
			b.newLine(1)
			b.spaces(indent)
			lineStart = cursor
			lastBreakable = -1
			continue
		}
		cursor++
	}

	b.writeString(string(runes[lineStart:cursor]))
}

func (b *stringBuilder) String() string {
	return b.buf.String()
}
