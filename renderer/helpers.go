package renderer

import (
	"fmt"
	"io"
)

// list is a markdown section made of items. Its heading is written before the
// first item and a blank line after the last, so a list without items writes
// nothing at all.
type list struct {
	w       io.Writer
	heading func(io.Writer)
	items   int
}

// newList returns a list writing to w under heading.
func newList(w io.Writer, heading func(io.Writer)) *list {
	return &list{w: w, heading: heading}
}

// title is a heading made of a single markdown title line.
func title(s string) func(io.Writer) {
	return func(w io.Writer) {
		fmt.Fprintln(w, s)
		fmt.Fprintln(w)
	}
}

// Item writes one formatted item, preceded by the heading if it is the first.
func (l *list) Item(format string, args ...any) {
	if l.items == 0 && l.heading != nil {
		l.heading(l.w)
	}
	l.items++
	fmt.Fprintf(l.w, format, args...)
}

// Close ends the list and reports whether any item was written.
func (l *list) Close() bool {
	if l.items > 0 {
		fmt.Fprintln(l.w)
	}
	return l.items > 0
}
