package keyed

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// String renders the collection as a human readable block:
//
//	keyed.Collection(2) {
//		1 => {1 Ahmed}
//		2 => {2 Sara}
//	}
//
// Keys are projected at render time. An empty collection renders as
// "keyed.Collection(0) {}" on a single line.
func (c *Collection[ENT, K]) String() string {
	var sb strings.Builder
	_ = c.Fprint(&sb)
	return sb.String()
}

// Fprint writes the String rendering of the collection to the given writer.
func (c *Collection[ENT, K]) Fprint(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "keyed.Collection(%d) {", c.Len()); err != nil {
		return err
	}
	if c.Len() == 0 {
		_, err := io.WriteString(w, "}")
		return err
	}
	for key, ent := range c.Iter() {
		if _, err := fmt.Fprintf(w, "\n\t%v => %v", key, *ent); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n}")
	return err
}

// Print writes the String rendering of the collection to the standard error
// stream, followed by a newline.
func (c *Collection[ENT, K]) Print() {
	_ = c.Fprint(os.Stderr)
	_, _ = io.WriteString(os.Stderr, "\n")
}
