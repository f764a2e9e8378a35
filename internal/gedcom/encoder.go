// Package gedcom serializes a finalized gentree.Tree as a GEDCOM 5.5.1
// lineage-linked document. It owns the cross-reference wiring; the line
// encoder below handles only the structural grammar (levels, xrefs, and
// continuation splitting), not character escaping.
package gedcom

import (
	"fmt"
	"strings"
)

// Limits from the 5.5.1 grammar: line payloads after "2 NOTE " and the two
// name parts. Both keep a little slack, matching the reports this was
// validated against.
const (
	noteLimit = 246
	nameLimit = 110
)

// writer accumulates GEDCOM lines. It has no side effects on the tree, so
// serializing twice yields identical bytes.
type writer struct {
	sb strings.Builder
}

// line emits "level [xref] tag [value]".
func (w *writer) line(level int, xref, tag, value string) {
	w.sb.WriteString(fmt.Sprintf("%d", level))
	if xref != "" {
		w.sb.WriteString(" @" + xref + "@")
	}
	w.sb.WriteString(" " + tag)
	if value != "" {
		w.sb.WriteString(" " + value)
	}
	w.sb.WriteString("\n")
}

// note emits a NOTE line, splitting long text onto CONT continuations so no
// physical line exceeds the grammar's budget. Limits count characters, not
// bytes: the file declares CHAR UTF-8 and a cut inside a multi-byte rune
// would corrupt it.
func (w *writer) note(level int, text string) {
	if text == "" {
		return
	}
	runes := []rune(text)
	first := true
	for len(runes) > 0 {
		cut := min(len(runes), noteLimit)
		if first {
			w.line(level, "", "NOTE", string(runes[:cut]))
			first = false
		} else {
			w.line(level+1, "", "CONT", string(runes[:cut]))
		}
		runes = runes[cut:]
	}
}

func (w *writer) String() string {
	return w.sb.String()
}

// truncName enforces the NAME payload limit, cutting on rune boundaries.
func truncName(name string) string {
	runes := []rune(name)
	if len(runes) > nameLimit {
		return string(runes[:nameLimit-1])
	}
	return name
}
