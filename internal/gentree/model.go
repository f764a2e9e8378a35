// Package gentree holds the reconstructed family tree and the builder that
// infers it from the classified line stream. NGSQ reports carry no explicit
// parent references; the structure is recovered entirely from the numbering
// sequence.
package gentree

import "strings"

// Individual is one person node. Created exactly once when its header line
// is seen (or as a name-only stub for a spouse without a header); afterwards
// only note text accumulates. Never deleted.
type Individual struct {
	ID         int    // Stable internal id, creation order, never reused
	Name       string // Display name, possibly partial
	Surname    string // Last-token heuristic, may be wrong
	RefID      string // External numbering id, if present
	BirthDate  string // Raw date text, unparsed
	Position   string // NGSQ numbering token as it appeared
	Number     int    // NGSQ person number (0 for stubs)
	BirthOrder int    // Roman-numeral value among siblings (0 if unknown)
	Depth      int    // Generation depth; root is 0
	Sex        string // "M", "F", or ""

	Parent   *Individual
	Children []*Individual
	Unions   []*Union

	notes []string
}

// AppendNote records a line of source text against this person, in order.
func (ind *Individual) AppendNote(text string) {
	text = strings.TrimSpace(text)
	if text != "" {
		ind.notes = append(ind.notes, text)
	}
}

// Notes returns the accumulated note text as one string.
func (ind *Individual) Notes() string {
	return strings.Join(ind.notes, " ")
}

// IsStub reports whether this person exists only because they were named as
// a spouse and never had a header line of their own.
func (ind *Individual) IsStub() bool {
	return ind.Number == 0 && ind.Parent == nil && len(ind.Children) == 0
}

// Union relates exactly two individuals as partners. Immutable once created
// except for note text.
type Union struct {
	ID       int
	Partners [2]*Individual
	Note     string
}

// Other returns the partner that is not ind, or nil.
func (u *Union) Other(ind *Individual) *Individual {
	if u.Partners[0] == ind {
		return u.Partners[1]
	}
	if u.Partners[1] == ind {
		return u.Partners[0]
	}
	return nil
}

// Tree is the finished graph: all individuals, unions, and parent edges, in
// creation order, plus the document roots. Read-only once the builder
// finalizes it.
type Tree struct {
	Individuals []*Individual
	Unions      []*Union
	Roots       []*Individual
}

// Root returns the report's starting ancestor, or nil for an empty tree.
func (t *Tree) Root() *Individual {
	if len(t.Roots) == 0 {
		return nil
	}
	return t.Roots[0]
}
