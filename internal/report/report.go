// Package report models an OCR-transcribed NGSQ narrative report as an
// ordered stream of text lines and provides the lexical layer of the
// conversion pipeline: line classification, numbering extraction, and
// best-effort fact extraction from header prose.
package report

// Document is one transcribed report: ordered lines of narrative text.
type Document struct {
	Title string // Report title (from metadata or filename)
	Lines []Line
}

// Line is a single logical line of report text.
type Line struct {
	Text string
	Page int // Source page/row (0 if N/A)
}

// RecordKind identifies what a report line is, based on its prefix shape.
type RecordKind int

const (
	KindUnclassified RecordKind = iota
	KindBlank
	KindParentHeader  // "3. Jane SMITH ..."
	KindChildHeader   // "+3 iv. Jane SMITH ..."
	KindChildrenIntro // "Children:"
	KindMarriage      // "He married Mary JONES."
)

func (k RecordKind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindParentHeader:
		return "parent_header"
	case KindChildHeader:
		return "child_header"
	case KindChildrenIntro:
		return "children_intro"
	case KindMarriage:
		return "marriage"
	default:
		return "unclassified"
	}
}
