package gentree

import "fmt"

// AnomalyKind classifies a recoverable problem found while interpreting the
// line stream. None of these abort a conversion; they are surfaced for
// manual review alongside the best-effort tree.
type AnomalyKind string

const (
	AnomalyUnrecognizedLine   AnomalyKind = "unrecognized_line"
	AnomalyNumberingParse     AnomalyKind = "numbering_parse_failure"
	AnomalyUnresolvedParent   AnomalyKind = "unresolved_parent_reference"
	AnomalyStructural         AnomalyKind = "structural_inconsistency"
	AnomalyDuplicateNumber    AnomalyKind = "duplicate_person_number"
	AnomalyOrphanedChild      AnomalyKind = "orphaned_child_header"
	AnomalyUnattachedNoteText AnomalyKind = "unattached_note_text"
)

// Anomaly is one logged inconsistency, tied back to its source line.
type Anomaly struct {
	Kind    AnomalyKind `json:"kind"`
	Line    int         `json:"line"`
	Page    int         `json:"page,omitempty"`
	Message string      `json:"message"`
}

func (a Anomaly) String() string {
	return fmt.Sprintf("line %d: %s: %s", a.Line, a.Kind, a.Message)
}
