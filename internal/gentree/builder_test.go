package gentree

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/gedgest/gedgest/internal/report"
)

func feedAll(b *Builder, lines ...string) *Tree {
	for _, l := range lines {
		b.Feed(report.Line{Text: l})
	}
	return b.Finalize()
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuilder_PromotesChildToParent(t *testing.T) {
	b := NewBuilder(testLogger())
	tree := feedAll(b,
		"1. John SMITH was born in 1800.",
		"Children:",
		"2 i. James SMITH.",
		"3 ii. Sarah SMITH.",
		"2. James SMITH was born in 1825.",
		"Children:",
		"4 i. Robert SMITH.",
	)

	if got := len(b.Anomalies()); got != 0 {
		t.Fatalf("expected no anomalies, got %d: %+v", got, b.Anomalies())
	}
	if len(tree.Roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree.Roots))
	}
	root := tree.Root()
	if root.Name != "John SMITH" {
		t.Errorf("expected root %q, got %q", "John SMITH", root.Name)
	}
	if len(tree.Individuals) != 4 {
		t.Fatalf("expected 4 individuals, got %d", len(tree.Individuals))
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children of root, got %d", len(root.Children))
	}

	james := root.Children[0]
	if james.Name != "James SMITH" {
		t.Fatalf("expected first child James, got %q", james.Name)
	}
	if james.Depth != 1 {
		t.Errorf("expected James at depth 1, got %d", james.Depth)
	}
	// The "2." header must refine the existing child, not create a twin.
	if james.BirthDate != "1825" {
		t.Errorf("expected promotion to merge birth date, got %q", james.BirthDate)
	}
	if len(james.Children) != 1 || james.Children[0].Name != "Robert SMITH" {
		t.Fatalf("expected Robert under James, got %+v", james.Children)
	}
	if james.Children[0].Depth != 2 {
		t.Errorf("expected Robert at depth 2, got %d", james.Children[0].Depth)
	}
}

func TestBuilder_DepthIsParentPlusOne(t *testing.T) {
	b := NewBuilder(testLogger())
	tree := feedAll(b,
		"1. A ONE.",
		"Children:",
		"2 i. B TWO.",
		"2. B TWO.",
		"Children:",
		"3 i. C THREE.",
		"3. C THREE.",
		"Children:",
		"4 i. D FOUR.",
	)
	for _, ind := range tree.Individuals {
		if ind.Parent == nil {
			continue
		}
		if ind.Depth != ind.Parent.Depth+1 {
			t.Errorf("%s: depth %d but parent depth %d", ind.Name, ind.Depth, ind.Parent.Depth)
		}
	}
	if d := tree.Individuals[len(tree.Individuals)-1].Depth; d != 3 {
		t.Errorf("expected deepest individual at depth 3, got %d", d)
	}
}

func TestBuilder_MarriageCreatesStubPartner(t *testing.T) {
	b := NewBuilder(testLogger())
	tree := feedAll(b,
		"1. John SMITH.",
		"He married Mary JONES.",
	)

	if len(tree.Unions) != 1 {
		t.Fatalf("expected 1 union, got %d", len(tree.Unions))
	}
	if len(tree.Individuals) != 2 {
		t.Fatalf("expected subject plus stub, got %d individuals", len(tree.Individuals))
	}

	john := tree.Root()
	if john.Sex != "M" {
		t.Errorf("expected pronoun hint to set sex M, got %q", john.Sex)
	}
	mary := tree.Unions[0].Other(john)
	if mary == nil || mary.Name != "Mary JONES" {
		t.Fatalf("expected union partner Mary JONES, got %+v", mary)
	}
	if !mary.IsStub() {
		t.Error("expected partner without a header to be a stub")
	}
	if mary.Surname != "JONES" {
		t.Errorf("expected stub surname JONES, got %q", mary.Surname)
	}
	if mary.Sex != "F" {
		t.Errorf("expected given-name inference to set F, got %q", mary.Sex)
	}
}

func TestBuilder_RepeatedMarriageLineDedupes(t *testing.T) {
	b := NewBuilder(testLogger())
	tree := feedAll(b,
		"1. John SMITH.",
		"He married Mary JONES.",
		"He married Mary JONES in 1850.",
	)
	if len(tree.Unions) != 1 {
		t.Fatalf("expected duplicate marriage to collapse into 1 union, got %d", len(tree.Unions))
	}
}

func TestBuilder_NameFallbackPromotion(t *testing.T) {
	// The re-introduction header carries a number never seen on a child
	// line; a unique name match still promotes instead of forking a root.
	b := NewBuilder(testLogger())
	tree := feedAll(b,
		"1. John SMITH.",
		"Children:",
		"2 i. Jane SMITH.",
		"3. Jane SMITH.",
	)
	if len(tree.Roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree.Roots))
	}
	if len(tree.Individuals) != 2 {
		t.Fatalf("expected 2 individuals (no duplicate Jane), got %d", len(tree.Individuals))
	}
	found := false
	for _, a := range b.Anomalies() {
		if a.Kind == AnomalyUnresolvedParent {
			found = true
		}
	}
	if !found {
		t.Error("expected the name-based resolution to be logged for review")
	}
}

func TestBuilder_ReintroductionMergesRecord(t *testing.T) {
	// The child's leading integer collides with the root's number and the
	// re-introduction header carries a fresh number; Jane must still end up
	// as one node carrying both header texts.
	b := NewBuilder(testLogger())
	tree := feedAll(b,
		"1. John SMITH b. 1800",
		"Children:",
		"1 i. Jane SMITH b. 1825",
		"2. Jane SMITH b. 1825",
	)

	if len(tree.Individuals) != 2 {
		t.Fatalf("expected 2 individuals, got %d", len(tree.Individuals))
	}
	john := tree.Root()
	if len(john.Children) != 1 {
		t.Fatalf("expected 1 child of John, got %d", len(john.Children))
	}
	jane := john.Children[0]
	if jane.Parent != john {
		t.Error("expected parent edge John to Jane")
	}
	if jane.BirthDate != "1825" {
		t.Errorf("expected birth date 1825, got %q", jane.BirthDate)
	}
	notes := jane.Notes()
	if !strings.Contains(notes, "1 i. Jane SMITH b. 1825") ||
		!strings.Contains(notes, "2. Jane SMITH b. 1825") {
		t.Errorf("expected both header texts merged into Jane's notes, got %q", notes)
	}
}

func TestBuilder_RepeatedPromotedNumberStaysSeparate(t *testing.T) {
	// An already promoted number repeating is OCR duplication; kept as an
	// extra root, never merged.
	b := NewBuilder(testLogger())
	tree := feedAll(b,
		"1. John SMITH.",
		"Children:",
		"2 i. James SMITH.",
		"2. James SMITH.",
		"2. James SMITH.",
	)
	if len(tree.Roots) != 2 {
		t.Fatalf("expected duplicated header to become an extra root, got %d roots", len(tree.Roots))
	}
	var dup, unresolved bool
	for _, a := range b.Anomalies() {
		switch a.Kind {
		case AnomalyDuplicateNumber:
			dup = true
		case AnomalyUnresolvedParent:
			unresolved = true
		}
	}
	if !dup || !unresolved {
		t.Errorf("expected duplicate and unresolved anomalies, got %+v", b.Anomalies())
	}
}

func TestBuilder_GarbledLineBecomesNote(t *testing.T) {
	b := NewBuilder(testLogger())
	tree := feedAll(b,
		"1. John SMITH.",
		"x@# lived in Sutherland !!",
	)
	notes := tree.Root().Notes()
	if !strings.Contains(notes, "lived in Sutherland") {
		t.Errorf("expected garbled line preserved in notes, got %q", notes)
	}
}

func TestBuilder_PreambleAttachesToFirstIndividual(t *testing.T) {
	b := NewBuilder(testLogger())
	tree := feedAll(b,
		"Descendants of John Smith of Scourie",
		"1. John SMITH.",
	)
	if len(b.Anomalies()) != 0 {
		t.Fatalf("expected no anomalies, got %+v", b.Anomalies())
	}
	if !strings.Contains(tree.Root().Notes(), "Descendants of John Smith") {
		t.Errorf("expected preamble in root notes, got %q", tree.Root().Notes())
	}
}

func TestBuilder_PreambleWithNoIndividuals(t *testing.T) {
	b := NewBuilder(testLogger())
	feedAll(b, "nothing but prose", "more prose")
	var found bool
	for _, a := range b.Anomalies() {
		if a.Kind == AnomalyUnattachedNoteText {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unattached note anomaly, got %+v", b.Anomalies())
	}
}

func TestBuilder_OrphanedChildHeader(t *testing.T) {
	b := NewBuilder(testLogger())
	tree := feedAll(b, "2 i. James SMITH.")
	if len(tree.Roots) != 1 {
		t.Fatalf("expected orphan kept as root, got %d roots", len(tree.Roots))
	}
	if tree.Root().Depth != 0 {
		t.Errorf("expected orphan at depth 0, got %d", tree.Root().Depth)
	}
	var structural, orphaned bool
	for _, a := range b.Anomalies() {
		switch a.Kind {
		case AnomalyStructural:
			structural = true
		case AnomalyOrphanedChild:
			orphaned = true
		}
	}
	if !structural || !orphaned {
		t.Errorf("expected structural and orphaned anomalies, got %+v", b.Anomalies())
	}
}

func TestBuilder_DamagedRomanKeepsChild(t *testing.T) {
	b := NewBuilder(testLogger())
	tree := feedAll(b,
		"1. John SMITH.",
		"Children:",
		"2 vx. Damaged CHILD.",
	)
	root := tree.Root()
	if len(root.Children) != 1 {
		t.Fatalf("expected damaged child still attached, got %d children", len(root.Children))
	}
	if root.Children[0].BirthOrder != 0 {
		t.Errorf("expected birth order 0 for damaged token, got %d", root.Children[0].BirthOrder)
	}
	var found bool
	for _, a := range b.Anomalies() {
		if a.Kind == AnomalyNumberingParse {
			found = true
		}
	}
	if !found {
		t.Errorf("expected numbering parse anomaly, got %+v", b.Anomalies())
	}
}

func TestBuilder_SiblingsSortedByBirthOrder(t *testing.T) {
	// OCR sometimes reorders lines; Finalize restores numeral order.
	b := NewBuilder(testLogger())
	tree := feedAll(b,
		"1. John SMITH.",
		"Children:",
		"3 ii. Sarah SMITH.",
		"2 i. James SMITH.",
	)
	root := tree.Root()
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	if root.Children[0].Name != "James SMITH" {
		t.Errorf("expected James first by birth order, got %q", root.Children[0].Name)
	}
}

func TestBuilder_InlineChildrenIntro(t *testing.T) {
	// OCR folds the intro onto the header line; no structural anomaly.
	b := NewBuilder(testLogger())
	tree := feedAll(b,
		"1. John SMITH. Children:",
		"2 i. James SMITH.",
	)
	if got := len(b.Anomalies()); got != 0 {
		t.Fatalf("expected no anomalies, got %+v", b.Anomalies())
	}
	if len(tree.Root().Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(tree.Root().Children))
	}
}

func TestBuilder_FeedAfterFinalizeIgnored(t *testing.T) {
	b := NewBuilder(testLogger())
	tree := feedAll(b, "1. John SMITH.")
	b.Feed(report.Line{Text: "2 i. James SMITH."})
	if len(tree.Individuals) != 1 {
		t.Errorf("expected feed after finalize to be ignored, got %d individuals", len(tree.Individuals))
	}
}

func TestBuilder_NumberLedProseStaysNote(t *testing.T) {
	// Prose that opens with a number ("12 In 1850 ...") reads like a child
	// token to the eye but must not mint a person.
	b := NewBuilder(testLogger())
	tree := feedAll(b,
		"1. John SMITH.",
		"Children:",
		"2 i. James SMITH.",
		"12 In 1850 he moved to Boston.",
	)
	if len(tree.Individuals) != 2 {
		t.Fatalf("expected 2 individuals, got %d", len(tree.Individuals))
	}
	james := tree.Root().Children[0]
	if !strings.Contains(james.Notes(), "12 In 1850 he moved to Boston.") {
		t.Errorf("expected prose kept as a note on James, got %q", james.Notes())
	}
}

func TestBuilder_SymmetricMarriageHeader(t *testing.T) {
	// "X and Y were married" inside a header: X is the subject, Y the stub.
	b := NewBuilder(testLogger())
	tree := feedAll(b,
		"1. Jane SMITH and Bob JONES were married in 1900.",
	)
	if len(tree.Individuals) != 2 {
		t.Fatalf("expected subject plus stub spouse, got %d individuals", len(tree.Individuals))
	}
	jane := tree.Root()
	if jane.Name != "Jane SMITH" {
		t.Fatalf("expected subject %q, got %q", "Jane SMITH", jane.Name)
	}
	if len(jane.Unions) != 1 {
		t.Fatalf("expected 1 union, got %d", len(jane.Unions))
	}
	partner := jane.Unions[0].Other(jane)
	if partner.Name != "Bob JONES" {
		t.Errorf("expected stub spouse %q, got %q", "Bob JONES", partner.Name)
	}
}
