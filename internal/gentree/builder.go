package gentree

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/gedgest/gedgest/internal/report"
)

// Builder consumes the report line stream in document order and
// incrementally reconstructs the individual/family graph. A parent header
// finds the child it re-introduces through byNumber (NGSQ person number ->
// individual); generation depth then falls out of the promoted child's own
// Parent link, one deeper than its ancestor. Single-threaded; line order is
// the only synchronization.
type Builder struct {
	log  *slog.Logger
	tree *Tree

	byNumber map[int]*Individual
	promoted map[*Individual]bool

	subject *Individual // note/marriage attachment target
	parent  *Individual // child attachment target (last header promoted to parent)

	inChildren bool
	lastKind   report.RecordKind

	pending   []string // lines seen before the first individual exists
	anomalies []Anomaly
	lineNo    int
	page      int
	nextID    int
	nextUnion int
	finalized bool
}

// NewBuilder returns a builder for one conversion run. The logger may not
// be nil; pass slog.Default() for ad-hoc use.
func NewBuilder(log *slog.Logger) *Builder {
	return &Builder{
		log:      log,
		tree:     &Tree{},
		byNumber: make(map[int]*Individual),
		promoted: make(map[*Individual]bool),
	}
}

// Feed processes one line. It never fails: every line either advances the
// graph or degrades to note text plus an anomaly record.
func (b *Builder) Feed(line report.Line) {
	if b.finalized {
		return
	}
	b.lineNo++
	b.page = line.Page
	text := strings.TrimSpace(line.Text)

	kind := report.Classify(text)
	switch kind {
	case report.KindBlank:
		return // blanks do not interrupt header/intro adjacency
	case report.KindParentHeader:
		b.onParentHeader(text)
	case report.KindChildHeader:
		b.onChildHeader(text)
	case report.KindChildrenIntro:
		b.onChildrenIntro(text)
	case report.KindMarriage:
		b.onMarriage(text)
	default:
		b.appendNote(text)
	}
	b.lastKind = kind
}

// Finalize ends the stream. The returned tree is read-only; further Feed
// calls are ignored.
func (b *Builder) Finalize() *Tree {
	if b.finalized {
		return b.tree
	}
	b.finalized = true

	if len(b.pending) > 0 {
		// No individual ever existed to attach these to.
		b.record(AnomalyUnattachedNoteText,
			fmt.Sprintf("%d line(s) with no individual to attach to", len(b.pending)))
	}

	for _, ind := range b.tree.Individuals {
		if ind.Sex == "" {
			ind.Sex = InferSex(ind.Name, ind.Notes())
		}
		// Stable sibling order: birth-order numerals when present, document
		// order otherwise.
		sort.SliceStable(ind.Children, func(i, j int) bool {
			ci, cj := ind.Children[i], ind.Children[j]
			if ci.BirthOrder == 0 || cj.BirthOrder == 0 {
				return false
			}
			return ci.BirthOrder < cj.BirthOrder
		})
	}
	return b.tree
}

// Anomalies returns everything logged for manual review, in input order.
func (b *Builder) Anomalies() []Anomaly {
	return b.anomalies
}

func (b *Builder) onParentHeader(text string) {
	num, err := report.ParseParentHeader(text)
	if err != nil {
		b.downgrade(text, err)
		return
	}
	b.inChildren = false

	// OCR sometimes folds the child-list intro onto the header line.
	remainder := num.Remainder
	if strings.HasSuffix(remainder, " Children:") {
		b.inChildren = true
		remainder = strings.TrimSuffix(remainder, " Children:")
	}
	facts := report.ExtractFacts(remainder)

	prior := b.resolveParentHeader(num, facts)
	if prior != nil {
		// The header re-describes a previously listed child, now promoted to
		// an ancestor in their own right. No new individual: refine the stub.
		prior.AppendNote(text)
		if prior.Name == "" {
			prior.Name = facts.Name
			prior.Surname = facts.Surname
		}
		if prior.BirthDate == "" {
			prior.BirthDate = facts.BirthDate
		}
		if prior.RefID == "" {
			prior.RefID = facts.RefID
		}
		b.promoted[prior] = true
		b.registerNumber(num.Number, prior)
		b.subject = prior
		b.parent = prior
		b.log.Debug("promoted child to subject", "number", num.Number, "depth", prior.Depth)
		if facts.Marriage != "" {
			b.addUnion(prior, report.PartnerFromFragment(facts.Marriage, prior.Name), facts.Marriage)
		}
	} else {
		// Unresolved number: the document's starting ancestor, expected
		// exactly once. Repeats are OCR artifacts; kept as extra roots,
		// never merged.
		if len(b.tree.Roots) > 0 {
			b.record(AnomalyUnresolvedParent,
				fmt.Sprintf("parent header %d matches no previously seen child", num.Number))
		}
		ind := b.newIndividual(facts, num, 0)
		ind.AppendNote(text)
		b.tree.Roots = append(b.tree.Roots, ind)
		b.registerNumber(num.Number, ind)
		b.subject = ind
		b.parent = ind
		if facts.Marriage != "" {
			b.addUnion(ind, report.PartnerFromFragment(facts.Marriage, ind.Name), facts.Marriage)
		}
	}
}

// resolveParentHeader finds the previously listed child this header
// re-introduces, or nil when it should start a new root. Resolution is by
// person number; a child already promoted once (or a prior root) is never
// merged again, since a repeated numeral is more likely an OCR-duplicated
// header than a genuine re-introduction. When the number resolves to
// nothing, a single exact name match among unpromoted children is accepted
// instead, because OCR garbles digits more often than names.
func (b *Builder) resolveParentHeader(num report.Numbering, facts report.Facts) *Individual {
	if prior, ok := b.byNumber[num.Number]; ok {
		if prior.Parent != nil && !b.promoted[prior] {
			return prior
		}
		b.record(AnomalyDuplicateNumber,
			fmt.Sprintf("parent header %d repeats an already promoted number", num.Number))
		return nil
	}
	if facts.Name == "" {
		return nil
	}
	var match *Individual
	for _, ind := range b.tree.Individuals {
		if ind.Parent != nil && !b.promoted[ind] && ind.Name == facts.Name {
			if match != nil {
				return nil // ambiguous, fall back to a new root
			}
			match = ind
		}
	}
	if match != nil {
		b.record(AnomalyUnresolvedParent,
			fmt.Sprintf("parent header %d resolved to child %q by name", num.Number, facts.Name))
	}
	return match
}

func (b *Builder) onChildHeader(text string) {
	num, err := report.ParseChildHeader(text)
	if err != nil && num.Number == 0 {
		b.downgrade(text, err)
		return
	}
	if err != nil {
		// Damaged birth-order numeral; the child is still created.
		b.record(AnomalyNumberingParse, err.Error())
	}
	if !b.inChildren {
		b.record(AnomalyStructural,
			fmt.Sprintf("child header %q outside a children list", num.Token))
	}

	facts := report.ExtractFacts(num.Remainder)
	if b.parent == nil {
		// A child list with no parent in sight. Best effort: keep the person
		// as an extra root so no text is lost.
		b.record(AnomalyOrphanedChild,
			fmt.Sprintf("child header %q before any parent header", num.Token))
		ind := b.newIndividual(facts, num, 0)
		ind.AppendNote(text)
		b.tree.Roots = append(b.tree.Roots, ind)
		b.registerNumber(num.Number, ind)
		b.subject = ind
		return
	}

	child := b.newIndividual(facts, num, b.parent.Depth+1)
	child.AppendNote(text)
	child.Parent = b.parent
	b.parent.Children = append(b.parent.Children, child)
	b.registerNumber(num.Number, child)
	b.subject = child
	if facts.Marriage != "" {
		b.addUnion(child, report.PartnerFromFragment(facts.Marriage, child.Name), facts.Marriage)
	}
}

func (b *Builder) onChildrenIntro(text string) {
	if b.lastKind != report.KindParentHeader {
		b.record(AnomalyStructural, "children intro does not follow a parent header")
	}
	b.inChildren = true
	// Preserved like any other prose so no source line is lost.
	b.appendNote(text)
}

func (b *Builder) onMarriage(text string) {
	parts, ok := report.ParseMarriage(text)
	if !ok {
		b.appendNote(text)
		return
	}
	if b.subject == nil {
		b.record(AnomalyUnattachedNoteText, "marriage line before any individual")
		b.appendNote(text)
		return
	}
	b.subject.AppendNote(text)
	if parts.SexHint != "" && b.subject.Sex == "" {
		b.subject.Sex = parts.SexHint
	}
	partner := parts.Partner
	if parts.Subject != "" && parts.Partner == b.subject.Name {
		// "X and Y were married" with Y being the current subject.
		partner = parts.Subject
	}
	b.addUnion(b.subject, partner, text)
}

// appendNote attaches free text to the current subject, or stashes it until
// the first individual exists.
func (b *Builder) appendNote(text string) {
	if text == "" {
		return
	}
	if b.subject == nil {
		b.pending = append(b.pending, text)
		return
	}
	b.subject.AppendNote(text)
}

// downgrade handles a header-classified line with no extractable numbering:
// logged, then kept as plain note text.
func (b *Builder) downgrade(text string, err error) {
	b.record(AnomalyNumberingParse, err.Error())
	b.appendNote(text)
}

func (b *Builder) newIndividual(facts report.Facts, num report.Numbering, depth int) *Individual {
	b.nextID++
	ind := &Individual{
		ID:         b.nextID,
		Name:       facts.Name,
		Surname:    facts.Surname,
		RefID:      facts.RefID,
		BirthDate:  facts.BirthDate,
		Position:   num.Token,
		Number:     num.Number,
		BirthOrder: num.BirthOrder,
		Depth:      depth,
	}
	b.tree.Individuals = append(b.tree.Individuals, ind)
	if len(b.pending) > 0 {
		// Text that preceded the first header belongs to the first person.
		for _, p := range b.pending {
			ind.AppendNote(p)
		}
		b.pending = nil
	}
	return ind
}

func (b *Builder) registerNumber(number int, ind *Individual) {
	if prior, ok := b.byNumber[number]; ok && prior != ind {
		b.record(AnomalyDuplicateNumber,
			fmt.Sprintf("person number %d already used by %q", number, prior.Name))
	}
	b.byNumber[number] = ind
}

// addUnion creates (or annotates) the union between subject and the named
// partner. Partners never enumerated in the report become name-only stubs.
func (b *Builder) addUnion(subject *Individual, partnerName, note string) {
	if partnerName == "" {
		return
	}
	partner := b.findByName(partnerName)
	if partner == nil {
		b.nextID++
		partner = &Individual{
			ID:      b.nextID,
			Name:    partnerName,
			Surname: lastNameToken(partnerName),
			Depth:   subject.Depth,
		}
		b.tree.Individuals = append(b.tree.Individuals, partner)
	}
	for _, u := range subject.Unions {
		if u.Other(subject) == partner {
			if note != "" && !strings.Contains(u.Note, note) {
				if u.Note != "" {
					u.Note += " "
				}
				u.Note += note
			}
			return
		}
	}
	b.nextUnion++
	u := &Union{ID: b.nextUnion, Partners: [2]*Individual{subject, partner}, Note: note}
	subject.Unions = append(subject.Unions, u)
	partner.Unions = append(partner.Unions, u)
	b.tree.Unions = append(b.tree.Unions, u)
}

func (b *Builder) findByName(name string) *Individual {
	for _, ind := range b.tree.Individuals {
		if ind.Name == name {
			return ind
		}
	}
	return nil
}

func (b *Builder) record(kind AnomalyKind, msg string) {
	a := Anomaly{Kind: kind, Line: b.lineNo, Page: b.page, Message: msg}
	b.anomalies = append(b.anomalies, a)
	b.log.Warn("structural anomaly", "kind", string(kind), "line", b.lineNo, "detail", msg)
}

func lastNameToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
