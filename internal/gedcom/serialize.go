package gedcom

import (
	"fmt"

	"github.com/gedgest/gedgest/internal/gentree"
)

// Options configure the document envelope.
type Options struct {
	Source    string // HEAD SOUR value
	Submitter string // SUBM NAME value
}

// DefaultOptions mirror what the service emits when nothing is configured.
func DefaultOptions() Options {
	return Options{Source: "gedgest", Submitter: "gedgest"}
}

// family is one FAM record to be emitted: the enumerated subject, their
// spouse from a union (possibly a stub), and the subject's children.
type family struct {
	xref     string
	owner    *gentree.Individual
	spouse   *gentree.Individual
	children []*gentree.Individual
	note     string
}

// Serialize walks a finalized tree and renders the complete document:
// header, submitter, one INDI per individual, one FAM per family, trailer.
// The tree is not mutated; output is deterministic for a given tree.
func Serialize(tree *gentree.Tree, opts Options) string {
	if opts.Source == "" {
		opts.Source = "gedgest"
	}
	if opts.Submitter == "" {
		opts.Submitter = opts.Source
	}

	fams, famOf, spouseIn := assignFamilies(tree)

	w := &writer{}
	w.line(0, "", "HEAD", "")
	w.line(1, "", "SOUR", opts.Source)
	w.line(1, "", "SUBM", "@SUB1@")
	w.line(1, "", "GEDC", "")
	w.line(2, "", "VERS", "5.5.1")
	w.line(2, "", "FORM", "LINEAGE-LINKED")
	w.line(1, "", "CHAR", "UTF-8")
	w.line(0, "SUB1", "SUBM", "")
	w.line(1, "", "NAME", opts.Submitter)

	for _, ind := range emitOrder(tree) {
		writeIndividual(w, ind, famOf, spouseIn)
	}
	for _, f := range fams {
		writeFamily(w, f)
	}

	w.line(0, "", "TRLR", "")
	return w.String()
}

// assignFamilies decides which FAM records exist and hands out xrefs in a
// deterministic order. A family is owned by the enumerated subject: the
// first partner of each union they initiated, plus anyone with children.
// The subject's first union and their child list share one family; further
// unions get partner-only families of their own.
func assignFamilies(tree *gentree.Tree) (fams []*family, famOf map[*gentree.Individual]*family, spouseIn map[*gentree.Individual][]*family) {
	famOf = make(map[*gentree.Individual]*family)
	spouseIn = make(map[*gentree.Individual][]*family)

	addSpouse := func(f *family, ind *gentree.Individual) {
		spouseIn[ind] = append(spouseIn[ind], f)
	}

	for _, ind := range tree.Individuals {
		var owned []*gentree.Union
		for _, u := range ind.Unions {
			if u.Partners[0] == ind {
				owned = append(owned, u)
			}
		}
		if len(ind.Children) == 0 && len(owned) == 0 {
			continue
		}

		primary := &family{
			xref:     fmt.Sprintf("F%d", len(fams)+1),
			owner:    ind,
			children: ind.Children,
		}
		if len(owned) > 0 {
			primary.spouse = owned[0].Other(ind)
			primary.note = owned[0].Note
		}
		fams = append(fams, primary)
		famOf[ind] = primary
		addSpouse(primary, ind)
		if primary.spouse != nil {
			addSpouse(primary, primary.spouse)
		}

		for _, u := range owned[min(1, len(owned)):] {
			extra := &family{
				xref:   fmt.Sprintf("F%d", len(fams)+1),
				owner:  ind,
				spouse: u.Other(ind),
				note:   u.Note,
			}
			fams = append(fams, extra)
			addSpouse(extra, ind)
			if extra.spouse != nil {
				addSpouse(extra, extra.spouse)
			}
		}
	}
	return fams, famOf, spouseIn
}

// emitOrder lists individuals descent-first from each root (the narrative
// order of the report), then anyone not reachable that way (spouse stubs),
// in creation order.
func emitOrder(tree *gentree.Tree) []*gentree.Individual {
	seen := make(map[*gentree.Individual]bool)
	var order []*gentree.Individual
	var walk func(*gentree.Individual)
	walk = func(ind *gentree.Individual) {
		if seen[ind] {
			return
		}
		seen[ind] = true
		order = append(order, ind)
		for _, child := range ind.Children {
			walk(child)
		}
	}
	for _, root := range tree.Roots {
		walk(root)
	}
	for _, ind := range tree.Individuals {
		if !seen[ind] {
			seen[ind] = true
			order = append(order, ind)
		}
	}
	return order
}

func writeIndividual(w *writer, ind *gentree.Individual, famOf map[*gentree.Individual]*family, spouseIn map[*gentree.Individual][]*family) {
	w.line(0, fmt.Sprintf("I%d", ind.ID), "INDI", "")
	w.line(1, "", "NAME", truncName(ind.Name))
	if ind.Surname != "" {
		w.line(2, "", "SURN", ind.Surname)
	}
	if ind.Sex != "" {
		w.line(1, "", "SEX", ind.Sex)
	}
	if ind.BirthDate != "" {
		w.line(1, "", "BIRT", "")
		w.line(2, "", "DATE", ind.BirthDate)
	}
	if ind.RefID != "" {
		w.line(1, "", "REFN", ind.RefID)
	}
	if ind.Parent != nil {
		if pf := famOf[ind.Parent]; pf != nil {
			w.line(1, "", "FAMC", "@"+pf.xref+"@")
		}
	}
	for _, f := range spouseIn[ind] {
		w.line(1, "", "FAMS", "@"+f.xref+"@")
	}
	// The raw header and every accumulated line, so hand correction never
	// needs the source scan.
	w.note(1, ind.Notes())
}

func writeFamily(w *writer, f *family) {
	w.line(0, f.xref, "FAM", "")

	husb, wife := f.owner, f.spouse
	// An owner of unknown sex is listed as HUSB.
	if f.owner.Sex == "F" || (f.spouse != nil && f.spouse.Sex == "M") {
		husb, wife = f.spouse, f.owner
	}
	if husb != nil {
		w.line(1, "", "HUSB", fmt.Sprintf("@I%d@", husb.ID))
	}
	if wife != nil {
		w.line(1, "", "WIFE", fmt.Sprintf("@I%d@", wife.ID))
	}
	for _, child := range f.children {
		w.line(1, "", "CHIL", fmt.Sprintf("@I%d@", child.ID))
	}
	w.note(1, f.note)
}
