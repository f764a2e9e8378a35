package report

import (
	"regexp"
	"strings"
)

// Facts is the structured best-effort reading of a header remainder.
// Anything not consumed by a recognizer survives in Residual; the pipeline
// never discards source text.
type Facts struct {
	Name      string
	Surname   string // Last whitespace token of Name. A heuristic, often wrong.
	RefID     string // External numbering id ("#123" after the name), if present
	BirthDate string // Raw date text, unparsed
	Marriage  string // Marriage fragment, if the header prose contains one
	Residual  string
}

// recognizer locates one optional fact in remainder prose. Tried in order;
// the first match for each field wins and its span is consumed. New report
// generators introduce new phrasings, so these stay data, not branching.
type recognizer struct {
	name string
	re   *regexp.Regexp
}

// refIDRe matches the "NAME #123," convention some compilers use to carry an
// external person id (e.g. Ross MacKay numbers) inline with the name.
var refIDRe = regexp.MustCompile(`^([^#]+) #(\d+)[,.]?\s*(.*)$`)

var birthRecognizers = []recognizer{
	{"b-abbrev", regexp.MustCompile(`(?:^|[,;]? )b\. ?([^,;.]+)`)},
	{"was-born", regexp.MustCompile(`(?:^|[,;]? )was born (?:on |in )?([^,;.]+)`)},
	{"born", regexp.MustCompile(`(?:^|[,;]? )born (?:on |in )?([^,;.]+)`)},
}

var marriageRecognizers = []recognizer{
	{"pronoun-married", regexp.MustCompile(`(?:^|[.,;]? )(?:He|She) married .+$`)},
	// Symmetric form before the bare verb: "X and Y were married in 1900"
	// would otherwise match "married in 1900" and split the pair mid-name.
	{"were-married", regexp.MustCompile(`(?:^|[.,;]? ).+? and .+? were married[^,;]*`)},
	{"married", regexp.MustCompile(`(?:^|[.,;]? )married .+$`)},
}

// ExtractFacts pulls name, birth date, and marriage fragments out of the
// free text following a numbering token. Everything unmatched lands in
// Residual verbatim.
func ExtractFacts(remainder string) Facts {
	var f Facts
	text := strings.TrimSpace(remainder)
	if text == "" {
		return f
	}

	if m := refIDRe.FindStringSubmatch(text); m != nil {
		f.RefID = m[2]
		text = strings.TrimSpace(m[1])
		if rest := strings.TrimSpace(m[3]); rest != "" {
			text = text + " " + rest
		}
	}

	// The name runs from the start of the text to the first recognized fact.
	nameEnd := len(text)

	consume := func(recs []recognizer) (string, int) {
		for _, r := range recs {
			loc := r.re.FindStringSubmatchIndex(text)
			if loc == nil {
				continue
			}
			if loc[0] < nameEnd {
				nameEnd = loc[0]
			}
			if len(loc) >= 4 && loc[2] >= 0 {
				return strings.TrimSpace(text[loc[2]:loc[3]]), loc[0]
			}
			return strings.TrimSpace(text[loc[0]:loc[1]]), loc[0]
		}
		return "", -1
	}

	if date, at := consume(birthRecognizers); at >= 0 {
		// Dates run to the next clause, not through it ("b. 1800 and died...").
		if cut := strings.Index(date, " and "); cut > 0 {
			date = date[:cut]
		}
		f.BirthDate = strings.TrimRight(strings.TrimSpace(date), ".")
	}
	if frag, at := consume(marriageRecognizers); at >= 0 {
		f.Marriage = strings.Trim(frag, " .,;")
	}

	f.Name = cleanName(text[:nameEnd])
	if f.Name == "" && f.Marriage != "" {
		// "X and Y were married" fragments start the remainder, so nothing
		// precedes them; the subject is the left-hand side of the pair.
		if m := wereMarriedRe.FindStringSubmatch(f.Marriage); m != nil {
			f.Name = cleanName(m[1])
		}
	}
	f.Surname = lastToken(f.Name)

	// Residual: the text with the name and consumed fact spans removed.
	residual := text[nameEnd:]
	for _, consumed := range []string{f.BirthDate, f.Marriage} {
		if consumed != "" {
			residual = strings.Replace(residual, consumed, "", 1)
		}
	}
	residual = strings.Trim(residual, " .,;")
	residual = strings.TrimPrefix(residual, "b.")
	residual = strings.Trim(residual, " .,;")
	f.Residual = residual
	return f
}

// lastToken returns the final whitespace-delimited token. As a surname rule
// this fails on suffixes ("Jr."), multi-word surnames, and titles; the raw
// name and header text are always preserved alongside it.
func lastToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
