package report

import (
	"regexp"
	"strings"
)

// Header shapes used by NGSQ report generators. A parent header is a whole
// number, a period, and a space. A child header is an optional "+" (carried
// forward into a later generation), the child's whole number, and a
// Roman-numeral birth order with an optional trailing period; the numeral
// token must end at a period, a space, or the end of the line, so prose that
// happens to start with digits ("12 In 1850 ...") is not a header.
var (
	parentHeaderRe = regexp.MustCompile(`^(\d+)\. (.*)$`)
	childHeaderRe  = regexp.MustCompile(`^(\+)? ?(\d+) +([ivxlcIVXLC]+)\.?(?: (.*))?$`)
)

// childrenIntroPhrases are known phrasings that introduce a child list.
// Report generators vary; new phrasings get appended here. Lines that match
// none of these fall through to other kinds rather than erroring.
var childrenIntroPhrases = []string{
	"Children:",
	"Children of ",
	"Child:",
	"Known children of ",
}

// marriagePatterns are known standalone marriage phrasings. Ordered: the
// pronoun forms also carry a sex hint, so they are tried first.
var marriagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(He|She) married (.+)$`),
	regexp.MustCompile(`^(.+?) and (.+?) were married\b(.*)$`),
}

// Classify assigns exactly one RecordKind to a raw line. It is a total
// function: OCR noise guarantees unanticipated input, so anything
// unrecognized is KindUnclassified, never an error. Patterns are checked in
// priority order because prefixes can be ambiguous (a child header also
// starts with digits).
func Classify(text string) RecordKind {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return KindBlank
	}
	if parentHeaderRe.MatchString(trimmed) {
		return KindParentHeader
	}
	if childHeaderRe.MatchString(trimmed) {
		return KindChildHeader
	}
	for _, phrase := range childrenIntroPhrases {
		if trimmed == strings.TrimSpace(phrase) || strings.HasPrefix(trimmed, phrase) {
			return KindChildrenIntro
		}
	}
	for _, re := range marriagePatterns {
		if re.MatchString(trimmed) {
			return KindMarriage
		}
	}
	return KindUnclassified
}

// MarriageParts holds the pieces of a recognized marriage phrasing.
type MarriageParts struct {
	Subject string // Named subject, empty for pronoun forms
	Partner string
	SexHint string // "M" or "F" from He/She, else empty
}

// ParseMarriage extracts the partner (and optional subject and sex hint)
// from a line already classified as KindMarriage.
func ParseMarriage(text string) (MarriageParts, bool) {
	trimmed := strings.TrimSpace(text)
	if m := marriagePatterns[0].FindStringSubmatch(trimmed); m != nil {
		hint := "M"
		if m[1] == "She" {
			hint = "F"
		}
		return MarriageParts{Partner: TrimPartnerClause(m[2]), SexHint: hint}, true
	}
	if m := marriagePatterns[1].FindStringSubmatch(trimmed); m != nil {
		return MarriageParts{Subject: cleanName(m[1]), Partner: TrimPartnerClause(m[2])}, true
	}
	return MarriageParts{}, false
}

// cleanName strips trailing sentence punctuation from an extracted name.
func cleanName(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ".,;")
}

// partnerClauseCuts mark where a partner name ends and trailing prose
// begins ("Mary JONES on 5 June 1850 in Boston").
var partnerClauseCuts = []string{" on ", " in ", " at ", " about ", ", "}

// TrimPartnerClause cuts trailing clauses off an extracted partner name.
func TrimPartnerClause(s string) string {
	for _, cut := range partnerClauseCuts {
		if idx := strings.Index(s, cut); idx > 0 {
			s = s[:idx]
		}
	}
	return cleanName(s)
}

var marriedTailRe = regexp.MustCompile(`married (?:to )?(.+)$`)
var wereMarriedRe = regexp.MustCompile(`^(.+?) and (.+?) were married`)

// PartnerFromFragment extracts the spouse name from a marriage fragment that
// the fact extractor pulled out of header prose. subjectName disambiguates
// the symmetric "X and Y were married" form; either side may be the subject.
func PartnerFromFragment(fragment, subjectName string) string {
	if m := wereMarriedRe.FindStringSubmatch(fragment); m != nil {
		first, second := cleanName(m[1]), cleanName(m[2])
		if first == cleanName(subjectName) {
			return TrimPartnerClause(second)
		}
		return TrimPartnerClause(first)
	}
	if m := marriedTailRe.FindStringSubmatch(fragment); m != nil {
		return TrimPartnerClause(m[1])
	}
	return ""
}
