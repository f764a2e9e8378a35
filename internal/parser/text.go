package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/gedgest/gedgest/internal/report"
)

// TextParser handles plain text transcriptions: one logical line per input
// line, blanks preserved (the classifier gives them their own kind).
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*report.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := &report.Document{Title: titleFor(filename)}
	for scanner.Scan() {
		doc.Lines = append(doc.Lines, report.Line{Text: scanner.Text()})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Trim trailing blanks so an ending newline does not add a line.
	for len(doc.Lines) > 0 && strings.TrimSpace(doc.Lines[len(doc.Lines)-1].Text) == "" {
		doc.Lines = doc.Lines[:len(doc.Lines)-1]
	}
	return doc, nil
}
