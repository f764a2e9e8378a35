package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gedgest/gedgest/internal/report"
)

// LayoutCSVParser reads the layout.csv that AWS Textract produces for a
// scanned report in Layout configuration: one row per detected text block,
// a "layout" column naming the block type and a "text" column with the
// content. This is the primary input path.
type LayoutCSVParser struct{}

// skippedLayouts are Textract block types that carry no narrative text.
var skippedLayouts = []string{"title", "page number", "section header"}

func (p *LayoutCSVParser) Parse(r io.Reader, filename string) (*report.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &report.Document{Title: titleFor(filename)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(unquoteField(name))] = i
	}
	textCol, ok := cols["text"]
	if !ok {
		return nil, fmt.Errorf("csv has no text column")
	}
	layoutCol, hasLayout := cols["layout"]
	pageCol, hasPage := cols["page"]

	doc := &report.Document{Title: titleFor(filename)}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if textCol >= len(row) {
			continue
		}

		if hasLayout && layoutCol < len(row) {
			layout := strings.ToLower(unquoteField(row[layoutCol]))
			if skipLayout(layout) {
				continue
			}
		}

		text := unquoteField(row[textCol])
		if text == "" {
			continue
		}
		// Generation banners sometimes escape section-header detection.
		if strings.HasPrefix(text, "Generation ") {
			continue
		}

		page := 0
		if hasPage && pageCol < len(row) {
			if n, err := strconv.Atoi(unquoteField(row[pageCol])); err == nil {
				page = n
			}
		}
		doc.Lines = append(doc.Lines, report.Line{Text: text, Page: page})
	}
	return doc, nil
}

func skipLayout(layout string) bool {
	for _, s := range skippedLayouts {
		if strings.HasPrefix(layout, s) {
			return true
		}
	}
	return false
}

// unquoteField strips the leading single quote Textract adds to force
// spreadsheet string typing, then trims whitespace.
func unquoteField(s string) string {
	s = strings.TrimPrefix(s, "'")
	return strings.TrimSpace(s)
}
