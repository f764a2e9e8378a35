package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingsSkipped(t *testing.T) {
	input := `# Descendants of John SMITH

1. John SMITH was born in 1800.

## Generation Two

2 i. James SMITH was born in 1825.
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "smith.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The first h1 becomes the document title; no heading text appears
	// as a line.
	if doc.Title != "Descendants of John SMITH" {
		t.Errorf("expected title from h1, got %q", doc.Title)
	}
	want := []string{
		"1. John SMITH was born in 1800.",
		"2 i. James SMITH was born in 1825.",
	}
	if len(doc.Lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %+v", len(want), len(doc.Lines), doc.Lines)
	}
	for i, w := range want {
		if doc.Lines[i].Text != w {
			t.Errorf("line[%d]: expected %q, got %q", i, w, doc.Lines[i].Text)
		}
	}
}

func TestMarkdownParser_ParagraphSplitIntoLines(t *testing.T) {
	// A soft-wrapped paragraph yields one logical line per source line.
	input := "1. John SMITH was born in 1800.\nHe married Mary JONES.\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(doc.Lines), doc.Lines)
	}
	if doc.Lines[1].Text != "He married Mary JONES." {
		t.Errorf("expected second source line preserved, got %q", doc.Lines[1].Text)
	}
}

func TestMarkdownParser_NoHeadingsUsesFilename(t *testing.T) {
	input := "Just some plain text.\n\nAnother paragraph here.\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "plain" {
		t.Errorf("expected filename-derived title %q, got %q", "plain", doc.Title)
	}
	if len(doc.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(doc.Lines))
	}
}

func TestMarkdownParser_ListItems(t *testing.T) {
	// Some OCR pipelines render child entries as list items.
	input := "- 2 i. James SMITH.\n- 3 ii. Sarah SMITH.\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "list.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(doc.Lines), doc.Lines)
	}
	if !strings.Contains(doc.Lines[0].Text, "2 i. James SMITH.") {
		t.Errorf("expected first list item text, got %q", doc.Lines[0].Text)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Lines) != 0 {
		t.Errorf("expected 0 lines for empty input, got %d", len(doc.Lines))
	}
}
