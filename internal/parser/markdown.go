package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/gedgest/gedgest/internal/report"
)

// MarkdownParser handles Markdown transcriptions using goldmark. Some OCR
// tools emit Markdown with generation banners as headings; headings are
// treated like the CSV path treats section headers and skipped, while block
// content is split back into logical lines.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*report.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	doc := &report.Document{Title: titleFor(filename)}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			// First heading doubles as the document title.
			if doc.Title == titleFor(filename) && h.Level == 1 {
				if t := nodeText(h, src); t != "" {
					doc.Title = t
				}
			}
			continue
		}
		for _, line := range strings.Split(nodeText(n, src), "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			doc.Lines = append(doc.Lines, report.Line{Text: line})
		}
	}
	return doc, nil
}

// nodeText gets the text content of a goldmark AST node.
func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			if n.Type() != ast.TypeBlock {
				buf.Write(t.Value(src))
				if t.HardLineBreak() || t.SoftLineBreak() {
					buf.WriteByte('\n')
				}
			}
		} else {
			buf.WriteString(nodeText(c, src))
			if c.Type() == ast.TypeBlock {
				buf.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
