package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/gedgest/gedgest/internal/report"
)

// HTMLParser handles HTML and hOCR transcriptions. hOCR (the HTML-based OCR
// interchange format) marks logical lines with class "ocr_line"; when those
// are present each becomes one report line, with the page taken from the
// enclosing "ocr_page". Plain HTML falls back to block-element text.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*report.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &report.Document{Title: titleFor(filename)}
	if t := findTitle(root); t != "" {
		doc.Title = t
	}

	if lines := collectHOCRLines(root); len(lines) > 0 {
		doc.Lines = lines
		return doc, nil
	}

	// Generic HTML: every text-bearing block element is one line.
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote", "h1", "h2", "h3", "h4", "h5", "h6":
				for _, line := range strings.Split(textContent(n), "\n") {
					if strings.TrimSpace(line) != "" {
						doc.Lines = append(doc.Lines, report.Line{Text: line})
					}
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if body := findBody(root); body != nil {
		walk(body)
	} else {
		walk(root)
	}
	return doc, nil
}

// collectHOCRLines gathers class="ocr_line" elements in document order.
func collectHOCRLines(root *html.Node) []report.Line {
	var lines []report.Line
	var walk func(n *html.Node, page int)
	walk = func(n *html.Node, page int) {
		if n.Type == html.ElementNode {
			if hasClass(n, "ocr_page") {
				page = pageNumber(n, page)
			}
			if hasClass(n, "ocr_line") || hasClass(n, "ocr_header") {
				text := strings.Join(strings.Fields(textContent(n)), " ")
				if text != "" {
					lines = append(lines, report.Line{Text: text, Page: page})
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, page)
		}
	}
	walk(root, 0)
	return lines
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// pageNumber reads the page ordinal from an ocr_page id ("page_3"), keeping
// the inherited value when absent.
func pageNumber(n *html.Node, inherited int) int {
	for _, a := range n.Attr {
		if a.Key != "id" {
			continue
		}
		if idx := strings.LastIndex(a.Val, "_"); idx >= 0 {
			if num, err := strconv.Atoi(a.Val[idx+1:]); err == nil {
				return num
			}
		}
	}
	return inherited
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
