package ingestion

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// MinContentChars is the length a selector's text must exceed to be accepted.
const MinContentChars = 100

// DefaultTitle is used when the page has neither a <title> nor an <h1>.
const DefaultTitle = "Job Posting"

// nonContentTags never contribute visible text.
const nonContentTags = "script, style, noscript, template"

// ExtractContent locates the job description in doc. Selectors for the board
// matching host are tried first, then GenericSelectors, then the body, then
// the whole document.
func ExtractContent(doc *goquery.Document, host string) string {
	doc.Find(nonContentTags).Remove()

	if board := boardForHost(host); board != nil {
		if content, ok := firstSubstantial(doc, board.Selectors); ok {
			return content
		}
	}

	if content, ok := firstSubstantial(doc, GenericSelectors); ok {
		return content
	}

	if body := doc.Find("body"); body.Length() > 0 {
		return selectionText(body)
	}

	return selectionText(doc.Selection)
}

// ExtractTitle returns the page title, the first <h1>, or DefaultTitle.
func ExtractTitle(doc *goquery.Document) string {
	if title := collapseWhitespace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		if text := selectionText(h1); text != "" {
			return text
		}
	}
	return DefaultTitle
}

func firstSubstantial(doc *goquery.Document, selectors []string) (string, bool) {
	for _, selector := range selectors {
		matches := doc.Find(selector)
		if matches.Length() == 0 {
			continue
		}
		content := selectionText(matches)
		if utf8.RuneCountInString(content) > MinContentChars {
			return content, true
		}
	}
	return "", false
}

// selectionText joins the text of every matched element in document order.
// Text nodes are separated by spaces so adjacent blocks don't run together.
func selectionText(sel *goquery.Selection) string {
	parts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		var b strings.Builder
		for _, n := range s.Nodes {
			writeText(&b, n)
		}
		if text := collapseWhitespace(b.String()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}

func writeText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
}
