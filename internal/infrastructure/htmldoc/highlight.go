package htmldoc

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HighlightClass is the class set on every highlight element
const HighlightClass = "sizeshop-highlight"

var highlightRegex = regexp.MustCompile(`\b\d+(?:\.\d+)?\s*(?:cm|centimeter|inch|in)\b`)

// highlightPolicy is the UGC policy plus the highlight marker
var highlightPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("mark")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^` + HighlightClass + `$`)).OnElements("mark")
	return p
}()

// Highlight wraps measurement-like text in data with highlight marks using
// the default size limit
func Highlight(data []byte) (string, int, error) {
	return NewLoader(DefaultMaxBytes).Highlight(data)
}

// Highlight parses a fresh copy of data, wraps every measurement-like run of
// text in <mark class="sizeshop-highlight"> and returns the sanitized body
// HTML with the number of marks added.
func (l *Loader) Highlight(data []byte) (string, int, error) {
	root, err := l.parse(data)
	if err != nil {
		return "", 0, err
	}

	count := markText(root)

	body := findElement(root, atom.Body)
	if body == nil {
		body = root
	}

	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", 0, fmt.Errorf("render html: %w", err)
		}
	}

	return highlightPolicy.Sanitize(buf.String()), count, nil
}

// markText splits matching text nodes under n and returns the marks added
func markText(n *html.Node) int {
	if n.Type == html.ElementNode && (skippedElements[n.DataAtom] || n.DataAtom == atom.Mark || n.DataAtom == atom.Textarea) {
		return 0
	}
	if n.Type == html.TextNode {
		return wrapMatches(n)
	}

	count := 0
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		count += markText(c)
		c = next
	}
	return count
}

func wrapMatches(text *html.Node) int {
	matches := highlightRegex.FindAllStringIndex(text.Data, -1)
	if len(matches) == 0 {
		return 0
	}

	parent := text.Parent
	data := text.Data
	last := 0
	for _, m := range matches {
		if m[0] > last {
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: data[last:m[0]]}, text)
		}
		mark := &html.Node{
			Type:     html.ElementNode,
			Data:     "mark",
			DataAtom: atom.Mark,
			Attr:     []html.Attribute{{Key: "class", Val: HighlightClass}},
		}
		mark.AppendChild(&html.Node{Type: html.TextNode, Data: data[m[0]:m[1]]})
		parent.InsertBefore(mark, text)
		last = m[1]
	}

	if last < len(data) {
		text.Data = data[last:]
	} else {
		parent.RemoveChild(text)
	}
	return len(matches)
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
