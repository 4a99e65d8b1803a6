package htmldoc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/sizeshop/backend/internal/detection"
)

// DefaultMaxBytes is the largest page accepted when no limit is configured
const DefaultMaxBytes = 5 * 1024 * 1024

// XPathPrefix marks a selector as an XPath expression
const XPathPrefix = "xpath:"

var (
	// ErrEmptyDocument is returned for zero-length input
	ErrEmptyDocument = errors.New("empty document")

	// ErrDocumentTooLarge is returned when input exceeds the size limit
	ErrDocumentTooLarge = errors.New("document too large")

	// ErrUnsupportedContent is returned when input does not sniff as text
	ErrUnsupportedContent = errors.New("unsupported content type")
)

// Document is a parsed page. It implements detection.Document.
type Document struct {
	root *html.Node
	doc  *goquery.Document
}

var _ detection.Document = (*Document)(nil)

// Loader parses pages under a size limit
type Loader struct {
	MaxBytes int
}

// NewLoader creates a loader; a non-positive limit means DefaultMaxBytes
func NewLoader(maxBytes int) *Loader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Loader{MaxBytes: maxBytes}
}

// Load parses data with the default size limit
func Load(data []byte) (*Document, error) {
	return NewLoader(DefaultMaxBytes).Load(data)
}

// Load validates, decodes and parses data
func (l *Loader) Load(data []byte) (*Document, error) {
	root, err := l.parse(data)
	if err != nil {
		return nil, err
	}
	return &Document{
		root: root,
		doc:  goquery.NewDocumentFromNode(root),
	}, nil
}

func (l *Loader) parse(data []byte) (*html.Node, error) {
	if err := l.validate(data); err != nil {
		return nil, err
	}

	reader, err := charset.NewReader(bytes.NewReader(data), "text/html; charset="+detectCharset(data))
	if err != nil {
		return html.Parse(bytes.NewReader(data))
	}

	root, err := html.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return root, nil
}

func (l *Loader) validate(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyDocument
	}
	if len(data) > l.MaxBytes {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrDocumentTooLarge, len(data), l.MaxBytes)
	}
	if mtype := mimetype.Detect(data); !isText(mtype) {
		return fmt.Errorf("%w: %s", ErrUnsupportedContent, mtype.String())
	}
	return nil
}

// isText reports whether the sniffed type is text/plain or derives from it
func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// detectCharset guesses the page encoding; valid UTF-8 is taken as is
func detectCharset(data []byte) string {
	if utf8.Valid(data) {
		return "utf-8"
	}
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil {
		return "windows-1252"
	}
	return strings.ToLower(result.Charset)
}

// BodyText returns the rendered text of <body>, or of the whole document
// when there is no body
func (d *Document) BodyText() string {
	body := d.doc.Find("body")
	if body.Length() == 0 {
		return innerText(d.root)
	}
	return innerText(body.Get(0))
}

// Tables returns every table with its own rows, in document order.
// Rows of nested tables belong only to the nested table.
func (d *Document) Tables() []detection.Table {
	var tables []detection.Table

	d.doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		owner := table.Get(0)
		var rows []detection.Row

		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			if tr.Closest("table").Get(0) != owner {
				return
			}
			row := detection.Row{}
			tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
				row.Cells = append(row.Cells, detection.Cell{
					Text:   flatText(cell.Get(0)),
					Header: goquery.NodeName(cell) == "th",
				})
			})
			rows = append(rows, row)
		})

		tables = append(tables, detection.Table{Rows: rows})
	})

	return tables
}

// SelectText returns the text of every element matched by selector, space
// separated. Selectors prefixed with "xpath:" or starting with "/" are XPath,
// anything else is CSS. Invalid selectors return an error.
func (d *Document) SelectText(selector string) (string, error) {
	nodes, err := d.selectNodes(selector)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if text := flatText(n); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}

func (d *Document) selectNodes(selector string) ([]*html.Node, error) {
	if expr, ok := xpathExpr(selector); ok {
		nodes, err := htmlquery.QueryAll(d.root, expr)
		if err != nil {
			return nil, fmt.Errorf("xpath %q: %w", expr, err)
		}
		return nodes, nil
	}

	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("css selector %q: %w", selector, err)
	}
	return d.doc.FindMatcher(matcher).Nodes, nil
}

func xpathExpr(selector string) (string, bool) {
	trimmed := strings.TrimSpace(selector)
	if strings.HasPrefix(trimmed, XPathPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(trimmed, XPathPrefix)), true
	}
	if strings.HasPrefix(trimmed, "/") {
		return trimmed, true
	}
	return "", false
}
