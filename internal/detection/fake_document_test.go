package detection

import (
	"errors"
	"strings"
)

// fakeDocument is an in-memory Document for tests
type fakeDocument struct {
	body      string
	tables    []Table
	selectors map[string]string
	invalid   map[string]bool
	queried   []string
}

func (d *fakeDocument) BodyText() string { return d.body }

func (d *fakeDocument) Tables() []Table { return d.tables }

func (d *fakeDocument) SelectText(selector string) (string, error) {
	d.queried = append(d.queried, selector)
	if d.invalid[selector] || strings.HasPrefix(selector, "xpath:") {
		return "", errors.New("unsupported selector")
	}
	return d.selectors[selector], nil
}

func headerRow(texts ...string) Row {
	row := Row{}
	for _, text := range texts {
		row.Cells = append(row.Cells, Cell{Text: text, Header: true})
	}
	return row
}

func dataRow(texts ...string) Row {
	row := Row{}
	for _, text := range texts {
		row.Cells = append(row.Cells, Cell{Text: text})
	}
	return row
}
