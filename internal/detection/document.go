package detection

// Document is the read-only page view the detector works on. Implementations
// must not be mutated by any detector call.
type Document interface {
	// BodyText returns the rendered text of the page body.
	BodyText() string
	// Tables returns every table of the page in document order.
	Tables() []Table
	// SelectText returns the concatenated text of all elements matching the
	// selector, or an error when the selector cannot be evaluated.
	SelectText(selector string) (string, error)
}

// Table is a snapshot of one HTML table
type Table struct {
	Rows []Row
}

// Row is one table row
type Row struct {
	Cells []Cell
}

// Cell is one table cell; Header marks <th> cells
type Cell struct {
	Text   string
	Header bool
}

// HasHeaderCell reports whether the row contains a header-marked cell
func (r Row) HasHeaderCell() bool {
	for _, cell := range r.Cells {
		if cell.Header {
			return true
		}
	}
	return false
}
