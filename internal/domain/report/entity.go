package report

import "time"

// Document is a backend independent paginated report. Each section starts on
// a new page.
type Document struct {
	Title    string
	Columns  [5]string
	Sections []Section
}

// Section holds one worker's header and grid.
type Section struct {
	Header []HeaderLine
	Rows   []Row

	// SheetName is a short unique name for renderers that need one.
	SheetName string
}

type HeaderLine struct {
	Label string
	Value string
}

// Row is one calendar day: date followed by the four punch slots.
type Row struct {
	Date  time.Time
	Cells [5]string
}
