package ports

import "context"

// Worksheet is one named table inside the remote spreadsheet document. Rows
// are addressed by their 1-based position including the header row, so row
// identity is positional: deleting a row shifts every later row up by one.
type Worksheet interface {
	// Values returns every row of the sheet, header included.
	Values(ctx context.Context) ([][]string, error)
	// RowValues returns the cells of a single 1-based row.
	RowValues(ctx context.Context, row int) ([]string, error)
	// AppendRow writes values as a new last row.
	AppendRow(ctx context.Context, values []string) error
	// UpdateRow overwrites the cells of an existing 1-based row in place.
	UpdateRow(ctx context.Context, row int, values []string) error
	// DeleteRow removes the 1-based row, shifting later rows up.
	DeleteRow(ctx context.Context, row int) error
}

// Spreadsheet is the remote document holding all tables. Opening a worksheet
// that does not exist yet creates it.
type Spreadsheet interface {
	Worksheet(ctx context.Context, name string) (Worksheet, error)
	Ping(ctx context.Context) error
}
