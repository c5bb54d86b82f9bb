// Package sheets provides the spreadsheet store collaborator: reading
// raw registration responses and writing reconciliation results back.
//
// The reconciliation core never inspects spreadsheet structure; it
// consumes and produces plain record collections. Two implementations
// exist: GoogleStore against the Google Sheets API and CSVStore against
// a local directory, used for offline runs and tests.
package sheets

import (
	"context"

	"github.com/actonians/regsync/pkg/records"
)

// Store reads and writes named sheets of records.
type Store interface {
	// Read returns a sheet's header row and its data rows keyed by the
	// header column names.
	Read(ctx context.Context, name string) (header []string, rows []records.Raw, err error)

	// Write replaces a sheet's contents with the given header and rows.
	Write(ctx context.Context, name string, header []string, rows [][]string) error
}

// toRaw converts a header plus cell grid into keyed records. Rows
// shorter than the header are padded with empty cells; cells beyond
// the header are dropped.
func toRaw(header []string, grid [][]string) []records.Raw {
	rows := make([]records.Raw, 0, len(grid))
	for _, cells := range grid {
		row := make(records.Raw, len(header))
		for i, col := range header {
			if i < len(cells) {
				row[col] = cells[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}
