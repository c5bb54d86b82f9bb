package sheets

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/actonians/regsync/pkg/errors"
	"github.com/actonians/regsync/pkg/records"
)

// CSVStore is a Store backed by a directory of CSV files, one file per
// sheet name. It serves offline runs and tests without Google
// credentials.
type CSVStore struct {
	dir string
}

// NewCSVStore creates a store over the given directory.
func NewCSVStore(dir string) *CSVStore {
	return &CSVStore{dir: dir}
}

// Read loads <dir>/<name>.csv; the first row is the header.
func (s *CSVStore) Read(_ context.Context, name string) ([]string, []records.Raw, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		return nil, nil, errors.NewSourceError(sourceName, "cannot open sheet "+name, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows are padded by toRaw
	grid, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.NewSourceError(sourceName, "cannot parse sheet "+name, err)
	}
	if len(grid) == 0 {
		return nil, nil, errors.NewSourceError(sourceName, "sheet "+name+" has no header row", nil)
	}

	return grid[0], toRaw(grid[0], grid[1:]), nil
}

// Write replaces <dir>/<name>.csv with the header and rows.
func (s *CSVStore) Write(_ context.Context, name string, header []string, rows [][]string) error {
	f, err := os.Create(s.path(name))
	if err != nil {
		return errors.NewSourceError(sourceName, "cannot create sheet "+name, err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		_ = f.Close()
		return errors.NewSourceError(sourceName, "cannot write sheet "+name, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			_ = f.Close()
			return errors.NewSourceError(sourceName, "cannot write sheet "+name, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = f.Close()
		return errors.NewSourceError(sourceName, "cannot write sheet "+name, err)
	}
	return f.Close()
}

func (s *CSVStore) path(name string) string {
	return filepath.Join(s.dir, name+".csv")
}
