package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/actonians/regsync/pkg/errors"
	"github.com/actonians/regsync/pkg/logging"
	"github.com/actonians/regsync/pkg/records"
)

// sourceName identifies this collaborator in errors and logs.
const sourceName = "sheets"

// GoogleStore reads and writes spreadsheets through the Google Sheets
// API, locating them by title through the Drive file list. Sheets must
// be shared with the service account's client email.
type GoogleStore struct {
	svc   *sheets.Service
	drive *drive.Service
}

// NewGoogleStore creates a store authenticated with a service account
// credentials file.
func NewGoogleStore(ctx context.Context, credentialsFile string) (*GoogleStore, error) {
	sheetsSvc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, errors.NewSourceError(sourceName, "cannot create sheets service", err)
	}

	driveSvc, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveReadonlyScope))
	if err != nil {
		return nil, errors.NewSourceError(sourceName, "cannot create drive service", err)
	}

	return &GoogleStore{svc: sheetsSvc, drive: driveSvc}, nil
}

// Read fetches the first worksheet of the spreadsheet with the given
// title. The first row is the header; remaining rows become records
// keyed by header column names.
func (s *GoogleStore) Read(ctx context.Context, name string) ([]string, []records.Raw, error) {
	id, err := s.lookup(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	grid, err := s.values(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if len(grid) == 0 {
		return nil, nil, errors.NewSourceError(sourceName, "spreadsheet "+name+" has no header row", nil)
	}

	header := grid[0]
	rows := toRaw(header, grid[1:])
	logging.Ctx(ctx).Debug().Str("sheet", name).Int("rows", len(rows)).
		Msg("Read spreadsheet")
	return header, rows, nil
}

// Write clears the first worksheet of the named spreadsheet and writes
// the header and rows in their place.
func (s *GoogleStore) Write(ctx context.Context, name string, header []string, rows [][]string) error {
	id, err := s.lookup(ctx, name)
	if err != nil {
		return err
	}

	title, err := s.firstWorksheet(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.svc.Spreadsheets.Values.
		Clear(id, title, &sheets.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return errors.NewSourceError(sourceName, "cannot clear spreadsheet "+name, err)
	}

	values := make([][]any, 0, len(rows)+1)
	values = append(values, toAnyRow(header))
	for _, row := range rows {
		values = append(values, toAnyRow(row))
	}

	if _, err := s.svc.Spreadsheets.Values.
		Update(id, title, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).Do(); err != nil {
		return errors.NewSourceError(sourceName, "cannot write spreadsheet "+name, err)
	}

	logging.Ctx(ctx).Info().Str("sheet", name).Int("rows", len(rows)).
		Msg("Wrote spreadsheet")
	return nil
}

// lookup resolves a spreadsheet title to its file ID via Drive.
func (s *GoogleStore) lookup(ctx context.Context, name string) (string, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false", name)
	list, err := s.drive.Files.List().Q(query).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", errors.NewSourceError(sourceName, "cannot list spreadsheets", err)
	}
	if len(list.Files) == 0 {
		return "", errors.NewSourceError(sourceName, "spreadsheet "+name+" not found", errors.ErrNotFound)
	}
	return list.Files[0].Id, nil
}

// values reads the whole first worksheet as a string grid.
func (s *GoogleStore) values(ctx context.Context, id string) ([][]string, error) {
	title, err := s.firstWorksheet(ctx, id)
	if err != nil {
		return nil, err
	}

	resp, err := s.svc.Spreadsheets.Values.Get(id, title).Context(ctx).Do()
	if err != nil {
		return nil, errors.NewSourceError(sourceName, "cannot read spreadsheet values", err)
	}

	grid := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// firstWorksheet returns the title of a spreadsheet's first worksheet,
// which doubles as the A1 range covering the whole sheet.
func (s *GoogleStore) firstWorksheet(ctx context.Context, id string) (string, error) {
	meta, err := s.svc.Spreadsheets.Get(id).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return "", errors.NewSourceError(sourceName, "cannot read spreadsheet metadata", err)
	}
	if len(meta.Sheets) == 0 {
		return "", errors.NewSourceError(sourceName, "spreadsheet has no worksheets", nil)
	}
	return meta.Sheets[0].Properties.Title, nil
}

func toAnyRow(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}
