package records

import (
	"time"

	"github.com/araddon/dateparse"

	"github.com/actonians/regsync/pkg/errors"
)

// FilterRecent retains the rows whose timestamp column parses to an
// instant strictly after now minus the given number of calendar months.
// The cutoff uses month arithmetic, not a fixed-day approximation, so
// two months before March 31 is January 31.
//
// The filter is pure: retained rows keep their relative order and are
// not copied or mutated. An unparseable timestamp fails the whole call
// with the offending row index rather than silently dropping the row.
func FilterRecent(rows []Raw, timestampField string, months int, now time.Time) ([]Raw, error) {
	if timestampField == "" {
		return nil, errors.NewSchemaError("timestamp", "")
	}

	cutoff := now.AddDate(0, -months, 0)
	out := make([]Raw, 0, len(rows))
	for i, row := range rows {
		value, ok := row[timestampField]
		if !ok {
			return nil, errors.NewSchemaError("timestamp", timestampField)
		}
		t, err := dateparse.ParseAny(value)
		if err != nil {
			return nil, errors.NewDateError("timestamp", value, i, err)
		}
		if t.After(cutoff) {
			out = append(out, row)
		}
	}
	return out, nil
}
