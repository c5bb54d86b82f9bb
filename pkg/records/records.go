// Package records defines the raw and canonical registration record
// shapes and the transforms between them: field mapping, per-field
// normalization, time-window filtering, and exact deduplication.
//
// Raw records arrive from external sources (form responses, scraped
// pages) with arbitrary column names; a FieldMap names the columns to
// project onto the fixed canonical schema. Transforms never mutate
// their inputs. Each returns a freshly built record set.
package records

import (
	"github.com/actonians/regsync/pkg/errors"
)

// Raw is one source row: a mapping of source column names to cell
// values. Row order is carried by the enclosing slice.
type Raw map[string]string

// Canonical is a registration record in the fixed internal schema.
// It is comparable, so exact-value deduplication is struct equality.
type Canonical struct {
	First    string
	Last     string
	DOB      string // ISO-8601 date, YYYY-MM-DD
	Postcode string // "<REGION> <INWARD>", both upper-cased
	Address  string
}

// Header is the canonical column order used when writing records out.
var Header = []string{"first", "last", "dob", "postcode", "address"}

// Row returns the record's values in Header order.
func (c Canonical) Row() []string {
	return []string{c.First, c.Last, c.DOB, c.Postcode, c.Address}
}

// NameMap names the source columns holding the two name components.
type NameMap struct {
	First string
	Last  string
}

// Validate reports the first unconfigured name column.
func (m NameMap) Validate() error {
	if m.First == "" {
		return errors.NewSchemaError("first", "")
	}
	if m.Last == "" {
		return errors.NewSchemaError("last", "")
	}
	return nil
}

// FieldMap names the source columns for every canonical field. Fields
// outside the map are discarded by Format (narrowing projection).
type FieldMap struct {
	First    string
	Last     string
	DOB      string
	Postcode string
	Address  string
}

// Validate reports the first unconfigured field mapping.
func (m FieldMap) Validate() error {
	fields := []struct {
		name   string
		column string
	}{
		{"first", m.First},
		{"last", m.Last},
		{"dob", m.DOB},
		{"postcode", m.Postcode},
		{"address", m.Address},
	}
	for _, f := range fields {
		if f.column == "" {
			return errors.NewSchemaError(f.name, "")
		}
	}
	return nil
}

// Dedup removes exact duplicates from a canonical record set, keeping
// the first occurrence of each and preserving relative order. Running
// it on its own output is a no-op.
func Dedup(rows []Canonical) []Canonical {
	out := make([]Canonical, 0, len(rows))
	seen := make(map[Canonical]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row]; ok {
			continue
		}
		seen[row] = struct{}{}
		out = append(out, row)
	}
	return out
}
