package records

import (
	"strings"

	"github.com/araddon/dateparse"

	"github.com/actonians/regsync/pkg/errors"
	"github.com/actonians/regsync/pkg/identity"
)

// inwardLen is the length of a postcode's inward part (e.g. "7ES").
const inwardLen = 3

// Format projects one raw row onto the canonical schema and normalizes
// every field. Columns not named by the field map are dropped, so the
// output shape is always exactly the canonical five fields regardless
// of the source shape.
//
// Name fields take the normalizer's case rule only; the date of birth
// is parsed from free text into YYYY-MM-DD; the postcode is split into
// upper-cased region and inward parts; the address is title-cased. No
// partially formatted record is ever returned.
func Format(raw Raw, fm FieldMap) (Canonical, error) {
	return format(raw, fm, -1)
}

// FormatAll formats a row set, reporting the zero-based row index of
// the first failure.
func FormatAll(rows []Raw, fm FieldMap) ([]Canonical, error) {
	if err := fm.Validate(); err != nil {
		return nil, err
	}
	out := make([]Canonical, 0, len(rows))
	for i, raw := range rows {
		c, err := format(raw, fm, i)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func format(raw Raw, fm FieldMap, row int) (Canonical, error) {
	if err := fm.Validate(); err != nil {
		return Canonical{}, err
	}

	first, err := column(raw, "first", fm.First)
	if err != nil {
		return Canonical{}, err
	}
	last, err := column(raw, "last", fm.Last)
	if err != nil {
		return Canonical{}, err
	}
	dobRaw, err := column(raw, "dob", fm.DOB)
	if err != nil {
		return Canonical{}, err
	}
	postcodeRaw, err := column(raw, "postcode", fm.Postcode)
	if err != nil {
		return Canonical{}, err
	}
	address, err := column(raw, "address", fm.Address)
	if err != nil {
		return Canonical{}, err
	}

	dob, err := formatDate("dob", dobRaw, row)
	if err != nil {
		return Canonical{}, err
	}
	postcode, err := formatPostcode(postcodeRaw, row)
	if err != nil {
		return Canonical{}, err
	}

	return Canonical{
		First:    identity.TitleCase(first),
		Last:     identity.TitleCase(last),
		DOB:      dob,
		Postcode: postcode,
		Address:  identity.TitleCase(address),
	}, nil
}

// column looks up a mapped source column, distinguishing a missing
// column (schema error) from an empty cell (legitimate value).
func column(raw Raw, field, name string) (string, error) {
	value, ok := raw[name]
	if !ok {
		return "", errors.NewSchemaError(field, name)
	}
	return value, nil
}

// formatDate parses a free-text date into the canonical YYYY-MM-DD form.
func formatDate(field, value string, row int) (string, error) {
	t, err := dateparse.ParseAny(strings.TrimSpace(value))
	if err != nil {
		return "", errors.NewDateError(field, value, row, err)
	}
	return t.Format("2006-01-02"), nil
}

// formatPostcode trims, upper-cases, and splits a postcode into region
// and inward parts. The inward part is always the last three characters;
// anything shorter than four characters after trimming cannot split and
// is rejected rather than silently accepted.
func formatPostcode(value string, row int) (string, error) {
	trimmed := []rune(strings.TrimSpace(value))
	if len(trimmed) <= inwardLen {
		return "", errors.NewPostcodeError(string(trimmed), row)
	}

	region := strings.ToUpper(strings.TrimSpace(string(trimmed[:len(trimmed)-inwardLen])))
	inward := strings.ToUpper(strings.TrimSpace(string(trimmed[len(trimmed)-inwardLen:])))
	return region + " " + inward, nil
}
