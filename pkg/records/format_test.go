package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actonians/regsync/pkg/errors"
)

var uploadMap = FieldMap{
	First:    "First name",
	Last:     "Surname",
	DOB:      "Date of Birth",
	Postcode: "Post Code",
	Address:  "Street Address",
}

func sampleRow() Raw {
	return Raw{
		"Timestamp":      "2024-03-01 10:15:00",
		"First name":     "john",
		"Surname":        "SMITH",
		"Date of Birth":  "1990-03-03",
		"Post Code":      " w3 7es ",
		"Street Address": "12 acacia avenue",
		"Email":          "john@example.com",
	}
}

func TestFormat(t *testing.T) {
	got, err := Format(sampleRow(), uploadMap)
	require.NoError(t, err)

	assert.Equal(t, Canonical{
		First:    "John",
		Last:     "Smith",
		DOB:      "1990-03-03",
		Postcode: "W3 7ES",
		Address:  "12 Acacia Avenue",
	}, got)
}

func TestFormatNarrowsSchema(t *testing.T) {
	// The email column must not leak into the canonical record.
	got, err := Format(sampleRow(), uploadMap)
	require.NoError(t, err)
	assert.Equal(t, []string{"John", "Smith", "1990-03-03", "W3 7ES", "12 Acacia Avenue"}, got.Row())
}

func TestFormatFreeTextDates(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1990-03-03", "1990-03-03"},
		{"May 8, 2009", "2009-05-08"},
		{"8 May 2009", "2009-05-08"},
		{"2009/05/08", "2009-05-08"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			row := sampleRow()
			row["Date of Birth"] = tt.raw
			got, err := Format(row, uploadMap)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.DOB)
		})
	}
}

func TestFormatErrors(t *testing.T) {
	t.Run("missing mapped column", func(t *testing.T) {
		row := sampleRow()
		delete(row, "Post Code")
		_, err := Format(row, uploadMap)
		assert.True(t, errors.IsSchema(err))
		assert.Contains(t, err.Error(), "Post Code")
	})

	t.Run("unconfigured field map", func(t *testing.T) {
		fm := uploadMap
		fm.DOB = ""
		_, err := Format(sampleRow(), fm)
		assert.True(t, errors.IsSchema(err))
	})

	t.Run("unparseable date of birth", func(t *testing.T) {
		row := sampleRow()
		row["Date of Birth"] = "not a date"
		_, err := Format(row, uploadMap)
		assert.True(t, errors.IsDateParse(err))
	})

	t.Run("postcode too short", func(t *testing.T) {
		row := sampleRow()
		row["Post Code"] = " w3 "
		_, err := Format(row, uploadMap)
		assert.True(t, errors.IsMalformedPostcode(err))
	})
}

func TestFormatPostcode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "spec example", raw: " w3 7es ", want: "W3 7ES"},
		{name: "no internal space", raw: "sw1a1aa", want: "SW1A 1AA"},
		{name: "already canonical", raw: "W3 7ES", want: "W3 7ES"},
		{name: "minimum length", raw: "a1aa", want: "A 1AA"},
		{name: "three characters", raw: "7es", wantErr: true},
		{name: "blank", raw: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatPostcode(tt.raw, -1)
			if tt.wantErr {
				assert.True(t, errors.IsMalformedPostcode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAllReportsRow(t *testing.T) {
	bad := sampleRow()
	bad["Date of Birth"] = "???"
	rows := []Raw{sampleRow(), bad}

	_, err := FormatAll(rows, uploadMap)
	require.Error(t, err)
	assert.True(t, errors.IsDateParse(err))
	assert.Contains(t, err.Error(), "row 1")
}
