package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actonians/regsync/pkg/errors"
)

func tsRow(ts string) Raw {
	return Raw{"Timestamp": ts, "First name": "jane"}
}

func TestFilterRecent(t *testing.T) {
	now := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)

	rows := []Raw{
		tsRow("2024-03-30"),
		tsRow("2024-02-15 09:30:00"),
		tsRow("2024-01-01"),
		tsRow("2023-12-31"),
	}

	got, err := FilterRecent(rows, "Timestamp", 2, now)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Relative order preserved, rows untouched.
	assert.Equal(t, "2024-03-30", got[0]["Timestamp"])
	assert.Equal(t, "2024-02-15 09:30:00", got[1]["Timestamp"])
}

func TestFilterRecentMonthBoundary(t *testing.T) {
	// Two months before March 31 is January 31 by calendar arithmetic,
	// not a 60-day approximation. Retention is strictly-after.
	now := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		ts   string
		keep bool
	}{
		{"2024-01-31 00:00:01", true},
		{"2024-02-01", true},
		{"2024-01-31", false}, // exactly on the cutoff
		{"2024-01-30", false},
		{"2024-01-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.ts, func(t *testing.T) {
			got, err := FilterRecent([]Raw{tsRow(tt.ts)}, "Timestamp", 2, now)
			require.NoError(t, err)
			assert.Equal(t, tt.keep, len(got) == 1)
		})
	}
}

func TestFilterRecentErrors(t *testing.T) {
	now := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)

	t.Run("unparseable timestamp surfaces", func(t *testing.T) {
		rows := []Raw{tsRow("2024-03-30"), tsRow("sometime last week")}
		_, err := FilterRecent(rows, "Timestamp", 2, now)
		assert.True(t, errors.IsDateParse(err))
		assert.Contains(t, err.Error(), "row 1")
	})

	t.Run("missing timestamp column", func(t *testing.T) {
		_, err := FilterRecent([]Raw{{"First name": "jane"}}, "Timestamp", 2, now)
		assert.True(t, errors.IsSchema(err))
	})

	t.Run("empty field name", func(t *testing.T) {
		_, err := FilterRecent(nil, "", 2, now)
		assert.True(t, errors.IsSchema(err))
	})
}

func TestFilterRecentEmpty(t *testing.T) {
	now := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	got, err := FilterRecent(nil, "Timestamp", 2, now)
	require.NoError(t, err)
	assert.Empty(t, got)
}
