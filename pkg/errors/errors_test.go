package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/actonians/regsync/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNameError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NameError{Raw: "   ", Message: "empty after trimming"}
		assert.Equal(t, `invalid name "   ": empty after trimming`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidName))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNameError("", "no tokens")
		assert.True(t, pkgerrors.IsInvalidName(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNameError("", "no tokens")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsInvalidName(wrapped))
	})
}

func TestSchemaError(t *testing.T) {
	t.Run("missing column", func(t *testing.T) {
		err := pkgerrors.NewSchemaError("dob", "Date of Birth")
		assert.Equal(t, `schema mapping for dob: column "Date of Birth" not present in source`, err.Error())
		assert.True(t, pkgerrors.IsSchema(err))
	})

	t.Run("unconfigured field", func(t *testing.T) {
		err := pkgerrors.NewSchemaError("postcode", "")
		assert.Contains(t, err.Error(), "no column configured")
		assert.True(t, errors.Is(err, pkgerrors.ErrSchema))
	})
}

func TestDateError(t *testing.T) {
	t.Run("with row", func(t *testing.T) {
		err := pkgerrors.NewDateError("dob", "not-a-date", 7, nil)
		assert.Equal(t, `cannot parse dob value "not-a-date" at row 7`, err.Error())
		assert.True(t, pkgerrors.IsDateParse(err))
	})

	t.Run("without row", func(t *testing.T) {
		err := pkgerrors.NewDateError("timestamp", "???", -1, nil)
		assert.Equal(t, `cannot parse timestamp value "???"`, err.Error())
	})

	t.Run("unwrap", func(t *testing.T) {
		cause := errors.New("bad format")
		err := pkgerrors.NewDateError("dob", "x", 0, cause)
		assert.Equal(t, cause, errors.Unwrap(err))
	})
}

func TestPostcodeError(t *testing.T) {
	err := pkgerrors.NewPostcodeError("W3", 2)
	assert.Equal(t, `malformed postcode "W3" at row 2: need at least 4 characters`, err.Error())
	assert.True(t, pkgerrors.IsMalformedPostcode(err))
}

func TestSourceError(t *testing.T) {
	t.Run("with message", func(t *testing.T) {
		err := pkgerrors.NewSourceError("league", "no player links found", nil)
		assert.Equal(t, "source league unavailable: no player links found", err.Error())
		assert.True(t, pkgerrors.IsSourceUnavailable(err))
	})

	t.Run("wrap helper", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := pkgerrors.WrapSource("sheets", cause)
		assert.True(t, pkgerrors.IsSourceUnavailable(err))
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapSource("sheets", nil))
	})
}

func TestStageError(t *testing.T) {
	cause := pkgerrors.NewDateError("Timestamp", "yesterday-ish", 3, nil)
	err := pkgerrors.WrapStage("filter", cause)

	assert.Equal(t, "filter", pkgerrors.Stage(err))
	assert.True(t, pkgerrors.IsDateParse(err))
	assert.Contains(t, err.Error(), "reconciliation stage filter")

	t.Run("no stage in chain", func(t *testing.T) {
		assert.Equal(t, "", pkgerrors.Stage(errors.New("plain")))
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapStage("match", nil))
	})
}
