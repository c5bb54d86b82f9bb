package reconcile

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/actonians/regsync/pkg/errors"
	"github.com/actonians/regsync/pkg/match"
)

// DefaultRecencyMonths is the default registration recency window.
const DefaultRecencyMonths = 2

// DefaultTimestampField is the default submission timestamp column name.
const DefaultTimestampField = "Timestamp"

// options configures a Pipeline.
type options struct {
	threshold      int
	months         int
	timestampField string
	scorer         match.Scorer
	now            func() time.Time
	logger         *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		threshold:      match.DefaultThreshold,
		months:         DefaultRecencyMonths,
		timestampField: DefaultTimestampField,
		scorer:         match.LevenshteinScorer,
		now:            time.Now,
	}
}

// Option is a function that configures a Pipeline.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithThreshold sets the similarity score a match must strictly exceed.
func WithThreshold(threshold int) Option {
	return func(o *options) error {
		if threshold < 0 || threshold > 100 {
			return errors.NewConfigError("pipeline", "threshold must be within 0..100", nil)
		}
		o.threshold = threshold
		return nil
	}
}

// WithRecencyMonths sets the time-window filter's span in calendar months.
func WithRecencyMonths(months int) Option {
	return func(o *options) error {
		if months < 0 {
			return errors.NewConfigError("pipeline", "recency months cannot be negative", nil)
		}
		o.months = months
		return nil
	}
}

// WithTimestampField sets the source column holding submission timestamps.
func WithTimestampField(field string) Option {
	return func(o *options) error {
		if field == "" {
			return errors.NewConfigError("pipeline", "timestamp field cannot be empty", nil)
		}
		o.timestampField = field
		return nil
	}
}

// WithScorer sets the similarity function used by the matcher.
func WithScorer(scorer match.Scorer) Option {
	return func(o *options) error {
		if scorer == nil {
			return errors.NewConfigError("pipeline", "scorer cannot be nil", nil)
		}
		o.scorer = scorer
		return nil
	}
}

// WithClock sets the time source for the recency cutoff. Tests use this
// to pin "now".
func WithClock(now func() time.Time) Option {
	return func(o *options) error {
		if now == nil {
			return errors.NewConfigError("pipeline", "clock cannot be nil", nil)
		}
		o.now = now
		return nil
	}
}

// WithLogger sets the logger used for run progress.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
