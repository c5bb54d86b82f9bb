// Package reconcile orchestrates a single reconciliation run: it
// normalizes the internal registration list, matches it against the
// external roster, and produces the outstanding registrations as
// canonical records ready for upload.
//
// A run is a linear batch job. Any step failing aborts the whole run
// with the stage and offending record identified; partial results are
// never surfaced as done. Runs are stateless: nothing is cached or
// shared between invocations, so concurrent runs only need
// independently constructed record sets.
package reconcile

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/actonians/regsync/pkg/errors"
	"github.com/actonians/regsync/pkg/identity"
	"github.com/actonians/regsync/pkg/logging"
	"github.com/actonians/regsync/pkg/match"
	"github.com/actonians/regsync/pkg/records"
)

// Pipeline reconciles internal registrations against an external
// roster. Construct with New and run with Run; a Pipeline is safe to
// reuse across runs.
type Pipeline struct {
	opts *options
}

// New creates a Pipeline with the given options.
func New(opts ...Option) (*Pipeline, error) {
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	return &Pipeline{opts: o}, nil
}

// Run executes one reconciliation over the raw internal rows.
//
//  1. Project each raw row's name columns (nameMap) into a canonical
//     identity.
//  2. Match against the external identities; records whose keys no
//     external query confirmed are outstanding.
//  3. Select the raw rows at the outstanding indices.
//  4. Keep only rows submitted within the recency window.
//  5. Format the survivors onto the canonical schema via uploadMap.
//  6. Drop exact duplicates, first occurrence winning.
//
// The returned records keep the relative order of the input rows.
func (p *Pipeline) Run(
	ctx context.Context,
	rawInternal []records.Raw,
	nameMap records.NameMap,
	external []identity.Identity,
	uploadMap records.FieldMap,
) ([]records.Canonical, error) {
	log := p.logger(ctx)

	internal, err := p.identities(rawInternal, nameMap)
	if err != nil {
		return nil, errors.WrapStage("normalize", err)
	}
	log.Debug().Int("internal", len(internal)).Int("external", len(external)).
		Msg("Identity lists built")

	outstanding := match.Outstanding(internal, external, p.opts.threshold, p.opts.scorer)
	log.Info().
		Int("registered", len(internal)-len(outstanding)).
		Int("outstanding", len(outstanding)).
		Int("threshold", p.opts.threshold).
		Msg("Matched internal register against external roster")

	selected := make([]records.Raw, 0, len(outstanding))
	for _, idx := range outstanding {
		selected = append(selected, rawInternal[idx])
	}

	recent, err := records.FilterRecent(selected, p.opts.timestampField, p.opts.months, p.opts.now())
	if err != nil {
		return nil, errors.WrapStage("filter", err)
	}
	log.Debug().Int("kept", len(recent)).Int("months", p.opts.months).
		Msg("Applied recency window")

	formatted, err := records.FormatAll(recent, uploadMap)
	if err != nil {
		return nil, errors.WrapStage("format", err)
	}

	deduped := records.Dedup(formatted)
	log.Info().Int("records", len(deduped)).Msg("Reconciliation complete")
	return deduped, nil
}

// identities projects raw rows onto canonical identities using the
// name column map. The row index is folded into normalization errors
// so bad source data can be found and fixed.
func (p *Pipeline) identities(rows []records.Raw, nameMap records.NameMap) ([]identity.Identity, error) {
	if err := nameMap.Validate(); err != nil {
		return nil, err
	}

	out := make([]identity.Identity, 0, len(rows))
	for i, row := range rows {
		first, ok := row[nameMap.First]
		if !ok {
			return nil, errors.NewSchemaError("first", nameMap.First)
		}
		last, ok := row[nameMap.Last]
		if !ok {
			return nil, errors.NewSchemaError("last", nameMap.Last)
		}

		id, err := identity.Normalize(first + " " + last)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, id)
	}
	return out, nil
}

func (p *Pipeline) logger(ctx context.Context) *zerolog.Logger {
	if p.opts.logger != nil {
		return p.opts.logger
	}
	return logging.FromContext(ctx)
}
