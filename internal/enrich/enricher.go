// Package enrich walks ingested variants through coordinate resolution
// and clinical annotation, producing one output row per variant.
package enrich

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/variantlab/variantview/internal/clinvar"
	"github.com/variantlab/variantview/internal/hgvs"
	"github.com/variantlab/variantview/internal/store"
	"github.com/variantlab/variantview/internal/vcf"
)

// Resolver maps a variant record to its HGVS descriptions. A nil
// Resolution with a nil error means the service had no answer for the
// variant.
type Resolver interface {
	Resolve(ctx context.Context, rec *vcf.Record) (*hgvs.Resolution, error)
}

// Annotator maps a genomic HGVS string to its clinical annotation. An
// empty string yields the not-found sentinel without a lookup.
type Annotator interface {
	Annotate(ctx context.Context, genomicHGVS string) (*clinvar.Annotation, error)
}

// Summary reports what one enrichment run did.
type Summary struct {
	Enriched int
	NotFound int
	Failed   int
}

// Enricher composes the resolver and annotator over the stored inputs.
type Enricher struct {
	store     *store.Store
	resolver  Resolver
	annotator Annotator
	logger    *zap.Logger
}

// NewEnricher creates an enricher over the given store and lookups.
func NewEnricher(s *store.Store, r Resolver, a Annotator) *Enricher {
	return &Enricher{
		store:     s,
		resolver:  r,
		annotator: a,
		logger:    zap.NewNop(),
	}
}

// SetLogger sets the logger for run progress and warnings.
func (e *Enricher) SetLogger(logger *zap.Logger) {
	e.logger = logger
}

// Run enriches every input row in (patient, ordinal) order. A variant
// whose lookup fails at the transport level is skipped without an output
// row, so a later run can fill it in; a definitive not-found answer is
// recorded as a sentinel row. Existing rows are overwritten.
func (e *Enricher) Run(ctx context.Context) (*Summary, error) {
	inputs, err := e.store.ListInputs()
	if err != nil {
		return nil, fmt.Errorf("list inputs: %w", err)
	}

	summary := &Summary{}
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		e.enrichOne(ctx, in, summary)
	}

	e.logger.Info("enrichment finished",
		zap.Int("enriched", summary.Enriched),
		zap.Int("not_found", summary.NotFound),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

func (e *Enricher) enrichOne(ctx context.Context, in store.Input, summary *Summary) {
	desc := in.Record.Description()

	res, err := e.resolver.Resolve(ctx, &in.Record)
	if err != nil {
		summary.Failed++
		e.logger.Warn("variant resolution failed",
			zap.Int("patient", in.PatientID),
			zap.Int("ordinal", in.VariantNumber),
			zap.String("variant", desc),
			zap.Error(err))
		return
	}

	var genomicHGVS string
	if res != nil {
		genomicHGVS = res.GenomicHGVS
	}

	ann, err := e.annotator.Annotate(ctx, genomicHGVS)
	if err != nil {
		summary.Failed++
		e.logger.Warn("variant annotation failed",
			zap.Int("patient", in.PatientID),
			zap.Int("ordinal", in.VariantNumber),
			zap.String("variant", desc),
			zap.Error(err))
		return
	}

	if err := e.store.UpsertOutput(buildOutput(in, res, ann)); err != nil {
		summary.Failed++
		e.logger.Error("failed to store enrichment",
			zap.Int("patient", in.PatientID),
			zap.Int("ordinal", in.VariantNumber),
			zap.Error(err))
		return
	}

	if ann.Found() {
		summary.Enriched++
		e.logger.Debug("variant enriched",
			zap.String("variant", desc),
			zap.String("clinvar_id", ann.ClinVarID),
			zap.String("significance", ann.ClinicalSignificance))
	} else {
		summary.NotFound++
		e.logger.Debug("no annotation for variant", zap.String("variant", desc))
	}
}

// buildOutput merges identity, resolution, and annotation into one row.
// The transcript column prefers the annotation's title transcript and
// falls back to the resolver's MANE Select pick.
func buildOutput(in store.Input, res *hgvs.Resolution, ann *clinvar.Annotation) store.Output {
	out := store.Output{
		PatientID:            in.PatientID,
		VariantNumber:        in.VariantNumber,
		HGVS:                 ann.HGVS,
		ClinVarID:            ann.ClinVarID,
		ClinicalSignificance: ann.ClinicalSignificance,
		StarRating:           ann.StarRating,
		ReviewStatus:         ann.ReviewStatus,
		ConditionsAssoc:      ann.ConditionsAssoc,
		Transcript:           ann.Transcript,
		RefSeqID:             ann.RefSeqID,
		HGNCID:               ann.HGNCID,
		OMIMID:               ann.OMIMID,
	}
	if res != nil {
		out.GChange = res.GenomicHGVS
		if res.TandP != nil {
			out.CChange = res.TandP.CChange()
			out.PChange = res.TandP.PChange()
		}
		if out.Transcript == "" {
			out.Transcript = res.ManeSelect
		}
	}
	return out
}
