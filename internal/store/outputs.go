package store

import (
	"database/sql"
	"fmt"
)

// Output is the enrichment result for one input row, sharing its
// composite key. String fields carry sentinel values ("Unknown",
// "Not found", "N/A") rather than NULLs when a lookup came up empty.
type Output struct {
	PatientID            int
	VariantNumber        int
	HGVS                 string
	ClinVarID            string
	ClinicalSignificance string
	StarRating           string
	ReviewStatus         string
	ConditionsAssoc      string
	Transcript           string
	RefSeqID             string
	HGNCID               string
	OMIMID               string
	GChange              string
	CChange              string
	PChange              string
}

// EnrichedRow pairs an input with its enrichment result.
// Output is nil when the variant has not been enriched yet.
type EnrichedRow struct {
	Input  Input
	Output *Output
}

// UpsertOutput writes the enrichment result for one variant, replacing
// any previous result for the same (patient_id, variant_number). Later
// runs overwrite earlier ones so re-enrichment is idempotent.
func (s *Store) UpsertOutput(out Output) error {
	_, err := s.db.Exec(`INSERT INTO outputs VALUES
		(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (patient_id, variant_number) DO UPDATE SET
		hgvs=excluded.hgvs,
		clinvar_id=excluded.clinvar_id,
		clinical_significance=excluded.clinical_significance,
		star_rating=excluded.star_rating,
		review_status=excluded.review_status,
		conditions_assoc=excluded.conditions_assoc,
		transcript=excluded.transcript,
		ref_seq_id=excluded.ref_seq_id,
		hgnc_id=excluded.hgnc_id,
		omim_id=excluded.omim_id,
		g_change=excluded.g_change,
		c_change=excluded.c_change,
		p_change=excluded.p_change`,
		out.PatientID, out.VariantNumber, out.HGVS, out.ClinVarID,
		out.ClinicalSignificance, out.StarRating, out.ReviewStatus,
		out.ConditionsAssoc, out.Transcript, out.RefSeqID, out.HGNCID,
		out.OMIMID, out.GChange, out.CChange, out.PChange)
	if err != nil {
		return fmt.Errorf("upsert output: %w", err)
	}
	return nil
}

const enrichedQuery = `SELECT
	i.patient_id, i.variant_number, i.chrom, i.pos, i.id, i.ref, i.alt,
	o.patient_id, o.hgvs, o.clinvar_id, o.clinical_significance,
	o.star_rating, o.review_status, o.conditions_assoc, o.transcript,
	o.ref_seq_id, o.hgnc_id, o.omim_id, o.g_change, o.c_change, o.p_change
	FROM inputs i
	LEFT JOIN outputs o
	ON i.patient_id = o.patient_id AND i.variant_number = o.variant_number`

// ListEnriched returns every input joined to its enrichment result,
// ordered by patient, then ordinal. Inputs without a result yet appear
// with a nil Output.
func (s *Store) ListEnriched() ([]EnrichedRow, error) {
	rows, err := s.db.Query(enrichedQuery + " ORDER BY i.patient_id, i.variant_number")
	if err != nil {
		return nil, fmt.Errorf("query enriched rows: %w", err)
	}
	defer rows.Close()

	return scanEnrichedRows(rows)
}

// ListEnrichedForPatient returns the joined rows for a single patient,
// ordered by ordinal.
func (s *Store) ListEnrichedForPatient(patientID int) ([]EnrichedRow, error) {
	rows, err := s.db.Query(enrichedQuery+" WHERE i.patient_id = ? ORDER BY i.variant_number", patientID)
	if err != nil {
		return nil, fmt.Errorf("query enriched rows: %w", err)
	}
	defer rows.Close()

	return scanEnrichedRows(rows)
}

// scanEnrichedRows scans joined rows, detecting a missing output by the
// NULL patient_id on the outputs side of the join.
func scanEnrichedRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]EnrichedRow, error) {
	var result []EnrichedRow
	for rows.Next() {
		var row EnrichedRow
		var outKey sql.NullInt64
		var hgvs, clinvarID, sig, stars, review, conds sql.NullString
		var transcript, refSeq, hgnc, omim, gChange, cChange, pChange sql.NullString

		if err := rows.Scan(
			&row.Input.PatientID, &row.Input.VariantNumber,
			&row.Input.Record.Chrom, &row.Input.Record.Pos, &row.Input.Record.ID,
			&row.Input.Record.Ref, &row.Input.Record.Alt,
			&outKey, &hgvs, &clinvarID, &sig, &stars, &review, &conds,
			&transcript, &refSeq, &hgnc, &omim, &gChange, &cChange, &pChange,
		); err != nil {
			return nil, fmt.Errorf("scan enriched row: %w", err)
		}

		if outKey.Valid {
			row.Output = &Output{
				PatientID:            row.Input.PatientID,
				VariantNumber:        row.Input.VariantNumber,
				HGVS:                 hgvs.String,
				ClinVarID:            clinvarID.String,
				ClinicalSignificance: sig.String,
				StarRating:           stars.String,
				ReviewStatus:         review.String,
				ConditionsAssoc:      conds.String,
				Transcript:           transcript.String,
				RefSeqID:             refSeq.String,
				HGNCID:               hgnc.String,
				OMIMID:               omim.String,
				GChange:              gChange.String,
				CChange:              cChange.String,
				PChange:              pChange.String,
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enriched rows: %w", err)
	}
	return result, nil
}
