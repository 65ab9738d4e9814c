// Package export writes enriched variant rows in CSV format.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/variantlab/variantview/internal/store"
)

// Columns is the CSV header, in the order row cells are written.
var Columns = []string{
	"patient_id",
	"variant_number",
	"chrom",
	"pos",
	"id",
	"ref",
	"alt",
	"hgvs",
	"clinvar_id",
	"clinical_significance",
	"star_rating",
	"review_status",
	"conditions_assoc",
	"transcript",
	"ref_seq_id",
	"hgnc_id",
	"omim_id",
	"g_change",
	"c_change",
	"p_change",
}

// identityColumns is the number of leading columns filled from the input
// record; the rest come from the enrichment output.
const identityColumns = 7

// CSVWriter writes enriched rows one per line.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter creates a writer on top of w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// WriteHeader writes the column header line.
func (cw *CSVWriter) WriteHeader() error {
	return cw.w.Write(Columns)
}

// Write writes one enriched row. Enrichment columns stay empty when the
// variant has no output row yet.
func (cw *CSVWriter) Write(row store.EnrichedRow) error {
	record := make([]string, 0, len(Columns))
	record = append(record,
		strconv.Itoa(row.Input.PatientID),
		strconv.Itoa(row.Input.VariantNumber),
		row.Input.Record.Chrom,
		strconv.FormatInt(row.Input.Record.Pos, 10),
		row.Input.Record.ID,
		row.Input.Record.Ref,
		row.Input.Record.Alt,
	)
	if out := row.Output; out != nil {
		record = append(record,
			out.HGVS,
			out.ClinVarID,
			out.ClinicalSignificance,
			out.StarRating,
			out.ReviewStatus,
			out.ConditionsAssoc,
			out.Transcript,
			out.RefSeqID,
			out.HGNCID,
			out.OMIMID,
			out.GChange,
			out.CChange,
			out.PChange,
		)
	} else {
		record = append(record, make([]string, len(Columns)-identityColumns)...)
	}
	return cw.w.Write(record)
}

// Flush writes any buffered rows and reports the first write error.
func (cw *CSVWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

// WriteAll exports enriched rows from the store to w: every patient when
// patientID is zero or negative, one patient otherwise. Returns the
// number of rows written, excluding the header.
func WriteAll(s *store.Store, w io.Writer, patientID int) (int, error) {
	var rows []store.EnrichedRow
	var err error
	if patientID > 0 {
		rows, err = s.ListEnrichedForPatient(patientID)
	} else {
		rows, err = s.ListEnriched()
	}
	if err != nil {
		return 0, fmt.Errorf("list enriched rows: %w", err)
	}

	cw := NewCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("write row: %w", err)
		}
	}
	if err := cw.Flush(); err != nil {
		return 0, fmt.Errorf("flush output: %w", err)
	}
	return len(rows), nil
}
