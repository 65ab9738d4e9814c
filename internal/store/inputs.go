package store

import (
	"fmt"

	"github.com/variantlab/variantview/internal/vcf"
)

// Input is one ingested variant line for a patient, keyed by
// (PatientID, VariantNumber).
type Input struct {
	PatientID     int
	VariantNumber int
	Record        vcf.Record
}

// HasInput reports whether an input row with the given composite key exists.
func (s *Store) HasInput(patientID, variantNumber int) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT count(*) FROM inputs WHERE patient_id=? AND variant_number=?",
		patientID, variantNumber).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query input: %w", err)
	}
	return n > 0, nil
}

// InsertInput appends one input row. Inserting an existing
// (patient_id, variant_number) key is an error; callers check HasInput
// first and skip duplicates.
func (s *Store) InsertInput(in Input) error {
	_, err := s.db.Exec(
		"INSERT INTO inputs VALUES (?, ?, ?, ?, ?, ?, ?)",
		in.PatientID, in.VariantNumber,
		in.Record.Chrom, in.Record.Pos, in.Record.ID, in.Record.Ref, in.Record.Alt)
	if err != nil {
		return fmt.Errorf("insert input: %w", err)
	}
	return nil
}

// ListInputs returns every input row ordered by patient, then ordinal.
// This is the order the enrichment run walks.
func (s *Store) ListInputs() ([]Input, error) {
	rows, err := s.db.Query(`SELECT patient_id, variant_number, chrom, pos, id, ref, alt
		FROM inputs
		ORDER BY patient_id, variant_number`)
	if err != nil {
		return nil, fmt.Errorf("query inputs: %w", err)
	}
	defer rows.Close()

	var inputs []Input
	for rows.Next() {
		var in Input
		if err := rows.Scan(
			&in.PatientID, &in.VariantNumber,
			&in.Record.Chrom, &in.Record.Pos, &in.Record.ID, &in.Record.Ref, &in.Record.Alt,
		); err != nil {
			return nil, fmt.Errorf("scan input: %w", err)
		}
		inputs = append(inputs, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inputs: %w", err)
	}
	return inputs, nil
}
