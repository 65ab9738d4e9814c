// Package vcf parses pseudo-VCF variant files: tab-separated text with
// optional #-prefixed comment lines and at least the five leading VCF
// columns (CHROM, POS, ID, REF, ALT). Extra columns are ignored.
package vcf

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Record is a single variant line from a pseudo-VCF file.
type Record struct {
	Chrom string // Chromosome name (e.g., "17", "chr17")
	Pos   int64  // 1-based genomic position
	ID    string // Variant identifier (e.g., rs ID, or ".")
	Ref   string // Reference allele
	Alt   string // Alternate allele
}

// Description returns the canonical "chrom:pos:ref:alt" form used for
// coordinate resolution and log context.
func (r *Record) Description() string {
	return fmt.Sprintf("%s:%d:%s:%s", r.Chrom, r.Pos, r.Ref, r.Alt)
}

// patientStem matches file stems like "Patient1" or "patient42".
// Anything else in the stem disqualifies the whole file.
var patientStem = regexp.MustCompile(`^patient(\d+)$`)

// PatientIDFromPath derives the patient identifier from a variant file name.
// The file stem must be "patient" followed by digits, case-insensitively
// ("Patient7.vcf" and "patient7.vcf" both yield 7). Any other name is an
// error and the caller must reject the entire file.
func PatientIDFromPath(path string) (int, error) {
	base := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(base), ".gz") {
		base = base[:len(base)-3]
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	m := patientStem.FindStringSubmatch(strings.ToLower(stem))
	if m == nil {
		return 0, fmt.Errorf("file name %q does not match patient<N>", base)
	}

	id, err := strconv.Atoi(m[1])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("file name %q has no usable patient number", base)
	}
	return id, nil
}
