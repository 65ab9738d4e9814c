// Package ingest loads pseudo-VCF variant files into the store, one
// patient per file.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/variantlab/variantview/internal/store"
	"github.com/variantlab/variantview/internal/vcf"
)

// Summary reports what one file load did.
type Summary struct {
	File      string
	PatientID int
	Inserted  int
	Skipped   int
	Malformed int
}

// Loader ingests variant files into the store, deduplicating on the
// (patient_id, variant_number) key.
type Loader struct {
	store  *store.Store
	logger *zap.Logger
}

// NewLoader creates a loader writing to the given store.
func NewLoader(s *store.Store) *Loader {
	return &Loader{
		store:  s,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for load progress and warnings.
func (l *Loader) SetLogger(logger *zap.Logger) {
	l.logger = logger
}

// LoadFile ingests one variant file. The patient identifier comes from
// the file name; a name that does not match patient<N> rejects the whole
// file, returning a nil summary and no error.
//
// Ordinals restart at 1 per file and advance once per non-comment line,
// duplicates and malformed lines included, so re-loading a file assigns
// the same numbering. Duplicate keys are skipped, never rewritten.
func (l *Loader) LoadFile(path string) (*Summary, error) {
	patientID, err := vcf.PatientIDFromPath(path)
	if err != nil {
		l.logger.Warn("rejecting variant file",
			zap.String("file", path),
			zap.Error(err))
		return nil, nil
	}

	parser, err := vcf.NewParser(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer parser.Close()

	summary := &Summary{File: path, PatientID: patientID}
	ordinal := 0
	for {
		rec, err := parser.Next()
		if err != nil {
			var perr *vcf.ParseError
			if errors.As(err, &perr) {
				ordinal++
				summary.Malformed++
				l.logger.Warn("skipping malformed line",
					zap.String("file", path),
					zap.Int("line", perr.Line),
					zap.String("reason", perr.Message))
				continue
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if rec == nil {
			break
		}

		ordinal++
		exists, err := l.store.HasInput(patientID, ordinal)
		if err != nil {
			return nil, fmt.Errorf("check variant %d/%d: %w", patientID, ordinal, err)
		}
		if exists {
			summary.Skipped++
			l.logger.Debug("skipping existing variant",
				zap.Int("patient", patientID),
				zap.Int("ordinal", ordinal))
			continue
		}

		if err := l.store.InsertInput(store.Input{
			PatientID:     patientID,
			VariantNumber: ordinal,
			Record:        *rec,
		}); err != nil {
			return nil, fmt.Errorf("insert variant %d/%d: %w", patientID, ordinal, err)
		}
		summary.Inserted++
	}

	l.logger.Info("loaded variant file",
		zap.String("file", path),
		zap.Int("patient", patientID),
		zap.Int("inserted", summary.Inserted),
		zap.Int("skipped", summary.Skipped),
		zap.Int("malformed", summary.Malformed))
	return summary, nil
}

// LoadDir ingests every .vcf and .vcf.gz file in dir, in name order.
// A file that fails to load is logged and does not stop the others.
func (l *Loader) LoadDir(dir string) ([]Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read variant directory: %w", err)
	}

	var summaries []Summary
	for _, entry := range entries {
		if entry.IsDir() || !isVariantFile(entry.Name()) {
			continue
		}
		summary, err := l.LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			l.logger.Error("failed to load variant file",
				zap.String("file", entry.Name()),
				zap.Error(err))
			continue
		}
		if summary != nil {
			summaries = append(summaries, *summary)
		}
	}
	return summaries, nil
}

func isVariantFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".vcf") || strings.HasSuffix(lower, ".vcf.gz")
}
