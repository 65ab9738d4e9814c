package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/variantlab/variantview/internal/ingest"
	"github.com/variantlab/variantview/internal/store"
)

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file-or-directory>...",
		Short: "Load pseudo-VCF variant files into the database",
		Long: `Load per-patient pseudo-VCF files. The patient identifier comes from
the file name, which must match patient<N>.vcf (case-insensitive,
optionally gzipped). Records already in the database are skipped.`,
		Example: `  variantview load data/input/
  variantview load Patient3.vcf Patient4.vcf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer s.Close()

			loader := ingest.NewLoader(s)
			loader.SetLogger(logger)

			var summaries []ingest.Summary
			for _, arg := range args {
				info, err := os.Stat(arg)
				if err != nil {
					return fmt.Errorf("stat %s: %w", arg, err)
				}
				if info.IsDir() {
					dirSummaries, err := loader.LoadDir(arg)
					if err != nil {
						return err
					}
					summaries = append(summaries, dirSummaries...)
					continue
				}
				summary, err := loader.LoadFile(arg)
				if err != nil {
					return err
				}
				if summary == nil {
					return fmt.Errorf("file name %q does not match patient<N>", filepath.Base(arg))
				}
				summaries = append(summaries, *summary)
			}

			var inserted, skipped, malformed int
			for _, summary := range summaries {
				inserted += summary.Inserted
				skipped += summary.Skipped
				malformed += summary.Malformed
			}
			fmt.Printf("Loaded %d files: %d inserted, %d skipped, %d malformed\n",
				len(summaries), inserted, skipped, malformed)
			return nil
		},
	}
}
