package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/variantlab/variantview/internal/export"
	"github.com/variantlab/variantview/internal/store"
)

func newExportCmd() *cobra.Command {
	var outputFile string
	var patientID int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export enriched variants as CSV",
		Example: `  variantview export -o variants.csv
  variantview export --patient 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer s.Close()

			w := io.Writer(os.Stdout)
			if outputFile != "" {
				f, err := os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("create %s: %w", outputFile, err)
				}
				defer f.Close()
				w = f
			}

			n, err := export.WriteAll(s, w, patientID)
			if err != nil {
				return err
			}
			if outputFile != "" {
				fmt.Printf("Wrote %d rows to %s\n", n, outputFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&patientID, "patient", 0, "export a single patient")

	return cmd
}
