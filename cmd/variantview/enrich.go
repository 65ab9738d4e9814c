package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/variantlab/variantview/internal/clinvar"
	"github.com/variantlab/variantview/internal/enrich"
	"github.com/variantlab/variantview/internal/hgvs"
	"github.com/variantlab/variantview/internal/store"
)

func newEnrichCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enrich",
		Short: "Resolve and annotate every loaded variant",
		Long: `Walk every loaded variant, resolve its genomic HGVS description via
the VariantValidator LOVD service, annotate it with ClinVar clinical
significance, and store one output row per variant. Variants that fail
at the transport level carry no row and are retried on the next run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := store.Open(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer s.Close()

			resolver := hgvs.NewResolver(cfg.LOVDBaseURL, cfg.GenomeBuild, cfg.HTTPTimeout, cfg.MinCallInterval)
			resolver.SetLogger(logger)

			annotator := clinvar.NewClient(cfg.ClinVarBaseURL, cfg.HTTPTimeout)
			annotator.SetLogger(logger)

			enricher := enrich.NewEnricher(s, resolver, annotator)
			enricher.SetLogger(logger)

			summary, err := enricher.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Enriched %d variants (%d not found, %d failed)\n",
				summary.Enriched, summary.NotFound, summary.Failed)
			return nil
		},
	}
}
