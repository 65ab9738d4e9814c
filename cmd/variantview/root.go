package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/variantlab/variantview/internal/config"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "variantview",
		Short: "Per-patient variant enrichment pipeline and viewer",
		Long: `variantview loads per-patient pseudo-VCF files, resolves each variant
to HGVS notation via VariantValidator, annotates it with ClinVar
clinical significance, and serves or exports the enriched table.`,
		Version:      fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(cfgFile); err != nil {
				return err
			}
			if logger, err = newLogger(verbose); err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.variantview.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().String("db", "", "database file (overrides config)")
	_ = viper.BindPFlag("database_path", cmd.PersistentFlags().Lookup("db"))

	cmd.AddCommand(
		newInitCmd(),
		newLoadCmd(),
		newEnrichCmd(),
		newExportCmd(),
		newServeCmd(),
		newConfigCmd(),
	)

	return cmd
}

// newLogger builds a console logger: info level by default, debug with
// --verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	logCfg := zap.NewDevelopmentConfig()
	if !verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return logCfg.Build()
}
