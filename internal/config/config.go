// Package config collects the process-wide settings shared by the
// variantview commands: database location, external service endpoints,
// rate-limit pacing, and the web listen address. Components receive the
// values they need at construction time; nothing outside this package
// reads viper directly.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Defaults for every configuration key. The service URLs point at the
// public production endpoints.
const (
	DefaultDatabasePath    = "variants.duckdb"
	DefaultClinVarBaseURL  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	DefaultLOVDBaseURL     = "https://rest.variantvalidator.org/LOVD/lovd"
	DefaultGenomeBuild     = "GRCh38"
	DefaultMinCallInterval = 250 * time.Millisecond
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultListenAddr      = "localhost:8080"
)

// Config holds the resolved configuration for one process run.
type Config struct {
	// DatabasePath is the DuckDB file holding inputs and outputs.
	// Empty means an in-memory database.
	DatabasePath string `mapstructure:"database_path"`

	// ClinVarBaseURL is the NCBI eutils base for clinical annotation lookups.
	ClinVarBaseURL string `mapstructure:"clinvar_base_url"`

	// LOVDBaseURL is the VariantValidator LOVD base for coordinate-to-HGVS
	// resolution.
	LOVDBaseURL string `mapstructure:"lovd_base_url"`

	// GenomeBuild is the assembly used when resolving coordinates.
	GenomeBuild string `mapstructure:"genome_build"`

	// MinCallInterval is the minimum delay between external service calls.
	MinCallInterval time.Duration `mapstructure:"min_call_interval"`

	// HTTPTimeout bounds every external HTTP request.
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`

	// ListenAddr is the address the web viewer binds to.
	ListenAddr string `mapstructure:"listen_addr"`
}

// SetDefaults registers the default value for every key on the global
// viper instance. Call before ReadInConfig so file and environment
// values override them.
func SetDefaults() {
	viper.SetDefault("database_path", DefaultDatabasePath)
	viper.SetDefault("clinvar_base_url", DefaultClinVarBaseURL)
	viper.SetDefault("lovd_base_url", DefaultLOVDBaseURL)
	viper.SetDefault("genome_build", DefaultGenomeBuild)
	viper.SetDefault("min_call_interval", DefaultMinCallInterval)
	viper.SetDefault("http_timeout", DefaultHTTPTimeout)
	viper.SetDefault("listen_addr", DefaultListenAddr)
}

// Load resolves the configuration from defaults, an optional YAML file,
// and VARIANTVIEW_* environment variables (in increasing precedence).
// When cfgFile is empty the default ~/.variantview.yaml is used if it
// exists; an explicitly named file must exist.
func Load(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".variantview")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("VARIANTVIEW")
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file found; defaults and environment apply.
	}

	return FromViper()
}

// FromViper builds a Config from the current global viper state.
func FromViper() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}
