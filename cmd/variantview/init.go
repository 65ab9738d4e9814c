package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/variantlab/variantview/internal/store"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the variant database",
		Long:  "Create the DuckDB database file with its inputs and outputs tables.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(cfg.DatabasePath)
			if err != nil {
				return err
			}
			if err := s.Close(); err != nil {
				return err
			}
			fmt.Printf("Initialized variant database at %s\n", cfg.DatabasePath)
			return nil
		},
	}
}
