package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the schema file",
	Long:  `Parse and validate the namespace schema, without touching the database.`,
	Example: `  # Validate using --schema
  relcore validate --schema schema.fga

  # Validate using config file settings
  relcore validate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSchema(cfg)
		if err != nil {
			return err
		}

		if !quiet {
			fmt.Printf("Schema is valid. Found %d namespaces:\n", len(s.Namespaces))
			for _, ns := range s.Namespaces {
				fmt.Printf("  - %s (%d relations)\n", ns.Type, len(ns.Relations))
			}
		}
		return nil
	},
}
