package main

import (
	"github.com/spf13/cobra"

	"github.com/pthm/relcore/internal/cliutil"
	"github.com/pthm/relcore/internal/config"
)

var (
	// Global state set during PersistentPreRunE.
	cfg        *config.Config
	configPath string

	// Persistent flags.
	cfgFile string
	quiet   bool

	// Shared per-command flags, resolved against cfg at RunE time.
	schemaFlag string
	dbFlag     string
)

var rootCmd = &cobra.Command{
	Use:   "relcore",
	Short: "Relationship-based authorization engine",
	Long: `relcore - relationship-based authorization engine

relcore evaluates Zanzibar-style permission checks (subject, relation,
object) against a namespace schema and a tuple store, either in-process
or against a PostgreSQL-backed store.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, configPath, err = config.LoadConfig(cfgFile)
		if err != nil {
			return cliutil.ConfigError("loading configuration", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

const (
	groupCore    = "core"
	groupDB      = "database"
	groupUtility = "utility"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover relcore.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&schemaFlag, "schema", "", "path to the schema file (.fga or .yaml)")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupCore, Title: "Core:"},
		&cobra.Group{ID: groupDB, Title: "Database:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	checkCmd.GroupID = groupCore
	expandCmd.GroupID = groupCore
	writeCmd.GroupID = groupCore
	validateCmd.GroupID = groupCore
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(validateCmd)

	migrateCmd.GroupID = groupDB
	rootCmd.AddCommand(migrateCmd)

	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cliutil.ExitWithError(err)
	}
}
