package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/passgate/internal/config"
	"github.com/abhisek/passgate/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "passgate",
	Short:        "Password strength meter with a sign-up and login demo",
	Long:         "Passgate: a terminal app that scores passwords as you type them and keeps a small local account store.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PASSGATE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/passgate/config.yaml)")
	rootCmd.PersistentFlags().Bool("meter-colors", false, "Show a colored bar under the strength meter")

	rootCmd.AddCommand(initDBCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig merges defaults, the config file and PASSGATE_* variables,
// then applies flags, which win over everything else.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if cmd.Flags().Changed("meter-colors") {
		cfg.MeterColors, _ = cmd.Flags().GetBool("meter-colors")
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, or the default XDG
// path when none is set.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore loads the configuration and opens the database it points at.
func openStore(cmd *cobra.Command) (*store.Store, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("open database: %w", err)
	}
	return s, cfg, nil
}
