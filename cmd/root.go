package cmd

import (
	"github.com/abhisek/mathpractice/internal/config"
	"github.com/abhisek/mathpractice/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mathpractice",
	Short: "AI math word problems for Primary 5",
	Long: "mathpractice generates Primary 5 math word problems with a language model,\n" +
		"grades answers and gives personalised feedback over a small web API.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database DSN or SQLite file path (overrides MATHPRACTICE_DB)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the --config file (if any) and environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// resolveDBPath returns the database DSN using the --db flag (highest
// priority), then the configured DSN, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Database.DSN != "" {
		return cfg.Database.DSN, store.EnsureDir(cfg.Database.DSN)
	}
	return store.DefaultDBPath()
}

// openStore loads configuration and opens the database.
func openStore(cmd *cobra.Command) (*store.Store, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	dsn, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, cfg, err
	}
	s, err := store.OpenContext(cmd.Context(), dsn)
	if err != nil {
		return nil, cfg, err
	}
	return s, cfg, nil
}
