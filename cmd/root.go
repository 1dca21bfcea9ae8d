package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/codearena/internal/config"
	"github.com/abhisek/codearena/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "codearena",
	Short: "Terminal coding practice game",
	Long: `Code Arena turns a folder of reference solutions into coding challenges.
Solve them in the built-in editor to earn points, level up and unlock new categories.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("problems", "", "Directory of reference solutions (overrides CODEARENA_PROBLEMS_DIR)")
	pf.String("exercises", "", "Exercise file merged over the built-in test cases (overrides CODEARENA_EXERCISES_FILE)")
	pf.String("store", "", `Progress backend, "sqlite" or "file" (overrides CODEARENA_STORE)`)
	pf.String("data-dir", "", "Directory for progress, database and logs (overrides CODEARENA_DATA_DIR)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig loads the environment configuration and applies flag
// overrides. Flags win over CODEARENA_* variables.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if v, _ := flags.GetString("problems"); v != "" {
		cfg.ProblemsDir = v
	}
	if v, _ := flags.GetString("exercises"); v != "" {
		cfg.ExercisesFile = v
	}
	if v, _ := flags.GetString("store"); v != "" {
		cfg.Store = v
	}
	if v, _ := flags.GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}

	if cfg.DataDir == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
