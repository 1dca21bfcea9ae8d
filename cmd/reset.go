package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/codearena/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset player progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Fprintln(cmd.OutOrStdout(), "This erases your level, score and completed challenges. Re-run with --yes to confirm.")
			return nil
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.progress.Save(cmd.Context(), store.NewProgress()); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		env.logger.Info("progress reset")
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset. Back to level 1.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
