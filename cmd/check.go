package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/codearena/internal/challenge"
)

// errRejected makes the process exit non-zero when a solution fails.
var errRejected = errors.New("solution rejected")

var checkCmd = &cobra.Command{
	Use:   "check <challenge-id> <solution-file>",
	Short: "Judge a solution file against a challenge without scoring it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ch, ok := env.engine.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown challenge %q (see: codearena list)", args[0])
		}
		src, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read solution: %w", err)
		}

		res := ch.CheckSolution(cmd.Context(), string(src))
		env.engine.RecordAttempt(cmd.Context(), ch, res)

		out := cmd.OutOrStdout()
		if !res.Passed {
			fmt.Fprintln(out, "✗", challenge.WithoutReveal(res.Message))
			return errRejected
		}
		fmt.Fprintln(out, "✓", res.Message)
		if res.Unverified {
			fmt.Fprintln(out, "  (no test cases are registered for this challenge)")
		}
		return nil
	},
}
