package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/codearena/internal/store"
)

var errNoEvents = errors.New("history is only recorded with the sqlite store (--store sqlite)")

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed challenges and, optionally, every attempt",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		id, _ := cmd.Flags().GetString("challenge")
		attempts, _ := cmd.Flags().GetBool("attempts")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()
		if env.events == nil {
			return errNoEvents
		}

		ctx := cmd.Context()
		opts := store.QueryOpts{Limit: limit, ChallengeID: id}
		out := cmd.OutOrStdout()

		if attempts {
			events, err := env.events.QueryAttempts(ctx, opts)
			if err != nil {
				return fmt.Errorf("query attempts: %w", err)
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "No attempts recorded.")
				return nil
			}
			fmt.Fprintf(out, "%-19s  %-24s  %4s  %-2s  %s\n", "Timestamp", "Challenge", "#", "OK", "Message")
			fmt.Fprintln(out, strings.Repeat("─", 100))
			for _, e := range events {
				ok := "✗"
				if e.Passed {
					ok = "✓"
				}
				msg := e.Message
				if i := strings.IndexByte(msg, '\n'); i >= 0 {
					msg = msg[:i]
				}
				fmt.Fprintf(out, "%-19s  %-24s  %4d  %-2s  %s\n",
					e.Timestamp.Local().Format("2006-01-02 15:04:05"),
					truncate(e.ChallengeID, 24), e.Attempt, ok, truncate(msg, 40))
			}
			return nil
		}

		events, err := env.events.QueryCompletions(ctx, opts)
		if err != nil {
			return fmt.Errorf("query completions: %w", err)
		}
		if len(events) == 0 {
			fmt.Fprintln(out, "No completed challenges yet.")
			return nil
		}
		fmt.Fprintf(out, "%-19s  %-24s  %6s  %8s  %5s  %8s\n",
			"Timestamp", "Challenge", "Score", "Attempts", "Hints", "Time")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, e := range events {
			fmt.Fprintf(out, "%-19s  %-24s  %6d  %8d  %5d  %8s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.ChallengeID, 24), e.Score, e.Attempts, e.HintsUsed,
				e.Elapsed.Round(time.Second).String())
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	historyCmd.Flags().StringP("challenge", "c", "", "Only this challenge ID")
	historyCmd.Flags().Bool("attempts", false, "List attempts instead of completions")
}
