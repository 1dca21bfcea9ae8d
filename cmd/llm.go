package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/codearena/internal/coach"
	"github.com/abhisek/codearena/internal/config"
	"github.com/abhisek/codearena/internal/llm"
	"github.com/abhisek/codearena/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect AI coach reviews",
}

// openEventStore opens the sqlite store without loading challenges.
func openEventStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Store != config.StoreSQLite {
		return nil, errNoEvents
	}
	s, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent coach reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		challengeID, _ := cmd.Flags().GetString("challenge")

		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{
			Limit:       limit,
			ChallengeID: challengeID,
			Purpose:     llm.PurposeCoach,
		})
		if err != nil {
			return fmt.Errorf("query reviews: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No coach reviews yet. Press Ctrl+R after a failed attempt to ask for one.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-16s  %-22s  %-9s  %6s  %s\n",
			"ID", "When", "Challenge", "Tokens", "Ms", "Review")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, e := range events {
			fmt.Fprintf(out, "%-5d  %-16s  %-22s  %-9s  %6d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(orNone(e.ChallengeID), 22),
				fmt.Sprintf("%d/%d", e.InputTokens, e.OutputTokens),
				e.LatencyMs,
				reviewGist(e, 36),
			)
		}
		return nil
	},
}

// reviewGist is the start of the feedback, or the failure reason.
func reviewGist(e store.LLMRequestEvent, width int) string {
	if !e.Success {
		return "✗ " + truncate(e.ErrorMessage, width)
	}
	fb, err := coach.ParseReview([]byte(e.ResponseBody))
	if err != nil || fb.Feedback == "" {
		return "✓ (unreadable reply)"
	}
	return "✓ " + truncate(fb.Feedback, width)
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and the review of one coach request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get review: %w", err)
		}
		if e == nil {
			return fmt.Errorf("review %d not found", id)
		}
		printReview(cmd.OutOrStdout(), e)
		return nil
	},
}

func printReview(out io.Writer, e *store.LLMRequestEvent) {
	fmt.Fprintf(out, "Review #%d for %s\n", e.ID, orNone(e.ChallengeID))
	fmt.Fprintf(out, "  %s via %s/%s, %d in / %d out tokens, %dms\n",
		e.Timestamp.Local().Format("2006-01-02 15:04:05"),
		e.Provider, e.Model, e.InputTokens, e.OutputTokens, e.LatencyMs)

	section(out, "Prompt")
	if e.RequestBody == "" {
		fmt.Fprintln(out, "(not captured)")
	} else {
		fmt.Fprintln(out, e.RequestBody)
	}

	section(out, "Review")
	if !e.Success {
		fmt.Fprintln(out, "Request failed:", e.ErrorMessage)
		return
	}
	fb, err := coach.ParseReview([]byte(e.ResponseBody))
	if err != nil {
		fmt.Fprintln(out, e.ResponseBody)
		return
	}
	fmt.Fprintln(out, "Feedback:  ", fb.Feedback)
	fmt.Fprintln(out, "Next step: ", fb.NextStep)
}

func section(out io.Writer, title string) {
	fmt.Fprintf(out, "\n── %s %s\n", title, strings.Repeat("─", 56-len(title)))
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show coach reviews per challenge and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		perChallenge, err := s.EventRepo().LLMUsageByChallenge(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(perChallenge) == 0 {
			fmt.Fprintln(out, "No coach reviews recorded yet.")
			return nil
		}

		rule := strings.Repeat("─", 72)
		fmt.Fprintln(out, "Reviews by challenge")
		fmt.Fprintln(out, rule)
		fmt.Fprintf(out, "%-26s  %7s  %6s  %10s  %8s\n", "Challenge", "Reviews", "Failed", "Tokens", "Avg ms")
		fmt.Fprintln(out, rule)
		var reviews, failed, tokens int
		for _, u := range perChallenge {
			used := u.InputTokens + u.OutputTokens
			fmt.Fprintf(out, "%-26s  %7d  %6d  %10d  %8d\n",
				truncate(orNone(u.ChallengeID), 26), u.Calls, u.Failures, used, u.AvgLatencyMs)
			reviews += u.Calls
			failed += u.Failures
			tokens += used
		}
		fmt.Fprintln(out, rule)
		fmt.Fprintf(out, "%-26s  %7d  %6d  %10d\n", "TOTAL", reviews, failed, tokens)

		perModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Estimated cost (USD)")
		fmt.Fprintln(out, rule)
		var total float64
		var unpriced []string
		for _, u := range perModel {
			cost := llm.LookupCost(u.Model)
			if cost == nil {
				unpriced = append(unpriced, u.Model)
				fmt.Fprintf(out, "%-40s  %7d  %10s\n", truncate(u.Model, 40), u.Calls, "?")
				continue
			}
			c := cost.Cost(u.InputTokens, u.OutputTokens)
			total += c
			fmt.Fprintf(out, "%-40s  %7d  %10s\n", truncate(u.Model, 40), u.Calls, formatCost(c))
		}
		fmt.Fprintln(out, rule)
		label := "TOTAL"
		if len(unpriced) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Fprintf(out, "%-40s  %7s  %10s\n", label, "", formatCost(total))
		if len(unpriced) > 0 {
			fmt.Fprintf(out, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func orNone(id string) string {
	if id == "" {
		return "(none)"
	}
	return id
}

func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > max {
		return string(r[:max-1]) + "…"
	}
	return s
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of reviews to show")
	llmListCmd.Flags().StringP("challenge", "c", "", "Only reviews of this challenge ID")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
