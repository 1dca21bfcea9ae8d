package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/codearena/internal/challenge"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List challenges (optionally filtered by category)",
	RunE: func(cmd *cobra.Command, args []string) error {
		catFlag, _ := cmd.Flags().GetString("category")
		available, _ := cmd.Flags().GetBool("available")

		var cat challenge.Category
		if catFlag != "" {
			c, err := challenge.ParseCategory(catFlag)
			if err != nil {
				return err
			}
			cat = c
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		chs := env.engine.All()
		if available {
			chs = env.engine.Available()
		}

		unlocked := make(map[challenge.Category]bool)
		for _, c := range env.engine.Stats().Unlocked {
			unlocked[c] = true
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-24s  %-30s  %-16s  %-7s  %5s  %s\n",
			"ID", "Title", "Category", "Level", "Hints", "Status")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		shown := 0
		for _, ch := range chs {
			if cat != "" && ch.Category != cat {
				continue
			}
			status := "locked"
			switch {
			case env.engine.IsCompleted(ch.ID):
				status = "done"
			case unlocked[ch.Category]:
				status = "open"
			}
			fmt.Fprintf(out, "%-24s  %-30s  %-16s  %-7s  %5d  %s\n",
				truncate(ch.ID, 24),
				truncate(ch.Title, 30),
				ch.Category.DisplayName(),
				ch.Difficulty.String(),
				len(ch.Hints),
				status,
			)
			shown++
		}
		fmt.Fprintf(out, "\n%d challenges\n", shown)
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("category", "c", "", "Only this category (e.g. basics, data-structures)")
	listCmd.Flags().BoolP("available", "a", false, "Only challenges in unlocked categories")
}
