package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/codearena/internal/engine"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show level, score and progress per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		st := env.engine.Stats()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Level:                %d\n", st.Level)
		fmt.Fprintf(out, "Total Score:          %d\n", st.Score)
		fmt.Fprintf(out, "Challenges Completed: %d of %d\n", st.Completed, st.Total)
		if next := nextUnlock(st.Level); next != nil {
			fmt.Fprintf(out, "Next unlock:          %s at level %d\n", next.Category.DisplayName(), next.Level)
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-18s  %-8s  %s\n", "Category", "Status", "Done")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		for _, cs := range env.engine.Categories() {
			status := "locked"
			if cs.Unlocked {
				status = "open"
			}
			fmt.Fprintf(out, "%-18s  %-8s  %d/%d\n",
				cs.Category.DisplayName(), status, cs.Completed, cs.Total)
		}
		return nil
	},
}

// nextUnlock returns the first unlock above level, or nil.
func nextUnlock(level int) *engine.Unlock {
	for i := range engine.Unlocks {
		if engine.Unlocks[i].Level > level {
			return &engine.Unlocks[i]
		}
	}
	return nil
}
