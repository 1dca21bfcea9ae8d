package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/codearena/internal/evaluator"
	"github.com/abhisek/codearena/internal/logging"
	"github.com/abhisek/codearena/internal/pipeline"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the challenge derived from a reference solution (no progress is touched)",
	Long: `Run the challenge pipeline on one reference file and print the result:
signature, category, difficulty, description, hints and test coverage.

This is a stateless authoring tool. Useful for checking how a new problem
file will be classified before adding it to the problems directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Bool("answer", false, "Also print the reference function")
}

func runInspect(cmd *cobra.Command, args []string) error {
	showAnswer, _ := cmd.Flags().GetBool("answer")

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	p := &pipeline.Parser{
		Evaluator: evaluator.NewStarlark(cfg.ExecTimeout, cfg.MaxSteps),
		Registry:  reg,
		Strategy:  strategyFor(cfg),
		Logger:    logging.New(os.Stderr, cfg.LogLevel),
	}
	ch, err := p.ParseFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(out, "ID:          %s\n", ch.ID)
	fmt.Fprintf(out, "Title:       %s\n", ch.Title)
	fmt.Fprintf(out, "Category:    %s\n", ch.Category.DisplayName())
	fmt.Fprintf(out, "Difficulty:  %s\n", ch.Difficulty)
	fmt.Fprintf(out, "Signature:   %s(%s)\n", ch.Facts.Name, strings.Join(ch.Facts.Params, ", "))
	if ex, ok := reg.Lookup(ch.ID, ch.Facts.Name); ok {
		fmt.Fprintf(out, "Test cases:  %d (exercise %q)\n", len(ex.Args), ex.Key)
	} else {
		fmt.Fprintln(out, "Test cases:  none, any submission that loads will pass")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, "DESCRIPTION")
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, ch.Description)

	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, "HINTS")
	fmt.Fprintln(out, sep)
	for i, h := range ch.Hints {
		fmt.Fprintf(out, "%d. %s\n", i+1, h)
	}

	if len(ch.SampleCases) > 0 {
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, "SAMPLE INPUTS")
		fmt.Fprintln(out, sep)
		for _, c := range ch.SampleCases {
			fmt.Fprintln(out, strings.Join(c, ", "))
		}
	}

	if showAnswer {
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, "REFERENCE")
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, ch.ExpectedAnswer)
	}
	return nil
}
