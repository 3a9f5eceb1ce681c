package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/jsmatch/internal"
	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/lint"
	"github.com/gnolang/jsmatch/matcher"
)

var (
	listAllRules bool
	listMatchers bool
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the configured rules and their matcher expressions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if listMatchers {
			for _, name := range matcher.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}

		engine, err := lint.New(".", cfgFile)
		if err != nil {
			logger.Error("Failed to initialize lint engine", zap.Error(err))
			return err
		}
		return listRules(cmd.OutOrStdout(), engine.Rules(), listAllRules)
	},
}

func init() {
	rulesCmd.Flags().BoolVar(&listAllRules, "all", false, "Also list built-in rules that are turned off")
	rulesCmd.Flags().BoolVar(&listMatchers, "matchers", false, "List the matcher names usable in expressions")
}

func listRules(w io.Writer, active []internal.LintRule, all bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tSEVERITY\tPATTERN")

	seen := make(map[string]bool, len(active))
	for _, r := range active {
		seen[r.Name()] = true
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name(), r.Severity(), r.Matcher())
	}
	if all {
		for _, r := range internal.BuiltinRules() {
			if !seen[r.Name()] {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name(), tt.SeverityOff, r.Matcher())
			}
		}
	}
	return tw.Flush()
}
