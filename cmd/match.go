package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/jsmatch/lint"
	"github.com/gnolang/jsmatch/matcher"
)

var countOnly bool

var matchCmd = &cobra.Command{
	Use:   "match EXPRESSION [paths...]",
	Short: "Print the nodes matched by a matcher expression",
	Example: `  jsmatch match 'ifStatement(hasElseClause(ifStatement()))' src/
  jsmatch match 'binaryOperator(hasOperator("="), hasParent(captureAs("stmt", anything())))' app.js`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := matcher.Parse(args[0])
		if err != nil {
			return err
		}
		logger.Debug("Matching", zap.Stringer("matcher", m))

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var found []lint.Match
		for _, path := range args[1:] {
			matches, err := lint.MatchPath(ctx, logger, m, path)
			if err != nil {
				logger.Error("Error matching path", zap.String("path", path), zap.Error(err))
				return err
			}
			found = append(found, matches...)
		}

		if countOnly {
			fmt.Fprintln(cmd.OutOrStdout(), len(found))
			return nil
		}
		printMatches(cmd.OutOrStdout(), found)
		return nil
	},
}

func init() {
	matchCmd.Flags().BoolVarP(&countOnly, "count", "c", false, "Only print the number of matches")
}

var (
	locationColor = color.New(color.FgCyan, color.Bold)
	kindColor     = color.New(color.FgYellow)
	captureColor  = color.New(color.FgGreen)
)

func printMatches(w io.Writer, matches []lint.Match) {
	for _, m := range matches {
		location := fmt.Sprintf("%s:%d:%d", m.Filename, m.Start.Line, m.Start.Column)
		fmt.Fprintf(w, "%s: %s\n", locationColor.Sprint(location), kindColor.Sprint(m.Kind))
		fmt.Fprintf(w, "    %s\n", firstLine(m.Text))
		for i, c := range m.Captures {
			name := c.Name
			if name == "" {
				name = fmt.Sprintf("$%d", i)
			}
			fmt.Fprintf(w, "    %s = %s (%d:%d)\n", captureColor.Sprint(name), firstLine(c.Text), c.Start.Line, c.Start.Column)
		}
	}
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i] + " ..."
	}
	return text
}
