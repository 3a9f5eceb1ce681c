package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/jsmatch/ast"
	"github.com/gnolang/jsmatch/parser"
)

var treeCmd = &cobra.Command{
	Use:   "tree FILE",
	Short: "Print the syntax tree matchers are evaluated against",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		prog, err := parseFile(ctx, args[0])
		if err != nil {
			return err
		}
		return ast.Fdump(cmd.OutOrStdout(), prog)
	},
}

// parseFile parses filename. Syntax errors are logged and the recovered
// tree is returned.
func parseFile(ctx context.Context, filename string) (*ast.Program, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}

	prog, err := parser.New().Parse(ctx, src)
	if prog == nil {
		return nil, fmt.Errorf("error parsing %s: %w", filename, err)
	}
	if err != nil {
		if !errors.Is(err, parser.ErrSyntax) {
			return nil, fmt.Errorf("error parsing %s: %w", filename, err)
		}
		logger.Warn("Source has syntax errors", zap.String("file", filename), zap.Error(err))
	}
	return prog, nil
}
