package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	defaultConfigFile = ".jsmatch.yaml"
	defaultTimeout    = 5 * time.Minute
)

// ErrIssuesFound is returned by Execute when linting reported issues.
var ErrIssuesFound = errors.New("issues found")

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:              "jsmatch [paths...]",
	Short:            "jsmatch - a JavaScript linter built on tree-pattern matchers",
	Args:             cobra.ArbitraryArgs,
	TraverseChildren: true, // Prioritize subcommands
	SilenceUsage:     true,
	SilenceErrors:    true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// no subcommand
		if len(args) == 0 {
			return cmd.Help()
		}
		// Format: jsmatch [path1 path2 ...] => behaves like the lint subcommand
		return runLint(cmd, args)
	},
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return config.Build()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigFile, "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Timeout for the whole run")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(treeCmd)
}
