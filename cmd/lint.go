package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/jsmatch/formatter"
	"github.com/gnolang/jsmatch/internal"
	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/lint"
)

var (
	ignoreRules    string
	ignorePaths    string
	lintJsonOutput bool
	outPath        string
	cacheDir       string
	watchMode      bool
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint JavaScript files and directories",
	RunE:  runLint,
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	lintCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths or glob patterns to ignore")
	lintCmd.Flags().BoolVar(&lintJsonOutput, "json", false, "Output issues in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	lintCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory used to cache results between runs")
	lintCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Lint files again whenever they change")
}

func runLint(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("please provide file or directory paths")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	engine, err := lint.New(".", cfgFile)
	if err != nil {
		logger.Error("Failed to initialize lint engine", zap.Error(err))
		return err
	}

	for _, rule := range splitList(ignoreRules) {
		engine.IgnoreRule(rule)
	}
	for _, path := range splitList(ignorePaths) {
		engine.IgnorePath(path)
	}

	if cacheDir != "" {
		cache, err := openCache(cacheDir, cfgFile)
		if err != nil {
			logger.Error("Failed to open cache", zap.String("dir", cacheDir), zap.Error(err))
			return err
		}
		engine.SetCache(cache)
	}

	err = runNormalLintProcess(ctx, logger, engine, args, cmd.OutOrStdout(), lintJsonOutput, outPath)
	if !watchMode || (err != nil && !errors.Is(err, ErrIssuesFound)) {
		return err
	}

	watchCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return watch(watchCtx, logger, engine, args, cmd.OutOrStdout())
}

// watch lints the files below paths again as they change, until ctx is
// done.
func watch(ctx context.Context, logger *zap.Logger, engine *internal.Engine, paths []string, w io.Writer) error {
	watcher, err := internal.NewWatcher(engine, func(r internal.WatchReport) {
		switch {
		case r.Filename == "":
			logger.Error("File watcher error", zap.Error(r.Err))
		case r.Err != nil:
			logger.Error("Error linting changed file", zap.String("file", r.Filename), zap.Error(r.Err))
		case len(r.Issues) == 0:
			logger.Info("No issues found", zap.String("file", r.Filename))
		default:
			_ = printIssues(w, logger, r.Issues, false, "")
		}
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return err
		}
	}
	logger.Info("Watching for changes", zap.Strings("paths", paths))

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// openCache opens the result cache, invalidated when the configuration
// file changes.
func openCache(dir, configurationPath string) (*internal.Cache, error) {
	var dependencies []string
	if configurationPath != "" {
		if _, err := os.Stat(configurationPath); err == nil {
			dependencies = append(dependencies, configurationPath)
		}
	}
	return internal.NewCache(dir, dependencies...)
}

func splitList(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func runNormalLintProcess(
	ctx context.Context,
	logger *zap.Logger,
	engine lint.LintEngine,
	paths []string,
	w io.Writer,
	isJson bool,
	jsonOutput string,
) error {
	issues, err := lint.ProcessFiles(ctx, logger, engine, paths, lint.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
	}

	if perr := printIssues(w, logger, issues, isJson, jsonOutput); perr != nil {
		return perr
	}

	if err != nil {
		return err
	}
	if len(issues) > 0 {
		return fmt.Errorf("%d %w", len(issues), ErrIssuesFound)
	}
	return nil
}

func printIssues(w io.Writer, logger *zap.Logger, issues []tt.Issue, isJson bool, jsonOutput string) error {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	if !isJson {
		// text output
		for _, filename := range sortedFiles {
			fileIssues := issuesByFile[filename]
			sourceCode, err := internal.ReadSourceCode(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
			}
			fmt.Fprintln(w, formatter.GenerateFormattedIssue(fileIssues, sourceCode))
		}
		return nil
	}

	// JSON output
	d, err := json.Marshal(issuesByFile)
	if err != nil {
		logger.Error("Error marshalling issues to JSON", zap.Error(err))
		return err
	}
	if jsonOutput == "" {
		_, err = fmt.Fprintln(w, string(d))
		return err
	}

	if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
		return err
	}
	return nil
}
