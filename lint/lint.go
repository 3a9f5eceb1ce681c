// Package lint is the public entry point of the jsmatch linter: it builds
// engines from configuration files and runs them over files, directories
// and in-memory sources.
package lint

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/jsmatch/internal"
	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/scanner"
)

type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
}

// New creates an engine configured by the yaml file at configurationPath.
// An empty path, or a path that does not exist, selects the default rules.
func New(rootDir string, configurationPath string) (*internal.Engine, error) {
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}

	return internal.NewEngine(rootDir, config.Rules)
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources [][]byte,
	processor func(LintEngine, []byte) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return allIssues, err
		}
		issues, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// ProcessFiles processes every path and returns the issues found. Errors
// of individual paths are joined; the issues of the other paths are still
// returned.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var (
		allIssues []tt.Issue
		errs      []error
	)
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			if ctx.Err() != nil {
				return allIssues, err
			}
			errs = append(errs, err)
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, errors.Join(errs...)
}

// ProcessPath processes a single file, or every JavaScript file below a
// directory using one worker per CPU.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return []tt.Issue{}, nil
		}
		issues, err := processor(engine, path)
		if issues == nil {
			issues = []tt.Issue{}
		}
		return issues, err
	}

	found, err := scanner.New(path, scanner.Extensions...).Scan()
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(found),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		issues = []tt.Issue{}
		errs   []error
	)

	// limit the number of workers
	sem := make(chan struct{}, runtime.NumCPU())

	for _, file := range found {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			fileIssues, err := processor(engine, fp)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				errs = append(errs, fmt.Errorf("%s: %w", fp, err))
			}
			issues = append(issues, fileIssues...)
			_ = bar.Add(1)
		}(file.Path)
	}
	wg.Wait()
	_ = bar.Finish()

	sortIssues(issues)
	if err := ctx.Err(); err != nil {
		return issues, err
	}
	return issues, errors.Join(errs...)
}

func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(source)
}

func hasDesiredExtension(path string) bool {
	return scanner.New("").IsTarget(path)
}

func sortIssues(issues []tt.Issue) {
	slices.SortStableFunc(issues, func(a, b tt.Issue) int {
		return cmp.Or(
			strings.Compare(a.Filename, b.Filename),
			cmp.Compare(a.Start.Line, b.Start.Line),
			cmp.Compare(a.Start.Column, b.Start.Column),
		)
	})
}

// Config represents the overall configuration with a name and a slice of rules.
type Config struct {
	Name  string                   `yaml:"name"`
	Rules map[string]tt.ConfigRule `yaml:"rules"`
}

// DefaultConfig lists every built-in rule with its default severity.
func DefaultConfig() Config {
	config := Config{
		Name:  "jsmatch",
		Rules: make(map[string]tt.ConfigRule),
	}
	for _, r := range internal.BuiltinRules() {
		config.Rules[r.Name()] = tt.ConfigRule{Severity: r.Severity()}
	}
	return config
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	var config Config
	if configurationPath == "" {
		return config, nil
	}

	f, err := os.Open(configurationPath)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("error opening configuration: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error parsing %s: %w", configurationPath, err)
	}

	return config, nil
}
