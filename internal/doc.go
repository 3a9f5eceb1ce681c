// Package internal provides the core of the jsmatch JavaScript linter.
//
// The Engine parses each file into the syntax tree of package ast and runs
// every enabled rule on it concurrently. Rules are tree patterns built with
// package matcher: the built-in ones live in package lints, and custom ones
// are compiled from the `match` expressions of the configuration file.
//
// Key components:
//
// Engine: coordinates the linting process. It registers the built-in rules,
// applies the configured severities, filters issues silenced by `//nolint`
// comments and sorts the remaining ones by position.
//
// LintRule: the contract of a rule. Check reports the issues found in a
// program; Matcher exposes the pattern behind the rule.
//
// Cache: stores the issues of a file until its content, one of the
// dependency files or the active rule set changes.
//
// Watcher: lints files again as they change on disk.
//
// SourceCode: the lines of a source file, used when printing issues.
//
// Usage:
//
//	engine, err := internal.NewEngine(rootDir, config.Rules)
//	if err != nil {
//	    // handle error
//	}
//
//	issues, err := engine.Run("path/to/file.js")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, issue := range issues {
//	    fmt.Printf("%s: %s\n", issue.Start, issue.Message)
//	}
//
// This package is intended for internal use within the linting tool and should not be
// imported by external packages.
package internal
