package lint

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"os"

	"go.uber.org/zap"

	"github.com/gnolang/jsmatch/ast"
	"github.com/gnolang/jsmatch/internal/lints"
	"github.com/gnolang/jsmatch/matcher"
	"github.com/gnolang/jsmatch/parser"
	"github.com/gnolang/jsmatch/scanner"
)

// Match is a node of a file matched by an ad-hoc matcher.
type Match struct {
	Filename string
	Kind     ast.Kind
	Start    token.Position
	End      token.Position
	Text     string
	Captures []CapturedText
}

// CapturedText is a capture of a Match resolved against its source.
type CapturedText struct {
	// Name is empty for unnamed captures.
	Name  string
	Kind  ast.Kind
	Start token.Position
	Text  string
}

// MatchPath evaluates m against every node of a file, or of every
// JavaScript file below a directory. Files with syntax errors are matched
// on their recovered tree; the errors are logged.
func MatchPath(ctx context.Context, logger *zap.Logger, m matcher.Matcher, path string) ([]Match, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		found, err := scanner.New(path, scanner.Extensions...).Scan()
		if err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", path, err)
		}
		files = files[:0]
		for _, f := range found {
			files = append(files, f.Path)
		}
	}

	p := parser.New()
	var matches []Match
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return matches, err
		}
		found, err := matchFile(ctx, logger, p, m, file)
		if err != nil {
			return matches, err
		}
		matches = append(matches, found...)
	}
	return matches, nil
}

func matchFile(ctx context.Context, logger *zap.Logger, p *parser.Parser, m matcher.Matcher, filename string) ([]Match, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}

	prog, err := p.Parse(ctx, src)
	if prog == nil {
		return nil, fmt.Errorf("error parsing %s: %w", filename, err)
	}
	if err != nil {
		if !errors.Is(err, parser.ErrSyntax) {
			return nil, fmt.Errorf("error parsing %s: %w", filename, err)
		}
		if logger != nil {
			logger.Warn("Matching a file with syntax errors", zap.String("file", filename), zap.Error(err))
		}
	}

	results, err := matcher.Find(m, prog)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	matches := make([]Match, 0, len(results))
	for _, res := range results {
		match := Match{
			Filename: filename,
			Kind:     res.Node.Kind(),
			Start:    lints.Position(filename, prog, res.Node.Idx0()),
			End:      lints.Position(filename, prog, res.Node.Idx1()),
			Text:     prog.Text(res.Node),
		}
		for _, c := range res.Captures {
			match.Captures = append(match.Captures, CapturedText{
				Name:  c.Name,
				Kind:  c.Node.Kind(),
				Start: lints.Position(filename, prog, c.Node.Idx0()),
				Text:  prog.Text(c.Node),
			})
		}
		matches = append(matches, match)
	}
	return matches, nil
}
