package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/jsmatch/ast"
	"github.com/gnolang/jsmatch/matcher"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestMatchPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.js":              "if (x = 1) {\n  y();\n}\n",
		"sub/b.mjs":         "while (true) {}\n",
		"node_modules/c.js": "while (true) {}\n",
		"notes.txt":         "while (true) {}\n",
	})
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("single file with captures", func(t *testing.T) {
		t.Parallel()

		m := matcher.MustParse(`ifStatement(hasCondition(captureAs("cond", binaryOperator(hasOperator("=")))))`)
		matches, err := MatchPath(ctx, logger, m, filepath.Join(dir, "a.js"))
		require.NoError(t, err)
		require.Len(t, matches, 1)

		got := matches[0]
		assert.Equal(t, ast.KindIf, got.Kind)
		assert.Equal(t, 1, got.Start.Line)
		assert.Equal(t, 1, got.Start.Column)
		assert.Equal(t, 3, got.End.Line)
		assert.Equal(t, "if (x = 1) {\n  y();\n}", got.Text)

		require.Len(t, got.Captures, 1)
		assert.Equal(t, "cond", got.Captures[0].Name)
		assert.Equal(t, ast.KindBinary, got.Captures[0].Kind)
		assert.Equal(t, "x = 1", got.Captures[0].Text)
		assert.Equal(t, 5, got.Captures[0].Start.Column)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		matches, err := MatchPath(ctx, logger, matcher.WhileStatement(), dir)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, filepath.Join(dir, "sub", "b.mjs"), matches[0].Filename)
		assert.Equal(t, "while (true) {}", matches[0].Text)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		matches, err := MatchPath(ctx, logger, matcher.ForStatement(), dir)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("evaluation error", func(t *testing.T) {
		t.Parallel()

		_, err := MatchPath(ctx, logger, matcher.EqualTo(struct{}{}), filepath.Join(dir, "a.js"))
		assert.ErrorIs(t, err, matcher.ErrUnsupported)
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := MatchPath(ctx, logger, matcher.Anything(), filepath.Join(dir, "missing.js"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := MatchPath(cctx, logger, matcher.Anything(), dir)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMatchPathSyntaxError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"broken.js": "while (true) {}\n}}\n"})

	matches, err := MatchPath(context.Background(), nil, matcher.WhileStatement(), filepath.Join(dir, "broken.js"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Start.Line)
}
