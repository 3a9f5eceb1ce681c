package lint

import (
	"context"
	"errors"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/jsmatch/internal/types"
)

type mockLintEngine struct {
	mock.Mock
}

func (m *mockLintEngine) Run(filePath string) ([]types.Issue, error) {
	args := m.Called(filePath)
	return args.Get(0).([]types.Issue), args.Error(1)
}

func (m *mockLintEngine) RunSource(source []byte) ([]types.Issue, error) {
	args := m.Called(source)
	return args.Get(0).([]types.Issue), args.Error(1)
}

func (m *mockLintEngine) IgnoreRule(rule string) {
	m.Called(rule)
}

func (m *mockLintEngine) IgnorePath(path string) {
	m.Called(path)
}

func issueAt(filename, rule string, line int) types.Issue {
	return types.Issue{
		Rule:     rule,
		Filename: filename,
		Start:    token.Position{Filename: filename, Line: line, Column: 1},
		End:      token.Position{Filename: filename, Line: line, Column: 11},
		Message:  "Test issue",
	}
}

func createTempFiles(t *testing.T, dir string, fileNames ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(fileNames))
	for _, fileName := range fileNames {
		filePath := filepath.Join(dir, fileName)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte("a();\n"), 0o644))
		paths = append(paths, filePath)
	}
	return paths
}

func TestProcessFile(t *testing.T) {
	t.Parallel()

	expected := []types.Issue{issueAt("test.js", "test-rule", 1)}
	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", "test.js").Return(expected, nil)

	issues, err := ProcessFile(mockEngine, "test.js")
	assert.NoError(t, err)
	assert.Equal(t, expected, issues)
	mockEngine.AssertExpectations(t)
}

func TestProcessSource(t *testing.T) {
	t.Parallel()

	expected := []types.Issue{issueAt("", "test-rule", 1)}
	mockEngine := new(mockLintEngine)
	mockEngine.On("RunSource", []byte("a();")).Return(expected, nil)

	issues, err := ProcessSource(mockEngine, []byte("a();"))
	assert.NoError(t, err)
	assert.Equal(t, expected, issues)
	mockEngine.AssertExpectations(t)
}

func TestProcessPath(t *testing.T) {
	t.Parallel()

	logger := zap.NewNop()
	tempDir := t.TempDir()
	paths := createTempFiles(t, tempDir, "test1.js", "sub/test2.mjs", "notes.txt", "node_modules/dep.js")

	first := issueAt(paths[0], "rule1", 1)
	second := issueAt(paths[1], "rule2", 1)

	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", paths[0]).Return([]types.Issue{first}, nil)
	mockEngine.On("Run", paths[1]).Return([]types.Issue{second}, nil)

	issues, err := ProcessPath(context.Background(), logger, mockEngine, tempDir, ProcessFile)
	assert.NoError(t, err)
	assert.Equal(t, []types.Issue{second, first}, issues, "sorted by file name")
	mockEngine.AssertExpectations(t)
	mockEngine.AssertNotCalled(t, "Run", paths[2])
	mockEngine.AssertNotCalled(t, "Run", paths[3])
}

func TestProcessPathErrors(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	paths := createTempFiles(t, tempDir, "a.js", "b.js")
	failure := errors.New("boom")

	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", paths[0]).Return([]types.Issue{}, failure)
	mockEngine.On("Run", paths[1]).Return([]types.Issue{issueAt(paths[1], "rule", 2)}, nil)

	issues, err := ProcessPath(context.Background(), zap.NewNop(), mockEngine, tempDir, ProcessFile)
	assert.ErrorIs(t, err, failure)
	assert.Len(t, issues, 1, "the other files are still reported")

	_, err = ProcessPath(context.Background(), nil, mockEngine, filepath.Join(tempDir, "missing"), ProcessFile)
	assert.Error(t, err)
}

func TestProcessPathCancelled(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	createTempFiles(t, tempDir, "a.js", "b.js")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", mock.Anything).Return([]types.Issue{}, nil)

	_, err := ProcessPath(ctx, nil, mockEngine, tempDir, ProcessFile)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessPathSkipsOtherExtensions(t *testing.T) {
	t.Parallel()

	paths := createTempFiles(t, t.TempDir(), "readme.md")
	mockEngine := new(mockLintEngine)

	issues, err := ProcessPath(context.Background(), nil, mockEngine, paths[0], ProcessFile)
	assert.NoError(t, err)
	assert.Empty(t, issues)
	mockEngine.AssertNotCalled(t, "Run", paths[0])
}

func TestProcessFiles(t *testing.T) {
	t.Parallel()

	paths := createTempFiles(t, t.TempDir(), "test1.js", "test2.cjs")
	first := issueAt(paths[0], "rule1", 1)
	second := issueAt(paths[1], "rule2", 1)

	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", paths[0]).Return([]types.Issue{first}, nil)
	mockEngine.On("Run", paths[1]).Return([]types.Issue{second}, nil)

	issues, err := ProcessFiles(context.Background(), zap.NewNop(), mockEngine, paths, ProcessFile)
	assert.NoError(t, err)
	assert.Equal(t, []types.Issue{first, second}, issues)
	mockEngine.AssertExpectations(t)
}

func TestProcessSources(t *testing.T) {
	t.Parallel()

	first := issueAt("", "rule1", 1)
	second := issueAt("", "rule2", 1)

	mockEngine := new(mockLintEngine)
	mockEngine.On("RunSource", []byte("a();")).Return([]types.Issue{first}, nil)
	mockEngine.On("RunSource", []byte("b();")).Return([]types.Issue{second}, nil)

	issues, err := ProcessSources(context.Background(), zap.NewNop(), mockEngine,
		[][]byte{[]byte("a();"), []byte("b();")}, ProcessSource)
	assert.NoError(t, err)
	assert.Equal(t, []types.Issue{first, second}, issues)
	mockEngine.AssertExpectations(t)
}

func TestHasDesiredExtension(t *testing.T) {
	t.Parallel()

	assert.True(t, hasDesiredExtension("test.js"))
	assert.True(t, hasDesiredExtension("test.mjs"))
	assert.True(t, hasDesiredExtension("test.cjs"))
	assert.False(t, hasDesiredExtension("test.ts"))
	assert.False(t, hasDesiredExtension("test"))
}

func TestNew(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("missing configuration", func(t *testing.T) {
		t.Parallel()
		engine, err := New(dir, filepath.Join(dir, "absent.yaml"))
		require.NoError(t, err)
		issues, err := engine.RunSource([]byte("if (a) b();\n"))
		require.NoError(t, err)
		assert.NotEmpty(t, issues)
	})

	t.Run("configured", func(t *testing.T) {
		t.Parallel()
		config := filepath.Join(dir, "configured.yaml")
		require.NoError(t, os.WriteFile(config, []byte(`name: test
rules:
  curly-braces:
    severity: OFF
  no-return-literal:
    severity: WARNING
    match: node("return-statement", hasExpression(boolLiteral()))
    message: return a computed value
`), 0o644))

		engine, err := New(dir, config)
		require.NoError(t, err)
		issues, err := engine.RunSource([]byte("if (a) b();\nfunction f() { return true; }\n"))
		require.NoError(t, err)
		require.Len(t, issues, 1)
		assert.Equal(t, "no-return-literal", issues[0].Rule)
		assert.Equal(t, "return a computed value", issues[0].Message)
		assert.Equal(t, types.SeverityWarning, issues[0].Severity)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()
		config := filepath.Join(dir, "invalid.yaml")
		require.NoError(t, os.WriteFile(config, []byte("rules: [\n"), 0o644))
		_, err := New(dir, config)
		assert.Error(t, err)
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		config := filepath.Join(dir, "unknown.yaml")
		require.NoError(t, os.WriteFile(config, []byte("rulez: {}\n"), 0o644))
		_, err := New(dir, config)
		assert.Error(t, err)
	})
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	assert.Equal(t, "jsmatch", config.Name)
	assert.Contains(t, config.Rules, "curly-braces")
	assert.Equal(t, types.SeverityOff, config.Rules["else-if-without-else"].Severity)
}
