package formatter

import (
	"go/token"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/gnolang/jsmatch/internal"
	tt "github.com/gnolang/jsmatch/internal/types"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestGenerateFormattedIssue(t *testing.T) {
	t.Parallel()

	code := &internal.SourceCode{
		Lines: []string{
			"function main() {",
			"  if (a) b();",
			"  while (x) {}",
			"}",
		},
	}

	issues := []tt.Issue{
		{
			Rule:     "curly-braces",
			Filename: "test.js",
			Start:    token.Position{Line: 2, Column: 3},
			End:      token.Position{Line: 2, Column: 13},
			Message:  "statement body should be enclosed in curly braces",
			Severity: tt.SeverityWarning,
		},
		{
			Rule:     "empty-block",
			Filename: "test.js",
			Start:    token.Position{Line: 3, Column: 13},
			End:      token.Position{Line: 3, Column: 14},
			Message:  "empty block",
			Severity: tt.SeverityError,
		},
	}

	expected := `warning: curly-braces
 --> test.js:2:3
  |
2 | if (a) b();
  | ~~~~~~~~~~~
  = statement body should be enclosed in curly braces

error: empty-block
 --> test.js:3:13
  |
3 | while (x) {}
  |           ~~
  = empty block

`

	assert.Equal(t, expected, GenerateFormattedIssue(issues, code))
}

func TestGenerateFormattedIssue_Tabs(t *testing.T) {
	t.Parallel()

	code := &internal.SourceCode{Lines: []string{"function main() {", "\tif (a) b();", "}"}}
	issues := []tt.Issue{{
		Rule:     "curly-braces",
		Filename: "test.js",
		Start:    token.Position{Line: 2, Column: 2},
		End:      token.Position{Line: 2, Column: 12},
		Message:  "braces",
		Severity: tt.SeverityInfo,
	}}

	expected := `info: curly-braces
 --> test.js:2:2
  |
2 | if (a) b();
  | ~~~~~~~~~~~
  = braces

`
	assert.Equal(t, expected, GenerateFormattedIssue(issues, code))
}

func TestGenerateFormattedIssue_MultipleDigitsLineNumbers(t *testing.T) {
	t.Parallel()

	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "a();"
	}
	lines[9] = "x = a ? b ? 1 : 2 : 3;"
	code := &internal.SourceCode{Lines: lines}

	issues := []tt.Issue{{
		Rule:     "nested-conditional",
		Filename: "test.js",
		Start:    token.Position{Line: 10, Column: 9},
		End:      token.Position{Line: 10, Column: 17},
		Message:  "conditional expressions should not be nested",
		Severity: tt.SeverityInfo,
	}}

	expected := `info: nested-conditional
  --> test.js:10:9
   |
10 | x = a ? b ? 1 : 2 : 3;
   |         ~~~~~~~~~
   = conditional expressions should not be nested

`
	assert.Equal(t, expected, GenerateFormattedIssue(issues, code))
}

func TestGeneralFormatter_SuggestionAndNote(t *testing.T) {
	t.Parallel()

	code := &internal.SourceCode{Lines: []string{"if (a) if (b) c();"}}
	issue := tt.Issue{
		Rule:       "collapsible-if",
		Filename:   "test.js",
		Start:      token.Position{Line: 1, Column: 1},
		End:        token.Position{Line: 1, Column: 18},
		Message:    "this if statement can be merged with the enclosed one",
		Suggestion: "if (a && b) c();",
		Note:       "merged conditions read as one",
		Severity:   tt.SeverityWarning,
	}

	expected := `warning: collapsible-if
 --> test.js:1:1
  |
1 | if (a) if (b) c();
  | ~~~~~~~~~~~~~~~~~~
  = this if statement can be merged with the enclosed one

Suggestion:
  |
1 | if (a && b) c();
  |

Note: merged conditions read as one

`
	assert.Equal(t, expected, buildIssue(issue, code, &GeneralIssueFormatter{}))
}

func TestSyntaxErrorFormatter(t *testing.T) {
	t.Parallel()

	code := &internal.SourceCode{Lines: []string{"a();", "  }}"}}
	issues := []tt.Issue{{
		Rule:     internal.SyntaxErrorRule,
		Filename: "test.js",
		Start:    token.Position{Line: 2, Column: 3},
		End:      token.Position{Line: 2, Column: 3},
		Message:  "syntax error near }}",
		Severity: tt.SeverityError,
	}}

	expected := `error: syntax-error
 --> test.js:2:3
  |
2 | }}
  | ^ syntax error near }}

`
	assert.Equal(t, expected, GenerateFormattedIssue(issues, code))
}

func TestCustomRuleFormatter(t *testing.T) {
	t.Parallel()

	code := &internal.SourceCode{Lines: []string{"while (1) {}"}}
	issues := []tt.Issue{{
		Rule:     "no-literal-while",
		Category: "custom",
		Filename: "test.js",
		Start:    token.Position{Line: 1, Column: 1},
		End:      token.Position{Line: 1, Column: 12},
		Message:  "literal loop condition",
		Note:     "cond: 1\n$1: {}",
		Severity: tt.SeverityInfo,
	}}

	expected := `info: no-literal-while
 --> test.js:1:1
  |
1 | while (1) {}
  | ~~~~~~~~~~~~
  = literal loop condition

Captures:
  | cond: 1
  | $1: {}

`
	assert.Equal(t, expected, GenerateFormattedIssue(issues, code))
}

func TestGenerateFormattedIssue_MissingSource(t *testing.T) {
	t.Parallel()

	issues := []tt.Issue{{
		Rule:     "empty-block",
		Start:    token.Position{Line: 3, Column: 1},
		End:      token.Position{Line: 3, Column: 2},
		Message:  "empty block",
		Severity: tt.SeverityWarning,
	}}

	expected := `warning: empty-block
 --> <source>:3:1
  |
  | empty block

`
	assert.Equal(t, expected, GenerateFormattedIssue(issues, nil))
}

func TestGetIssueFormatter(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &SyntaxErrorFormatter{}, getIssueFormatter(tt.Issue{Rule: internal.SyntaxErrorRule}))
	assert.IsType(t, &CustomRuleFormatter{}, getIssueFormatter(tt.Issue{Rule: "mine", Category: "custom"}))
	assert.IsType(t, &GeneralIssueFormatter{}, getIssueFormatter(tt.Issue{Rule: "curly-braces"}))
}

func TestCalculateVisualColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line   string
		column int
		want   int
	}{
		{"abc", 1, 0},
		{"abc", 3, 2},
		{"\tabc", 2, 8},
		{"a\tb", 3, 8},
		{"abc", -1, 0},
		{"abc", 10, 3},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, calculateVisualColumn(tc.line, tc.column), "%q:%d", tc.line, tc.column)
	}
}

func TestFindCommonIndent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"empty", nil, ""},
		{"spaces", []string{"    a", "  b", "      c"}, "  "},
		{"blank lines ignored", []string{"", "\t\ta", "   ", "\tb"}, "\t"},
		{"no indent", []string{"a", "  b"}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, findCommonIndent(tc.lines))
		})
	}
}
