// Package formatter renders lint issues as annotated source snippets.
package formatter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/fatih/color"

	"github.com/gnolang/jsmatch/internal"
	tt "github.com/gnolang/jsmatch/internal/types"
)

const tabWidth = 8

// customCategory is the category of issues reported by configured rules.
const customCategory = "custom"

var (
	errorStyle      = color.New(color.FgRed, color.Bold)
	warningStyle    = color.New(color.FgHiYellow, color.Bold)
	infoStyle       = color.New(color.FgHiCyan, color.Bold)
	ruleStyle       = color.New(color.FgYellow, color.Bold)
	fileStyle       = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	messageStyle    = color.New(color.FgRed, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
)

// issueFormatter is the interface that wraps the IssueTemplate method.
// Implementations of this interface are responsible for formatting specific kinds of lint issues.
type issueFormatter interface {
	IssueTemplate() string
}

// getIssueFormatter returns the formatter for issue, falling back to
// GeneralIssueFormatter.
func getIssueFormatter(issue tt.Issue) issueFormatter {
	switch {
	case issue.Rule == internal.SyntaxErrorRule:
		return &SyntaxErrorFormatter{}
	case issue.Category == customCategory:
		return &CustomRuleFormatter{}
	default:
		return &GeneralIssueFormatter{}
	}
}

var funcMap = template.FuncMap{
	"header":              header,
	"suggestion":          suggestion,
	"note":                note,
	"snippet":             codeSnippet,
	"underlineAndMessage": underlineAndMessage,
	"caretAndMessage":     caretAndMessage,
	"captures":            captures,
}

// templates caches the parsed template of every formatter type.
var templates = map[string]*template.Template{}

func init() {
	for _, f := range []issueFormatter{
		&GeneralIssueFormatter{},
		&SyntaxErrorFormatter{},
		&CustomRuleFormatter{},
	} {
		key := fmt.Sprintf("%T", f)
		templates[key] = template.Must(template.New(key).Funcs(funcMap).Parse(f.IssueTemplate()))
	}
}

// GenerateFormattedIssue formats a slice of issues into a human-readable string.
// It uses the appropriate formatter for each issue based on its rule.
func GenerateFormattedIssue(issues []tt.Issue, snippet *internal.SourceCode) string {
	var builder strings.Builder
	for _, issue := range issues {
		builder.WriteString(buildIssue(issue, snippet, getIssueFormatter(issue)))
	}
	return builder.String()
}

/***** Issue Formatter Builder *****/

type IssueData struct {
	Category        string
	Severity        string
	Rule            string
	Filename        string
	Padding         string
	StartLine       int
	StartColumn     int
	EndLine         int
	EndColumn       int
	MaxLineNumWidth int
	Message         string
	Suggestion      string
	Note            string
	SnippetLines    []string
	CommonIndent    string
}

func buildIssue(issue tt.Issue, snippet *internal.SourceCode, formatter issueFormatter) string {
	if snippet == nil {
		snippet = &internal.SourceCode{}
	}
	startLine := issue.Start.Line
	endLine := max(issue.End.Line, startLine)
	maxLineNumWidth := calculateMaxLineNumWidth(endLine)
	padding := strings.Repeat(" ", maxLineNumWidth+1)

	var commonIndent string
	if isValidLineRange(startLine, endLine, snippet.Lines) {
		commonIndent = findCommonIndent(snippet.Lines[startLine-1 : endLine])
	}

	data := IssueData{
		Severity:        issue.Severity.String(),
		Category:        issue.Category,
		Rule:            issue.Rule,
		Filename:        issue.Filename,
		StartLine:       startLine,
		StartColumn:     issue.Start.Column,
		EndLine:         endLine,
		EndColumn:       issue.End.Column,
		Message:         issue.Message,
		Suggestion:      issue.Suggestion,
		Note:            issue.Note,
		MaxLineNumWidth: maxLineNumWidth,
		Padding:         padding,
		CommonIndent:    commonIndent,
		SnippetLines:    snippet.Lines,
	}

	tmpl, ok := templates[fmt.Sprintf("%T", formatter)]
	if !ok {
		tmpl = template.Must(template.New("issue").Funcs(funcMap).Parse(formatter.IssueTemplate()))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting issue: %v", err)
	}
	return buf.String()
}

// utils functions used in the text templates

func header(rule string, severity string, maxLineNumWidth int, filename string, startLine int, startColumn int) string {
	var endString string
	switch severity {
	case "ERROR":
		endString = errorStyle.Sprint("error: ")
	case "WARNING":
		endString = warningStyle.Sprint("warning: ")
	case "INFO":
		endString = infoStyle.Sprint("info: ")
	}

	endString += ruleStyle.Sprintf("%s\n", rule)

	padding := strings.Repeat(" ", maxLineNumWidth)
	if filename == "" {
		filename = "<source>"
	}
	endString += lineStyle.Sprintf("%s--> ", padding)
	endString += fileStyle.Sprintf("%s:%d:%d", filename, startLine, startColumn)

	return endString + "\n"
}

func codeSnippet(snippetLines []string, startLine int, endLine int, maxLineNumWidth int, commonIndent string, padding string) string {
	var sb strings.Builder
	sb.WriteString(lineStyle.Sprintf("%s|", padding) + "\n")

	for i := startLine; i <= endLine; i++ {
		if i-1 < 0 || i-1 >= len(snippetLines) {
			continue
		}

		line := strings.TrimPrefix(snippetLines[i-1], commonIndent)
		lineNum := fmt.Sprintf("%*d", maxLineNumWidth, i)
		sb.WriteString(lineStyle.Sprintf("%s | ", lineNum) + line + "\n")
	}

	return sb.String()
}

func underlineAndMessage(message string, padding string, startLine int, endLine int, startColumn int, endColumn int, snippetLines []string, commonIndent string) string {
	var endString string
	endString = lineStyle.Sprintf("%s| ", padding)

	if !isValidLineRange(startLine, endLine, snippetLines) {
		return endString + messageStyle.Sprint(message) + "\n"
	}

	commonIndentWidth := calculateVisualColumn(commonIndent, len(commonIndent)+1)

	underlineStart := max(calculateVisualColumn(snippetLines[startLine-1], startColumn)-commonIndentWidth, 0)
	underlineEnd := calculateVisualColumn(snippetLines[endLine-1], endColumn) - commonIndentWidth
	underlineLength := max(underlineEnd-underlineStart+1, 1)

	endString += strings.Repeat(" ", underlineStart)
	endString += messageStyle.Sprint(strings.Repeat("~", underlineLength)) + "\n"

	endString += lineStyle.Sprintf("%s= ", padding)
	endString += messageStyle.Sprint(message) + "\n"

	return endString
}

// caretAndMessage points at a single column.
func caretAndMessage(message string, padding string, line int, column int, snippetLines []string, commonIndent string) string {
	endString := lineStyle.Sprintf("%s| ", padding)
	if isValidLineRange(line, line, snippetLines) {
		commonIndentWidth := calculateVisualColumn(commonIndent, len(commonIndent)+1)
		at := max(calculateVisualColumn(snippetLines[line-1], column)-commonIndentWidth, 0)
		endString += strings.Repeat(" ", at) + messageStyle.Sprint("^") + " "
	}
	return endString + messageStyle.Sprint(message) + "\n"
}

func suggestion(suggestion string, padding string, maxLineNumWidth int, startLine int) string {
	if suggestion == "" {
		return ""
	}

	lines := strings.Split(suggestion, "\n")
	width := max(maxLineNumWidth, calculateMaxLineNumWidth(startLine+len(lines)-1))
	if width > maxLineNumWidth {
		padding = strings.Repeat(" ", width+1)
	}

	var sb strings.Builder
	sb.WriteString("\n" + suggestionStyle.Sprint("Suggestion:") + "\n")
	sb.WriteString(lineStyle.Sprintf("%s|", padding) + "\n")
	for i, line := range lines {
		lineNum := fmt.Sprintf("%*d", width, startLine+i)
		sb.WriteString(lineStyle.Sprintf("%s | ", lineNum) + line + "\n")
	}
	sb.WriteString(lineStyle.Sprintf("%s|", padding) + "\n")
	return sb.String()
}

func note(note string) string {
	if note == "" {
		return ""
	}
	return "\n" + suggestionStyle.Sprint("Note: ") + note + "\n"
}

// captures lists the `name: text` lines recorded by a custom rule.
func captures(note string, padding string) string {
	if note == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n" + suggestionStyle.Sprint("Captures:") + "\n")
	for _, line := range strings.Split(note, "\n") {
		sb.WriteString(lineStyle.Sprintf("%s| ", padding) + line + "\n")
	}
	return sb.String()
}

func isValidLineRange(startLine int, endLine int, snippetLines []string) bool {
	return startLine > 0 &&
		endLine > 0 &&
		startLine <= endLine &&
		startLine <= len(snippetLines) &&
		endLine <= len(snippetLines)
}

func calculateMaxLineNumWidth(endLine int) int {
	return len(strconv.Itoa(endLine))
}

// calculateVisualColumn calculates the visual column position
// in a string, taking into account tab characters.
func calculateVisualColumn(line string, column int) int {
	if column < 0 {
		return 0
	}
	visualColumn := 0
	for i, ch := range line {
		if i+1 == column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
	}
	return visualColumn
}

// findCommonIndent finds the common indent in the code snippet.
func findCommonIndent(lines []string) string {
	var indent []rune
	found := false
	for _, line := range lines {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if trimmed == "" {
			continue
		}
		current := []rune(line[:len(line)-len(trimmed)])
		if !found {
			indent, found = current, true
			continue
		}
		indent = commonPrefix(indent, current)
		if len(indent) == 0 {
			break
		}
	}
	return string(indent)
}

// commonPrefix finds the common prefix of two rune slices.
func commonPrefix(a, b []rune) []rune {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
