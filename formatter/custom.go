package formatter

// CustomRuleFormatter renders issues of configured rules, listing the
// nodes captured by the rule's pattern.
type CustomRuleFormatter struct{}

func (f *CustomRuleFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn}}
{{- snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding}}
{{- underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}
{{- if .Note}}{{captures .Note .Padding}}{{end}}
`
}
