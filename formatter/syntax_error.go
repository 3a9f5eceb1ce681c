package formatter

// SyntaxErrorFormatter points at the location the parser gave up on.
type SyntaxErrorFormatter struct{}

func (f *SyntaxErrorFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn}}
{{- snippet .SnippetLines .StartLine .StartLine .MaxLineNumWidth .CommonIndent .Padding}}
{{- caretAndMessage .Message .Padding .StartLine .StartColumn .SnippetLines .CommonIndent}}
`
}
