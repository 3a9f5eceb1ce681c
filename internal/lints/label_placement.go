package lints

import (
	"github.com/gnolang/jsmatch/ast"
	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/matcher"
)

var LabelPlacementMatcher = matcher.LabelledStatement(
	matcher.HasBody(matcher.Unless(loop())),
)

func DetectLabelPlacement(filename string, prog *ast.Program, severity tt.Severity) ([]tt.Issue, error) {
	return detect("label-placement", LabelPlacementMatcher, filename, prog, severity,
		"labels should only be used with loops", nil)
}
