package types

import (
	"fmt"
	"go/token"
	"strings"

	"gopkg.in/yaml.v3"
)

// Issue represents a lint issue found in the code base.
type Issue struct {
	Rule       string
	Category   string
	Filename   string
	Message    string
	Suggestion string
	Note       string
	Start      token.Position
	End        token.Position
	Severity   Severity
}

// Severity is the level a rule reports its issues at.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

var severityNames = [...]string{
	SeverityError:   "ERROR",
	SeverityWarning: "WARNING",
	SeverityInfo:    "INFO",
	SeverityOff:     "OFF",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// ParseSeverity parses a severity name, case-insensitively.
func ParseSeverity(name string) (Severity, error) {
	for i, n := range severityNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Severity(i), nil
		}
	}
	return SeverityError, fmt.Errorf("unknown severity %q", name)
}

func (s Severity) MarshalYAML() (any, error) {
	return s.String(), nil
}

func (s *Severity) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*s = parsed
	return nil
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ConfigRule is the configuration of a single rule.
//
// Built-in rules only read Severity. A rule unknown to the engine is a
// custom rule and must carry a Match expression; Message is reported for
// each node it matches.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
	Match    string   `yaml:"match,omitempty"`
	Message  string   `yaml:"message,omitempty"`
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
