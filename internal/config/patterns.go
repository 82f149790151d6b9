package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PatternList holds one or more glob patterns. In YAML it accepts either a
// single string or a sequence of strings.
type PatternList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PatternList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*p = nil
			return nil
		}
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*p = PatternList{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("template_path must be a string or a list of strings: %w", err)
		}
		*p = list
		return nil
	default:
		return fmt.Errorf("template_path must be a string or a list of strings (line %d)", node.Line)
	}
}

// MarshalYAML writes a single pattern as a plain string.
func (p PatternList) MarshalYAML() (any, error) {
	if len(p) == 1 {
		return p[0], nil
	}
	return []string(p), nil
}
