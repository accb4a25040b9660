// Package yamlenv lets scalar config values reference environment variables.
//
//	port: ${API_PORT:8080}
//	conn: ${PG_CONN}
package yamlenv

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var reference = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::([^}]*))?\}`)

// Env is a config scalar whose raw text may contain ${VAR} or ${VAR:default}.
type Env[T any] struct {
	Raw   string
	Value T
}

func (e *Env[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: env value must be a scalar", node.Line)
	}

	e.Raw = node.Value
	expanded := Expand(node.Value)

	scalar := &yaml.Node{Kind: yaml.ScalarNode, Value: expanded, Line: node.Line, Column: node.Column}
	if err := scalar.Decode(&e.Value); err != nil {
		return fmt.Errorf("line %d: decode %q: %w", node.Line, expanded, err)
	}

	return nil
}

// Expand replaces every ${VAR} / ${VAR:default} reference in s.
func Expand(s string) string {
	return reference.ReplaceAllStringFunc(s, func(m string) string {
		parts := reference.FindStringSubmatch(m)
		if v, ok := os.LookupEnv(parts[1]); ok {
			return v
		}

		return parts[2]
	})
}

// New wraps a literal value, mostly for defaults and tests.
func New[T any](v T) *Env[T] {
	return &Env[T]{Value: v}
}
