// Package parser converts YAML/JSON batch files into calculator cases.
package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lemonberrylabs/numcalc/pkg/types"
)

// MaxSourceSize is the maximum accepted batch file size in bytes.
const MaxSourceSize = 1 << 20

// Case is one expression in a batch, with optional expectations.
type Case struct {
	Name        string
	Expression  string
	Expect      string          // expected output, if set
	ExpectError types.ErrorKind // expected failure kind, if set
	Line        int
}

// HasExpectation reports whether the case asserts an outcome.
func (c *Case) HasExpectation() bool {
	return c.Expect != "" || c.ExpectError != ""
}

// Batch is an ordered list of cases.
type Batch struct {
	Cases []*Case
}

// ParseError represents an error encountered during batch parsing.
type ParseError struct {
	Message string
	Line    int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

var knownKinds = map[types.ErrorKind]bool{
	types.KindMalformedExpression:    true,
	types.KindUnsupportedOperandType: true,
	types.KindMixedNumeralSystems:    true,
	types.KindOperandOutOfRange:      true,
	types.KindNonPositiveRomanResult: true,
	types.KindDivisionByZero:         true,
}

// Parse parses a batch document. The root is either a sequence of cases or
// a mapping with an "expressions" sequence. Each case is a plain string or a
// mapping with name, expression, expect and expect_error keys.
func Parse(source []byte) (*Batch, error) {
	if len(source) > MaxSourceSize {
		return nil, &ParseError{Message: fmt.Sprintf("batch size %d exceeds maximum %d bytes", len(source), MaxSourceSize)}
	}

	var raw yaml.Node
	if err := yaml.Unmarshal(source, &raw); err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}

	// The root node is a document node containing the actual content
	if raw.Kind != yaml.DocumentNode || len(raw.Content) == 0 {
		return nil, &ParseError{Message: "empty batch"}
	}

	list := raw.Content[0]
	if list.Kind == yaml.MappingNode {
		list = mappingValue(list, "expressions")
		if list == nil {
			return nil, &ParseError{Message: "batch mapping must have an 'expressions' key", Line: raw.Content[0].Line}
		}
	}
	if list.Kind != yaml.SequenceNode {
		return nil, &ParseError{Message: "expressions must be a list", Line: list.Line}
	}

	batch := &Batch{}
	for i, item := range list.Content {
		c, err := parseCase(item, i)
		if err != nil {
			return nil, err
		}
		batch.Cases = append(batch.Cases, c)
	}
	return batch, nil
}

func parseCase(node *yaml.Node, index int) (*Case, error) {
	c := &Case{Name: fmt.Sprintf("case-%d", index+1), Line: node.Line}

	switch node.Kind {
	case yaml.ScalarNode:
		c.Expression = node.Value
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			if val.Kind != yaml.ScalarNode {
				return nil, &ParseError{Message: fmt.Sprintf("%q must be a scalar", key.Value), Line: val.Line}
			}
			switch key.Value {
			case "name":
				c.Name = val.Value
			case "expression":
				c.Expression = val.Value
			case "expect":
				c.Expect = val.Value
			case "expect_error":
				kind := types.ErrorKind(val.Value)
				if !knownKinds[kind] {
					return nil, &ParseError{Message: fmt.Sprintf("unknown error kind %q", val.Value), Line: val.Line}
				}
				c.ExpectError = kind
			default:
				return nil, &ParseError{Message: fmt.Sprintf("unknown key %q", key.Value), Line: key.Line}
			}
		}
	default:
		return nil, &ParseError{Message: "case must be a string or a mapping", Line: node.Line}
	}

	if c.Expect != "" && c.ExpectError != "" {
		return nil, &ParseError{Message: fmt.Sprintf("case %q sets both expect and expect_error", c.Name), Line: node.Line}
	}
	return c, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
