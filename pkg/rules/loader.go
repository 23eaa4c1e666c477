package rules

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes an ordered rule-table definition from YAML. The document
// must be a mapping from path pattern to either the scalar `disabled` or a
// rule mapping:
//
//	"/api/health": disabled
//	"/api/ai/*":
//	  window: 60s
//	  max: 2
//
// The mapping's declaration order is preserved, which is what gives the
// resulting table its first-match-wins priority. Window values accept Go
// duration strings ("90s", "2m") or bare integers interpreted as seconds.
func ParseYAML(data []byte) ([]PathRule, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRuleSpec, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping of pattern to rule", ErrInvalidRuleSpec)
	}

	pathRules := make([]PathRule, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]

		pr, err := parseRuleNode(keyNode.Value, valNode)
		if err != nil {
			return nil, err
		}
		pathRules = append(pathRules, pr)
	}

	return pathRules, nil
}

func parseRuleNode(pattern string, node *yaml.Node) (PathRule, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "disabled" {
			return PathRule{Pattern: pattern, Disabled: true}, nil
		}
		return PathRule{}, fmt.Errorf("%w: pattern %q: expected %q or a rule mapping, got %q",
			ErrInvalidRuleSpec, pattern, "disabled", node.Value)

	case yaml.MappingNode:
		var rule Rule
		for i := 0; i+1 < len(node.Content); i += 2 {
			field, val := node.Content[i].Value, node.Content[i+1]
			switch field {
			case "window":
				w, err := parseWindow(val.Value)
				if err != nil {
					return PathRule{}, fmt.Errorf("%w: pattern %q: %v", ErrInvalidRuleSpec, pattern, err)
				}
				rule.Window = w
			case "max":
				m, err := strconv.Atoi(val.Value)
				if err != nil {
					return PathRule{}, fmt.Errorf("%w: pattern %q: max: %v", ErrInvalidRuleSpec, pattern, err)
				}
				rule.Max = m
			default:
				return PathRule{}, fmt.Errorf("%w: pattern %q: unknown field %q", ErrInvalidRuleSpec, pattern, field)
			}
		}
		return PathRule{Pattern: pattern, Rule: rule}, nil

	default:
		return PathRule{}, fmt.Errorf("%w: pattern %q: unsupported value", ErrInvalidRuleSpec, pattern)
	}
}

func parseWindow(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("window: %v", err)
	}
	return d, nil
}
