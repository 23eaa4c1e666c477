package rules

import "errors"

var (
	// ErrInvalidRule indicates a rule with a non-positive window or max.
	ErrInvalidRule = errors.New("invalid rule")

	// ErrInvalidPattern indicates a path pattern that failed to compile.
	ErrInvalidPattern = errors.New("invalid path pattern")

	// ErrInvalidRuleSpec indicates a YAML rule definition that could not be parsed.
	ErrInvalidRuleSpec = errors.New("invalid rule definition")
)
