package rules

import (
	"fmt"
	"time"

	"github.com/limitkit/limitkit/pkg/pathmatch"
)

// Rule limits requests to Max per fixed Window.
type Rule struct {
	Window time.Duration
	Max    int
}

func (r Rule) validate() error {
	if r.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %v", ErrInvalidRule, r.Window)
	}
	if r.Max <= 0 {
		return fmt.Errorf("%w: max must be positive, got %d", ErrInvalidRule, r.Max)
	}
	return nil
}

// PathRule binds a path pattern to a rule or to a disabled marker.
// When Disabled is true the Rule field is ignored.
type PathRule struct {
	Pattern  string
	Rule     Rule
	Disabled bool
}

// Match is the outcome of resolving a path against a table entry.
type Match struct {
	Pattern  string
	Rule     Rule
	Disabled bool
}

type entry struct {
	matcher  *pathmatch.Matcher
	rule     Rule
	disabled bool
}

// Table is an ordered set of path rules. Declaration order determines match
// priority: the first pattern that accepts a path wins. Immutable after
// construction and safe for concurrent use.
type Table struct {
	entries []entry
	cache   *pathmatch.Cache
}

// NewTable compiles the given path rules into a table. Patterns are compiled
// eagerly so configuration errors surface at startup, and the compiled forms
// are cached per table instance.
func NewTable(pathRules []PathRule) (*Table, error) {
	t := &Table{
		entries: make([]entry, 0, len(pathRules)),
		cache:   pathmatch.NewCache(),
	}

	for _, pr := range pathRules {
		if !pr.Disabled {
			if err := pr.Rule.validate(); err != nil {
				return nil, fmt.Errorf("pattern %q: %w", pr.Pattern, err)
			}
		}

		m, err := t.cache.Get(pr.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pr.Pattern, err)
		}

		t.entries = append(t.entries, entry{
			matcher:  m,
			rule:     pr.Rule,
			disabled: pr.Disabled,
		})
	}

	return t, nil
}

// Resolve returns the first table entry whose pattern accepts path, or nil
// when no pattern matches and the caller should fall back to its default
// rule.
func (t *Table) Resolve(path string) *Match {
	for _, e := range t.entries {
		if e.matcher.Match(path) {
			return &Match{
				Pattern:  e.matcher.Pattern(),
				Rule:     e.rule,
				Disabled: e.disabled,
			}
		}
	}
	return nil
}

// Len returns the number of configured path rules.
func (t *Table) Len() int {
	return len(t.entries)
}
