// Package rules maps request paths to rate-limit rules.
//
// A Table holds an ordered list of path patterns, each bound to either a
// rule (window + max requests) or a disabled marker. Resolution walks the
// table in declaration order and returns the first match, so more specific
// patterns should be declared before broader ones:
//
//	table, err := rules.NewTable([]rules.PathRule{
//		{Pattern: "/api/health", Disabled: true},
//		{Pattern: "/api/ai/*", Rule: rules.Rule{Window: time.Minute, Max: 2}},
//	})
//
//	match := table.Resolve("/api/ai/chat") // first matching entry, or nil
//
// Tables are immutable after construction and safe for concurrent use.
// ParseYAML loads a table definition from YAML, preserving the mapping's
// declaration order.
package rules
