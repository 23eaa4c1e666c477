package pathmatch

import (
	"regexp"
	"strings"
	"sync"
)

// Matcher reports whether a request path matches a compiled pattern.
type Matcher struct {
	pattern string
	re      *regexp.Regexp
}

// Pattern returns the raw pattern the matcher was compiled from.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Match reports whether path matches the pattern. A pattern without
// wildcards matches only the identical literal path; an empty pattern
// matches only an empty path.
func (m *Matcher) Match(path string) bool {
	return m.re.MatchString(path)
}

// Compile translates a glob-style pattern into a Matcher. `*` matches any
// run of characters excluding `/`, `**` matches any run of characters
// including `/`, and all other characters match literally.
func Compile(pattern string) (*Matcher, error) {
	var sb strings.Builder
	sb.WriteString("^")

	rest := pattern
	for len(rest) > 0 {
		if strings.HasPrefix(rest, "**") {
			sb.WriteString(".*")
			rest = rest[2:]
			continue
		}
		if rest[0] == '*' {
			sb.WriteString("[^/]*")
			rest = rest[1:]
			continue
		}
		next := strings.IndexByte(rest, '*')
		if next == -1 {
			sb.WriteString(regexp.QuoteMeta(rest))
			break
		}
		sb.WriteString(regexp.QuoteMeta(rest[:next]))
		rest = rest[next:]
	}
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, err
	}

	return &Matcher{pattern: pattern, re: re}, nil
}

// Cache memoizes compiled matchers keyed by the raw pattern string. It is
// unbounded: callers are expected to feed it static configuration patterns,
// not request-derived input. Safe for concurrent use.
type Cache struct {
	mu       sync.RWMutex
	matchers map[string]*Matcher
}

// NewCache creates an empty pattern cache.
func NewCache() *Cache {
	return &Cache{matchers: make(map[string]*Matcher)}
}

// Get returns the cached matcher for pattern, compiling it on first use.
func (c *Cache) Get(pattern string) (*Matcher, error) {
	c.mu.RLock()
	m, ok := c.matchers[pattern]
	c.mu.RUnlock()
	if ok {
		return m, nil
	}

	m, err := Compile(pattern)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// A concurrent Get may have compiled the same pattern; keep the first.
	if existing, ok := c.matchers[pattern]; ok {
		m = existing
	} else {
		c.matchers[pattern] = m
	}
	c.mu.Unlock()

	return m, nil
}

// Len returns the number of compiled patterns currently cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matchers)
}
