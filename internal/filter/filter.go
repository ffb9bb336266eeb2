package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/masmgr/gitlog2arrow/internal/git"
)

// Config holds the commit filter. Zero value accepts every commit.
type Config struct {
	Author *string // exact, case-sensitive match on author name; an empty name is a valid filter
	Since  *int64  // inclusive lower bound on author time (Unix seconds)
	Until  *int64  // inclusive upper bound on author time (Unix seconds)
}

// New builds a Config from raw CLI values. A nil author means no author rule.
// Bounds that are not valid RFC 3339 timestamps are ignored.
func New(author *string, since, until string) Config {
	var a *string
	if author != nil {
		name := *author
		a = &name
	}
	return Config{
		Author: a,
		Since:  ParseBound(since),
		Until:  ParseBound(until),
	}
}

// ParseBound parses an RFC 3339 timestamp into Unix seconds.
// It returns nil for empty or unparsable input so that the bound is treated as absent.
func ParseBound(s string) *int64 {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	sec := t.Unix()
	return &sec
}

// Accept reports whether c passes every configured rule.
func (f Config) Accept(c *git.CommitRecord) bool {
	if f.Author != nil && c.Author.Name != *f.Author {
		return false
	}
	if f.Since != nil && c.Author.When < *f.Since {
		return false
	}
	if f.Until != nil && c.Author.When > *f.Until {
		return false
	}
	return true
}

// IsZero reports whether no rule is configured.
func (f Config) IsZero() bool {
	return f.Author == nil && f.Since == nil && f.Until == nil
}

// String renders the configured rules, or "none".
func (f Config) String() string {
	if f.IsZero() {
		return "none"
	}
	var parts []string
	if f.Author != nil {
		parts = append(parts, fmt.Sprintf("author=%q", *f.Author))
	}
	if f.Since != nil {
		parts = append(parts, "since="+time.Unix(*f.Since, 0).UTC().Format(time.RFC3339))
	}
	if f.Until != nil {
		parts = append(parts, "until="+time.Unix(*f.Until, 0).UTC().Format(time.RFC3339))
	}
	return strings.Join(parts, " ")
}
