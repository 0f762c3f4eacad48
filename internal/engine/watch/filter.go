package watch

import (
	"regexp"
	"strings"
)

// Filter selects the exact set of case identities the next run must cover.
// Identities are matched as whole literals; every regex-significant
// character in an identity is escaped during construction.
type Filter struct {
	pattern string
	re      *regexp.Regexp
}

// BuildFilter compiles a filter matching exactly the given identities. An
// empty identity list produces a filter matching nothing; it must never
// widen to matching everything.
func BuildFilter(identities []string) *Filter {
	if len(identities) == 0 {
		return &Filter{}
	}

	quoted := make([]string, len(identities))
	for i, id := range identities {
		quoted[i] = regexp.QuoteMeta(id)
	}
	pattern := "^(?:" + strings.Join(quoted, "|") + ")$"

	return &Filter{
		pattern: pattern,
		re:      regexp.MustCompile(pattern),
	}
}

// Match reports whether the identity is selected by the filter.
func (f *Filter) Match(identity string) bool {
	if f.re == nil {
		return false
	}
	return f.re.MatchString(identity)
}

// Empty reports whether the filter selects no identities.
func (f *Filter) Empty() bool {
	return f.re == nil
}

// Pattern returns the compiled pattern source, or the empty string for a
// filter that matches nothing.
func (f *Filter) Pattern() string {
	return f.pattern
}
