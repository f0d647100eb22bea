// Package filter classifies frames by package prefix and reduces frame lists
// to the part worth displaying.
package filter

import (
	"strings"

	"github.com/thanhminhmr/go-smarttrace/helper"
)

// Matcher is a set of package-name prefixes.
type Matcher interface {
	// Match returns a member equal to or prefixing name. When several
	// members match, which one is returned is not defined.
	Match(name string) (prefix string, ok bool)
}

// Contains reports whether m is non-nil and has a member matching name.
func Contains(m Matcher, name string) bool {
	if m == nil {
		return false
	}
	_, ok := m.Match(name)
	return ok
}

// PackageSet is a mutable Matcher safe for concurrent use. The zero value is
// an empty set, and a nil *PackageSet never matches.
type PackageSet struct {
	names helper.SyncSet[string]
}

// NewPackageSet returns a set holding the given names.
func NewPackageSet(names ...string) *PackageSet {
	set := &PackageSet{}
	for _, name := range names {
		set.Add(name)
	}
	return set
}

// Add registers name. Blank names are ignored.
func (s *PackageSet) Add(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	return s.names.Add(name)
}

func (s *PackageSet) Remove(name string) bool {
	return s.names.Remove(strings.TrimSpace(name))
}

func (s *PackageSet) Clear() {
	s.names.Clear()
}

func (s *PackageSet) Len() int {
	if s == nil {
		return 0
	}
	return s.names.Len()
}

// Values returns the registered names in insertion order.
func (s *PackageSet) Values() []string {
	if s == nil {
		return nil
	}
	return s.names.Values()
}

// Match returns the first registered name, in insertion order, prefixing name.
func (s *PackageSet) Match(name string) (prefix string, ok bool) {
	if s == nil {
		return "", false
	}
	s.names.ForEach(func(value string) bool {
		if strings.HasPrefix(name, value) {
			prefix, ok = value, true
			return false
		}
		return true
	})
	return prefix, ok
}

// Prefixes is an immutable Matcher for explicit per-call configuration.
type Prefixes []string

func (p Prefixes) Match(name string) (string, bool) {
	for _, prefix := range p {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return prefix, true
		}
	}
	return "", false
}
