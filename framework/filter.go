package framework

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific scenario or not.
type Filter func(TestID) bool

type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatchPrefix(id)) &&
		!r.MustNotMatch.AnyMatchFull(id)
}

type RegexList struct {
	patterns []testPattern
}

// testPattern is a scenario name pattern. As with "go test -run", the
// pattern is split on "/" and each element is matched against the
// corresponding level of the scenario hierarchy, so a pattern naming a
// scenario inside a group also selects the group that leads to it.
type testPattern struct {
	source   string
	elements []*regexp.Regexp
}

func (p testPattern) matchesPrefix(path []string) bool {
	for i, name := range path {
		if i >= len(p.elements) {
			break
		}
		if !p.elements[i].MatchString(name) {
			return false
		}
	}
	return true
}

func (p testPattern) matchesFull(path []string) bool {
	return len(path) >= len(p.elements) && p.matchesPrefix(path)
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.source+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	p := testPattern{source: value}
	for _, element := range strings.Split(value, "/") {
		rx, err := regexp.Compile(element)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		p.elements = append(p.elements, rx)
	}
	r.patterns = append(r.patterns, p)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

// AnyMatchPrefix reports whether any pattern could select the scenario or
// one of its descendants. Used for -run, where a group must still be
// entered if a pattern names a scenario inside it.
func (r RegexList) AnyMatchPrefix(id TestID) bool {
	for _, p := range r.patterns {
		if p.matchesPrefix(id.Path) {
			return true
		}
	}
	return false
}

// AnyMatchFull reports whether any pattern matches the scenario with every
// pattern element consumed. Used for -skip, so a pattern naming a nested
// scenario does not exclude the whole group leading to it.
func (r RegexList) AnyMatchFull(id TestID) bool {
	for _, p := range r.patterns {
		if p.matchesFull(id.Path) {
			return true
		}
	}
	return false
}

func PrintFilterDescription(filters RegexFilters) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Println("Some scenarios will be skipped based on the filter criteria for this run:")
		if filters.MustMatch.IsDefined() {
			fmt.Printf("  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Printf("  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Println()
	}
}
