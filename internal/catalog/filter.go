// Package catalog derives the visible project list from filter inputs.
// Everything here is pure: the source collection is never mutated and the
// same inputs always produce the same output.
package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/codevaulthq/codevault/internal/domain/project"
)

// SentinelAll disables a predicate.
const SentinelAll = "all"

// Filter returns the projects passing every active predicate, as an
// order-preserving subsequence of the input.
//
// Predicates:
//   - search: case-insensitive substring over title, tech stack and summary.
//     A missing summary never matches.
//   - domain: exact equality unless the sentinel.
//   - year: numeric equality against the parsed filter unless the sentinel.
//     A non-numeric year filter matches nothing.
func Filter(projects []*project.Project, searchTerm, domainFilter, yearFilter string) []*project.Project {
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	yearActive := yearFilter != "" && yearFilter != SentinelAll
	year, yearErr := strconv.Atoi(yearFilter)

	out := make([]*project.Project, 0, len(projects))
	for _, p := range projects {
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		if domainFilter != "" && domainFilter != SentinelAll && p.Domain != domainFilter {
			continue
		}
		if yearActive && (yearErr != nil || p.BatchYear != year) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p *project.Project, lowerTerm string) bool {
	if strings.Contains(strings.ToLower(p.Title), lowerTerm) {
		return true
	}
	if strings.Contains(strings.ToLower(p.TechStack), lowerTerm) {
		return true
	}
	if p.Summary != nil && strings.Contains(strings.ToLower(*p.Summary), lowerTerm) {
		return true
	}
	return false
}

// UniqueDomains lists the distinct domains of the full collection with the
// sentinel first. Domains keep first-seen order.
func UniqueDomains(projects []*project.Project) []string {
	out := []string{SentinelAll}
	seen := make(map[string]struct{})
	for _, p := range projects {
		if p.Domain == "" {
			continue
		}
		if _, ok := seen[p.Domain]; ok {
			continue
		}
		seen[p.Domain] = struct{}{}
		out = append(out, p.Domain)
	}
	return out
}

// UniqueYears lists the distinct batch years of the full collection with the
// sentinel first, then descending numeric order.
func UniqueYears(projects []*project.Project) []string {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, p := range projects {
		if _, ok := seen[p.BatchYear]; ok {
			continue
		}
		seen[p.BatchYear] = struct{}{}
		years = append(years, p.BatchYear)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	out := make([]string, 0, len(years)+1)
	out = append(out, SentinelAll)
	for _, y := range years {
		out = append(out, strconv.Itoa(y))
	}
	return out
}
