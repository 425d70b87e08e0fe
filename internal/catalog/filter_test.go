package catalog

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/codevaulthq/codevault/internal/domain/project"
)

func mkProject(title, stack, domain string, year int, summary string) *project.Project {
	p := &project.Project{
		ID:        uuid.New(),
		Title:     title,
		TechStack: stack,
		Domain:    domain,
		BatchYear: year,
	}
	if summary != "" {
		p.Summary = &summary
	}
	return p
}

func sampleProjects() []*project.Project {
	return []*project.Project{
		mkProject("Campus Food Finder", "Go, Postgres", "Web", 2024, "Find cheap food near campus"),
		mkProject("Drone Mapper", "Python, OpenCV", "Robotics", 2023, ""),
		mkProject("VaultChat", "Go, Redis, Kafka", "Web", 2025, "Realtime chat for study groups"),
		mkProject("Gene Explorer", "R, Shiny", "Bioinformatics", 2023, "Visualize gene expression"),
	}
}

func TestFilter_Search(t *testing.T) {
	projects := sampleProjects()

	got := Filter(projects, "go", SentinelAll, SentinelAll)
	assert.Len(t, got, 2)
	assert.Equal(t, "Campus Food Finder", got[0].Title)
	assert.Equal(t, "VaultChat", got[1].Title)

	// matches via summary
	got = Filter(projects, "study groups", SentinelAll, SentinelAll)
	assert.Len(t, got, 1)
	assert.Equal(t, "VaultChat", got[0].Title)

	// nil summary never matches
	got = Filter(projects, "mapper gene", SentinelAll, SentinelAll)
	assert.Empty(t, got)
}

func TestFilter_DomainAndYearAreConjunctive(t *testing.T) {
	projects := sampleProjects()

	got := Filter(projects, "", "Web", "2025")
	assert.Len(t, got, 1)
	assert.Equal(t, "VaultChat", got[0].Title)

	got = Filter(projects, "go", "Web", "2024")
	assert.Len(t, got, 1)
	assert.Equal(t, "Campus Food Finder", got[0].Title)
}

func TestFilter_SentinelDisablesPredicate(t *testing.T) {
	projects := sampleProjects()
	got := Filter(projects, "", SentinelAll, SentinelAll)
	assert.Len(t, got, len(projects))
}

func TestFilter_NonNumericYearMatchesNothing(t *testing.T) {
	got := Filter(sampleProjects(), "", SentinelAll, "not-a-year")
	assert.Empty(t, got)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	projects := sampleProjects()
	titles := make([]string, len(projects))
	for i, p := range projects {
		titles[i] = p.Title
	}

	Filter(projects, "go", "Web", "2024")

	for i, p := range projects {
		assert.Equal(t, titles[i], p.Title)
	}
	assert.Len(t, projects, 4)
}

// Property: for random collections and random filter values the output is an
// order-preserving subsequence and every element passes all active predicates.
func TestFilter_SubsequenceProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	domains := []string{"Web", "ML", "Robotics", "Games"}
	terms := []string{"", "go", "alpha", "zz", "project"}

	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(20)
		projects := make([]*project.Project, n)
		for i := range projects {
			summary := ""
			if rng.Intn(2) == 0 {
				summary = "project summary " + strconv.Itoa(rng.Intn(5))
			}
			projects[i] = mkProject(
				"Project Alpha "+strconv.Itoa(rng.Intn(10)),
				"Go, TypeScript",
				domains[rng.Intn(len(domains))],
				2020+rng.Intn(6),
				summary,
			)
		}

		term := terms[rng.Intn(len(terms))]
		domainFilter := SentinelAll
		if rng.Intn(2) == 0 {
			domainFilter = domains[rng.Intn(len(domains))]
		}
		yearFilter := SentinelAll
		if rng.Intn(2) == 0 {
			yearFilter = strconv.Itoa(2020 + rng.Intn(6))
		}

		got := Filter(projects, term, domainFilter, yearFilter)

		// subsequence: relative order of survivors matches the input
		idx := 0
		for _, p := range projects {
			if idx < len(got) && got[idx] == p {
				idx++
			}
		}
		assert.Equal(t, len(got), idx, "output must be an order-preserving subsequence")

		for _, p := range got {
			if term != "" {
				lower := strings.ToLower(term)
				matched := strings.Contains(strings.ToLower(p.Title), lower) ||
					strings.Contains(strings.ToLower(p.TechStack), lower) ||
					(p.Summary != nil && strings.Contains(strings.ToLower(*p.Summary), lower))
				assert.True(t, matched)
			}
			if domainFilter != SentinelAll {
				assert.Equal(t, domainFilter, p.Domain)
			}
			if yearFilter != SentinelAll {
				year, err := strconv.Atoi(yearFilter)
				assert.NoError(t, err)
				assert.Equal(t, year, p.BatchYear)
			}
		}
	}
}

func TestUniqueDomains(t *testing.T) {
	got := UniqueDomains(sampleProjects())
	assert.Equal(t, []string{"all", "Web", "Robotics", "Bioinformatics"}, got)

	// empty collection still carries the sentinel exactly once, first
	assert.Equal(t, []string{"all"}, UniqueDomains(nil))
}

func TestUniqueYears_DescendingWithSentinelFirst(t *testing.T) {
	got := UniqueYears(sampleProjects())
	assert.Equal(t, []string{"all", "2025", "2024", "2023"}, got)

	assert.Equal(t, []string{"all"}, UniqueYears(nil))
}

func TestUniqueSets_SentinelAppearsOnce(t *testing.T) {
	projects := sampleProjects()
	for _, set := range [][]string{UniqueDomains(projects), UniqueYears(projects)} {
		count := 0
		for _, v := range set {
			if v == SentinelAll {
				count++
			}
		}
		assert.Equal(t, 1, count)
		assert.Equal(t, SentinelAll, set[0])
	}
}
