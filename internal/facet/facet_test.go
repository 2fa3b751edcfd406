package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type post struct {
	id       int
	category *string
}

type project struct {
	id           int
	technologies []string
}

func str(s string) *string { return &s }

var byCategory = Scalar(func(p post) (string, bool) {
	if p.category == nil {
		return "", false
	}
	return *p.category, true
})

var byTechnology = Sequence(func(p project) []string { return p.technologies })

func postIDs(posts []post) []int {
	ids := make([]int, len(posts))
	for i, p := range posts {
		ids[i] = p.id
	}
	return ids
}

func projectIDs(projects []project) []int {
	ids := make([]int, len(projects))
	for i, p := range projects {
		ids[i] = p.id
	}
	return ids
}

func TestScalarFacetScenario(t *testing.T) {
	posts := []post{
		{id: 1, category: str("backend")},
		{id: 2, category: str("devops")},
		{id: 3, category: str("backend")},
	}

	summary := Derive(posts, byCategory)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, []Entry{{"backend", 2}, {"devops", 1}}, summary.Entries)

	got := Filter(posts, byCategory, Value("backend"))
	assert.Equal(t, []int{1, 3}, postIDs(got))
}

func TestSequenceFacetScenario(t *testing.T) {
	projects := []project{
		{id: 1, technologies: []string{"Go", "SQL"}},
		{id: 2, technologies: []string{"Go"}},
	}

	summary := Derive(projects, byTechnology)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, []Entry{{"Go", 2}, {"SQL", 1}}, summary.Entries)

	got := Filter(projects, byTechnology, Value("SQL"))
	assert.Equal(t, []int{1}, projectIDs(got))
}

func TestEmptyCollection(t *testing.T) {
	var projects []project

	summary := Derive(projects, byTechnology)
	assert.Equal(t, 0, summary.Total)
	assert.NotNil(t, summary.Entries)
	assert.Empty(t, summary.Entries)

	got := Filter(projects, byTechnology, Value("anything"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestVanishedFacet(t *testing.T) {
	posts := []post{{id: 1, category: str("backend")}}

	got := Filter(posts, byCategory, Value("archived"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNullFields(t *testing.T) {
	t.Run("scalar", func(t *testing.T) {
		posts := []post{{id: 1, category: nil}}

		summary := Derive(posts, byCategory)
		assert.Equal(t, 1, summary.Total)
		assert.Empty(t, summary.Entries)
		assert.Empty(t, Filter(posts, byCategory, Value("backend")))
		// The empty string is a value distinct from an absent one.
		assert.Empty(t, Filter(posts, byCategory, Value("")))
	})

	t.Run("sequence", func(t *testing.T) {
		projects := []project{{id: 1, technologies: nil}, {id: 2, technologies: []string{"Go"}}}

		summary := Derive(projects, byTechnology)
		assert.Equal(t, 2, summary.Total)
		assert.Equal(t, []Entry{{"Go", 1}}, summary.Entries)
		assert.Equal(t, []int{2}, projectIDs(Filter(projects, byTechnology, Value("Go"))))
	})
}

func TestDuplicateValuesWithinItemCountOnce(t *testing.T) {
	projects := []project{
		{id: 1, technologies: []string{"Go", "Go", "SQL", "Go"}},
		{id: 2, technologies: []string{"SQL"}},
	}

	summary := Derive(projects, byTechnology)
	assert.Equal(t, []Entry{{"Go", 1}, {"SQL", 2}}, summary.Entries)
	assert.Equal(t, []string{"Go", "SQL"}, byTechnology.Values(projects[0]))
}

func TestCountsMayExceedTotal(t *testing.T) {
	projects := []project{
		{id: 1, technologies: []string{"Go", "SQL", "Docker"}},
		{id: 2, technologies: []string{"Go", "Docker"}},
	}

	summary := Derive(projects, byTechnology)
	sum := 0
	for _, e := range summary.Entries {
		sum += e.Count
	}
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 5, sum)
}

func TestFilterAllIsIdentity(t *testing.T) {
	projects := []project{
		{id: 3, technologies: []string{"Rust"}},
		{id: 1},
		{id: 2, technologies: []string{"Go"}},
	}

	got := Filter(projects, byTechnology, All)
	require.Len(t, got, len(projects))
	assert.Same(t, &projects[0], &got[0], "All must return the input slice itself")
	assert.Equal(t, []int{3, 1, 2}, projectIDs(got))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	projects := []project{
		{id: 1, technologies: []string{"SQL", "Go"}},
		{id: 2, technologies: []string{"Python"}},
	}

	Filter(projects, byTechnology, Value("Go"))
	Derive(projects, byTechnology)

	assert.Equal(t, []string{"SQL", "Go"}, projects[0].technologies)
	assert.Equal(t, []int{1, 2}, projectIDs(projects))
}

// fixture is a collection with overlapping multi-valued facets, used by the
// property checks below.
func fixture() []project {
	return []project{
		{id: 1, technologies: []string{"Go", "SQL"}},
		{id: 2, technologies: []string{"Python"}},
		{id: 3, technologies: []string{"Go", "Kubernetes", "Go"}},
		{id: 4},
		{id: 5, technologies: []string{"SQL", "Python", "Go"}},
		{id: 6, technologies: []string{"Kubernetes"}},
	}
}

func TestFilterProperties(t *testing.T) {
	projects := fixture()
	summary := Derive(projects, byTechnology)

	assert.Equal(t, len(projects), summary.Total)

	for _, e := range summary.Entries {
		sel := Value(e.Value)
		got := Filter(projects, byTechnology, sel)

		assert.Equal(t, e.Count, len(got), "count(%s) must equal filtered length", e.Value)
		assert.Equal(t, got, Filter(got, byTechnology, sel), "filter must be idempotent for %s", e.Value)

		kept := make(map[int]bool)
		for _, p := range got {
			kept[p.id] = true
			assert.Contains(t, p.technologies, e.Value)
		}
		for _, p := range projects {
			if !kept[p.id] {
				assert.NotContains(t, p.technologies, e.Value)
			}
		}

		ids := projectIDs(got)
		assert.IsIncreasing(t, ids, "filter must preserve order for %s", e.Value)
	}
}

func TestSummaryHelpers(t *testing.T) {
	summary := Derive(fixture(), byTechnology)

	assert.Equal(t, []string{"Go", "Kubernetes", "Python", "SQL"}, summary.Values())
	assert.Equal(t, 3, summary.Count("Go"))
	assert.True(t, summary.Has("SQL"))
	assert.False(t, summary.Has("Haskell"))
	assert.Equal(t, 0, summary.Count("Haskell"))
}

func TestOrderPolicies(t *testing.T) {
	projects := []project{
		{id: 1, technologies: []string{"go", "SQL", "Élan"}},
		{id: 2, technologies: []string{"SQL", "Docker"}},
		{id: 3, technologies: []string{"SQL", "go"}},
	}

	tests := []struct {
		name  string
		order Order
		want  []string
	}{
		{name: "default lexical", order: nil, want: []string{"Docker", "SQL", "go", "Élan"}},
		{name: "count", order: ByCount, want: []string{"SQL", "go", "Docker", "Élan"}},
		{name: "collated", order: Collated(language.English), want: []string{"Docker", "Élan", "go", "SQL"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := Derive(projects, byTechnology, WithOrder(tt.order))
			assert.Equal(t, tt.want, first.Values())

			for range 10 {
				again := Derive(projects, byTechnology, WithOrder(tt.order))
				assert.Equal(t, first, again, "ordering must be deterministic")
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	for _, name := range []string{"", "lexical", "count", "collated"} {
		o, err := ParseOrder(name, language.English)
		require.NoError(t, err, name)
		assert.NotNil(t, o)
	}

	_, err := ParseOrder("random", language.English)
	assert.Error(t, err)
}

func TestSelection(t *testing.T) {
	var zero Selection
	assert.True(t, zero.IsAll())
	assert.True(t, All.IsAll())
	assert.Equal(t, "all", All.String())

	s := Value("Go")
	assert.False(t, s.IsAll())
	assert.Equal(t, "Go", s.Value())
	assert.Equal(t, "Go", s.String())

	// A concrete value spelled "all" is still a concrete selection.
	assert.False(t, Value("all").IsAll())
}
