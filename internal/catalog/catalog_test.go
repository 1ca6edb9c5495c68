package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskwatch/internal/common"
)

func TestDefaultCatalog(t *testing.T) {
	cat := Default()
	require.NotNil(t, cat)

	assert.Len(t, cat.Categories, ExpectedCategories)
	assert.Len(t, cat.Domains, 3)
	assert.Len(t, cat.CategoryIDs(), ExpectedCategories)

	t.Run("partition covers all categories exactly once", func(t *testing.T) {
		covered := make(map[string]int)
		for _, domainID := range cat.DomainIDs() {
			ids := cat.DomainCategories(domainID)
			assert.NotEmptyf(t, ids, "domain %s has no categories", domainID)
			for _, id := range ids {
				covered[id]++
			}
		}
		assert.Len(t, covered, ExpectedCategories)
		for id, n := range covered {
			assert.Equalf(t, 1, n, "category %s assigned %d times", id, n)
		}
	})

	t.Run("lookups", func(t *testing.T) {
		elections, ok := cat.Category("elections")
		require.True(t, ok)
		assert.Equal(t, "Elections", elections.Name)
		assert.Equal(t, "rule_of_law_security", elections.Domain)
		assert.NotEmpty(t, elections.Rubric.Low)
		assert.NotEmpty(t, elections.Rubric.High)

		_, ok = cat.Category("weather")
		assert.False(t, ok)

		assert.Equal(t, "Operating & Economic Environment", cat.DomainName("operating_economic"))
	})
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "not yaml",
			doc:  "{{{",
		},
		{
			name: "wrong category count",
			doc: `
domains:
  - {id: d1, name: Domain One}
categories:
  - {id: c1, name: One, domain: d1}
`,
		},
		{
			name: "unknown domain reference",
			doc: `
domains:
  - {id: d1, name: Domain One}
categories:
  - {id: c1, name: C1, domain: d1}
  - {id: c2, name: C2, domain: d1}
  - {id: c3, name: C3, domain: d1}
  - {id: c4, name: C4, domain: d1}
  - {id: c5, name: C5, domain: d1}
  - {id: c6, name: C6, domain: d1}
  - {id: c7, name: C7, domain: d1}
  - {id: c8, name: C8, domain: d1}
  - {id: c9, name: C9, domain: d1}
  - {id: c10, name: C10, domain: nowhere}
`,
		},
		{
			name: "duplicate category id",
			doc: `
domains:
  - {id: d1, name: Domain One}
categories:
  - {id: c1, name: C1, domain: d1}
  - {id: c1, name: C1 again, domain: d1}
  - {id: c3, name: C3, domain: d1}
  - {id: c4, name: C4, domain: d1}
  - {id: c5, name: C5, domain: d1}
  - {id: c6, name: C6, domain: d1}
  - {id: c7, name: C7, domain: d1}
  - {id: c8, name: C8, domain: d1}
  - {id: c9, name: C9, domain: d1}
  - {id: c10, name: C10, domain: d1}
`,
		},
		{
			name: "empty domain",
			doc: `
domains:
  - {id: d1, name: Domain One}
  - {id: d2, name: Domain Two}
categories:
  - {id: c1, name: C1, domain: d1}
  - {id: c2, name: C2, domain: d1}
  - {id: c3, name: C3, domain: d1}
  - {id: c4, name: C4, domain: d1}
  - {id: c5, name: C5, domain: d1}
  - {id: c6, name: C6, domain: d1}
  - {id: c7, name: C7, domain: d1}
  - {id: c8, name: C8, domain: d1}
  - {id: c9, name: C9, domain: d1}
  - {id: c10, name: C10, domain: d1}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidCatalog)
		})
	}
}
