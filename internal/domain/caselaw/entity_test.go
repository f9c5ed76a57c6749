package caselaw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSections(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		prefix string
		want   []string
	}{
		{"plain list", "302,201,34", "IPC", []string{"IPC 302", "IPC 201", "IPC 34"}},
		{"whitespace and empties", " 437 , ,154 ", "CrPC", []string{"CrPC 437", "CrPC 154"}},
		{"no prefix", "14,21", "", []string{"14", "21"}},
		{"empty field", "", "IPC", nil},
		{"only separators", ", ,", "IPC", []string{}},
		{"letter suffix", "376D,304B", "IPC", []string{"IPC 376D", "IPC 304B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSections(tt.field, tt.prefix)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCaseRecord_NormalizedRefs(t *testing.T) {
	rec := &CaseRecord{
		PenalSections:          "302,34",
		ProcedureSections:      "154",
		ConstitutionalArticles: "21,14",
	}
	assert.Equal(t, []string{"IPC 302", "IPC 34"}, rec.PenalRefs())
	assert.Equal(t, []string{"CrPC 154"}, rec.ProcedureRefs())
	assert.Equal(t, []string{"Article 21", "Article 14"}, rec.ArticleRefs())
}

func TestRefSet_Operations(t *testing.T) {
	a := NewRefSet("IPC 302", "IPC 34")
	b := NewRefSet("IPC 302", "CrPC 154")

	assert.Equal(t, []string{"IPC 302"}, Intersect(a, b).Sorted())
	assert.Equal(t, []string{"CrPC 154", "IPC 302", "IPC 34"}, Union(a, b).Sorted())
	assert.True(t, a.Contains("IPC 34"))
	assert.False(t, a.Contains("CrPC 154"))

	// Sorted on an empty set yields a non-nil empty slice.
	assert.NotNil(t, RefSet{}.Sorted())
	assert.Len(t, RefSet{}.Sorted(), 0)
}

func TestQueryEntities_SectionRefsExcludesActs(t *testing.T) {
	q := EmptyQueryEntities()
	q.PenalSections.Add("IPC 302")
	q.Articles.Add("Article 21")
	q.Acts.Add("POCSO Act")

	refs := q.SectionRefs()
	assert.True(t, refs.Contains("IPC 302"))
	assert.True(t, refs.Contains("Article 21"))
	assert.False(t, refs.Contains("POCSO Act"))
}

func TestQueryEntities_ToDTO_NeverNull(t *testing.T) {
	dto := EmptyQueryEntities().ToDTO()
	assert.NotNil(t, dto.PenalSections)
	assert.NotNil(t, dto.ProcedureSections)
	assert.NotNil(t, dto.Articles)
	assert.NotNil(t, dto.Acts)
}
