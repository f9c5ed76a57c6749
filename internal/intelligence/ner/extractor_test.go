package ner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_PenalSections(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"direct citation", "charged under IPC 302", []string{"IPC 302"}},
		{"section of code", "Section 34 of the Indian Penal Code applies", []string{"IPC 34"}},
		{"dotted abbreviation", "punishable under I.P.C. 420", []string{"IPC 420"}},
		{"u/s shorthand", "arrested u/s 498A IPC", []string{"IPC 498A"}},
		{"duplicates collapse", "IPC 302 read with IPC Section 302", []string{"IPC 302"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			assert.Equal(t, tt.want, got.PenalSections.Sorted())
		})
	}
}

func TestExtract_ProcedureSections(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("bail application under Section 437 CrPC and CrPC 154")
	assert.Equal(t, []string{"CrPC 154", "CrPC 437"}, got.ProcedureSections.Sorted())
}

func TestExtract_Articles(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("violation of Article 21 and Article 19(1)(a) of the Constitution")
	assert.Contains(t, got.Articles.Sorted(), "Article 21")
	assert.Contains(t, got.Articles.Sorted(), "Article 19(1)(a)")
}

func TestExtract_Acts(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("offences under the POCSO Act and the Prevention of Corruption Act")
	assert.Equal(t, []string{"POCSO Act", "Prevention of Corruption Act"}, got.Acts.Sorted())
}

func TestExtract_EmptyTextYieldsEmptySets(t *testing.T) {
	got := NewExtractor().Extract("")
	assert.Empty(t, got.PenalSections)
	assert.Empty(t, got.ProcedureSections)
	assert.Empty(t, got.Articles)
	assert.Empty(t, got.Acts)
	// Sets are allocated, never nil.
	assert.NotNil(t, got.PenalSections)
}

func TestExtract_NoFalseCategoryBleed(t *testing.T) {
	got := NewExtractor().Extract("under IPC 302 only")
	assert.Empty(t, got.ProcedureSections)
	assert.Empty(t, got.Articles)
}
