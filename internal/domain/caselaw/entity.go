// Package caselaw holds the corpus domain model: immutable case records,
// extracted legal-reference sets, and the repository contract.  The ranking
// and audit engines treat everything in this package as read-only.
package caselaw

import (
	"strings"

	"github.com/turtacn/NyayVandan/pkg/types/caselaw"
)

// Reference-identifier prefixes.  Stored section fields are bare numbers
// ("302,201,34"); extracted query references carry the prefix ("IPC 302") so
// the two sides meet in one normalized form.
const (
	PrefixPenal     = "IPC"
	PrefixProcedure = "CrPC"
	PrefixArticle   = "Article"
)

// CaseRecord is one immutable corpus entry.  Records are created by ingestion
// and never mutated afterwards; the retrieval core only ever reads them.
type CaseRecord struct {
	ID    string
	Title string
	Text  string
	Court string

	// Year is the judgment year; 0 means unknown.
	Year int

	// PenalSections, ProcedureSections and ConstitutionalArticles are
	// comma-joined identifier lists exactly as stored ("302,201,34").
	PenalSections          string
	ProcedureSections      string
	ConstitutionalArticles string

	Outcome string
	Source  string
}

// SplitSections parses a comma-joined section field into normalized
// identifiers, prepending prefix when non-empty ("302,34" + "IPC" →
// ["IPC 302", "IPC 34"]).  Malformed or empty input yields an empty slice,
// never an error: unparseable stored references are treated as absent.
func SplitSections(field, prefix string) []string {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	parts := strings.Split(field, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if prefix != "" {
			p = prefix + " " + p
		}
		out = append(out, p)
	}
	return out
}

// PenalRefs returns the record's penal-code references in normalized form.
func (c *CaseRecord) PenalRefs() []string {
	return SplitSections(c.PenalSections, PrefixPenal)
}

// ProcedureRefs returns the record's procedure-code references in normalized form.
func (c *CaseRecord) ProcedureRefs() []string {
	return SplitSections(c.ProcedureSections, PrefixProcedure)
}

// ArticleRefs returns the record's constitutional-article references in
// normalized form.
func (c *CaseRecord) ArticleRefs() []string {
	return SplitSections(c.ConstitutionalArticles, PrefixArticle)
}

// ToDTO converts the record to its wire form.
func (c *CaseRecord) ToDTO() caselaw.CaseDTO {
	return caselaw.CaseDTO{
		ID:                     c.ID,
		Title:                  c.Title,
		Text:                   c.Text,
		Court:                  c.Court,
		Year:                   c.Year,
		PenalSections:          c.PenalSections,
		ProcedureSections:      c.ProcedureSections,
		ConstitutionalArticles: c.ConstitutionalArticles,
		Outcome:                c.Outcome,
		Source:                 c.Source,
	}
}
