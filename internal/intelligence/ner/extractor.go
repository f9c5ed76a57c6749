// Package ner extracts structured legal references from free case text:
// penal-code sections, procedure-code sections, constitutional articles, and
// named statutes.  Extraction is rule-based — ordered regular expression
// passes over the raw text — so results are deterministic and auditable.
package ner

import (
	"regexp"

	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
)

var penalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)IPC\s+(?:Section\s+)?(\d+[A-Za-z]?)`),
	regexp.MustCompile(`(?i)Section\s+(\d+[A-Za-z]?)\s+(?:of\s+)?(?:the\s+)?(?:Indian\s+Penal\s+Code|IPC)`),
	regexp.MustCompile(`(?i)(?:Indian\s+Penal\s+Code|I\.P\.C\.?)\s+(\d+[A-Za-z]?)`),
	regexp.MustCompile(`(?i)u/s\s+(\d+[A-Za-z]?)\s+IPC`),
}

var procedurePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)CrPC\s+(?:Section\s+)?(\d+[A-Za-z]?)`),
	regexp.MustCompile(`(?i)Section\s+(\d+[A-Za-z]?)\s+(?:of\s+)?(?:the\s+)?(?:Cr\.?P\.?C\.?|Code\s+of\s+Criminal\s+Procedure)`),
	regexp.MustCompile(`(?i)Cr\.?P\.?C\.?\s+(\d+[A-Za-z]?)`),
	regexp.MustCompile(`(?i)u/s\s+(\d+[A-Za-z]?)\s+CrPC`),
}

var articlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Article\s+(\d+[A-Za-z]?(?:\(\d+\)(?:\([a-z]\))?)?)`),
	regexp.MustCompile(`(?i)Art\.\s*(\d+[A-Za-z]?)`),
}

// actPatterns names the statutes reviewers most often search across; the
// list is additive and order-independent.
var actPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(Prevention\s+of\s+Corruption\s+Act)`),
	regexp.MustCompile(`(?i)(POCSO\s+Act)`),
	regexp.MustCompile(`(?i)(Dowry\s+Prohibition\s+Act)`),
	regexp.MustCompile(`(?i)(Motor\s+Vehicles\s+Act)`),
	regexp.MustCompile(`(?i)(Industrial\s+Disputes\s+Act(?:\s+\d{4})?)`),
	regexp.MustCompile(`(?i)(Information\s+Technology\s+Act)`),
	regexp.MustCompile(`(?i)(Environment\s+Protection\s+Act(?:\s+\d{4})?)`),
	regexp.MustCompile(`(?i)(Forest\s+Rights\s+Act(?:\s+\d{4})?)`),
	regexp.MustCompile(`(?i)(Mines\s+and\s+Minerals\s+Act)`),
	regexp.MustCompile(`(?i)(Hindu\s+Marriage\s+Act)`),
	regexp.MustCompile(`(?i)(Rights\s+of\s+Persons\s+with\s+Disabilities\s+Act(?:\s+\d{4})?)`),
	regexp.MustCompile(`(?i)(Prevention\s+of\s+Money\s+Laundering\s+Act)`),
	regexp.MustCompile(`(?i)(RERA)`),
	regexp.MustCompile(`(?i)(POSH\s+Act)`),
}

// Extractor implements rule-based legal reference extraction.  It is
// stateless and safe for concurrent use.
type Extractor struct{}

// NewExtractor returns a ready Extractor.
func NewExtractor() *Extractor { return &Extractor{} }

// Extract scans text and returns the deduplicated, normalized reference sets.
// Categories with no matches come back as empty sets, never nil.
func (e *Extractor) Extract(text string) caselaw.QueryEntities {
	out := caselaw.EmptyQueryEntities()
	if text == "" {
		return out
	}

	collect(text, penalPatterns, caselaw.PrefixPenal, out.PenalSections)
	collect(text, procedurePatterns, caselaw.PrefixProcedure, out.ProcedureSections)
	collect(text, articlePatterns, caselaw.PrefixArticle, out.Articles)

	for _, re := range actPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			out.Acts.Add(m[1])
		}
	}
	return out
}

// collect runs every pattern over text and adds "<prefix> <group1>" for each
// match.  Patterns overlap deliberately (the same citation is often matched
// by several); the set deduplicates.
func collect(text string, patterns []*regexp.Regexp, prefix string, into caselaw.RefSet) {
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if m[1] != "" {
				into.Add(prefix + " " + m[1])
			}
		}
	}
}
