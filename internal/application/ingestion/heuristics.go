package ingestion

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
)

// Field heuristics for sources that carry no structured metadata: court,
// year and outcome are recovered from the raw judgment text.  Every helper
// returns a usable default when nothing matches; ingestion never fails on a
// record it cannot enrich.

const (
	unknownCourt   = "Unknown Court"
	unknownOutcome = "Refer to Full Text"

	// yearScanChars bounds the year search to the head of the document,
	// where the citation and decision date appear.
	yearScanChars = 500
	minLegalYear  = 1950
	maxLegalYear  = 2025
)

var supremeCourtPattern = regexp.MustCompile(`(?i)Supreme\s+Court`)

var highCourtOfPattern = regexp.MustCompile(`(?i)High\s+Court\s+of\s+([A-Za-z&]+(?:\s+[A-Za-z&]+)*?)(?:\s+at\b|\s*,|\s*-|\.|$)`)

var namedHighCourtPattern = regexp.MustCompile(`(?i)(Delhi|Bombay|Madras|Calcutta|Allahabad|Karnataka|Kerala|Gujarat|Rajasthan|Punjab|Patna|Gauhati|Orissa|Jharkhand|Chhattisgarh|Uttarakhand|Telangana|Andhra\s+Pradesh|Madhya\s+Pradesh|Himachal\s+Pradesh)\s+High\s+Court`)

var lowerCourtPatterns = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`(?i)Sessions\s+Court`), "Sessions Court"},
	{regexp.MustCompile(`(?i)District\s+Court`), "District Court"},
	{regexp.MustCompile(`(?i)Tribunal`), "Tribunal"},
}

// extractCourt recovers the court name from judgment text.
func extractCourt(text string) string {
	if supremeCourtPattern.MatchString(text) {
		return "Supreme Court of India"
	}
	if m := highCourtOfPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]) + " High Court"
	}
	if m := namedHighCourtPattern.FindStringSubmatch(text); m != nil {
		return normalizeSpace(m[1]) + " High Court"
	}
	for _, p := range lowerCourtPatterns {
		if p.re.MatchString(text) {
			return p.name
		}
	}
	return unknownCourt
}

var yearPattern = regexp.MustCompile(`(?:19|20)\d{2}`)

// extractYear returns the most recent plausible year near the head of the
// text, or 0 when none is found.  The latest year is taken as the judgment
// year since older ones are usually cited precedents.
func extractYear(text string) int {
	head := text
	if runes := []rune(text); len(runes) > yearScanChars {
		head = string(runes[:yearScanChars])
	}
	best := 0
	for _, m := range yearPattern.FindAllString(head, -1) {
		y, err := strconv.Atoi(m)
		if err != nil || y < minLegalYear || y > maxLegalYear {
			continue
		}
		if y > best {
			best = y
		}
	}
	return best
}

var outcomePatterns = []struct {
	re      *regexp.Regexp
	outcome string
}{
	{regexp.MustCompile(`appeal\s+(?:is\s+)?dismissed`), "Appeal Dismissed"},
	{regexp.MustCompile(`petition\s+(?:is\s+)?dismissed`), "Petition Dismissed"},
	{regexp.MustCompile(`appeal\s+(?:is\s+)?allowed`), "Appeal Allowed"},
	{regexp.MustCompile(`petition\s+(?:is\s+)?allowed`), "Petition Allowed"},
	{regexp.MustCompile(`writ\s+petition\s+(?:is\s+)?dismissed`), "Writ Dismissed"},
	{regexp.MustCompile(`writ\s+petition\s+(?:is\s+)?allowed`), "Writ Allowed"},
	{regexp.MustCompile(`bail\s+(?:is\s+)?granted`), "Bail Granted"},
	{regexp.MustCompile(`bail\s+(?:is\s+)?rejected`), "Bail Rejected"},
	{regexp.MustCompile(`convicted`), "Convicted"},
	{regexp.MustCompile(`acquitted`), "Acquitted"},
	{regexp.MustCompile(`(?:is\s+)?set\s+aside`), "Set Aside"},
	{regexp.MustCompile(`partly\s+allowed`), "Partially Allowed"},
}

// extractOutcome classifies the judgment outcome from its text.  Patterns
// are ordered by specificity; the first match wins.
func extractOutcome(text string) string {
	lower := strings.ToLower(text)
	for _, p := range outcomePatterns {
		if p.re.MatchString(lower) {
			return p.outcome
		}
	}
	return unknownOutcome
}

// stripRefPrefix converts normalized references back to the bare comma-joined
// storage form ("IPC 302" -> "302").
func stripRefPrefix(refs []string, prefix string) string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, strings.TrimSpace(strings.TrimPrefix(r, prefix+" ")))
	}
	return strings.Join(out, ",")
}

// sectionFields derives the three stored reference fields from raw text
// using the same extractor the query pipeline uses.
func sectionFields(entities caselaw.QueryEntities) (penal, procedure, articles string) {
	penal = stripRefPrefix(entities.PenalSections.Sorted(), caselaw.PrefixPenal)
	procedure = stripRefPrefix(entities.ProcedureSections.Sorted(), caselaw.PrefixProcedure)
	articles = stripRefPrefix(entities.Articles.Sorted(), caselaw.PrefixArticle)
	return penal, procedure, articles
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
