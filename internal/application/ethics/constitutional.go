package ethics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
	caselawtypes "github.com/turtacn/NyayVandan/pkg/types/caselaw"
)

// articlePrinciples maps constitutional article numbers to the fundamental
// right or principle they guarantee.  Articles outside this table are
// silently skipped by the annotator.
var articlePrinciples = map[string]string{
	"14":   "Equality before law / Equal protection of laws",
	"15":   "Prohibition of discrimination on grounds of religion, race, caste, sex, place of birth",
	"19":   "Protection of fundamental freedoms (speech, assembly, movement, profession)",
	"20":   "Protection in respect of conviction for offences (double jeopardy, self-incrimination)",
	"21":   "Right to life and personal liberty",
	"21A":  "Right to education",
	"22":   "Protection against arrest and detention",
	"25":   "Freedom of conscience and free profession, practice, and propagation of religion",
	"32":   "Right to constitutional remedies",
	"39":   "Certain principles of policy to be followed by the State",
	"43":   "Living wage, conditions of work, and decent standard of life",
	"48A":  "Protection and improvement of environment and safeguarding forests",
	"51A":  "Fundamental duties of citizens",
	"244":  "Administration of Scheduled Areas and Tribal Areas",
	"300A": "Right to property — no person shall be deprived without authority of law",
	"311":  "Dismissal, removal, or reduction in rank of civil servants",
}

// AnnotateConstitution maps every constitutional article referenced by the
// query or the result set to its guaranteed principle.  Notes come back
// sorted by article number; one note per distinct article.
func (a *Auditor) AnnotateConstitution(results []caselaw.CaseRecord, entities caselaw.QueryEntities) []caselawtypes.ConstitutionalNoteDTO {
	referenced := map[string]struct{}{}

	for art := range entities.Articles {
		// Extracted references carry the "Article 21" form; the table is
		// keyed by bare number.
		num := strings.TrimSpace(strings.TrimPrefix(art, caselaw.PrefixArticle))
		if num != "" {
			referenced[num] = struct{}{}
		}
	}
	for _, r := range results {
		for _, num := range caselaw.SplitSections(r.ConstitutionalArticles, "") {
			referenced[num] = struct{}{}
		}
	}

	nums := make([]string, 0, len(referenced))
	for num := range referenced {
		nums = append(nums, num)
	}
	sort.Strings(nums)

	notes := []caselawtypes.ConstitutionalNoteDTO{}
	for _, num := range nums {
		principle, ok := articlePrinciples[num]
		if !ok {
			continue
		}
		notes = append(notes, caselawtypes.ConstitutionalNoteDTO{
			Article:   "Article " + num,
			Principle: principle,
			Note: fmt.Sprintf("Article %s of the Constitution of India guarantees: "+
				"%s. This principle is relevant to the current case analysis.", num, principle),
		})
	}
	return notes
}
