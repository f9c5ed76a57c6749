package ethics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NyayVandan/pkg/types/common"
	caselawtypes "github.com/turtacn/NyayVandan/pkg/types/caselaw"
)

// Review text blocks.  Findings are flags for judicial awareness, never
// directives, and the disclaimer says so on every response.
const (
	summaryConcerns = "Ethical concerns detected in the retrieved precedent set. " +
		"Please review bias warnings and consider expanding the search scope."
	summaryClean = "Retrieved precedents appear reasonably diverse. " +
		"Standard judicial discretion applies."
	reviewDisclaimer = "This ethical review is advisory only. It surfaces potential biases " +
		"for judicial awareness and does not constitute a recommendation or directive."
)

// Review runs the full ethical audit over a retrieved precedent set: the
// diversity score and bias rules on one side, the constitutional annotation
// on the other, the two halves evaluated concurrently since neither reads
// the other's output.
func (a *Auditor) Review(ctx context.Context, results []caselaw.CaseRecord, entities caselaw.QueryEntities) (caselawtypes.EthicalReviewDTO, error) {
	var (
		diversity caselawtypes.DiversityReportDTO
		warnings  []caselawtypes.BiasWarningDTO
		notes     []caselawtypes.ConstitutionalNoteDTO
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		diversity = a.ComputeDiversityScore(results)
		warnings = a.CheckBiasIndicators(results)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		notes = a.AnnotateConstitution(results, entities)
		return nil
	})
	if err := g.Wait(); err != nil {
		return caselawtypes.EthicalReviewDTO{}, err
	}

	hasConcerns := diversity.OverallScore < a.cfg.DiversityThreshold
	for _, w := range warnings {
		if w.Severity == common.SeverityHigh {
			hasConcerns = true
			break
		}
	}

	summary := summaryClean
	if hasConcerns {
		summary = summaryConcerns
		a.logger.Warn("ethical concerns flagged",
			logging.Float64("overall_diversity", diversity.OverallScore),
			logging.Int("bias_warnings", len(warnings)),
			logging.Int("result_count", len(results)),
		)
	}

	return caselawtypes.EthicalReviewDTO{
		DiversityScore:          diversity,
		BiasWarnings:            warnings,
		ConstitutionalAlignment: notes,
		HasEthicalConcerns:      hasConcerns,
		ReviewSummary:           summary,
		Disclaimer:              reviewDisclaimer,
	}, nil
}
