// Package caselaw defines the flat, JSON-serializable data-transfer types of
// the NyayVandan API contract.  Nothing here references internal model
// objects; every field is a scalar or a flat slice so clients in any language
// can consume responses without shared code.
package caselaw

import "github.com/turtacn/NyayVandan/pkg/types/common"

// CaseDTO is the wire form of a corpus entry.
type CaseDTO struct {
	ID                     string `json:"case_id"`
	Title                  string `json:"case_title"`
	Text                   string `json:"case_text"`
	Court                  string `json:"court"`
	Year                   int    `json:"year"`
	PenalSections          string `json:"penal_sections"`
	ProcedureSections      string `json:"procedure_sections"`
	ConstitutionalArticles string `json:"constitutional_articles"`
	Outcome                string `json:"outcome"`
	Source                 string `json:"source"`
}

// ScoreBreakdown carries the four similarity signals for one ranked case.
// All values lie in [0,1].
type ScoreBreakdown struct {
	Semantic      float64 `json:"semantic"`
	Lexical       float64 `json:"lexical"`
	EntityOverlap float64 `json:"entity_overlap"`
	Hybrid        float64 `json:"hybrid"`
}

// RankedCaseDTO is one entry of the ranked precedent list.
type RankedCaseDTO struct {
	CaseDTO
	Scores          ScoreBreakdown `json:"scores"`
	SimilarityLabel string         `json:"similarity_label"`
}

// QueryEntitiesDTO is the wire form of the extracted legal references.
// Slices are sorted, deduplicated, and never null.
type QueryEntitiesDTO struct {
	PenalSections     []string `json:"penal_sections"`
	ProcedureSections []string `json:"procedure_sections"`
	Articles          []string `json:"constitutional_articles"`
	Acts              []string `json:"acts_referenced"`
}

// DiversityDetails is the descriptive portion of a diversity report.
type DiversityDetails struct {
	CourtsRepresented []string `json:"courts_represented"`
	YearRange         string   `json:"year_range"`
	OutcomesFound     []string `json:"outcomes_found"`
	TotalCases        int      `json:"total_cases"`
}

// DiversityReportDTO summarises how varied a ranked result set is.
// All four scores lie in [0,1].
type DiversityReportDTO struct {
	OverallScore      float64          `json:"overall_score"`
	CourtDiversity    float64          `json:"court_diversity"`
	TemporalDiversity float64          `json:"temporal_diversity"`
	OutcomeDiversity  float64          `json:"outcome_diversity"`
	Details           DiversityDetails `json:"details"`
}

// BiasWarningDTO is one rule-triggered advisory flag.  Warnings appear in the
// fixed rule-evaluation order.
type BiasWarningDTO struct {
	Kind           string          `json:"type"`
	Severity       common.Severity `json:"severity"`
	Message        string          `json:"message"`
	Recommendation string          `json:"recommendation"`
}

// ConstitutionalNoteDTO maps one referenced article to its fundamental-rights
// principle.
type ConstitutionalNoteDTO struct {
	Article   string `json:"article"`
	Principle string `json:"principle"`
	Note      string `json:"note"`
}

// EthicalReviewDTO is the complete advisory review for one analyze request.
type EthicalReviewDTO struct {
	DiversityScore          DiversityReportDTO      `json:"diversity_score"`
	BiasWarnings            []BiasWarningDTO        `json:"bias_warnings"`
	ConstitutionalAlignment []ConstitutionalNoteDTO `json:"constitutional_alignment"`
	HasEthicalConcerns      bool                    `json:"has_ethical_concerns"`
	ReviewSummary           string                  `json:"review_summary"`
	Disclaimer              string                  `json:"disclaimer"`
}

// EntityOverlapDetail breaks the query/case reference overlap down by
// category for explanation display.
type EntityOverlapDetail struct {
	CommonPenal      []string `json:"common_penal"`
	CommonProcedure  []string `json:"common_procedure"`
	CommonArticles   []string `json:"common_articles"`
	QueryOnlyPenal   []string `json:"query_only_penal"`
	CaseOnlyPenal    []string `json:"case_only_penal"`
}

// InfluentialTerm is one shared high-weight term between query and case.
type InfluentialTerm struct {
	Term           string  `json:"term"`
	Weight         float64 `json:"weight"`
	QueryRelevance float64 `json:"query_relevance"`
	CaseRelevance  float64 `json:"case_relevance"`
}

// ExplanationDTO tells the reviewer why one case was retrieved.
type ExplanationDTO struct {
	CaseID           string              `json:"case_id"`
	SimilarityLabel  string              `json:"similarity_label"`
	EntityOverlap    EntityOverlapDetail `json:"entity_overlap"`
	InfluentialTerms []InfluentialTerm   `json:"influential_terms"`
	ExplanationText  string              `json:"explanation_text"`
	Disclaimer       string              `json:"disclaimer"`
}

// QueryInfo echoes request statistics back to the caller.
type QueryInfo struct {
	QueryID        common.QueryID `json:"query_id"`
	OriginalLength int            `json:"original_length"`
	CleanedLength  int            `json:"cleaned_length"`
	TokenCount     int            `json:"token_count"`
	TopKRequested  int            `json:"top_k_requested"`
}

// AnalyzeRequest is the body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	CaseText string `json:"case_text"`
	TopK     int    `json:"top_k"`
}

// AnalyzeResponse is the full analysis pipeline output.
type AnalyzeResponse struct {
	Status            string           `json:"status"`
	QueryInfo         QueryInfo        `json:"query_info"`
	ExtractedEntities QueryEntitiesDTO `json:"extracted_entities"`
	SimilarCases      []RankedCaseDTO  `json:"similar_cases"`
	Explanations      []ExplanationDTO `json:"explanations"`
	EthicalFlags      EthicalReviewDTO `json:"ethical_flags"`
	Disclaimer        string           `json:"disclaimer"`
}

// StatsResponse is the body of GET /api/v1/stats.
type StatsResponse struct {
	TotalCases int            `json:"total_cases"`
	Courts     map[string]int `json:"courts"`
	Outcomes   map[string]int `json:"outcomes"`
	Sources    map[string]int `json:"sources"`
	YearMin    int            `json:"year_min"`
	YearMax    int            `json:"year_max"`
}

// HealthResponse is the body of the readiness probe.
type HealthResponse struct {
	Status        string `json:"status"`
	DatasetLoaded bool   `json:"dataset_loaded"`
	IndexReady    bool   `json:"index_ready"`
	TotalCases    int    `json:"total_cases"`
}
