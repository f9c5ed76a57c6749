// Package ingestion merges heterogeneous legal datasets into the unified
// case-record schema the rest of the system consumes: curated judgment CSVs,
// CivilSum-style document dumps, legal QA knowledge bases, and the
// constitution article lookup.  Sources may live on local disk or in object
// storage; missing sources are skipped, malformed ones fail the load.
package ingestion

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/turtacn/NyayVandan/internal/config"
	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NyayVandan/internal/intelligence/ner"
	"github.com/turtacn/NyayVandan/pkg/errors"
)

// Source labels stamped onto loaded records.
const (
	sourceSample       = "sample"
	sourceCivilSum     = "civilsum"
	sourceIPCQA        = "ipc_qa"
	sourceCrPCQA       = "crpc_qa"
	sourceConstQA      = "constitution_qa"
	courtLegalRef      = "Legal Reference"
	outcomeLegalRef    = "Reference Material"
	minCaseTextChars   = 30
	minCivilSumChars   = 50
	maxDerivedTitleLen = 80
)

// Loader reads every configured dataset source and normalizes it into
// CaseRecords.
type Loader struct {
	cfg       config.IngestionConfig
	objects   ObjectOpener
	extractor *ner.Extractor
	logger    logging.Logger
}

// NewLoader builds a Loader.  objects may be nil when all sources are local.
func NewLoader(cfg config.IngestionConfig, objects ObjectOpener, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Loader{
		cfg:       cfg,
		objects:   objects,
		extractor: ner.NewExtractor(),
		logger:    logger.Named("ingestion"),
	}
}

// LoadAll reads every configured source in a fixed order (curated judgments,
// CivilSum, then the three QA sets) and returns the merged corpus plus the
// constitution article lookup.  Unreadable sources are skipped with a
// warning; malformed ones abort the load.
func (l *Loader) LoadAll(ctx context.Context) ([]caselaw.CaseRecord, map[string]string, error) {
	records := []caselaw.CaseRecord{}

	loaders := []struct {
		name string
		load func(context.Context) ([]caselaw.CaseRecord, error)
	}{
		{"judgments", l.LoadJudgments},
		{"civilsum", l.LoadCivilSum},
		{"qa", l.LoadQASets},
	}
	for _, src := range loaders {
		batch, err := src.load(ctx)
		if err != nil {
			if errors.IsCode(err, errors.ErrCodeSourceUnreadable) {
				l.logger.Warn("dataset source skipped",
					logging.String("source", src.name), logging.Err(err))
				continue
			}
			return nil, nil, err
		}
		records = append(records, batch...)
	}

	constitution, err := l.LoadConstitution(ctx)
	if err != nil {
		if !errors.IsCode(err, errors.ErrCodeSourceUnreadable) {
			return nil, nil, err
		}
		l.logger.Warn("constitution lookup skipped", logging.Err(err))
		constitution = map[string]string{}
	}

	l.logger.Info("unified dataset loaded",
		logging.Int("cases", len(records)),
		logging.Int("constitution_articles", len(constitution)),
	)
	return records, constitution, nil
}

// LoadJudgments reads the curated judgments CSV, which already carries the
// full unified schema.
func (l *Loader) LoadJudgments(ctx context.Context) ([]caselaw.CaseRecord, error) {
	if l.cfg.JudgmentsCSV == "" {
		return nil, errors.New(errors.ErrCodeSourceUnreadable, "judgments source not configured")
	}
	rows, err := l.readCSV(ctx, l.cfg.JudgmentsCSV)
	if err != nil {
		return nil, err
	}

	records := make([]caselaw.CaseRecord, 0, len(rows))
	for _, row := range rows {
		rec := caselaw.CaseRecord{
			ID:                     row["case_id"],
			Title:                  row["case_title"],
			Text:                   row["case_text"],
			Court:                  row["court"],
			Year:                   parseYear(row["year"]),
			PenalSections:          row["ipc_sections"],
			ProcedureSections:      row["crpc_sections"],
			ConstitutionalArticles: row["constitutional_articles"],
			Outcome:                row["judgment_outcome"],
			Source:                 sourceSample,
		}
		if len(rec.Text) < minCaseTextChars || rec.ID == "" {
			continue
		}
		records = append(records, rec)
	}
	l.logger.Info("judgments loaded", logging.Int("cases", len(records)))
	return records, nil
}

// LoadCivilSum reads a CivilSum-style CSV (doc_id, text, summary) and
// derives the missing metadata from the document text.  Rows beyond the
// configured limit are ignored.
func (l *Loader) LoadCivilSum(ctx context.Context) ([]caselaw.CaseRecord, error) {
	if l.cfg.CivilSumCSV == "" {
		return nil, errors.New(errors.ErrCodeSourceUnreadable, "civilsum source not configured")
	}
	rows, err := l.readCSV(ctx, l.cfg.CivilSumCSV)
	if err != nil {
		return nil, err
	}
	limit := l.cfg.CivilSumLimit
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	records := make([]caselaw.CaseRecord, 0, len(rows))
	for _, row := range rows {
		text := row["text"]
		if len(text) < minCivilSumChars {
			continue
		}
		summary := row["summary"]
		entities := l.extractor.Extract(text)
		penal, procedure, articles := sectionFields(entities)

		records = append(records, caselaw.CaseRecord{
			ID:                     "CS-" + row["doc_id"],
			Title:                  derivedTitle(summary, "CivilSum Case "+row["doc_id"]),
			Text:                   text,
			Court:                  extractCourt(text),
			Year:                   extractYear(text),
			PenalSections:          penal,
			ProcedureSections:      procedure,
			ConstitutionalArticles: articles,
			Outcome:                extractOutcome(summary + " " + text),
			Source:                 sourceCivilSum,
		})
	}
	l.logger.Info("civilsum loaded", logging.Int("cases", len(records)))
	return records, nil
}

// qaSet names one QA JSON file and how its entries are tagged.
type qaSet struct {
	file   string
	source string
	prefix string
}

var qaSets = []qaSet{
	{"ipc_qa.json", sourceIPCQA, "IPC"},
	{"crpc_qa.json", sourceCrPCQA, "CrPC"},
	{"constitution_qa.json", sourceConstQA, "Article"},
}

// qaPair is one entry of a legal QA knowledge file.
type qaPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// LoadQASets converts the three QA knowledge bases into pseudo-case records
// so statutory knowledge is retrievable alongside judgments.
func (l *Loader) LoadQASets(ctx context.Context) ([]caselaw.CaseRecord, error) {
	if l.cfg.QAJSONDir == "" {
		return nil, errors.New(errors.ErrCodeSourceUnreadable, "qa source not configured")
	}

	records := []caselaw.CaseRecord{}
	loaded := 0
	for _, set := range qaSets {
		batch, err := l.loadQASet(ctx, set)
		if err != nil {
			if errors.IsCode(err, errors.ErrCodeSourceUnreadable) {
				l.logger.Warn("qa set skipped", logging.String("file", set.file), logging.Err(err))
				continue
			}
			return nil, err
		}
		records = append(records, batch...)
		loaded++
	}
	if loaded == 0 {
		return nil, errors.New(errors.ErrCodeSourceUnreadable, "no qa sets readable").
			WithDetail(l.cfg.QAJSONDir)
	}
	l.logger.Info("qa sets loaded", logging.Int("cases", len(records)))
	return records, nil
}

func (l *Loader) loadQASet(ctx context.Context, set qaSet) ([]caselaw.CaseRecord, error) {
	r, err := l.open(ctx, joinSourcePath(l.cfg.QAJSONDir, set.file))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var pairs []qaPair
	if err := json.NewDecoder(r).Decode(&pairs); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSourceMalformed, "decode qa json").
			WithDetail(set.file)
	}

	records := make([]caselaw.CaseRecord, 0, len(pairs))
	for i, p := range pairs {
		text := fmt.Sprintf("Legal Question: %s\nLegal Answer: %s", p.Question, p.Answer)
		if len(text) < minCaseTextChars {
			continue
		}
		entities := l.extractor.Extract(text)
		penal, procedure, articles := sectionFields(entities)

		rec := caselaw.CaseRecord{
			ID:                     fmt.Sprintf("%sQA-%04d", set.prefix, i+1),
			Title:                  derivedTitle(p.Question, set.file),
			Text:                   text,
			Court:                  courtLegalRef,
			ConstitutionalArticles: articles,
			Outcome:                outcomeLegalRef,
			Source:                 set.source,
		}
		// Each QA set contributes only its own statute's sections.
		switch set.prefix {
		case "IPC":
			rec.PenalSections = penal
		case "CrPC":
			rec.ProcedureSections = procedure
		}
		records = append(records, rec)
	}
	return records, nil
}

// constitutionArticlePattern splits "21. Protection of life..." rows into
// number and body.
var constitutionArticlePattern = regexp.MustCompile(`^(\d+[A-Za-z]?)\.\s*(.+)`)

// LoadConstitution reads the constitution CSV into an article-number to
// article-text lookup used for annotation enrichment.  These rows are not
// case records.
func (l *Loader) LoadConstitution(ctx context.Context) (map[string]string, error) {
	if l.cfg.ConstitutionCSV == "" {
		return nil, errors.New(errors.ErrCodeSourceUnreadable, "constitution source not configured")
	}
	rows, err := l.readCSV(ctx, l.cfg.ConstitutionCSV)
	if err != nil {
		return nil, err
	}

	articles := map[string]string{}
	for _, row := range rows {
		m := constitutionArticlePattern.FindStringSubmatch(row["Articles"])
		if m == nil {
			continue
		}
		articles[m[1]] = strings.TrimSpace(m[2])
	}
	l.logger.Info("constitution articles loaded", logging.Int("articles", len(articles)))
	return articles, nil
}

// readCSV loads a whole CSV source as header-keyed rows.
func (l *Loader) readCSV(ctx context.Context, source string) ([]map[string]string, error) {
	r, err := l.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeSourceMalformed, "read csv header").
			WithDetail(source)
	}

	rows := []map[string]string{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSourceMalformed, "read csv row").
				WithDetail(source)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[strings.TrimSpace(col)] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// joinSourcePath joins a directory-style source with a file name for both
// local paths and object URIs.
func joinSourcePath(dir, file string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + file
	}
	return dir + "/" + file
}

func derivedTitle(text, fallback string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback
	}
	if runes := []rune(text); len(runes) > maxDerivedTitleLen {
		return strings.TrimSpace(string(runes[:maxDerivedTitleLen])) + "..."
	}
	return text
}

func parseYear(s string) int {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || y < 0 {
		return 0
	}
	return y
}
