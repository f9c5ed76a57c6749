package ingestion

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/NyayVandan/internal/config"
	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NyayVandan/pkg/errors"
)

const judgmentsCSV = `case_id,case_title,case_text,court,year,ipc_sections,crpc_sections,constitutional_articles,judgment_outcome
SC-001,State v Ram,The accused was charged with murder of the deceased near the village well,Supreme Court of India,2015,"302,34",437,21,Convicted
SC-002,Short,too short,Delhi High Court,2018,,,,Acquitted
`

const civilSumCSV = `doc_id,text,summary
101,The appellant approached the Delhi High Court under Section 437 CrPC seeking bail in 2019 which the court considered at length before the bail is granted,Bail application allowed by the High Court
102,tiny,ignored
103,A writ petition before the Supreme Court of India invoking Article 21 was heard in 2020 and the writ petition is dismissed after detailed arguments,Writ petition on personal liberty
`

const ipcQAJSON = `[
  {"question": "What is the punishment for murder under IPC 302?",
   "answer": "Section 302 IPC prescribes death or imprisonment for life for murder."}
]`

const constitutionCSV = `Articles
21. Protection of life and personal liberty
14. Equality before law
not an article row
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func testLoader(t *testing.T) (*Loader, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.IngestionConfig{
		JudgmentsCSV:    writeFile(t, dir, "judgments.csv", judgmentsCSV),
		CivilSumCSV:     writeFile(t, dir, "train.csv", civilSumCSV),
		CivilSumLimit:   500,
		ConstitutionCSV: writeFile(t, dir, "constitution.csv", constitutionCSV),
		QAJSONDir:       dir,
	}
	writeFile(t, dir, "ipc_qa.json", ipcQAJSON)
	return NewLoader(cfg, nil, logging.NewNopLogger()), dir
}

func TestLoadJudgmentsFiltersShortText(t *testing.T) {
	l, _ := testLoader(t)

	records, err := l.LoadJudgments(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "SC-001", rec.ID)
	assert.Equal(t, "Supreme Court of India", rec.Court)
	assert.Equal(t, 2015, rec.Year)
	assert.Equal(t, "302,34", rec.PenalSections)
	assert.Equal(t, "sample", rec.Source)
}

func TestLoadCivilSumDerivesMetadata(t *testing.T) {
	l, _ := testLoader(t)

	records, err := l.LoadCivilSum(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)

	bail := records[0]
	assert.Equal(t, "CS-101", bail.ID)
	assert.Equal(t, "civilsum", bail.Source)
	assert.Equal(t, "Delhi High Court", bail.Court)
	assert.Equal(t, 2019, bail.Year)
	assert.Equal(t, "437", bail.ProcedureSections)
	assert.Equal(t, "Bail Granted", bail.Outcome)
	assert.Equal(t, "Bail application allowed by the High Court", bail.Title)

	writ := records[1]
	assert.Equal(t, "CS-103", writ.ID)
	assert.Equal(t, "Supreme Court of India", writ.Court)
	assert.Equal(t, "21", writ.ConstitutionalArticles)
	// "petition is dismissed" outranks the writ pattern in the ordered list.
	assert.Equal(t, "Petition Dismissed", writ.Outcome)
}

func TestLoadCivilSumHonorsRowLimit(t *testing.T) {
	l, _ := testLoader(t)
	l.cfg.CivilSumLimit = 1

	records, err := l.LoadCivilSum(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "CS-101", records[0].ID)
}

func TestLoadQASetsBuildsPseudoCases(t *testing.T) {
	l, _ := testLoader(t)

	records, err := l.LoadQASets(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "IPCQA-0001", rec.ID)
	assert.Equal(t, "Legal Reference", rec.Court)
	assert.Equal(t, "Reference Material", rec.Outcome)
	assert.Equal(t, "ipc_qa", rec.Source)
	assert.Equal(t, "302", rec.PenalSections)
	assert.Empty(t, rec.ProcedureSections)
	assert.Contains(t, rec.Text, "Legal Question:")
}

func TestLoadConstitutionLookup(t *testing.T) {
	l, _ := testLoader(t)

	articles, err := l.LoadConstitution(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"21": "Protection of life and personal liberty",
		"14": "Equality before law",
	}, articles)
}

func TestLoadAllMergesInSourceOrder(t *testing.T) {
	l, _ := testLoader(t)

	records, constitution, err := l.LoadAll(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "SC-001", records[0].ID)
	assert.Equal(t, "CS-101", records[1].ID)
	assert.Equal(t, "CS-103", records[2].ID)
	assert.Equal(t, "IPCQA-0001", records[3].ID)
	assert.Len(t, constitution, 2)
}

func TestLoadAllSkipsUnreadableSource(t *testing.T) {
	l, dir := testLoader(t)
	l.cfg.CivilSumCSV = filepath.Join(dir, "missing.csv")

	records, _, err := l.LoadAll(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "SC-001", records[0].ID)
	assert.Equal(t, "IPCQA-0001", records[1].ID)
}

func TestLoadAllFailsOnMalformedJSON(t *testing.T) {
	l, dir := testLoader(t)
	writeFile(t, dir, "ipc_qa.json", "{not json")

	_, _, err := l.LoadAll(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSourceMalformed))
}

type fakeOpener struct {
	content map[string]string
}

func (f *fakeOpener) Open(_ context.Context, uri string) (io.ReadCloser, error) {
	body, ok := f.content[uri]
	if !ok {
		return nil, errors.New(errors.ErrCodeSourceUnreadable, "no such object").WithDetail(uri)
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func TestLoadJudgmentsFromObjectStorage(t *testing.T) {
	opener := &fakeOpener{content: map[string]string{
		"s3://datasets/judgments.csv": judgmentsCSV,
	}}
	cfg := config.IngestionConfig{JudgmentsCSV: "s3://datasets/judgments.csv"}
	l := NewLoader(cfg, opener, logging.NewNopLogger())

	records, err := l.LoadJudgments(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "SC-001", records[0].ID)
}

func TestObjectURIWithoutStoreFails(t *testing.T) {
	cfg := config.IngestionConfig{JudgmentsCSV: "s3://datasets/judgments.csv"}
	l := NewLoader(cfg, nil, logging.NewNopLogger())

	_, err := l.LoadJudgments(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSourceUnreadable))
}
