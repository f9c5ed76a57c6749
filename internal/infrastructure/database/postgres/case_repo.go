package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NyayVandan/pkg/errors"
)

// CaseRepository is the PostgreSQL implementation of caselaw.Repository.
// The position column fixes insertion order so List is identical across
// calls and restarts; the in-process indexes depend on that ordering.
type CaseRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewCaseRepository constructs a repository over an established pool.
func NewCaseRepository(pool *pgxpool.Pool, logger logging.Logger) *CaseRepository {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &CaseRepository{pool: pool, logger: logger.Named("case_repo")}
}

const saveCaseSQL = `
INSERT INTO cases (
	case_id, case_title, case_text, court, year,
	penal_sections, procedure_sections, constitutional_articles,
	outcome, source
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (case_id) DO UPDATE SET
	case_title = EXCLUDED.case_title,
	case_text = EXCLUDED.case_text,
	court = EXCLUDED.court,
	year = EXCLUDED.year,
	penal_sections = EXCLUDED.penal_sections,
	procedure_sections = EXCLUDED.procedure_sections,
	constitutional_articles = EXCLUDED.constitutional_articles,
	outcome = EXCLUDED.outcome,
	source = EXCLUDED.source`

func (r *CaseRepository) Save(ctx context.Context, rec *caselaw.CaseRecord) error {
	if rec == nil || rec.ID == "" {
		return errors.Validation("case record requires an id")
	}
	_, err := r.pool.Exec(ctx, saveCaseSQL,
		rec.ID, rec.Title, rec.Text, rec.Court, rec.Year,
		rec.PenalSections, rec.ProcedureSections, rec.ConstitutionalArticles,
		rec.Outcome, rec.Source)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to save case")
	}
	return nil
}

const selectCaseColumns = `
	case_id, case_title, case_text, court, year,
	penal_sections, procedure_sections, constitutional_articles,
	outcome, source`

func (r *CaseRepository) ByID(ctx context.Context, id string) (*caselaw.CaseRecord, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT`+selectCaseColumns+` FROM cases WHERE case_id = $1`, id)
	rec, err := scanCase(row)
	if err == pgx.ErrNoRows {
		return nil, errors.New(errors.ErrCodeCaseNotFound, "case not found").WithDetail(id)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load case")
	}
	return rec, nil
}

func (r *CaseRepository) List(ctx context.Context) ([]caselaw.CaseRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+selectCaseColumns+` FROM cases ORDER BY position ASC`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list cases")
	}
	defer rows.Close()

	var out []caselaw.CaseRecord
	for rows.Next() {
		rec, err := scanCase(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan case")
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate cases")
	}
	return out, nil
}

func (r *CaseRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM cases`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count cases")
	}
	return n, nil
}

// rowScanner matches both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (*caselaw.CaseRecord, error) {
	var rec caselaw.CaseRecord
	err := row.Scan(
		&rec.ID, &rec.Title, &rec.Text, &rec.Court, &rec.Year,
		&rec.PenalSections, &rec.ProcedureSections, &rec.ConstitutionalArticles,
		&rec.Outcome, &rec.Source)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
