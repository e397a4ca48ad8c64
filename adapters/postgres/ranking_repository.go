package postgres

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"coarank/domain/core"
	"coarank/domain/score"
	"coarank/internal/errors"
	"coarank/ports"
)

// RankingRepositoryImpl implements ports.RankingRepository for PostgreSQL
type RankingRepositoryImpl struct {
	db *sqlx.DB
}

// NewRankingRepository creates a new PostgreSQL ranking repository
func NewRankingRepository(db *sqlx.DB) ports.RankingRepository {
	return &RankingRepositoryImpl{db: db}
}

// Connect opens a PostgreSQL connection and ensures the schema exists
func Connect(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, errors.Wrap(err, "failed to ensure ranking schema")
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS ranking_runs (
	run_id       TEXT PRIMARY KEY,
	situation_id TEXT NOT NULL,
	ranked       JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_ranking_runs_situation ON ranking_runs (situation_id);
`

// SaveRun persists a completed ranking run
func (r *RankingRepositoryImpl) SaveRun(ctx context.Context, runID core.RunID, situationID core.SituationID, ranked []score.RankedCandidate) error {
	payload, err := json.Marshal(ranked)
	if err != nil {
		return errors.Wrap(err, "failed to marshal ranked candidates")
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO ranking_runs (run_id, situation_id, ranked)
		VALUES ($1, $2, $3)
		ON CONFLICT (run_id) DO UPDATE SET ranked = EXCLUDED.ranked`,
		runID.String(), situationID.String(), payload)
	if err != nil {
		return errors.Wrap(err, "failed to save ranking run")
	}
	return nil
}

// LoadRun returns the ranked candidates of a persisted run
func (r *RankingRepositoryImpl) LoadRun(ctx context.Context, runID core.RunID) ([]score.RankedCandidate, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT ranked FROM ranking_runs WHERE run_id = $1`, runID.String()).Scan(&payload)
	if err != nil {
		return nil, errors.Wrapf(core.ErrRunNotFound, "run %s", runID)
	}
	var ranked []score.RankedCandidate
	if err := json.Unmarshal(payload, &ranked); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal ranking run")
	}
	return ranked, nil
}
