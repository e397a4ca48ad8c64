package ports

import (
	"context"

	"coarank/domain/core"
	"coarank/domain/score"
)

// RankingRepository persists completed ranking runs for audit
type RankingRepository interface {
	SaveRun(ctx context.Context, runID core.RunID, situationID core.SituationID, ranked []score.RankedCandidate) error
	LoadRun(ctx context.Context, runID core.RunID) ([]score.RankedCandidate, error)
}
