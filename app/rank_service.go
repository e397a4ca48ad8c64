package app

import (
	"context"

	"coarank/domain/coa"
	"coarank/domain/score"
	"coarank/internal/chain"
	"coarank/internal/config"
	"coarank/internal/errors"
	"coarank/internal/logging"
	"coarank/internal/match"
	"coarank/internal/mettc"
	"coarank/internal/pipeline"
	"coarank/ports"
)

// Options configures a single ranking request. Unset fields take the
// configured defaults; in particular a nil UseMETTCGate defers to the
// service default (on out of the box), so a partial request never disables
// the gate by omission.
type Options struct {
	TopK         int   `json:"top_k"`
	PassTwoWidth int   `json:"pass_two_width"`
	UseMETTCGate *bool `json:"use_mettc_gate,omitempty"`
}

// DefaultOptions returns the documented request defaults
func DefaultOptions() Options {
	return Options{TopK: pipeline.DefaultTopK, PassTwoWidth: pipeline.DefaultPassTwoWidth}
}

// withDefaults merges unset fields with the configured defaults
func (o Options) withDefaults(cfg config.RankingConfig) Options {
	if o.TopK <= 0 {
		o.TopK = cfg.TopK
	}
	if o.TopK <= 0 {
		o.TopK = pipeline.DefaultTopK
	}
	if o.PassTwoWidth <= 0 {
		o.PassTwoWidth = cfg.PassTwoWidth
	}
	if o.PassTwoWidth <= 0 {
		o.PassTwoWidth = pipeline.DefaultPassTwoWidth
	}
	return o
}

// gateEnabled reports whether the evaluation gate runs for this request;
// an unset field defers to the configured default, on out of the box
func (o Options) gateEnabled(fallback bool) bool {
	if o.UseMETTCGate != nil {
		return *o.UseMETTCGate
	}
	return fallback
}

// Collaborators bundles the optional external inputs a RankService consults.
// Any field may be nil; dependent factors then degrade to defaults.
type Collaborators struct {
	Graph     ports.GraphPort
	Tables    ports.TablePort
	Relevance ports.RelevanceMapperPort
	Snippets  ports.SnippetPort
	Runs      ports.RankingRepository
}

// RankService is the library entry point around the two-pass pipeline
type RankService struct {
	pipeline *pipeline.Pipeline
	tables   ports.TablePort
	runs     ports.RankingRepository
	cfg      config.RankingConfig
	logger   *logging.Logger
}

// NewRankService wires the scoring engine against its collaborators
func NewRankService(collab Collaborators, cfg config.RankingConfig, logger *logging.Logger) *RankService {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	matcher := match.NewMatcher()

	var cache *chain.Cache
	if collab.Graph != nil {
		cache = chain.NewCache(collab.Graph, cfg.ChainMaxDepth)
	}
	gate := mettc.NewGate(collab.Tables, matcher)

	return &RankService{
		pipeline: pipeline.New(cache, gate, matcher, collab.Relevance, collab.Snippets, logger),
		tables:   collab.Tables,
		runs:     collab.Runs,
		cfg:      cfg,
		logger:   logger,
	}
}

// Rank scores and ranks a candidate pool against a situation. An empty
// surviving pool yields an empty slice, not an error; errors are reserved
// for structurally invalid input.
func (s *RankService) Rank(ctx context.Context, situation coa.Situation, candidates []coa.Candidate, opts Options) ([]score.RankedCandidate, error) {
	result, err := s.RankDetailed(ctx, situation, candidates, opts)
	if err != nil {
		return nil, err
	}
	return result.Ranked, nil
}

// RankDetailed returns the full run result including warnings, exclusions,
// and the degraded flag
func (s *RankService) RankDetailed(ctx context.Context, situation coa.Situation, candidates []coa.Candidate, opts Options) (pipeline.Result, error) {
	if err := situation.Validate(); err != nil {
		return pipeline.Result{}, errors.Wrap(err, "invalid situation")
	}
	opts = opts.withDefaults(s.cfg)

	// A request without an explicit pool falls back to the tabular
	// collaborator's resource table for this situation
	if len(situation.AvailableResources) == 0 && s.tables != nil {
		if pool := s.tables.Resources(situation.ID.String()); len(pool) > 0 {
			situation.AvailableResources = pool
		} else {
			s.logger.Warn("no available-resource pool for situation %s in request or tables", situation.ID)
		}
	}

	// Structurally invalid candidates are dropped, not fatal
	pool := make([]coa.Candidate, 0, len(candidates))
	for _, cand := range candidates {
		if err := cand.Validate(); err != nil {
			s.logger.Warn("skipping candidate %q: %v", cand.ID, err)
			continue
		}
		pool = append(pool, cand)
	}

	result := s.pipeline.Run(ctx, situation, pool, pipeline.Options{
		TopK:         opts.TopK,
		PassTwoWidth: opts.PassTwoWidth,
		Workers:      s.cfg.PassTwoWork,
		UseMETTCGate: opts.gateEnabled(s.cfg.UseMETTCGate),
	})

	if s.runs != nil && len(result.Ranked) > 0 {
		if err := s.runs.SaveRun(ctx, result.RunID, situation.ID, result.Ranked); err != nil {
			s.logger.Warn("failed to persist run %s: %v", result.RunID, err)
		}
	}
	return result, nil
}
