package pipeline

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"coarank/domain/coa"
	"coarank/domain/core"
	"coarank/domain/score"
	"coarank/internal/chain"
	"coarank/internal/composite"
	"coarank/internal/factors"
	"coarank/internal/logging"
	"coarank/internal/match"
	"coarank/internal/mettc"
	"coarank/ports"
)

// Default option values
const (
	DefaultTopK         = 3
	DefaultPassTwoWidth = 5
	DefaultWorkerCap    = 5
)

// State tracks pipeline progress through its fixed transitions
type State string

const (
	StateSeeded        State = "seeded"
	StatePass1Scored   State = "pass1_scored"
	StatePass2Selected State = "pass2_selected"
	StatePass2Scored   State = "pass2_scored"
	StateRanked        State = "ranked"
	StateDiversified   State = "diversified"
)

// Options configures one pipeline run
type Options struct {
	TopK         int
	PassTwoWidth int
	Workers      int
	UseMETTCGate bool
}

// DefaultOptions returns the documented defaults
func DefaultOptions() Options {
	return Options{
		TopK:         DefaultTopK,
		PassTwoWidth: DefaultPassTwoWidth,
		Workers:      DefaultWorkerCap,
		UseMETTCGate: true,
	}
}

func (o Options) normalized() Options {
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	if o.PassTwoWidth <= 0 {
		o.PassTwoWidth = DefaultPassTwoWidth
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkerCap
	}
	if o.Workers > o.PassTwoWidth {
		o.Workers = o.PassTwoWidth
	}
	return o
}

// Result is the outcome of one pipeline run
type Result struct {
	RunID       core.RunID              `json:"run_id"`
	State       State                   `json:"state"`
	Ranked      []score.RankedCandidate `json:"ranked"`
	Excluded    []score.RankedCandidate `json:"excluded,omitempty"`
	Warnings    []string                `json:"warnings,omitempty"`
	Degraded    bool                    `json:"degraded,omitempty"`
	CompletedAt core.Timestamp          `json:"completed_at"`
}

// scored pairs a candidate with its current breakdown during a run
type scored struct {
	candidate coa.Candidate
	breakdown score.ScoreBreakdown
	mettc     *score.METTCScore
	excluded  bool
}

// Pipeline orchestrates the two-pass funnel: a cheap composite pass over the
// whole pool, then concurrent chain resolution and METT-C gating over the
// top slice.
type Pipeline struct {
	composite *composite.Scorer
	gate      *mettc.Gate
	cache     *chain.Cache
	matcher   *match.Matcher
	relevance ports.RelevanceMapperPort
	snippets  ports.SnippetPort
	logger    *logging.Logger
}

// New creates a pipeline. cache and gate may be nil; the dependent factors
// then degrade to defaults.
func New(cache *chain.Cache, gate *mettc.Gate, matcher *match.Matcher,
	relevance ports.RelevanceMapperPort, snippets ports.SnippetPort, logger *logging.Logger) *Pipeline {
	if matcher == nil {
		matcher = match.NewMatcher()
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Pipeline{
		composite: composite.NewScorer(),
		gate:      gate,
		cache:     cache,
		matcher:   matcher,
		relevance: relevance,
		snippets:  snippets,
		logger:    logger,
	}
}

// Run scores, gates, ranks, and diversifies the candidate pool. Running
// twice on identical inputs produces an identical order. Never returns an
// error for empty or fully-excluded pools; the worst case is an empty
// ranked list.
func (p *Pipeline) Run(ctx context.Context, situation coa.Situation, candidates []coa.Candidate, opts Options) Result {
	opts = opts.normalized()
	warnings := NewWarnings()
	result := Result{RunID: core.RunID(core.NewID()), State: StateSeeded}

	if len(candidates) == 0 {
		result.State = StateDiversified
		result.CompletedAt = core.Now()
		return result
	}

	// Chain results never survive across runs
	if p.cache != nil {
		p.cache.Clear()
	}

	weightCtx := score.WeightContext{
		ThreatLevel: situation.NormalizedThreatLevel(),
		MissionType: situation.MissionType,
	}

	// Pass 1: cheap composite over every candidate; the chain slot holds
	// the static appropriateness estimate (Context.Chain left nil)
	pool := make([]scored, len(candidates))
	for i, cand := range candidates {
		fctx := p.buildContext(situation, cand, nil)
		weights := score.ResolveWeights(cand.Type, weightCtx)
		pool[i] = scored{candidate: cand, breakdown: p.composite.Score(fctx, weights)}
	}
	result.State = StatePass1Scored

	// Select the Pass-2 slice: top PassTwoWidth by total, id tiebreak
	sortScored(pool)
	width := opts.PassTwoWidth
	if width > len(pool) {
		width = len(pool)
	}
	selected := pool[:width]
	result.State = StatePass2Selected

	// Pass 2: concurrent per-candidate refinement into pre-sized,
	// index-addressed slots so completion order never affects output
	refined := make([]*scored, width)
	g := &errgroup.Group{}
	g.SetLimit(opts.Workers)
	for i := range selected {
		i := i
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil // cancelled: the Pass-1 score stands
			}
			r := p.refine(ctx, situation, selected[i], weightCtx, opts, warnings)
			refined[i] = &r
			return nil
		})
	}
	_ = g.Wait()

	completed := 0
	for i := range refined {
		if refined[i] != nil {
			selected[i] = *refined[i]
			completed++
		}
	}
	if completed < width {
		result.Degraded = true
		warnings.Record("cancelled", "run cancelled with %d/%d pass-2 units incomplete; pass-1 scores returned", width-completed, width)
	}
	result.State = StatePass2Scored

	// Merge, drop exclusions, rank
	survivors := make([]scored, 0, len(pool))
	for _, s := range pool {
		if s.excluded {
			result.Excluded = append(result.Excluded, score.RankedCandidate{
				Candidate: s.candidate,
				Breakdown: s.breakdown,
				METTC:     s.mettc,
			})
			continue
		}
		survivors = append(survivors, s)
	}
	sortScored(survivors)
	result.State = StateRanked

	result.Ranked = diversify(survivors, opts.TopK)
	result.State = StateDiversified
	result.Warnings = warnings.Messages()
	result.CompletedAt = core.Now()

	p.logger.Info("ranked %d/%d candidates (run %s, %d excluded, %d warnings)",
		len(result.Ranked), len(candidates), result.RunID, len(result.Excluded), len(result.Warnings))
	return result
}

// refine runs one Pass-2 work unit: resolve the real chain, rescore, gate
func (p *Pipeline) refine(ctx context.Context, situation coa.Situation, s scored,
	weightCtx score.WeightContext, opts Options, warnings *Warnings) scored {

	chainResult := score.EmptyChain()
	if p.cache != nil {
		resolved, err := p.cache.Lookup(ctx, situation.ID, s.candidate.ID)
		if err != nil {
			warnings.Record("graph", "knowledge graph unavailable; chain factor degraded to default: %v", err)
		} else {
			chainResult = resolved
		}
	} else {
		warnings.Record("graph", "no knowledge graph wired; chain factor degraded to default")
	}

	fctx := p.buildContext(situation, s.candidate, &chainResult)
	weights := score.ResolveWeights(s.candidate.Type, weightCtx)
	s.breakdown = p.composite.Score(fctx, weights)

	if opts.UseMETTCGate && p.gate != nil {
		m := p.gate.Evaluate(situation, s.candidate)
		s.mettc = &m
		if m.Excluded() {
			s.excluded = true
			p.logger.Debug("candidate %s excluded: %s", s.candidate.ID, m.ExclusionReason)
		}
	}
	return s
}

func (p *Pipeline) buildContext(situation coa.Situation, cand coa.Candidate, chainResult *score.ChainResult) *factors.Context {
	fctx := &factors.Context{
		Situation: situation,
		Candidate: cand,
		Matcher:   p.matcher,
		Chain:     chainResult,
		Relevance: p.relevance,
	}
	if p.snippets != nil {
		fctx.Snippets = p.snippets.Snippets(cand.ID.String())
	}
	return fctx
}

// sortScored orders by total descending with candidate id as the explicit,
// deterministic secondary key
func sortScored(pool []scored) {
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].breakdown.Total != pool[j].breakdown.Total {
			return pool[i].breakdown.Total > pool[j].breakdown.Total
		}
		return pool[i].candidate.ID < pool[j].candidate.ID
	})
}
