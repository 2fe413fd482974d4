package recommend

import (
	"context"

	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/match"
)

// Tier names a stage of the cascade.
type Tier string

const (
	TierTargeted  Tier = "targeted"
	TierGeneric   Tier = "generic"
	TierHardcoded Tier = "hardcoded"
)

// Tiers lists the cascade stages in the order they run.
var Tiers = []Tier{TierTargeted, TierGeneric, TierHardcoded}

type cascadeState struct {
	req    core.RecommendationRequest
	intent core.UserIntent

	// Targeted retrieval result, fetched alongside intent extraction.
	candidates []core.Candidate
	searchErr  error
}

type tierFunc func(ctx context.Context, st *cascadeState) ([]core.RecommendationItem, error)

func (e *Engine) tier(t Tier) tierFunc {
	switch t {
	case TierTargeted:
		return e.targetedTier
	case TierGeneric:
		return e.genericTier
	default:
		return e.hardcodedTier
	}
}

// runCascade returns the items of the first tier that accepts anything.
func (e *Engine) runCascade(ctx context.Context, st *cascadeState) ([]core.RecommendationItem, Tier) {
	for _, t := range Tiers {
		items, err := e.tier(t)(ctx, st)
		if err != nil {
			e.logger.Warn("tier failed", "tier", t, "err", err)
			e.monitor.TierFailed(t, err)
			continue
		}
		if len(items) == 0 {
			e.logger.Debug("tier produced no recommendations", "tier", t)
			e.monitor.TierEmpty(t)
			continue
		}
		e.monitor.TierSelected(t, len(items))
		return items, t
	}
	e.logger.Error("no tier produced recommendations, forcing hardcoded tier")
	items, _ := e.hardcodedTier(ctx, st)
	return items, TierHardcoded
}

func (e *Engine) skipper(t Tier) match.SkipFunc {
	return func(c core.Candidate, err error) {
		e.logger.Warn("skipping malformed candidate", "tier", t, "candidate_id", c.ID, "err", err)
		e.monitor.CandidateSkipped(t, c.ID, err)
	}
}

func (e *Engine) targetedTier(_ context.Context, st *cascadeState) ([]core.RecommendationItem, error) {
	if st.searchErr != nil {
		return nil, st.searchErr
	}
	return e.targeted.Process(st.candidates, st.intent, st.req.MaxResults, st.req.MinConfidence, e.skipper(TierTargeted)), nil
}

func (e *Engine) genericTier(ctx context.Context, st *cascadeState) ([]core.RecommendationItem, error) {
	if GenericConfidence < st.req.MinConfidence {
		return nil, nil
	}

	candidates, err := e.search(ctx, e.genericQuery, candidateK(st.req.MaxResults))
	if err != nil {
		return nil, err
	}

	skip := e.skipper(TierGeneric)
	defaults := genericDefaults()
	items := make([]core.RecommendationItem, 0, min(len(candidates), st.req.MaxResults))
	for _, cand := range candidates {
		if len(items) >= st.req.MaxResults {
			break
		}
		course, err := core.CourseFromCandidate(cand, defaults)
		if err != nil {
			skip(cand, err)
			continue
		}
		items = append(items, core.RecommendationItem{
			Course:          course,
			ConfidenceScore: GenericConfidence,
			Reasoning:       GenericReasoning,
			MatchType:       core.MatchFallback,
			Metadata: map[string]any{
				match.MetaOriginalScore: cand.Score,
				match.MetaSearchRank:    len(items) + 1,
				match.MetaTier:          string(TierGeneric),
			},
		})
	}
	return items, nil
}

func (e *Engine) hardcodedTier(_ context.Context, st *cascadeState) ([]core.RecommendationItem, error) {
	courses := HardcodedCourses()
	n := min(len(courses), st.req.MaxResults)
	items := make([]core.RecommendationItem, 0, n)
	for _, course := range courses[:n] {
		items = append(items, core.RecommendationItem{
			Course:          course,
			ConfidenceScore: HardcodedConfidence,
			Reasoning:       HardcodedReasoning,
			MatchType:       core.MatchFallback,
			Metadata: map[string]any{
				match.MetaSearchRank: len(items) + 1,
				match.MetaTier:       string(TierHardcoded),
			},
		})
	}
	return items, nil
}
