package match

import "github.com/poiesic/coursematch/core"

// Item metadata keys.
const (
	MetaOriginalScore = "original_score"
	MetaSearchRank    = "search_rank"
	MetaTier          = "tier"
)

// SkipFunc is told about candidates whose metadata could not be read.
type SkipFunc func(candidate core.Candidate, err error)

// Processor turns candidates into recommendation items.
type Processor struct {
	defaults core.CourseDefaults
	tier     string
}

// NewProcessor creates a processor tagging items with tier. Missing
// metadata fields are filled from defaults.
func NewProcessor(tier string, defaults core.CourseDefaults) *Processor {
	return &Processor{defaults: defaults, tier: tier}
}

// Process walks candidates in retriever order, scoring each against intent.
// Items under minConfidence are dropped and processing stops once
// maxResults items are accepted. Malformed candidates are passed to onSkip,
// which may be nil.
func (p *Processor) Process(
	candidates []core.Candidate,
	intent core.UserIntent,
	maxResults int,
	minConfidence float64,
	onSkip SkipFunc,
) []core.RecommendationItem {
	items := make([]core.RecommendationItem, 0, min(len(candidates), max(maxResults, 0)))
	for _, cand := range candidates {
		if len(items) >= maxResults {
			break
		}

		course, err := core.CourseFromCandidate(cand, p.defaults)
		if err != nil {
			if onSkip != nil {
				onSkip(cand, err)
			}
			continue
		}

		r := Score(course, intent, cand.Score)
		if r.Confidence < minConfidence {
			continue
		}

		items = append(items, core.RecommendationItem{
			Course:          course,
			ConfidenceScore: r.Confidence,
			Reasoning:       Reasoning(course, intent, r),
			MatchType:       r.MatchType,
			Metadata: map[string]any{
				MetaOriginalScore: cand.Score,
				MetaSearchRank:    len(items) + 1,
				MetaTier:          p.tier,
			},
		})
	}
	return items
}
