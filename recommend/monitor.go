package recommend

import (
	"time"

	"github.com/poiesic/coursematch/core"
)

// Monitor provides hooks to observe the cascade.
type Monitor interface {
	Start(req core.RecommendationRequest)
	IntentExtracted(intent core.UserIntent)
	CandidateSkipped(tier Tier, candidateID string, err error)
	TierFailed(tier Tier, err error)
	TierEmpty(tier Tier)
	TierSelected(tier Tier, items int)
	Finish(resp *core.RecommendationResponse, elapsed time.Duration)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.RecommendationRequest)                     {}
func (n *noopMonitor) IntentExtracted(_ core.UserIntent)                      {}
func (n *noopMonitor) CandidateSkipped(_ Tier, _ string, _ error)             {}
func (n *noopMonitor) TierFailed(_ Tier, _ error)                             {}
func (n *noopMonitor) TierEmpty(_ Tier)                                       {}
func (n *noopMonitor) TierSelected(_ Tier, _ int)                             {}
func (n *noopMonitor) Finish(_ *core.RecommendationResponse, _ time.Duration) {}
