package prioritize

import (
	"sort"
	"time"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// DefaultEscalationThreshold is the residual score at which a risk is
// escalated to management regardless of other signals
const DefaultEscalationThreshold = 19

// Prioritizer ranks a risk set, buckets it by severity tier, and selects
// escalation candidates
type Prioritizer struct {
	escalationThreshold int
}

// Option configures a Prioritizer
type Option func(*Prioritizer)

// WithEscalationThreshold overrides the residual score threshold used by
// EscalationCandidates
func WithEscalationThreshold(threshold int) Option {
	return func(p *Prioritizer) {
		p.escalationThreshold = threshold
	}
}

// New creates a Prioritizer
func New(opts ...Option) *Prioritizer {
	p := &Prioritizer{
		escalationThreshold: DefaultEscalationThreshold,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// rankKey holds the precomputed composite ordering key for one risk
type rankKey struct {
	residual         int
	appetiteExceeded bool
	processCount     int
	mitigationGap    float64
}

func keyOf(r *model.Risk) rankKey {
	return rankKey{
		residual:         r.ResidualScore(),
		appetiteExceeded: r.AppetiteExceeded,
		processCount:     len(r.AffectedProcesses),
		mitigationGap:    100 - r.MitigationEffectiveness(),
	}
}

// less orders two keys: higher residual first, then appetite exceeded,
// then more affected processes, then a larger mitigation gap.
func (a rankKey) less(b rankKey) bool {
	if a.residual != b.residual {
		return a.residual > b.residual
	}
	if a.appetiteExceeded != b.appetiteExceeded {
		return a.appetiteExceeded
	}
	if a.processCount != b.processCount {
		return a.processCount > b.processCount
	}
	return a.mitigationGap > b.mitigationGap
}

// Rank returns the risks ordered by the composite priority key. The sort
// is stable: equal-key risks preserve their input order. The input slice
// is not modified.
func (p *Prioritizer) Rank(risks []*model.Risk) []*model.Risk {
	ranked := make([]*model.Risk, len(risks))
	copy(ranked, risks)

	keys := make([]rankKey, len(ranked))
	for i, r := range ranked {
		keys[i] = keyOf(r)
	}

	indices := make([]int, len(ranked))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return keys[indices[i]].less(keys[indices[j]])
	})

	result := make([]*model.Risk, len(ranked))
	for i, idx := range indices {
		result[i] = ranked[idx]
	}
	return result
}

// Categorize partitions risks into the five fixed severity buckets. Every
// bucket is present in the result even when empty. A tier outside the
// four scored tiers falls into the Acceptable bucket.
func (p *Prioritizer) Categorize(risks []*model.Risk) map[types.SeverityTier][]*model.Risk {
	buckets := make(map[types.SeverityTier][]*model.Risk, len(types.AllSeverityTiers()))
	for _, tier := range types.AllSeverityTiers() {
		buckets[tier] = []*model.Risk{}
	}

	for _, r := range risks {
		tier := r.SeverityTier()
		if !tier.IsValid() {
			tier = types.SeverityAcceptable
		}
		buckets[tier] = append(buckets[tier], r)
	}
	return buckets
}

// EscalationCandidates selects risks requiring management escalation: a
// residual score at or above the escalation threshold, an exceeded risk
// appetite, a Critical severity tier, or any overdue mitigation action.
// The tier condition is evaluated independently of the score because an
// external override of the stored tier is possible.
func (p *Prioritizer) EscalationCandidates(risks []*model.Risk, now time.Time) []*model.Risk {
	var candidates []*model.Risk
	for _, r := range risks {
		if r.ResidualScore() >= p.escalationThreshold ||
			r.AppetiteExceeded ||
			r.SeverityTier() == types.SeverityCritical ||
			r.HasOverdueAction(now) {
			candidates = append(candidates, r)
		}
	}
	return candidates
}
