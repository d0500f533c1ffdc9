package usecase

import (
	"time"

	"github.com/secmon-lab/briareus/pkg/domain/interfaces"
	"github.com/secmon-lab/briareus/pkg/service/prioritize"
)

// UseCases aggregates the application use cases
type UseCases struct {
	repo        interfaces.Repository
	prioritizer *prioritize.Prioritizer
	clock       func() time.Time

	Risk       *RiskUseCase
	Assessment *AssessmentUseCase
}

// Option configures UseCases
type Option func(*UseCases)

// WithEscalationThreshold overrides the residual score threshold for
// escalation
func WithEscalationThreshold(threshold int) Option {
	return func(uc *UseCases) {
		uc.prioritizer = prioritize.New(prioritize.WithEscalationThreshold(threshold))
	}
}

// WithClock overrides the time source, mainly for tests
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

// New creates the use case set backed by the given repository
func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:        repo,
		prioritizer: prioritize.New(),
		clock:       func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Risk = &RiskUseCase{repo: repo, clock: uc.clock}
	uc.Assessment = &AssessmentUseCase{repo: repo, prioritizer: uc.prioritizer, clock: uc.clock}

	return uc
}
