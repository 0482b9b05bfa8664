package ideaanalysis

import (
	"math/rand/v2"
	"sync"
)

// Rand is the source for the fallback branch scores. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Synthesizer turns an idea submission into a canned analysis report.
// It is safe for concurrent use.
type Synthesizer struct {
	mu  sync.Mutex
	rng Rand
}

type Option func(*Synthesizer)

// WithRand sets the source used for fallback scores. Pass a seeded
// generator for reproducible output.
func WithRand(r Rand) Option {
	return func(s *Synthesizer) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithSeed is WithRand over a PCG generator seeded with seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{rng: globalRand{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSynthesizer = NewSynthesizer()

// Synthesize runs sub through the default synthesizer.
func Synthesize(sub IdeaSubmission) AnalysisReport {
	return defaultSynthesizer.Synthesize(sub)
}

// Synthesize never fails: missing fields are defaulted and unmatched ideas
// fall through to the generic industry template with random scores.
func (s *Synthesizer) Synthesize(sub IdeaSubmission) AnalysisReport {
	sub = withDefaults(sub)
	switch id := classify(rules, newIdeaText(sub)); id {
	case TemplateAtlassianAlternative:
		return atlassianAlternativeReport(sub)
	case TemplateProjectManagement:
		return projectManagementReport(sub)
	case TemplateAITechnology:
		return genericIndustryReport(sub, id, aiTechnologyScores, technologyNarrative)
	case TemplateSaaSTechnology:
		return genericIndustryReport(sub, id, saasTechnologyScores, technologyNarrative)
	default:
		return genericIndustryReport(sub, TemplateGenericIndustry, s.randomScores(), industryNarrative)
	}
}

func (s *Synthesizer) randomScores() scoreSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return scoreSet{
		market:      s.draw(marketScoreRange),
		competition: s.draw(competitionScoreRange),
		execution:   s.draw(executionScoreRange),
	}
}

func (s *Synthesizer) draw(r scoreRange) int {
	span := r.high - r.low
	v := s.rng.IntN(span)
	if v < 0 || v >= span {
		v = ((v % span) + span) % span
	}
	return r.low + v
}
