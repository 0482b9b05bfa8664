package ideaanalysis

const (
	DefaultTitle       = "Sample Idea"
	DefaultDescription = "No description provided"
	DefaultIndustry    = "Technology"
)

// Score bounds shared by every sub-score and the overall score.
const (
	MinScore = 0
	MaxScore = 100
)

type TemplateID string

const (
	TemplateAtlassianAlternative TemplateID = "atlassian-alternative"
	TemplateProjectManagement    TemplateID = "project-management"
	TemplateAITechnology         TemplateID = "ai-technology"
	TemplateSaaSTechnology       TemplateID = "saas-technology"
	TemplateGenericIndustry      TemplateID = "generic-industry"
	TemplateSample               TemplateID = "sample"
)

type IdeaSubmission struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Industry     string `json:"industry"`
	TargetMarket string `json:"targetMarket,omitempty"`
	Revenue      string `json:"revenue,omitempty"`
	UniqueValue  string `json:"uniqueValue,omitempty"`
}

type Competitor struct {
	Name       string `json:"name"`
	Strengths  string `json:"strengths"`
	Weaknesses string `json:"weaknesses"`
}

type MarketPotential struct {
	Score         int      `json:"score"`
	Details       string   `json:"details"`
	Opportunities []string `json:"opportunities"`
	Challenges    []string `json:"challenges"`
}

type CompetitionAnalysis struct {
	Score           int          `json:"score"`
	Details         string       `json:"details"`
	Competitors     []Competitor `json:"competitors"`
	Differentiators []string     `json:"differentiators"`
}

type ExecutionComplexity struct {
	Score                 int      `json:"score"`
	Details               string   `json:"details"`
	TechnicalChallenges   []string `json:"technicalChallenges"`
	OperationalChallenges []string `json:"operationalChallenges"`
	Timeline              string   `json:"timeline"`
}

type Analysis struct {
	MarketPotential     MarketPotential     `json:"marketPotential"`
	CompetitionAnalysis CompetitionAnalysis `json:"competitionAnalysis"`
	ExecutionComplexity ExecutionComplexity `json:"executionComplexity"`
}

// MarketDataPoint is one point of the market size series, in billions USD.
type MarketDataPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

type MarketShare struct {
	Name   string             `json:"name"`
	Shares map[string]float64 `json:"shares"`
}

type AnalysisReport struct {
	Title                 string            `json:"title"`
	Description           string            `json:"description"`
	Industry              string            `json:"industry"`
	Template              TemplateID        `json:"template"`
	Score                 int               `json:"score"`
	Analysis              Analysis          `json:"analysis"`
	Recommendations       []string          `json:"recommendations"`
	MarketData            []MarketDataPoint `json:"marketData,omitempty"`
	CompetitorMarketShare *MarketShare      `json:"competitorMarketShare,omitempty"`
}

// SubScores returns market, competition and execution scores in that order.
func (r AnalysisReport) SubScores() (int, int, int) {
	return r.Analysis.MarketPotential.Score,
		r.Analysis.CompetitionAnalysis.Score,
		r.Analysis.ExecutionComplexity.Score
}

// OverallScore is the floored mean of the three sub-scores.
func OverallScore(market, competition, execution int) int {
	return clampScore((market + competition + execution) / 3)
}

func clampScore(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
