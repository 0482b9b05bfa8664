package ideaanalysis

import "fmt"

type scoreSet struct {
	market      int
	competition int
	execution   int
}

// scoreRange is half-open: [low, high).
type scoreRange struct {
	low  int
	high int
}

var (
	marketScoreRange      = scoreRange{low: 65, high: 85}
	competitionScoreRange = scoreRange{low: 50, high: 80}
	executionScoreRange   = scoreRange{low: 65, high: 90}
)

var (
	atlassianAlternativeScores = scoreSet{market: 82, competition: 68, execution: 78}
	projectManagementScores    = scoreSet{market: 78, competition: 62, execution: 76}
	aiTechnologyScores         = scoreSet{market: 85, competition: 60, execution: 70}
	saasTechnologyScores       = scoreSet{market: 78, competition: 65, execution: 75}
)

const yourAppShareLabel = "Your App (Projected)"

func assemble(sub IdeaSubmission, id TemplateID, s scoreSet, a Analysis, recs []string, series []MarketDataPoint, share *MarketShare) AnalysisReport {
	a.MarketPotential.Score = clampScore(s.market)
	a.CompetitionAnalysis.Score = clampScore(s.competition)
	a.ExecutionComplexity.Score = clampScore(s.execution)
	return AnalysisReport{
		Title:                 sub.Title,
		Description:           sub.Description,
		Industry:              sub.Industry,
		Template:              id,
		Score:                 OverallScore(a.MarketPotential.Score, a.CompetitionAnalysis.Score, a.ExecutionComplexity.Score),
		Analysis:              a,
		Recommendations:       recs,
		MarketData:            series,
		CompetitorMarketShare: share,
	}
}

func atlassianAlternativeReport(sub IdeaSubmission) AnalysisReport {
	a := Analysis{
		MarketPotential: MarketPotential{
			Details: "The project management and team collaboration software market is valued at roughly $7.7B and growing " +
				"above 10% annually. Frustration with the cost and complexity of the Atlassian suite has created a " +
				"large pool of teams actively evaluating alternatives.",
			Opportunities: []string{
				"Teams migrating away from Jira after pricing and hosting changes",
				"Demand for a single tool that unifies issue tracking and documentation",
				"Small and mid-sized teams underserved by enterprise-focused tooling",
				"Data-center end-of-life pushing self-hosted customers to re-evaluate vendors",
			},
			Challenges: []string{
				"Deep switching costs from existing Jira workflows and integrations",
				"Atlassian Marketplace ecosystem with thousands of add-ons",
				"Enterprise procurement favours incumbent vendors",
			},
		},
		CompetitionAnalysis: CompetitionAnalysis{
			Details: "The space is crowded and dominated by Atlassian, but incumbents are widely criticised for complexity " +
				"and slow performance. A focused alternative with painless migration can win teams that outgrew simpler tools.",
			Competitors: []Competitor{
				{Name: "Atlassian (Jira/Confluence)", Strengths: "Market leader with deep enterprise adoption and a huge add-on ecosystem", Weaknesses: "Complex configuration, slow UI, and rising per-seat pricing"},
				{Name: "Monday.com", Strengths: "Highly visual boards and strong brand marketing", Weaknesses: "Limited depth for software engineering workflows"},
				{Name: "Asana", Strengths: "Polished task management for cross-functional teams", Weaknesses: "Weak native documentation and developer tooling"},
				{Name: "ClickUp", Strengths: "All-in-one feature set at aggressive pricing", Weaknesses: "Feature sprawl and reliability complaints"},
				{Name: "Linear", Strengths: "Fast, opinionated issue tracking loved by engineers", Weaknesses: "Narrow focus with no built-in knowledge base"},
			},
			Differentiators: []string{
				"One-click import of Jira projects and Confluence spaces",
				"Issue tracking and documentation in a single data model",
				"Transparent flat pricing without per-seat add-on costs",
				"Sub-second interface performance on large backlogs",
			},
		},
		ExecutionComplexity: ExecutionComplexity{
			Details: "Reaching feature parity on core workflows is achievable, but migration tooling, permissions and " +
				"integrations demand sustained engineering investment.",
			TechnicalChallenges: []string{
				"High-fidelity import of Jira issues, workflows and custom fields",
				"Real-time collaborative editing for documentation",
				"Fine-grained permission model compatible with enterprise expectations",
				"Integration coverage for Git hosting, CI and chat tools",
			},
			OperationalChallenges: []string{
				"Supporting migrations for teams with years of Jira history",
				"Building trust for security reviews and compliance certifications",
				"Competing for attention against heavily funded incumbents",
			},
			Timeline: "Estimated 9-12 months to a migration-ready beta, 18 months to enterprise readiness",
		},
	}
	recs := []string{
		"Lead with a migration tool that imports Jira and Confluence data in minutes",
		"Target engineering teams of 10-200 people frustrated with Jira complexity",
		"Offer a free tier generous enough to pilot alongside an existing Atlassian install",
		"Prioritise the integrations engineers use every day: Git hosting, CI and chat",
		"Publish transparent pricing comparisons against Atlassian Cloud",
	}
	series := []MarketDataPoint{
		{Year: 2022, Value: 6.0},
		{Year: 2023, Value: 6.8},
		{Year: 2024, Value: 7.7},
		{Year: 2025, Value: 8.7},
		{Year: 2026, Value: 9.8},
		{Year: 2027, Value: 11.1},
	}
	share := &MarketShare{
		Name: "Market Share",
		Shares: map[string]float64{
			"Atlassian":       38,
			"Monday.com":      14,
			"Asana":           11,
			"ClickUp":         8,
			"Linear":          4,
			yourAppShareLabel: 3,
			"Others":          22,
		},
	}
	return assemble(sub, TemplateAtlassianAlternative, atlassianAlternativeScores, a, recs, series, share)
}

func projectManagementReport(sub IdeaSubmission) AnalysisReport {
	a := Analysis{
		MarketPotential: MarketPotential{
			Details: "Project management software continues to grow as remote and hybrid work becomes standard. " +
				"Buyers are increasingly looking for tools tailored to specific team types rather than generic boards.",
			Opportunities: []string{
				"Rising adoption of agile practices outside software teams",
				"Remote work driving demand for asynchronous planning tools",
				"Vertical niches without a purpose-built project tool",
			},
			Challenges: []string{
				"Mature market with entrenched incumbents",
				"Low willingness to pay for yet another productivity tool",
			},
		},
		CompetitionAnalysis: CompetitionAnalysis{
			Details: "Competition is intense and well funded. Winning requires a sharp focus on an underserved team type " +
				"and a noticeably simpler experience than general-purpose tools.",
			Competitors: []Competitor{
				{Name: "Jira (Atlassian)", Strengths: "Industry standard for agile software teams", Weaknesses: "Steep learning curve and heavy configuration"},
				{Name: "Asana", Strengths: "Clean interface and strong cross-team adoption", Weaknesses: "Limited agile and sprint tooling"},
				{Name: "Trello", Strengths: "Simple Kanban boards with a generous free tier", Weaknesses: "Struggles with complex multi-team projects"},
				{Name: "Monday.com", Strengths: "Flexible visual workflows and automation", Weaknesses: "Costs escalate quickly as teams grow"},
			},
			Differentiators: []string{
				"Opinionated workflows for a specific team type",
				"Setup in minutes with no configuration required",
				"Built-in reporting that managers do not need to assemble",
			},
		},
		ExecutionComplexity: ExecutionComplexity{
			Details: "A focused product can reach the market quickly, but retention depends on integrations and on " +
				"polish that users compare directly with mature incumbents.",
			TechnicalChallenges: []string{
				"Real-time synchronisation across boards and devices",
				"Integrations with calendars, chat and code hosting",
				"Scalable reporting over large project histories",
			},
			OperationalChallenges: []string{
				"Customer acquisition in a noisy category",
				"Onboarding teams away from existing tools",
				"Supporting a wide range of team workflows",
			},
			Timeline: "Estimated 6-9 months to build an MVP and onboard the first paying teams",
		},
	}
	recs := []string{
		"Choose one underserved team type and design every workflow around it",
		"Provide importers for Trello, Asana and Jira from day one",
		"Use a freemium model to drive bottom-up adoption inside organisations",
		"Invest early in integrations that keep users inside the product",
	}
	series := []MarketDataPoint{
		{Year: 2022, Value: 5.5},
		{Year: 2023, Value: 6.1},
		{Year: 2024, Value: 6.9},
		{Year: 2025, Value: 7.7},
		{Year: 2026, Value: 8.6},
		{Year: 2027, Value: 9.6},
	}
	share := &MarketShare{
		Name: "Market Share",
		Shares: map[string]float64{
			"Jira":            32,
			"Asana":           16,
			"Trello":          14,
			"Monday.com":      12,
			yourAppShareLabel: 4,
			"Others":          22,
		},
	}
	return assemble(sub, TemplateProjectManagement, projectManagementScores, a, recs, series, share)
}

type narrative struct {
	marketDetails      string
	competitionDetails string
	executionDetails   string
}

var industryNarrative = narrative{
	marketDetails:      "The %s market shows steady growth with increasing demand for innovative solutions. Digital transformation continues to open opportunities for well-positioned new entrants.",
	competitionDetails: "The %s sector has established players, but there is room for differentiation through better user experience, pricing and focus on underserved segments.",
	executionDetails:   "Launching in the %s space requires moderate technical resources and a clear go-to-market strategy to reach early customers.",
}

var technologyNarrative = narrative{
	marketDetails:      "Technology adoption in %s is accelerating as buyers look for software that automates routine work. Cloud delivery lowers the barrier for new entrants to reach customers quickly.",
	competitionDetails: "Technology products in %s face both incumbent vendors and well-funded startups. Differentiation will come from product depth and speed of iteration.",
	executionDetails:   "Building a technology product for %s requires strong engineering talent, reliable infrastructure and disciplined product management.",
}

func genericIndustryReport(sub IdeaSubmission, id TemplateID, s scoreSet, n narrative) AnalysisReport {
	a := Analysis{
		MarketPotential: MarketPotential{
			Details: fmt.Sprintf(n.marketDetails, sub.Industry),
			Opportunities: []string{
				"Growing demand for digital solutions",
				"Underserved customer segments",
				"Potential for international expansion",
			},
			Challenges: []string{
				"Market education may be required",
				"Regulatory considerations",
			},
		},
		CompetitionAnalysis: CompetitionAnalysis{
			Details: fmt.Sprintf(n.competitionDetails, sub.Industry),
			Competitors: []Competitor{
				{Name: "Established Player A", Strengths: "Strong brand recognition and large customer base", Weaknesses: "Slow to innovate and adapt to market changes"},
				{Name: "Growing Rival B", Strengths: "Innovative features and modern technology stack", Weaknesses: "Limited market reach and brand awareness"},
				{Name: "Startup C", Strengths: "Agile development and niche focus", Weaknesses: "Limited resources and funding"},
			},
			Differentiators: []string{
				"Superior user experience",
				"Competitive pricing model",
				"Focus on underserved customer segments",
			},
		},
		ExecutionComplexity: ExecutionComplexity{
			Details: fmt.Sprintf(n.executionDetails, sub.Industry),
			TechnicalChallenges: []string{
				"Building a scalable infrastructure",
				"Ensuring data security and privacy",
				"Integrating with existing systems",
			},
			OperationalChallenges: []string{
				"Customer acquisition and retention",
				"Building a skilled team",
				"Managing growth and scaling operations",
			},
			Timeline: "Estimated 6-12 months to build initial version and launch",
		},
	}
	recs := []string{
		"Start with a minimum viable product to validate core assumptions",
		"Focus on a specific customer segment initially",
		"Develop strategic partnerships to accelerate growth",
		"Build a strong online presence and community",
	}
	series := []MarketDataPoint{
		{Year: 2022, Value: 100},
		{Year: 2023, Value: 112},
		{Year: 2024, Value: 125},
		{Year: 2025, Value: 140},
		{Year: 2026, Value: 157},
		{Year: 2027, Value: 176},
	}
	share := &MarketShare{
		Name: "Market Share",
		Shares: map[string]float64{
			"Established Player A": 35,
			"Growing Rival B":      20,
			"Startup C":            10,
			yourAppShareLabel:      5,
			"Others":               30,
		},
	}
	return assemble(sub, id, s, a, recs, series, share)
}
