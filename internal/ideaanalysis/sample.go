package ideaanalysis

// SampleReport is the demo report shown before any idea has been submitted.
// The rule table never selects it.
func SampleReport() AnalysisReport {
	return AnalysisReport{
		Title:       "Mobile App for Local Service Booking",
		Description: "An app that connects local service providers with customers, enabling instant booking and payment for services like home cleaning, repairs, etc.",
		Industry:    "Technology",
		Template:    TemplateSample,
		Score:       OverallScore(78, 65, 85),
		Analysis: Analysis{
			MarketPotential: MarketPotential{
				Score:   78,
				Details: "The local services market is growing at 15% annually with high smartphone penetration. The total addressable market is estimated at $400B globally.",
				Opportunities: []string{
					"Growing demand for on-demand services",
					"Increasing smartphone adoption in target markets",
					"Shift towards digital payment solutions",
				},
				Challenges: []string{
					"Fragmented market with regional variations",
					"Seasonal demand fluctuations",
				},
			},
			CompetitionAnalysis: CompetitionAnalysis{
				Score:   65,
				Details: "The market has several established players, but there's room for differentiation through specialized services and better user experience.",
				Competitors: []Competitor{
					{Name: "ServiceFinder", Strengths: "Wide market coverage", Weaknesses: "Poor user experience"},
					{Name: "QuickFix", Strengths: "Strong brand awareness", Weaknesses: "Limited service categories"},
					{Name: "LocalPro", Strengths: "Large service provider network", Weaknesses: "Higher commission rates"},
				},
				Differentiators: []string{
					"Integrated payment and tipping system",
					"Verified provider background checks",
					"Real-time availability scheduling",
				},
			},
			ExecutionComplexity: ExecutionComplexity{
				Score:   85,
				Details: "Building the platform requires significant technical resources and operational capabilities for managing the two-sided marketplace.",
				TechnicalChallenges: []string{
					"Building a reliable matching algorithm",
					"Real-time availability tracking",
					"Secure payment processing",
				},
				OperationalChallenges: []string{
					"Service provider verification and quality control",
					"Customer support for two-sided marketplace",
					"Balancing supply and demand across service categories",
				},
				Timeline: "Estimated 8-12 months to build initial version and launch in first market",
			},
		},
		Recommendations: []string{
			"Focus on a specific niche service category initially rather than all local services",
			"Build strong provider verification process to differentiate from competitors",
			"Consider a phased geographical rollout strategy starting with one city",
			"Develop a robust rating and review system to build trust",
		},
		MarketData: []MarketDataPoint{
			{Year: 2022, Value: 350},
			{Year: 2023, Value: 400},
			{Year: 2024, Value: 470},
			{Year: 2025, Value: 550},
			{Year: 2026, Value: 650},
			{Year: 2027, Value: 750},
		},
		CompetitorMarketShare: &MarketShare{
			Name: "Market Share",
			Shares: map[string]float64{
				"ServiceFinder":   35,
				"QuickFix":        25,
				"LocalPro":        15,
				yourAppShareLabel: 10,
				"Others":          15,
			},
		},
	}
}
