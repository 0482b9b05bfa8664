package businessplan

import (
	"strings"
	"testing"
	"time"

	"github.com/1234bibhash/venture-idea-compass/internal/ideaanalysis"
)

func TestGenerateIncludesEverySection(t *testing.T) {
	r := ideaanalysis.SampleReport()
	at := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	plan := Generate(r, at)

	if !strings.HasPrefix(plan, "# BUSINESS PLAN: "+strings.ToUpper(r.Title)+"\n") {
		t.Fatalf("unexpected heading: %q", strings.SplitN(plan, "\n", 2)[0])
	}
	for _, want := range []string{
		"## Executive Summary",
		"## Market Analysis",
		"### Market Opportunities:",
		"### Market Challenges:",
		"## Competition Analysis",
		"### Key Competitors:",
		"### Your Differentiators:",
		"## Implementation Strategy",
		"### Technical Challenges:",
		"### Operational Challenges:",
		"### Timeline:",
		"## Recommendations",
		"## Financial Projections",
		"## Next Steps",
		"Generated by VentureCompass on March 4, 2026",
	} {
		if !strings.Contains(plan, want) {
			t.Fatalf("plan missing %q", want)
		}
	}
}

func TestGenerateCarriesScoresAndCompetitors(t *testing.T) {
	r := ideaanalysis.Synthesize(ideaanalysis.IdeaSubmission{
		Title:       "FlowBoard",
		Description: "A project management tool for small agencies",
		Industry:    "Technology",
	})
	plan := Generate(r, time.Now())

	checks := []string{
		"Overall Potential Score: 72/100",
		"Market Score: 78/100",
		"Competition Score: 62/100",
		"Execution Score: 76/100",
	}
	for _, c := range r.Analysis.CompetitionAnalysis.Competitors {
		checks = append(checks, "- "+c.Name+"\n  * Strengths: "+c.Strengths)
	}
	for _, rec := range r.Recommendations {
		checks = append(checks, "- "+rec)
	}
	for _, want := range checks {
		if !strings.Contains(plan, want) {
			t.Fatalf("plan missing %q", want)
		}
	}
}

func TestFilename(t *testing.T) {
	cases := []struct {
		title, ext, want string
	}{
		{"FlowBoard", "txt", "flowboard-business-plan.txt"},
		{"  My Great   Idea! ", "pdf", "my-great-idea-business-plan.pdf"},
		{"Café & Co", ".html", "caf-co-business-plan.html"},
		{"", "", "idea-business-plan.txt"},
		{"!!!", "txt", "idea-business-plan.txt"},
	}
	for _, tc := range cases {
		if got := Filename(tc.title, tc.ext); got != tc.want {
			t.Fatalf("Filename(%q, %q) = %q, want %q", tc.title, tc.ext, got, tc.want)
		}
	}
}
