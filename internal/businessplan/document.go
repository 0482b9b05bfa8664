// Package businessplan turns an analysis report into the downloadable
// business plan: plain text/markdown, HTML, and PDF.
package businessplan

import (
	"fmt"
	"strings"
	"time"

	"github.com/1234bibhash/venture-idea-compass/internal/ideaanalysis"
)

const dateLayout = "January 2, 2006"

// Generate renders the business plan for r. The plan is markdown so the same
// text can be downloaded as-is or rendered to HTML/PDF.
func Generate(r ideaanalysis.AnalysisReport, generatedAt time.Time) string {
	a := r.Analysis
	var b strings.Builder
	fmt.Fprintf(&b, "# BUSINESS PLAN: %s\n\n", strings.ToUpper(r.Title))

	fmt.Fprintf(&b, "## Executive Summary\n%s\n\n", r.Description)
	fmt.Fprintf(&b, "Overall Potential Score: %d/100\n\n", r.Score)

	fmt.Fprintf(&b, "## Market Analysis\n%s\n\n", a.MarketPotential.Details)
	fmt.Fprintf(&b, "Market Score: %d/100\n\n", a.MarketPotential.Score)
	fmt.Fprintf(&b, "### Market Opportunities:\n%s\n\n", bullets(a.MarketPotential.Opportunities))
	fmt.Fprintf(&b, "### Market Challenges:\n%s\n\n", bullets(a.MarketPotential.Challenges))

	fmt.Fprintf(&b, "## Competition Analysis\n%s\n\n", a.CompetitionAnalysis.Details)
	fmt.Fprintf(&b, "Competition Score: %d/100\n\n", a.CompetitionAnalysis.Score)
	fmt.Fprintf(&b, "### Key Competitors:\n")
	for i, c := range a.CompetitionAnalysis.Competitors {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s\n  * Strengths: %s\n  * Weaknesses: %s", c.Name, c.Strengths, c.Weaknesses)
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "### Your Differentiators:\n%s\n\n", bullets(a.CompetitionAnalysis.Differentiators))

	fmt.Fprintf(&b, "## Implementation Strategy\n%s\n\n", a.ExecutionComplexity.Details)
	fmt.Fprintf(&b, "Execution Score: %d/100\n\n", a.ExecutionComplexity.Score)
	fmt.Fprintf(&b, "### Technical Challenges:\n%s\n\n", bullets(a.ExecutionComplexity.TechnicalChallenges))
	fmt.Fprintf(&b, "### Operational Challenges:\n%s\n\n", bullets(a.ExecutionComplexity.OperationalChallenges))
	fmt.Fprintf(&b, "### Timeline:\n%s\n\n", a.ExecutionComplexity.Timeline)

	fmt.Fprintf(&b, "## Recommendations\n%s\n\n", bullets(r.Recommendations))

	b.WriteString("## Financial Projections\n3-Year Revenue Forecast (Estimated)\n\n")
	b.WriteString("Year 1: Initial market entry and product refinement\n")
	b.WriteString("Year 2: Market expansion and feature development\n")
	b.WriteString("Year 3: Scaling operations and potential fundraising\n\n")

	b.WriteString("## Next Steps\n")
	b.WriteString("1. Validate core assumptions with potential customers\n")
	b.WriteString("2. Develop a minimum viable product (MVP)\n")
	b.WriteString("3. Gather initial user feedback\n")
	b.WriteString("4. Iterate on product based on market response\n")
	b.WriteString("5. Develop go-to-market strategy\n\n")

	fmt.Fprintf(&b, "---\nGenerated by VentureCompass on %s\n", generatedAt.Format(dateLayout))
	return b.String()
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, v := range items {
		lines[i] = "- " + v
	}
	return strings.Join(lines, "\n")
}

// Filename is the download name for a plan, e.g. "flowboard-business-plan.txt".
func Filename(title, ext string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, strings.TrimSpace(title))
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "idea"
	}
	if ext == "" {
		ext = "txt"
	}
	return slug + "-business-plan." + strings.TrimPrefix(ext, ".")
}
