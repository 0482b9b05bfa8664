package businessplan

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const planCSS = `body{font-family:Georgia,"Times New Roman",serif;color:#1c1917;background:#fff;margin:0;padding:0.6rem;}
.plan-wrap{max-width:860px;margin:0 auto;}
.plan-wrap h1{font-size:1.6rem;border-bottom:3px solid #0d9488;padding-bottom:0.4rem;}
.plan-wrap h2{font-size:1.2rem;color:#0f766e;margin-top:1.6rem;}
.plan-wrap h3{font-size:1rem;margin-bottom:0.3rem;}
.plan-wrap ul{margin-top:0.2rem;}
.plan-wrap hr{border:0;border-top:1px solid #a8a29e;margin-top:2rem;}
h2[data-page-break-before="true"]{break-before:page;page-break-before:always;}
html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;}
@media print{ @page{size:auto;margin:12mm;} body{padding:0;} .plan-wrap{max-width:none;} }`

var (
	reFinancialHeading = regexp.MustCompile(`(?i)<h2([^>]*)>\s*Financial Projections\s*</h2>`)
	reScoreLine        = regexp.MustCompile(`<p>((?:Overall Potential|Market|Competition|Execution) Score: [0-9]+/100)</p>`)
)

// RenderHTML converts a plan produced by Generate into a standalone HTML page.
func RenderHTML(plan, title string) (string, error) {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(plan), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	if strings.TrimSpace(title) == "" {
		title = "Business Plan"
	}
	return "<!doctype html><html><head><meta charset='utf-8'><title>" + html.EscapeString(title) + "</title>" +
		"<style>" + planCSS + "</style></head><body>" +
		"<div class='plan-wrap'>" + applyPrintLayoutHooks(content.String()) + "</div>" +
		"</body></html>", nil
}

func applyPrintLayoutHooks(contentHTML string) string {
	out := reFinancialHeading.ReplaceAllString(contentHTML, `<h2$1 data-page-break-before="true">Financial Projections</h2>`)
	out = reScoreLine.ReplaceAllString(out, `<p class="plan-score"><strong>$1</strong></p>`)
	return out
}
