package businessplan

import (
	"strings"
	"testing"
)

func TestPageLayoutFor(t *testing.T) {
	tests := []struct {
		size   string
		margin float64
		want   PageLayout
	}{
		{"", 0.5, PageLayout{Width: 8.27, Height: 11.69, MarginTop: 0.5, MarginBottom: 0.75, MarginLeft: 0.5, MarginRight: 0.5}},
		{"Letter", 1, PageLayout{Width: 8.5, Height: 11, MarginTop: 1, MarginBottom: 1.25, MarginLeft: 1, MarginRight: 1}},
		{" legal ", 0, PageLayout{Width: 8.5, Height: 14, MarginBottom: 0.25}},
	}
	for _, tc := range tests {
		got, err := PageLayoutFor(tc.size, tc.margin)
		if err != nil {
			t.Fatalf("PageLayoutFor(%q, %v): %v", tc.size, tc.margin, err)
		}
		if got != tc.want {
			t.Fatalf("PageLayoutFor(%q, %v) = %+v, want %+v", tc.size, tc.margin, got, tc.want)
		}
	}
}

func TestPageLayoutForRejectsBadInput(t *testing.T) {
	for _, tc := range []struct {
		size   string
		margin float64
	}{
		{"tabloid", 0.5},
		{"A4", -0.1},
		{"Letter", 2},
	} {
		if _, err := PageLayoutFor(tc.size, tc.margin); err == nil {
			t.Fatalf("expected error for %q with margin %v", tc.size, tc.margin)
		}
	}
}

func TestChromiumRendererUsesConfiguredLayout(t *testing.T) {
	layout, err := PageLayoutFor("Letter", 0.75)
	if err != nil {
		t.Fatal(err)
	}
	p := NewChromiumPDFRenderer("/opt/chrome", layout).printParams()
	if p.PaperWidth != 8.5 || p.PaperHeight != 11 {
		t.Fatalf("paper = %vx%v, want 8.5x11", p.PaperWidth, p.PaperHeight)
	}
	if p.MarginTop != 0.75 || p.MarginLeft != 0.75 || p.MarginRight != 0.75 || p.MarginBottom != 1 {
		t.Fatalf("unexpected margins: %+v", p)
	}
	if !p.DisplayHeaderFooter || !strings.Contains(p.FooterTemplate, `class="pageNumber"`) {
		t.Fatalf("expected page-number footer, got %q", p.FooterTemplate)
	}
}

func TestChromiumRendererDefaultsToA4(t *testing.T) {
	r := NewChromiumPDFRenderer("/opt/chrome", PageLayout{})
	if r.layout != DefaultPageLayout() {
		t.Fatalf("layout = %+v, want A4 default", r.layout)
	}
	if r.chromePath != "/opt/chrome" {
		t.Fatalf("chromePath = %q", r.chromePath)
	}
}
