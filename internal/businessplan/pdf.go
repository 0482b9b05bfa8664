package businessplan

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

type PDFRenderer interface {
	Render(ctx context.Context, htmlDoc string) ([]byte, error)
}

// PageLayout is the printed page geometry in inches.
type PageLayout struct {
	Width        float64
	Height       float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64
}

// footerAllowance keeps the page-number footer clear of the plan body.
const footerAllowance = 0.25

var paperSizes = map[string]struct{ w, h float64 }{
	"a4":     {8.27, 11.69},
	"letter": {8.5, 11},
	"legal":  {8.5, 14},
}

// PageLayoutFor builds a layout for a named paper size (A4, Letter or Legal)
// with the same margin on every side. An empty size means A4.
func PageLayoutFor(size string, margin float64) (PageLayout, error) {
	key := strings.ToLower(strings.TrimSpace(size))
	if key == "" {
		key = "a4"
	}
	paper, ok := paperSizes[key]
	if !ok {
		return PageLayout{}, fmt.Errorf("unknown page size %q (want A4, Letter or Legal)", size)
	}
	if margin < 0 || 2*margin+footerAllowance >= min(paper.w, paper.h)/2 {
		return PageLayout{}, fmt.Errorf("margin %.2fin does not fit a %s page", margin, key)
	}
	return PageLayout{
		Width:        paper.w,
		Height:       paper.h,
		MarginTop:    margin,
		MarginBottom: margin + footerAllowance,
		MarginLeft:   margin,
		MarginRight:  margin,
	}, nil
}

func DefaultPageLayout() PageLayout {
	l, _ := PageLayoutFor("A4", 0.5)
	return l
}

// ChromiumPDFRenderer prints HTML to PDF with a headless Chromium.
type ChromiumPDFRenderer struct {
	chromePath string
	layout     PageLayout
	timeout    time.Duration
}

// NewChromiumPDFRenderer uses chromePath when set, otherwise the first
// Chromium found in the usual locations, otherwise chromedp's own lookup.
// A zero layout prints A4 with half-inch margins.
func NewChromiumPDFRenderer(chromePath string, layout PageLayout) *ChromiumPDFRenderer {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	if layout.Width <= 0 || layout.Height <= 0 {
		layout = DefaultPageLayout()
	}
	return &ChromiumPDFRenderer{chromePath: chromePath, layout: layout, timeout: 30 * time.Second}
}

const pdfFooter = `<div style="width:100%;text-align:center;font-size:9px;color:#666;">` +
	`VentureCompass business plan · Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`

func (r *ChromiumPDFRenderer) printParams() *page.PrintToPDFParams {
	l := r.layout
	return page.PrintToPDF().
		WithPrintBackground(true).
		WithDisplayHeaderFooter(true).
		WithHeaderTemplate(`<div></div>`).
		WithFooterTemplate(pdfFooter).
		WithPaperWidth(l.Width).
		WithPaperHeight(l.Height).
		WithMarginTop(l.MarginTop).
		WithMarginBottom(l.MarginBottom).
		WithMarginLeft(l.MarginLeft).
		WithMarginRight(l.MarginRight)
}

func (r *ChromiumPDFRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	return opts
}

func (r *ChromiumPDFRenderer) Render(ctx context.Context, htmlDoc string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = r.printParams().Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return pdf, nil
}

func detectChromePath() string {
	for _, p := range []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
