package printing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	defaultChromeTimeout = 30 * time.Second

	// 80mm thermal receipt paper, tall page so Chrome never paginates
	receiptPaperWidthMM  = 80.0
	receiptPaperHeightMM = 3000.0
	receiptMarginMM      = 4.0
)

// ChromedpConfig contains configuration for the chromedp renderer
type ChromedpConfig struct {
	// Timeout for a single render operation
	Timeout time.Duration
	// RemoteURL is the URL of a remote Chrome/Chromium instance (optional)
	// If empty, chromedp launches its own browser instance
	RemoteURL string
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox bool
	// Logger for debug output
	Logger *zap.Logger
}

// ChromedpRenderer renders receipt HTML to PDF using Chrome DevTools Protocol
type ChromedpRenderer struct {
	config      *ChromedpConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer creates a new chromedp-based PDF renderer
func NewChromedpRenderer(config *ChromedpConfig) *ChromedpRenderer {
	if config == nil {
		config = &ChromedpConfig{}
	}
	if config.Timeout == 0 {
		config.Timeout = defaultChromeTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &ChromedpRenderer{
		config: config,
		logger: logger,
	}
	r.initAllocator()
	return r
}

func (r *ChromedpRenderer) initAllocator() {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("font-render-hinting", "none"),
	)

	if r.config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}

	if r.config.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), r.config.RemoteURL)
	} else {
		r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	}
}

// Render converts receipt HTML to PDF bytes sized for receipt paper.
func (r *ChromedpRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}

	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	margin := mmToInches(receiptMarginMM)

	var pdfData []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(mmToInches(receiptPaperWidthMM)).
				WithPaperHeight(mmToInches(receiptPaperHeightMM)).
				WithMarginTop(margin).
				WithMarginRight(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithScale(1.0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("PDF rendering timed out after %v", r.config.Timeout), err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	}

	if len(pdfData) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	r.logger.Info("receipt PDF rendered",
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", time.Since(startTime)))

	return pdfData, nil
}

// Close releases resources held by the renderer
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

func mmToInches(mm float64) float64 {
	return mm / 25.4
}

// Ensure ChromedpRenderer implements PDFRenderer
var _ PDFRenderer = (*ChromedpRenderer)(nil)
