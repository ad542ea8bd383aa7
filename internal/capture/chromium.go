package capture

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Default capture parameters for button previews.
const (
	DefaultWidth      = 640
	DefaultHeight     = 360
	DefaultTimeoutSec = 20
)

// Options defines parameters for a Chromium-based preview capture.
type Options struct {
	// Width and Height are the viewport dimensions in pixels. If zero,
	// DefaultWidth / DefaultHeight are used.
	Width  int
	Height int

	// Timeout bounds the entire capture operation. If zero, DefaultTimeoutSec
	// is used.
	Timeout time.Duration

	// ExecAllocatorOptions are passed to chromedp when set, e.g. a custom
	// browser path or --no-sandbox for containers.
	ExecAllocatorOptions []chromedp.ExecAllocatorOption
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Timeout <= 0 {
		o.Timeout = time.Duration(DefaultTimeoutSec) * time.Second
	}
	return o
}

// DataURL encodes a page so the browser can load it without a server.
func DataURL(page string) string {
	return "data:text/html;charset=utf-8;base64," + base64.StdEncoding.EncodeToString([]byte(page))
}

// PreviewPNG renders markup (usually generated button code) in headless
// Chromium and returns a PNG screenshot of the page.
//
// The wrapped page marks its body with data-ready="true" once parsed; the
// capture waits for it before taking the screenshot.
func PreviewPNG(parentCtx context.Context, markup string, opts Options) ([]byte, error) {
	if markup == "" {
		return nil, fmt.Errorf("capture: markup is required")
	}
	opts = opts.withDefaults()

	ctx := parentCtx
	if len(opts.ExecAllocatorOptions) > 0 {
		allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], opts.ExecAllocatorOptions...)
		allocCtx, cancelAlloc := chromedp.NewExecAllocator(parentCtx, allocOpts...)
		defer cancelAlloc()
		ctx = allocCtx
	}

	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	var png []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		chromedp.Navigate(DataURL(WrapPage(markup, opts.Width))),
		chromedp.WaitVisible(`body[data-ready="true"]`, chromedp.ByQuery),
		// Small extra delay to allow final paints.
		chromedp.Sleep(200 * time.Millisecond),
		chromedp.FullScreenshot(&png, 100),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return nil, fmt.Errorf("capture: chromedp run failed: %w", err)
	}
	return png, nil
}
