// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Printer turns an HTML document into PDF bytes.
type Printer interface {
	PrintHTML(ctx context.Context, html string) ([]byte, error)
}

// ChromePrinter prints HTML with a headless Chrome controlled over the
// DevTools protocol. One browser process is started lazily and shared;
// every call renders in its own tab.
type ChromePrinter struct {
	execPath string

	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewChromePrinter returns a printer using the Chrome binary at execPath,
// or the first one chromedp finds on the system when execPath is empty.
func NewChromePrinter(execPath string) *ChromePrinter {
	return &ChromePrinter{execPath: execPath}
}

// browser returns the shared browser context, starting Chrome on first use
// or after the previous process died.
func (p *ChromePrinter) browser() (context.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.browserCtx != nil && p.browserCtx.Err() == nil {
		return p.browserCtx, nil
	}
	p.shutdownLocked()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.Flag("font-render-hinting", "none"),
	)
	if p.execPath != "" {
		opts = append(opts, chromedp.ExecPath(p.execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Run with no actions starts the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	slog.Info("headless chrome started")
	p.allocCancel = allocCancel
	p.browserCtx = browserCtx
	p.browserCancel = browserCancel
	return browserCtx, nil
}

// PrintHTML loads html into a fresh tab and prints it with CSS page sizes
// and backgrounds. The tab is closed when ctx is done or printing ends.
func (p *ChromePrinter) PrintHTML(ctx context.Context, html string) ([]byte, error) {
	browserCtx, err := p.browser()
	if err != nil {
		return nil, err
	}

	tabCtx, cancel := chromedp.NewContext(browserCtx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		tabCtx, cancelDeadline = context.WithDeadline(tabCtx, deadline)
		defer cancelDeadline()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var (
		ready bool
		buf   []byte
	)
	err = chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		// Wait for remote product images before printing.
		chromedp.Poll(
			`document.readyState === 'complete' && Array.from(document.images).every(i => i.complete)`,
			&ready,
			chromedp.WithPollingTimeout(15*time.Second),
		),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			buf = data
			return nil
		}),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("print pdf: %w", errors.Join(ctxErr, err))
		}
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return buf, nil
}

// Close stops the browser process, if running.
func (p *ChromePrinter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shutdownLocked()
}

func (p *ChromePrinter) shutdownLocked() {
	if p.browserCancel != nil {
		p.browserCancel()
	}
	if p.allocCancel != nil {
		p.allocCancel()
	}
	p.browserCtx, p.browserCancel, p.allocCancel = nil, nil, nil
}
