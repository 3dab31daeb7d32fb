package bat

import (
	"context"
	"fmt"
	"time"

	"auction-scraper/utils"

	"github.com/chromedp/chromedp"
)

type BrowserOptions struct {
	Headless    bool
	UserAgent   string
	Timeout     time.Duration
	SettleTime  time.Duration
	ScrollCount int
	ScrollPause time.Duration
}

// BrowserFetcher loads pages in headless Chrome so client-rendered and
// lazy-loaded results end up in the captured markup.
type BrowserFetcher struct {
	opts        BrowserOptions
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

func NewBrowserFetcher(opts BrowserOptions) *BrowserFetcher {
	utils.Info("Launching Chrome browser...")
	allocCtx, allocCancel := chromedp.NewExecAllocator(
		context.Background(),
		utils.StealthOpts(opts.Headless, opts.UserAgent)...,
	)
	return &BrowserFetcher{
		opts:        opts,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}
}

func (f *BrowserFetcher) Close() {
	utils.Info("Closing browser...")
	f.allocCancel()
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	tabCtx, tabCancel := chromedp.NewContext(f.allocCtx)
	defer tabCancel()
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	tctx, cancel := context.WithTimeout(tabCtx, f.pageBudget())
	defer cancel()

	var html string
	actions := []chromedp.Action{
		chromedp.Navigate(url),
		utils.HideWebDriver(),
		chromedp.Sleep(f.opts.SettleTime),
	}
	actions = append(actions, scrollActions(f.opts.ScrollCount, f.opts.ScrollPause)...)
	actions = append(actions, chromedp.OuterHTML("html", &html, chromedp.ByQuery))

	if err := chromedp.Run(tctx, actions...); err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return "", &RetrievalError{URL: url, Err: fmt.Errorf("chromedp failed: %w", err)}
	}

	return html, nil
}

// pageBudget is the fetch timeout plus the fixed waits, which are not network time.
func (f *BrowserFetcher) pageBudget() time.Duration {
	return f.opts.Timeout + f.opts.SettleTime + time.Duration(f.opts.ScrollCount)*f.opts.ScrollPause
}

// scrollActions pages down count times, pausing after each step for lazy content.
func scrollActions(count int, pause time.Duration) []chromedp.Action {
	actions := make([]chromedp.Action, 0, count*2)
	for i := 1; i <= count; i++ {
		step := i
		actions = append(actions,
			chromedp.ActionFunc(func(ctx context.Context) error {
				utils.Debug("Scrolling... (%d/%d)", step, count)
				return chromedp.Evaluate(`window.scrollBy(0, window.innerHeight)`, nil).Do(ctx)
			}),
			chromedp.Sleep(pause),
		)
	}
	return actions
}
