package cookie

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const (
	loginURL     = "https://weread.qq.com/"
	loginTimeout = 5 * time.Minute
	pollInterval = 2 * time.Second
)

// sessionCookies must all be present before the login counts as done.
var sessionCookies = []string{"wr_skey", "wr_vid"}

var ErrNoSession = errors.New("cookie: browser has no weread session")

// BrowserFetcher logs in through a real Chrome and reads the session cookies.
// Run it with Headless false the first time so the QR code can be scanned.
type BrowserFetcher struct {
	Headless bool
	Timeout  time.Duration
}

func (f BrowserFetcher) Fetch(ctx context.Context) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", f.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	bctx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(log.Printf))
	defer cancel()

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = loginTimeout
	}
	bctx, cancel = context.WithTimeout(bctx, timeout)
	defer cancel()

	var cookies []*network.Cookie
	err := chromedp.Run(bctx,
		chromedp.Navigate(loginURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			log.Printf("cookie waiting for weread login timeout=%s headless=%t", timeout, f.Headless)
			var err error
			cookies, err = waitForSession(ctx)
			return err
		}),
	)
	if err != nil {
		return "", fmt.Errorf("browser login: %w", err)
	}

	s := formatCookies(cookies)
	log.Printf("cookie fetched from browser count=%d", len(cookies))
	return s, nil
}

func waitForSession(ctx context.Context) ([]*network.Cookie, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		cookies, err := network.GetCookies().Do(ctx)
		if err != nil {
			return nil, err
		}
		if hasSession(cookies) {
			return cookies, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrNoSession, ctx.Err())
		case <-ticker.C:
		}
	}
}

func hasSession(cookies []*network.Cookie) bool {
	found := map[string]bool{}
	for _, c := range cookies {
		if c.Value != "" {
			found[c.Name] = true
		}
	}
	for _, name := range sessionCookies {
		if !found[name] {
			return false
		}
	}
	return true
}

// formatCookies renders "name=value; ..." skipping empty names or values.
func formatCookies(cookies []*network.Cookie) string {
	pairs := make([]string, 0, len(cookies))
	for _, c := range cookies {
		if c.Name == "" || c.Value == "" {
			continue
		}
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	return strings.Join(pairs, "; ")
}
