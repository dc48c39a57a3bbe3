package weread

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://weread.qq.com"
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"

	notebookPath     = "/api/user/notebook"
	bookInfoPath     = "/api/book/info"
	bookmarkListPath = "/web/book/bookmarklist"
	progressPath     = "/web/book/getProgress"
	reviewListPath   = "/web/review/list"
)

var (
	// ErrUnauthorized is returned when WeRead rejects the session cookie.
	ErrUnauthorized = errors.New("weread: session unauthorized")
	// ErrEmptyCookie is returned when no cookie string was supplied.
	ErrEmptyCookie = errors.New("weread: cookie string is empty")
	// ErrAPI matches every *APIError.
	ErrAPI = errors.New("weread: api error")
)

// APIError is a response that carried a non-zero errCode.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("weread: errCode=%d errMsg=%s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return ErrAPI }

// CookieRefresher supplies a fresh cookie string after the current one was rejected.
type CookieRefresher interface {
	RefreshCookie(ctx context.Context) (string, error)
}

type Options struct {
	BaseURL   string
	UserAgent string
	RPS       int
	Timeout   time.Duration
	Refresher CookieRefresher
}

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    *url.URL
	limiter    *rate.Limiter
	refresher  CookieRefresher

	// last bookmark list, shared by Bookmarks and Chapters for one book
	listBookID string
	list       *bookmarkListResponse
}

func NewClient(cookie string, opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Every(time.Second / time.Duration(opts.RPS))
	}

	c := &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		userAgent:  opts.UserAgent,
		baseURL:    base,
		limiter:    rate.NewLimiter(limit, 1),
		refresher:  opts.Refresher,
	}
	if err := c.SetCookie(cookie); err != nil {
		return nil, err
	}
	return c, nil
}

// SetCookie replaces the session cookies with the ones in a browser cookie string.
func (c *Client) SetCookie(cookie string) error {
	cookies := ParseCookie(cookie)
	if len(cookies) == 0 {
		return ErrEmptyCookie
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	jar.SetCookies(c.baseURL, cookies)

	c.httpClient.Jar = jar
	return nil
}

// ParseCookie splits a "name=value; name2=value2" string as copied from a browser.
func ParseCookie(s string) []*http.Cookie {
	var cookies []*http.Cookie
	for _, pair := range strings.Split(strings.TrimSpace(s), ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: name, Value: strings.TrimSpace(value)})
	}
	return cookies
}

// Connect checks that the session cookie is accepted.
func (c *Client) Connect(ctx context.Context) error {
	var res notebookResponse
	if err := c.get(ctx, notebookPath, nil, &res); err != nil {
		return fmt.Errorf("weread connection test: %w", err)
	}
	log.Printf("weread connected notebooks=%d", len(res.Books))
	return nil
}

// Notebooks returns every book the user has notes in, ordered by sort
// ascending. Entries without a sort value come last.
func (c *Client) Notebooks(ctx context.Context) ([]Notebook, error) {
	var res notebookResponse
	if err := c.get(ctx, notebookPath, nil, &res); err != nil {
		return nil, fmt.Errorf("notebook list: %w", err)
	}

	books := res.Books
	sort.SliceStable(books, func(i, j int) bool {
		si, sj := books[i].SortKey(), books[j].SortKey()
		if si == nil {
			return false
		}
		if sj == nil {
			return true
		}
		return *si < *sj
	})
	return books, nil
}

func (c *Client) BookInfo(ctx context.Context, bookID string) (*BookInfo, error) {
	var res BookInfo
	if err := c.get(ctx, bookInfoPath, url.Values{"bookId": {bookID}}, &res); err != nil {
		return nil, fmt.Errorf("book info for %s: %w", bookID, err)
	}
	return &res, nil
}

func (c *Client) Bookmarks(ctx context.Context, bookID string) ([]Bookmark, error) {
	res, err := c.bookmarkList(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("bookmarks for %s: %w", bookID, err)
	}
	return res.Updated, nil
}

// Chapters reads the chapter list embedded in the bookmark list response.
func (c *Client) Chapters(ctx context.Context, bookID string) ([]Chapter, error) {
	res, err := c.bookmarkList(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("chapter info for %s: %w", bookID, err)
	}
	return res.Chapters, nil
}

func (c *Client) ReadInfo(ctx context.Context, bookID string) (*ReadInfo, error) {
	params := url.Values{
		"bookId":           {bookID},
		"readingDetail":    {"1"},
		"readingBookIndex": {"1"},
		"finishedDate":     {"1"},
	}
	var res ReadInfo
	if err := c.get(ctx, progressPath, params, &res); err != nil {
		return nil, fmt.Errorf("read info for %s: %w", bookID, err)
	}
	return &res, nil
}

func (c *Client) Reviews(ctx context.Context, bookID string) ([]ReviewItem, error) {
	params := url.Values{
		"bookId":   {bookID},
		"listType": {"11"},
		"mine":     {"1"},
		"syncKey":  {"0"},
	}
	var res reviewListResponse
	if err := c.get(ctx, reviewListPath, params, &res); err != nil {
		return nil, fmt.Errorf("reviews for %s: %w", bookID, err)
	}
	return res.Reviews, nil
}

// Close releases idle connections held by the session.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) bookmarkList(ctx context.Context, bookID string) (*bookmarkListResponse, error) {
	if c.list != nil && c.listBookID == bookID {
		return c.list, nil
	}
	var res bookmarkListResponse
	if err := c.get(ctx, bookmarkListPath, url.Values{"bookId": {bookID}}, &res); err != nil {
		return nil, err
	}
	c.listBookID, c.list = bookID, &res
	return &res, nil
}

// get performs one request. A rejected session is repeated once with a
// refreshed cookie when a refresher is configured.
func (c *Client) get(ctx context.Context, path string, params url.Values, target interface{}) error {
	err := c.do(ctx, path, params, target)
	if !errors.Is(err, ErrUnauthorized) || c.refresher == nil {
		return err
	}

	log.Printf("weread unauthorized path=%s, refreshing cookie", path)
	cookie, rErr := c.refresher.RefreshCookie(ctx)
	if rErr != nil {
		return fmt.Errorf("refresh cookie: %w", rErr)
	}
	if sErr := c.SetCookie(cookie); sErr != nil {
		return fmt.Errorf("refresh cookie: %w", sErr)
	}
	return c.do(ctx, path, params, target)
}

func (c *Client) do(ctx context.Context, path string, params url.Values, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL.ResolveReference(&url.URL{Path: path})
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status code: %d: %s", resp.StatusCode, truncate(string(body), 500))
	}

	var envelope struct {
		ErrCode *int   `json:"errCode"`
		ErrMsg  string `json:"errMsg"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.ErrCode != nil && *envelope.ErrCode != 0 {
		if *envelope.ErrCode == -2012 || *envelope.ErrCode == -2010 {
			// login timeout / session expired
			return fmt.Errorf("%w: %s", ErrUnauthorized, (&APIError{Code: *envelope.ErrCode, Message: envelope.ErrMsg}).Error())
		}
		return &APIError{Code: *envelope.ErrCode, Message: envelope.ErrMsg}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
