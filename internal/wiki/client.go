package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/model"
)

// DefaultTimeout is the per-request timeout of the default HTTP client.
const DefaultTimeout = 60 * time.Second

// maxResponseSize caps the size of an API response body.
const maxResponseSize = 32 * 1024 * 1024

// categoryPrefix is the canonical category namespace prefix, understood by
// every MediaWiki installation regardless of content language.
const categoryPrefix = "Category:"

// Client talks to one MediaWiki action API endpoint.
// A Client is not safe for concurrent use; the bot calls it sequentially.
type Client struct {
	// endpoint is the absolute URL of api.php.
	endpoint string

	// httpClient carries the cookie jar holding the login session.
	httpClient *http.Client

	// userAgent is sent with every request, as required by most wikis.
	userAgent string

	// logger for request diagnostics.
	logger *slog.Logger

	// timeout applies to the default HTTP client.
	timeout time.Duration

	// csrfToken is fetched lazily before the first edit.
	csrfToken string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. The client should have a cookie
// jar, otherwise login sessions are lost between requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the timeout of the default HTTP client.
// It has no effect when combined with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// New creates a client for the given api.php URL.
// No request is sent until a method is called.
func New(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpoint)
	}

	c := &Client{
		endpoint: u.String(),
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		c.httpClient = &http.Client{
			Jar:     jar,
			Timeout: c.timeout,
		}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c, nil
}

// Endpoint returns the api.php URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// SiteInfo fetches general information about the wiki. It doubles as a
// connectivity check.
func (c *Client) SiteInfo(ctx context.Context) (*SiteInfo, error) {
	var resp siteInfoResponse
	params := url.Values{
		"action": {"query"},
		"meta":   {"siteinfo"},
		"siprop": {"general"},
	}
	if err := c.call(ctx, http.MethodGet, params, &resp); err != nil {
		return nil, err
	}
	return &SiteInfo{
		Name:      resp.Query.General.SiteName,
		Generator: resp.Query.General.Generator,
	}, nil
}

// Login signs in with a bot password (Special:BotPasswords).
func (c *Client) Login(ctx context.Context, username, password string) error {
	token, err := c.token(ctx, "login")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	var resp loginResponse
	params := url.Values{
		"action":     {"login"},
		"lgname":     {username},
		"lgpassword": {password},
		"lgtoken":    {token},
	}
	if err := c.call(ctx, http.MethodPost, params, &resp); err != nil {
		return fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	if resp.Login.Result != "Success" {
		return fmt.Errorf("%w: %s: %s", ErrLoginFailed, resp.Login.Result, resp.Login.Reason)
	}

	// A new session invalidates any token fetched before.
	c.csrfToken = ""
	c.logger.Debug("logged in", "user", resp.Login.LgUsername)
	return nil
}

// CategoryMembers lists every member of a category, following API
// continuation until the listing is complete. The category may be given
// with or without its namespace prefix.
func (c *Client) CategoryMembers(ctx context.Context, category string) ([]model.Member, error) {
	title := category
	if !strings.Contains(title, ":") {
		title = categoryPrefix + title
	}

	var members []model.Member
	cont := map[string]string{}
	for {
		params := url.Values{
			"action":  {"query"},
			"list":    {"categorymembers"},
			"cmtitle": {title},
			"cmprop":  {"ids|title"},
			"cmlimit": {"max"},
		}
		for k, v := range cont {
			params.Set(k, v)
		}

		var resp categoryMembersResponse
		if err := c.call(ctx, http.MethodGet, params, &resp); err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", title, err)
		}
		members = append(members, resp.Query.CategoryMembers...)

		if len(resp.Continue) == 0 {
			break
		}
		cont = resp.Continue
	}

	c.logger.Debug("listed category", "category", title, "members", len(members))
	return members, nil
}

// ReadPage returns the latest revision of a page. A page that does not
// exist is not an error; its Exists field is false.
func (c *Client) ReadPage(ctx context.Context, title string) (*Page, error) {
	var resp revisionsResponse
	params := url.Values{
		"action":       {"query"},
		"prop":         {"revisions"},
		"titles":       {title},
		"rvprop":       {"content|timestamp"},
		"rvslots":      {"main"},
		"curtimestamp": {"1"},
	}
	if err := c.call(ctx, http.MethodGet, params, &resp); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", title, err)
	}
	if len(resp.Query.Pages) == 0 {
		return nil, fmt.Errorf("failed to read %s: %w: no page in response", title, ErrRequestFailed)
	}

	p := resp.Query.Pages[0]
	if p.Invalid {
		return nil, fmt.Errorf("failed to read %s: invalid title", title)
	}

	page := &Page{
		Title:          p.Title,
		StartTimestamp: resp.CurTimestamp,
	}
	if !p.Missing && len(p.Revisions) > 0 {
		rev := p.Revisions[0]
		page.Exists = true
		page.Text = rev.Slots.Main.Content
		page.Timestamp = rev.Timestamp
	}
	return page, nil
}

// Edit saves new text to a page. An edit conflict is returned as an
// *APIError matching ErrEditConflict.
func (c *Client) Edit(ctx context.Context, req EditRequest) error {
	if c.csrfToken == "" {
		token, err := c.token(ctx, "csrf")
		if err != nil {
			return fmt.Errorf("failed to get edit token: %w", err)
		}
		c.csrfToken = token
	}

	params := url.Values{
		"action":  {"edit"},
		"title":   {req.Title},
		"text":    {req.Text},
		"summary": {req.Summary},
		"token":   {c.csrfToken},
	}
	if req.BaseTimestamp != "" {
		params.Set("basetimestamp", req.BaseTimestamp)
	}
	if req.StartTimestamp != "" {
		params.Set("starttimestamp", req.StartTimestamp)
	}
	if req.Bot {
		params.Set("bot", "1")
	}

	var resp editResponse
	if err := c.call(ctx, http.MethodPost, params, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Code == "badtoken" {
			c.csrfToken = ""
		}
		return fmt.Errorf("failed to edit %s: %w", req.Title, err)
	}
	if resp.Edit.Result != "Success" {
		return fmt.Errorf("failed to edit %s: %w: result %q", req.Title, ErrEditRejected, resp.Edit.Result)
	}

	c.logger.Debug("edit saved",
		"title", req.Title,
		"nochange", resp.Edit.NoChange,
		"revision", resp.Edit.NewRevID,
	)
	return nil
}

// token fetches a token of the given type ("login" or "csrf").
func (c *Client) token(ctx context.Context, kind string) (string, error) {
	var resp tokensResponse
	params := url.Values{
		"action": {"query"},
		"meta":   {"tokens"},
		"type":   {kind},
	}
	if err := c.call(ctx, http.MethodGet, params, &resp); err != nil {
		return "", err
	}

	var token string
	switch kind {
	case "login":
		token = resp.Query.Tokens.LoginToken
	case "csrf":
		token = resp.Query.Tokens.CSRFToken
	}
	// "+\" is the anonymous placeholder token.
	if token == "" || token == `+\` {
		return "", fmt.Errorf("%w: %s", ErrMissingToken, kind)
	}
	return token, nil
}

// apiError gives call access to the error member embedded in every response type.
type apiError interface {
	apiErr() *APIError
}

func (r *apiResponse) apiErr() *APIError {
	return r.Error
}

// call sends one API request and decodes the JSON response into out.
// GET parameters go in the query string, POST parameters in the form body.
func (c *Client) call(ctx context.Context, method string, params url.Values, out apiError) error {
	params.Set("format", "json")
	params.Set("formatversion", "2")

	var (
		req *http.Request
		err error
	)
	switch method {
	case http.MethodPost:
		req, err = http.NewRequestWithContext(ctx, method, c.endpoint, strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	default:
		req, err = http.NewRequestWithContext(ctx, method, c.endpoint+"?"+params.Encode(), nil)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("wiki request", "method", method, "action", params.Get("action"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: reading body: %w", ErrRequestFailed, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding response: %w", ErrRequestFailed, err)
	}
	if apiErr := out.apiErr(); apiErr != nil {
		return apiErr
	}
	return nil
}
