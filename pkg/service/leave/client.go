package leave

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/nudger/pkg/domain/model"
	"github.com/secmon-lab/nudger/pkg/utils/ratelimit"
	"github.com/secmon-lab/nudger/pkg/utils/safe"
)

const (
	// DefaultBaseURL is the leave calendar API root
	DefaultBaseURL = "https://app.timetastic.co.uk/api"
	// DefaultTimeout bounds every leave calendar API call
	DefaultTimeout = 10 * time.Second
	// DefaultRequestsPerMinute is the soft threshold of calls issued per minute
	DefaultRequestsPerMinute = 50

	// maxAbsencePages bounds pagination of the absence list
	maxAbsencePages = 20
	// maxBodySize bounds the size of a response body
	maxBodySize = 8 << 20
)

// API is the transport to the leave calendar service
type API interface {
	ListUsers(ctx context.Context) ([]model.LeaveUser, error)
	ListAbsences(ctx context.Context, date time.Time) ([]model.LeaveRecord, error)
}

// client implements API over the leave calendar's REST endpoints
type client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
}

// ClientOption is a functional option for client configuration
type ClientOption func(*client)

// WithBaseURL replaces the API root
func WithBaseURL(baseURL string) ClientOption {
	return func(c *client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the HTTP client used for API calls
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithLimiter replaces the limiter pacing API calls
func WithLimiter(l *ratelimit.Limiter) ClientOption {
	return func(c *client) {
		c.limiter = l
	}
}

// NewClient creates a leave calendar API client authenticated by apiKey
func NewClient(apiKey string, opts ...ClientOption) (API, error) {
	if apiKey == "" {
		return nil, goerr.New("leave calendar API key is required")
	}

	c := &client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = cleanhttp.DefaultPooledClient()
		c.httpClient.Timeout = DefaultTimeout
	}
	if c.limiter == nil {
		c.limiter = ratelimit.New(DefaultRequestsPerMinute, time.Minute)
	}

	return c, nil
}

// ListUsers retrieves the leave calendar's user directory
func (c *client) ListUsers(ctx context.Context) ([]model.LeaveUser, error) {
	body, err := c.get(ctx, c.baseURL+"/users")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list leave calendar users")
	}

	users, err := parseUsers(body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse leave calendar users")
	}
	return users, nil
}

// ListAbsences retrieves the absence records overlapping date
func (c *client) ListAbsences(ctx context.Context, date time.Time) ([]model.LeaveRecord, error) {
	day := date.Format(time.DateOnly)
	q := url.Values{}
	q.Set("start", day)
	q.Set("end", day)
	next := c.baseURL + "/holidays?" + q.Encode()

	var records []model.LeaveRecord
	for page := 0; next != "" && page < maxAbsencePages; page++ {
		body, err := c.get(ctx, next)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list absences", goerr.V("date", day), goerr.V("page", page))
		}

		pageRecords, nextLink, err := parseAbsences(body)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse absences", goerr.V("date", day), goerr.V("page", page))
		}
		records = append(records, pageRecords...)
		next = c.resolve(nextLink)
	}

	return records, nil
}

// resolve turns a pagination link into an absolute URL under the API root
func (c *client) resolve(link string) string {
	if link == "" || strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	return c.baseURL + "/" + strings.TrimLeft(link, "/")
}

func (c *client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("url", rawURL))
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "request failed", goerr.V("url", rawURL))
	}
	defer safe.Drain(ctx, resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body", goerr.V("url", rawURL))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status code",
			goerr.V("url", rawURL),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", truncate(body)),
		)
	}

	return body, nil
}
