package holiday

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/nudger/pkg/domain/model"
	"github.com/secmon-lab/nudger/pkg/utils/safe"
)

const (
	// DefaultFeedURL is the public bank holiday feed
	DefaultFeedURL = "https://www.gov.uk/bank-holidays.json"
	// DefaultTimeout bounds the feed download
	DefaultTimeout = 10 * time.Second

	maxFeedSize = 4 << 20
)

// Feed downloads the remote bank holiday calendar. It implements
// interfaces.HolidayFeed.
type Feed struct {
	url        string
	httpClient *http.Client
}

// FeedOption is a functional option for Feed configuration
type FeedOption func(*Feed)

// WithFeedURL replaces the feed location
func WithFeedURL(url string) FeedOption {
	return func(f *Feed) {
		f.url = url
	}
}

// WithHTTPClient replaces the HTTP client used for the download
func WithHTTPClient(hc *http.Client) FeedOption {
	return func(f *Feed) {
		f.httpClient = hc
	}
}

// NewFeed creates a Feed
func NewFeed(opts ...FeedOption) *Feed {
	f := &Feed{url: DefaultFeedURL}
	for _, opt := range opts {
		opt(f)
	}
	if f.httpClient == nil {
		f.httpClient = cleanhttp.DefaultPooledClient()
		f.httpClient.Timeout = DefaultTimeout
	}
	return f
}

// FetchCalendar downloads the feed and returns the events of jurisdiction
func (f *Feed) FetchCalendar(ctx context.Context, jurisdiction string) ([]model.HolidayEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create feed request", goerr.V("url", f.url))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download holiday feed", goerr.V("url", f.url))
	}
	defer safe.Drain(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status code from holiday feed",
			goerr.V("url", f.url),
			goerr.V("status", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read holiday feed", goerr.V("url", f.url))
	}

	return parseCalendar(body, jurisdiction)
}

type feedDivision struct {
	Division string      `json:"division"`
	Events   []feedEvent `json:"events"`
}

type feedEvent struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// parseCalendar decodes a feed body keyed by division and returns the events
// of jurisdiction. Events with an unreadable date are skipped.
func parseCalendar(body []byte, jurisdiction string) ([]model.HolidayEvent, error) {
	var divisions map[string]feedDivision
	if err := json.Unmarshal(body, &divisions); err != nil {
		return nil, goerr.Wrap(ErrInvalidFeed, "failed to decode holiday feed", goerr.V("error", err.Error()))
	}

	division, ok := divisions[jurisdiction]
	if !ok {
		return nil, goerr.Wrap(ErrUnknownJurisdiction, "division not in holiday feed",
			goerr.V("jurisdiction", jurisdiction))
	}

	events := make([]model.HolidayEvent, 0, len(division.Events))
	for _, e := range division.Events {
		d, err := time.Parse(time.DateOnly, strings.TrimSpace(e.Date))
		if err != nil {
			continue
		}
		events = append(events, model.HolidayEvent{Date: d, Title: e.Title})
	}
	return events, nil
}
