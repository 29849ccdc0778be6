package transportapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ngmaloney/train-terminal/internal/models"
	"github.com/ngmaloney/train-terminal/internal/timeutil"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Defaults applied to a station timetable request
const (
	DefaultFromOffset = "PT00:30:00"
	DefaultToOffset   = "PT01:30:00"
	DefaultLimit      = 25
)

// HTTPClient implements Client against the live API
type HTTPClient struct {
	appID      string
	appKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPClient creates a live API client
func NewHTTPClient(opts Options) *HTTPClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	return &HTTPClient{
		appID:      opts.AppID,
		appKey:     opts.AppKey,
		baseURL:    opts.BaseURL,
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// StationTimetableParams selects the departures to fetch
type StationTimetableParams struct {
	StationCRS string
	CallingAt  string    // only services calling here
	DateTime   time.Time // zero means now
	FromOffset string    // e.g. "-PT00:30:00"
	ToOffset   string    // e.g. "PT01:30:00"
	Limit      int
}

// StationTimetable retrieves the departure board for a station
func (c *HTTPClient) StationTimetable(ctx context.Context, params StationTimetableParams) (*models.StationTimetable, error) {
	if params.StationCRS == "" {
		return nil, fmt.Errorf("station code is required")
	}
	if params.FromOffset == "" {
		params.FromOffset = DefaultFromOffset
	}
	if params.ToOffset == "" {
		params.ToOffset = DefaultToOffset
	}
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}

	query := url.Values{}
	query.Set("from_offset", params.FromOffset)
	query.Set("to_offset", params.ToOffset)
	query.Set("limit", strconv.Itoa(params.Limit))
	query.Set("live", "true")
	query.Set("train_status", "passenger")
	query.Set("station_detail", "destination,origin,calling_at")
	query.Set("type", "departure")
	if !params.DateTime.IsZero() {
		query.Set("datetime", params.DateTime.Format("2006-01-02T15:04:05-07:00"))
	}
	if params.CallingAt != "" {
		query.Set("calling_at", params.CallingAt)
	}

	var resp stationTimetableResponse
	path := fmt.Sprintf("/station_timetables/%s.json", url.PathEscape(params.StationCRS))
	if err := c.get(ctx, path, query, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// ServiceTimetable retrieves one service with every calling point
func (c *HTTPClient) ServiceTimetable(ctx context.Context, serviceID string, date time.Time) (*models.ServiceDetail, error) {
	if serviceID == "" {
		return nil, fmt.Errorf("service id is required")
	}

	query := url.Values{}
	query.Set("live", "true")
	if !date.IsZero() {
		query.Set("date", timeutil.FormatDate(date))
	}

	var resp serviceTimetableResponse
	path := fmt.Sprintf("/service_timetables/%s.json", url.PathEscape(serviceID))
	if err := c.get(ctx, path, query, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// get performs a throttled GET with credentials and decodes the JSON body into out
func (c *HTTPClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	query.Set("app_id", c.appID)
	query.Set("app_key", c.appKey)
	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("transport api request")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &APIError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("HTTP error %d", resp.StatusCode),
			Body:    body,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
