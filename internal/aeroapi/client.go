// Package aeroapi is a client for the FlightAware AeroAPI endpoints used to
// seed flight plans: airport departures, operators and aircraft types.
package aeroapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"atcdel/internal/models"
	"atcdel/internal/rand"
)

const (
	DefaultBaseURL = "https://aeroapi.flightaware.com/aeroapi"

	// StandardPageSize is the number of records AeroAPI returns per page
	StandardPageSize = 15
)

// Departure search window: a random 4 hour window that ends at least 4
// hours ago and starts at most 10 days ago
const (
	windowLength   = 4 * time.Hour
	windowMinAge   = 4 * time.Hour
	windowMaxAge   = 10 * 24 * time.Hour
	maxBackoff     = 30 * time.Second
	timestampStyle = "2006-01-02T15:04:05Z"
)

var (
	ErrNoToken      = errors.New("no AeroAPI token configured")
	ErrUnauthorized = errors.New("AeroAPI rejected the token")
)

// Client calls AeroAPI with an x-apikey token
type Client struct {
	httpClient   *http.Client
	baseURL      string
	token        string
	rng          *rand.Rand
	maxRetries   int
	retryBackoff time.Duration
	now          func() time.Time
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetries sets how many times a failed request is retried and the
// initial backoff, doubled after each attempt
func WithRetries(maxRetries int, backoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryBackoff = backoff
	}
}

func WithRand(r *rand.Rand) Option {
	return func(c *Client) { c.rng = r }
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		baseURL:      DefaultBaseURL,
		token:        token,
		maxRetries:   2,
		retryBackoff: 1 * time.Second,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New()
	}
	return c
}

// HasToken reports whether the client can make authenticated calls
func (c *Client) HasToken() bool {
	return c.token != ""
}

type departuresResponse struct {
	Departures []models.Departure `json:"departures"`
	NumPages   int                `json:"num_pages"`
}

// Departures fetches departures from icao over a random past 4 hour window.
// trafficType is ALL, AIRLINE or GA.
func (c *Client) Departures(ctx context.Context, icao string, number int, trafficType string) ([]models.Departure, error) {
	start, end := c.departureWindow()
	params := url.Values{}
	params.Set("max_pages", strconv.Itoa(number/StandardPageSize+1))
	params.Set("start", start.Format(timestampStyle))
	params.Set("end", end.Format(timestampStyle))
	if t := strings.ToUpper(trafficType); t != "" && t != "ALL" {
		params.Set("type", t)
	}

	var resp departuresResponse
	path := "/airports/" + url.PathEscape(icao) + "/flights/departures"
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	slog.Debug("Fetched departures", "icao", icao, "count", len(resp.Departures), "pages", resp.NumPages)
	return resp.Departures, nil
}

// Operator fetches the operator registered under an ICAO code
func (c *Client) Operator(ctx context.Context, icao string) (models.Operator, error) {
	var op models.Operator
	err := c.get(ctx, "/operators/"+url.PathEscape(icao), nil, &op)
	return op, err
}

// AircraftType fetches the description of an ICAO aircraft type
func (c *Client) AircraftType(ctx context.Context, aircraftType string) (models.AircraftType, error) {
	var at models.AircraftType
	err := c.get(ctx, "/aircraft/types/"+url.PathEscape(aircraftType), nil, &at)
	return at, err
}

func (c *Client) departureWindow() (time.Time, time.Time) {
	now := c.now().UTC()
	latest := now.Add(-windowMinAge)
	earliest := now.Add(-windowMaxAge)
	start := earliest.Add(time.Duration(c.rng.Float64() * float64(latest.Sub(earliest))))
	return start, start.Add(windowLength)
}

// get performs a GET request and decodes the JSON body into out, retrying
// transport errors and 429/5xx responses with exponential backoff
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if !c.HasToken() {
		return ErrNoToken
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	backoff := c.retryBackoff
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			slog.Warn("Retrying AeroAPI request", "path", path, "retry", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}

		retry, err := c.do(ctx, reqURL, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry || ctx.Err() != nil {
			return err
		}
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", c.maxRetries, lastErr)
}

func (c *Client) do(ctx context.Context, reqURL string, out any) (retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json; charset=UTF-8")
	req.Header.Set("x-apikey", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("failed to call %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return false, ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return true, fmt.Errorf("%s returned %s", req.URL.Path, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return false, fmt.Errorf("%s returned %s", req.URL.Path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("failed to decode %s response: %w", req.URL.Path, err)
	}
	return false, nil
}
