// Package avwx fetches current METAR reports from the AVWX REST API.
package avwx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://avwx.rest/api"

var ErrNoToken = errors.New("no AVWX token configured")

// Client calls AVWX with an Authorization token
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(token, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// HasToken reports whether the client can make authenticated calls
func (c *Client) HasToken() bool {
	return c.token != ""
}

type metarResponse struct {
	Raw     string `json:"raw"`
	Station string `json:"station"`
}

// RawMETAR returns the raw text of the current METAR for icao
func (c *Client) RawMETAR(ctx context.Context, icao string) (string, error) {
	if !c.HasToken() {
		return "", ErrNoToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/metar/"+url.PathEscape(icao), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json; charset=UTF-8")
	req.Header.Set("Authorization", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch METAR for %s: %w", icao, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("METAR for %s: AVWX returned %s", icao, resp.Status)
	}

	var m metarResponse
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return "", fmt.Errorf("failed to decode METAR for %s: %w", icao, err)
	}
	return strings.TrimSpace(m.Raw), nil
}
