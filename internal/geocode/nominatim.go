// Package geocode proxies reverse geocoding to Nominatim so the
// browser never calls OpenStreetMap directly (CORS, rate limits).
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const nominatimURL = "https://nominatim.openstreetmap.org/reverse"

// Nominatim requires an identifying User-Agent.
const userAgent = "PizzeriaNovaBot/1.0 (hebertsb@gmail.com)"

var (
	// ErrUpstreamUnavailable: the provider answered with a non-200.
	ErrUpstreamUnavailable = errors.New("geocoding service unavailable")
	// ErrUnreachable: the provider could not be reached at all.
	ErrUnreachable = errors.New("geocoding service unreachable")
)

type Result struct {
	DisplayName string          `json:"display_name"`
	Raw         json.RawMessage `json:"raw"`
}

type Client struct {
	httpc *http.Client
}

func NewClient() *Client {
	return &Client{httpc: &http.Client{Timeout: 10 * time.Second}}
}

func (c *Client) Reverse(ctx context.Context, lat, lon string) (*Result, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", lat)
	q.Set("lon", lon)
	q.Set("zoom", "18")
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, nominatimURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	var body struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: bad response: %v", ErrUpstreamUnavailable, err)
	}
	if body.DisplayName == "" {
		body.DisplayName = "Dirección desconocida"
	}

	return &Result{DisplayName: body.DisplayName, Raw: raw}, nil
}
