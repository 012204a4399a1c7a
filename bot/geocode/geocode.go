// Package geocode resolves coordinates into human-readable addresses
// using the Nominatim reverse geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m3rciful/apptbot/core/logger"
	"log/slog"
)

const (
	// UnknownLocation is the placeholder address used when reverse
	// geocoding fails or returns nothing usable.
	UnknownLocation = "Unknown location"

	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "TelegramAppointmentBot/1.0"
	defaultTimeout   = 5 * time.Second
)

// Result carries the resolved address pair. Degraded marks results
// produced from a failed or empty lookup.
type Result struct {
	ShortAddress string
	FullAddress  string
	Degraded     bool
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Client    *http.Client
}

// Client performs reverse geocoding lookups.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient builds a geocoding client.
func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	httpClient := opts.Client
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      httpClient,
	}
}

type reverseResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Resolve looks up the address for the given coordinates. It never
// returns an error: any failure degrades to the placeholder address
// so the calling dialog can continue.
func (c *Client) Resolve(ctx context.Context, lat, lon float64) Result {
	start := time.Now()
	resp, err := c.reverse(ctx, lat, lon)
	took := time.Since(start)

	if err != nil {
		logger.Warn(ctx, "geocode", "reverse.fail",
			slog.String("status", "degraded"),
			slog.Float64("lat", lat),
			slog.Float64("lon", lon),
			slog.Duration("duration", logger.RoundMS(took)),
			slog.String("err", err.Error()),
		)
		return Result{ShortAddress: UnknownLocation, Degraded: true}
	}

	if resp.DisplayName == "" {
		logger.Debug(ctx, "geocode", "reverse.empty",
			slog.String("status", "degraded"),
			slog.Float64("lat", lat),
			slog.Float64("lon", lon),
			slog.Duration("duration", logger.RoundMS(took)),
		)
		return Result{ShortAddress: UnknownLocation, Degraded: true}
	}

	short := resp.Name
	if short == "" {
		short = UnknownLocation
	}
	logger.Debug(ctx, "geocode", "reverse.ok",
		slog.String("status", "ok"),
		slog.Float64("lat", lat),
		slog.Float64("lon", lon),
		slog.Duration("duration", logger.RoundMS(took)),
	)
	return Result{ShortAddress: short, FullAddress: resp.DisplayName}
}

func (c *Client) reverse(ctx context.Context, lat, lon float64) (*reverseResponse, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("zoom", "18")
	q.Set("addressdetails", "1")

	endpoint := c.baseURL + "/reverse?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var out reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
