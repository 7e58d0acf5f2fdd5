// Package nominatim implements reverse geocoding against a Nominatim
// endpoint. The public instance enforces an absolute rate limit, so every
// request is preceded by a courtesy delay.
package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"grocery/internal/core/domain/model/checkout"
	"grocery/internal/core/domain/model/kernel"
)

const (
	// courtesyDelay is waited before every request, per the usage policy of
	// the public Nominatim instance.
	courtesyDelay = time.Second

	// requestTimeout bounds the whole reverse lookup. Past it the lookup
	// degrades to bare coordinates instead of failing the caller.
	requestTimeout = 10 * time.Second

	userAgent = "grocery-storefront/1.0"
)

// Client is a ReverseGeocoder backed by a Nominatim endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	delay      time.Duration
	timeout    time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithCourtesyDelay overrides the pre-request delay.
func WithCourtesyDelay(delay time.Duration) Option {
	return func(c *Client) {
		c.delay = delay
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a reverse geocoding client for the given base URL, e.g.
// "https://nominatim.openstreetmap.org".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		delay:      courtesyDelay,
		timeout:    requestTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// reverseResponse is the subset of the Nominatim jsonv2 payload we read.
type reverseResponse struct {
	Address struct {
		Road          string `json:"road"`
		City          string `json:"city"`
		Town          string `json:"town"`
		Village       string `json:"village"`
		County        string `json:"county"`
		StateDistrict string `json:"state_district"`
		State         string `json:"state"`
		Region        string `json:"region"`
		Postcode      string `json:"postcode"`
	} `json:"address"`
}

// Reverse resolves a point to address fields. A lookup that times out or
// fails at the network level returns the bare coordinates with no error:
// the caller still has a usable location, just without a readable address.
// Protocol-level failures (bad status, malformed payload) propagate.
func (c *Client) Reverse(ctx context.Context, point kernel.GeoPoint) (checkout.DetectedLocation, error) {
	if err := point.Validate(); err != nil {
		return checkout.DetectedLocation{}, err
	}

	select {
	case <-ctx.Done():
		return checkout.DetectedLocation{}, ctx.Err()
	case <-time.After(c.delay):
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.reverseURL(point), nil)
	if err != nil {
		return checkout.DetectedLocation{}, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return checkout.DetectedLocation{}, err
		}
		// Timeout or network failure: degrade to bare coordinates.
		return checkout.DetectedLocation{Point: point}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return checkout.DetectedLocation{}, fmt.Errorf("nominatim reverse lookup: unexpected status %d", resp.StatusCode)
	}

	var payload reverseResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return checkout.DetectedLocation{}, fmt.Errorf("nominatim reverse lookup: %w", err)
	}

	return checkout.DetectedLocation{
		Point:   point,
		Street:  payload.Address.Road,
		City:    locality(payload),
		State:   stateOrRegion(payload),
		Pincode: payload.Address.Postcode,
	}, nil
}

func (c *Client) reverseURL(point kernel.GeoPoint) string {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(point.Latitude(), 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(point.Longitude(), 'f', -1, 64))
	params.Set("format", "jsonv2")
	return c.baseURL + "/reverse?" + params.Encode()
}

// locality picks the most specific settlement name the payload carries.
func locality(payload reverseResponse) string {
	for _, candidate := range []string{
		payload.Address.City,
		payload.Address.Town,
		payload.Address.Village,
		payload.Address.County,
		payload.Address.StateDistrict,
	} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

func stateOrRegion(payload reverseResponse) string {
	if payload.Address.State != "" {
		return payload.Address.State
	}
	return payload.Address.Region
}
