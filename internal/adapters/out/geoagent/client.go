// Package geoagent implements the LocationProvider port against the device
// location agent, the sidecar that brokers position fixes from the
// customer's device.
package geoagent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/ports"
)

// Failure codes the agent reports in its error payload.
const (
	codePermissionDenied    = "permission_denied"
	codePositionUnavailable = "position_unavailable"
	codeTimeout             = "timeout"
)

// Client is a LocationProvider backed by the location agent's HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a location agent client for the given base URL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// positionResponse is the agent's payload: either a fix or an error code.
type positionResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Error     string  `json:"error"`
	Message   string  `json:"message"`
}

// CurrentPosition requests a single fix. The agent owns the actual waiting;
// the request context is additionally bounded by opts.Timeout so a stuck
// agent cannot hold the caller past the configured limit.
func (c *Client) CurrentPosition(ctx context.Context, opts ports.PositionOptions) (kernel.GeoPoint, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.positionURL(opts), nil)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return kernel.GeoPoint{}, ports.ErrLocationTimeout
		}
		return kernel.GeoPoint{}, err
	}
	defer resp.Body.Close()

	var payload positionResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("location agent: %w", err)
	}

	if resp.StatusCode != http.StatusOK || payload.Error != "" {
		return kernel.GeoPoint{}, classify(payload)
	}

	return kernel.NewGeoPoint(payload.Latitude, payload.Longitude)
}

func (c *Client) positionURL(opts ports.PositionOptions) string {
	params := url.Values{}
	params.Set("highAccuracy", strconv.FormatBool(opts.HighAccuracy))
	if opts.Timeout > 0 {
		params.Set("timeoutMs", strconv.FormatInt(opts.Timeout.Milliseconds(), 10))
	}
	if opts.MaximumAge > 0 {
		params.Set("maximumAgeMs", strconv.FormatInt(opts.MaximumAge.Milliseconds(), 10))
	}
	return c.baseURL + "/position?" + params.Encode()
}

// classify maps the agent's failure codes onto the port's error taxonomy.
// Codes the agent may grow later surface as plain errors.
func classify(payload positionResponse) error {
	switch payload.Error {
	case codePermissionDenied:
		return ports.ErrLocationPermissionDenied
	case codePositionUnavailable:
		return ports.ErrLocationUnavailable
	case codeTimeout:
		return ports.ErrLocationTimeout
	default:
		if payload.Message != "" {
			return fmt.Errorf("location agent: %s", payload.Message)
		}
		return fmt.Errorf("location agent: unclassified failure %q", payload.Error)
	}
}
