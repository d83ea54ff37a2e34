package fingerprint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tracksort/internal/services"
)

// Match is a scored association between a fingerprint and one or more
// catalog recordings. The score is a confidence in [0,1].
type Match struct {
	ID         string      `json:"id"`
	Score      float64     `json:"score"`
	Recordings []Recording `json:"recordings"`
}

// Recording is a recording reference embedded in a match.
type Recording struct {
	ID string `json:"id"`
}

// RecordingID returns the first embedded recording identifier, or "" when
// the match carries none.
func (m Match) RecordingID() string {
	if len(m.Recordings) == 0 {
		return ""
	}
	return m.Recordings[0].ID
}

type lookupResponse struct {
	Status  string  `json:"status"`
	Results []Match `json:"results"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client queries the AcoustID lookup service.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient creates an AcoustID client.
func NewClient(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("acoustid api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("acoustid base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Lookup submits a fingerprint and returns the scored matches. A successful
// response with zero matches returns an empty slice and nil error; transport
// and service errors wrap services.ErrFingerprint.
func (c *Client) Lookup(ctx context.Context, fp Fingerprint) ([]Match, error) {
	form := url.Values{}
	form.Set("client", c.apiKey)
	form.Set("duration", strconv.Itoa(int(fp.Duration+0.5)))
	form.Set("fingerprint", fp.Fingerprint)
	form.Set("meta", "recordings releasegroups")
	form.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/lookup", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, services.Wrap(services.ErrFingerprint, "identifying", "build lookup request", "", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, services.Wrap(services.ErrFingerprint, "identifying", "acoustid lookup", fmt.Sprintf("request failed (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrFingerprint, "identifying", "acoustid lookup", fmt.Sprintf("service returned %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	var payload lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, services.Wrap(services.ErrFingerprint, "identifying", "acoustid lookup", "decode response", err)
	}
	if payload.Status != "ok" {
		detail := payload.Error.Message
		if detail == "" {
			detail = fmt.Sprintf("status %q", payload.Status)
		}
		return nil, services.Wrap(services.ErrFingerprint, "identifying", "acoustid lookup", detail, nil)
	}
	return payload.Results, nil
}
