package musicbrainz

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

// ErrNotFound reports a lookup for an identifier the service does not know.
var ErrNotFound = errors.New("musicbrainz: not found")

// Lookups defines the metadata operations the resolver consumes.
type Lookups interface {
	LookupRecording(ctx context.Context, recordingID string) (*Recording, error)
	LookupRelease(ctx context.Context, releaseID string) (*Release, error)
}

// Client provides access to the MusicBrainz WS/2 JSON API.
type Client struct {
	baseURL    string
	userAgent  string
	gate       *Gate
	httpClient *http.Client
}

var _ Lookups = (*Client)(nil)

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

// New creates a MusicBrainz client. Every request waits on the provided gate
// before touching the network.
func New(baseURL, userAgent string, gate *Gate, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("musicbrainz base url required")
	}
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return nil, errors.New("musicbrainz user agent required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		gate:       gate,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// LookupRecording fetches a recording with its artist credits, releases,
// release groups, and media.
func (c *Client) LookupRecording(ctx context.Context, recordingID string) (*Recording, error) {
	recordingID = strings.TrimSpace(recordingID)
	if recordingID == "" {
		return nil, errors.New("recording id must not be empty")
	}
	var payload Recording
	err := c.get(ctx, "/recording/"+url.PathEscape(recordingID), "artist-credits+releases+release-groups+media", &payload)
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

// LookupRelease fetches a release with its full ordered track listing.
func (c *Client) LookupRelease(ctx context.Context, releaseID string) (*Release, error) {
	releaseID = strings.TrimSpace(releaseID)
	if releaseID == "" {
		return nil, errors.New("release id must not be empty")
	}
	var payload Release
	err := c.get(ctx, "/release/"+url.PathEscape(releaseID), "recordings", &payload)
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, path, includes string, out any) error {
	if err := c.gate.Wait(ctx); err != nil {
		return err
	}

	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse musicbrainz url: %w", err)
	}
	params := url.Values{}
	params.Set("fmt", "json")
	if includes != "" {
		params.Set("inc", includes)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("musicbrainz lookup returned %d (latency=%v)", resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode musicbrainz response: %w", err)
	}
	return nil
}
