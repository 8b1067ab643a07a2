package api

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/launchdeck/internal/models"
)

const (
	DefaultBaseURL = "https://api.spacexdata.com/v4"
	DefaultTimeout = 10 * time.Second
	userAgent      = "launchdeck/1.0"
)

// Client is a SpaceX v4 API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient creates a client for baseURL. An empty baseURL falls back to the
// public API and a non-positive timeout to DefaultTimeout. logger may be nil.
func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchLaunches fetches the full launch list
func (c *Client) FetchLaunches(ctx context.Context) ([]models.Launch, error) {
	var launches []models.Launch
	if err := c.getJSON(ctx, "/launches", nil, &launches); err != nil {
		return nil, &RemoteFetchError{Op: OpLaunches, Err: err}
	}
	// A JSON null decodes to a nil slice; only an array is a valid list
	if launches == nil {
		return nil, &RemoteFetchError{Op: OpLaunches, Err: fmt.Errorf("malformed payload: expected a launch array")}
	}
	return launches, nil
}

// FetchLaunchByID fetches one launch with its rocket populated
func (c *Client) FetchLaunchByID(ctx context.Context, id string) (*models.Launch, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &RemoteFetchError{Op: OpLaunchDetails, Err: fmt.Errorf("empty launch id")}
	}

	params := url.Values{}
	params.Set("populate", "rocket")

	var launch models.Launch
	if err := c.getJSON(ctx, "/launches/"+url.PathEscape(id), params, &launch); err != nil {
		return nil, &RemoteFetchError{Op: OpLaunchDetails, Err: err}
	}
	if launch.ID == "" {
		return nil, &RemoteFetchError{Op: OpLaunchDetails, Err: fmt.Errorf("response has no launch id")}
	}
	return &launch, nil
}

// FetchRockets fetches the rocket list, used to name rockets in list records
func (c *Client) FetchRockets(ctx context.Context) ([]models.Rocket, error) {
	var rockets []models.Rocket
	if err := c.getJSON(ctx, "/rockets", nil, &rockets); err != nil {
		return nil, &RemoteFetchError{Op: OpRockets, Err: err}
	}
	if rockets == nil {
		return nil, &RemoteFetchError{Op: OpRockets, Err: fmt.Errorf("malformed payload: expected a rocket array")}
	}
	return rockets, nil
}

// getJSON performs one GET and decodes the body into out.
// Transport errors, non-2xx statuses and malformed bodies are all errors.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logError("Failed to create request", endpoint, err)
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	if c.logger != nil {
		c.logger.Info("GET", "endpoint", endpoint)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logError("Request failed", endpoint, err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if c.logger != nil {
		c.logger.Debug("Response", "endpoint", endpoint, "status", resp.StatusCode, "elapsed", time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		c.logError("Unexpected status", endpoint, err)
		return err
	}

	// Handle gzip-compressed responses
	var reader io.Reader = resp.Body
	if strings.Contains(strings.ToLower(resp.Header.Get("Content-Encoding")), "gzip") {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		reader = gzReader
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		c.logError("Failed to read response", endpoint, err)
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.logError("Failed to parse response", endpoint, err)
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

func (c *Client) logError(msg, endpoint string, err error) {
	if c.logger != nil {
		c.logger.Error(msg, "endpoint", endpoint, "error", err)
	}
}

// AttachRocketNames fills Rocket.Name on launches whose rocket is only an ID.
// Launches are updated in place; unknown rocket IDs are left unnamed.
func AttachRocketNames(launches []models.Launch, rockets []models.Rocket) {
	if len(rockets) == 0 {
		return
	}
	names := make(map[string]string, len(rockets))
	for _, r := range rockets {
		names[r.ID] = r.Name
	}
	for i := range launches {
		if launches[i].Rocket.Name != "" {
			continue
		}
		if name, ok := names[launches[i].Rocket.ID]; ok {
			launches[i].Rocket.Name = name
		}
	}
}
