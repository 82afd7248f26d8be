package coursera

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public Coursera API host.
const DefaultBaseURL = "https://www.coursera.org"

// DefaultFields is the field selector sent when the caller does not
// override it.
const DefaultFields = "name,slug,description,partnerIds,partners.v1(name),skills,workload,rating,certificates"

// Client talks to the Coursera catalog and course APIs.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a Client against the public API with a default timeout.
func NewClient() *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// get issues one GET and returns the response body. Non-2xx statuses are
// errors; there is no retry.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("coursera: build request: %w", err)
	}

	// The API rejects requests that don't look like they came from the site.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Origin", "https://www.coursera.org")
	req.Header.Set("Referer", "https://www.coursera.org/courses")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coursera: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("coursera: read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("coursera: unexpected status code %d from %s", resp.StatusCode, url)
	}
	return body, nil
}

// getJSON fetches url and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("coursera: parse response from %s: %w", url, err)
	}
	return nil
}
