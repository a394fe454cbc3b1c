package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "rerum-inbox/1.0"
)

// Client talks to a JSON key-value store that speaks the Firebase REST
// dialect: every path is suffixed with ".json" and query parameters are JSON
// encoded.
type Client struct {
	client  *http.Client
	baseURL string
}

func New(baseURL string) *Client {
	httpClient := http.Client{
		Timeout: defaultTimeout,
	}

	c := &Client{
		client:  &httpClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
	httpClient.Transport = c
	return c
}

// Options narrows a GET to children whose orderBy field equals EqualTo.
type Options struct {
	OrderBy string
	EqualTo string
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", userAgent)
	return http.DefaultTransport.RoundTrip(req)
}

func (c *Client) endpoint(path string, opts Options) (string, error) {
	endpoint := c.baseURL
	if path != "" {
		endpoint += "/" + url.PathEscape(path)
	}
	endpoint += ".json"

	if opts.OrderBy == "" {
		return endpoint, nil
	}

	orderBy, err := json.Marshal(opts.OrderBy)
	if err != nil {
		return "", err
	}
	equalTo, err := json.Marshal(opts.EqualTo)
	if err != nil {
		return "", err
	}
	params := url.Values{}
	params.Set("orderBy", string(orderBy))
	params.Set("equalTo", string(equalTo))
	return endpoint + "?" + params.Encode(), nil
}

// Get decodes the value stored at path into response. A missing path decodes
// JSON null.
func (c *Client) Get(ctx context.Context, path string, opts Options, response any) error {
	endpoint, err := c.endpoint(path, opts)
	if err != nil {
		return fmt.Errorf("failed to build url: %v", err)
	}
	return c.HttpRequest(ctx, http.MethodGet, endpoint, nil, response)
}

type pushResponse struct {
	Name string `json:"name"`
}

// Push appends body under path and returns the key the store generated.
func (c *Client) Push(ctx context.Context, path string, body any) (string, error) {
	endpoint, err := c.endpoint(path, Options{})
	if err != nil {
		return "", fmt.Errorf("failed to build url: %v", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode body: %v", err)
	}

	var res pushResponse
	err = c.HttpRequest(ctx, http.MethodPost, endpoint, payload, &res)
	if err != nil {
		return "", err
	}
	if res.Name == "" {
		return "", fmt.Errorf("store response carries no key")
	}
	return res.Name, nil
}

func (c *Client) HttpRequest(ctx context.Context, method, endpoint string, body []byte, response any) error {
	slog.DebugContext(
		ctx, "store request",
		slog.String("method", method),
		slog.String("url", endpoint),
		slog.String("module", "client"),
	)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to perform request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	err = json.NewDecoder(resp.Body).Decode(response)
	if err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}

	return nil
}
