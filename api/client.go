package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "http://localhost:3000/api"

// VIDHeader carries the current user identifier on every request. The
// server trusts it to decide which bookings the caller may mutate.
const VIDHeader = "X-User-VID"

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the remote booking API. It is the only bridge to
// the server; the rest of the program never sees HTTP.
type Client struct {
	httpClient HTTPClient
	baseURL    string
	vid        string
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if strings.TrimSpace(u) != "" {
			c.baseURL = u
		}
	}
}

func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithVID sets the session identifier attached to outbound requests.
func WithVID(vid string) Option {
	return func(c *Client) {
		c.vid = strings.TrimSpace(vid)
	}
}

func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func (c *Client) SetVID(vid string) {
	c.vid = strings.TrimSpace(vid)
}

func (c *Client) VID() string {
	return c.vid
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base url: %v", ErrUnexpected, err)
	}
	path = strings.TrimPrefix(path, "/")
	base.Path = strings.TrimSuffix(base.Path, "/") + "/" + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode request: %v", ErrUnexpected, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, base.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnexpected, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.vid != "" {
		req.Header.Set(VIDHeader, c.vid)
	}
	return req, nil
}

// doJSON executes the request, normalizes failures into the package's
// error taxonomy and decodes a JSON body into dest when given.
func (c *Client) doJSON(req *http.Request, dest any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: empty response body", ErrUnexpected)
		}
		return fmt.Errorf("%w: decode response: %v", ErrUnexpected, err)
	}
	return nil
}

func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		message := payload.Error
		if message == "" {
			message = payload.Message
		}
		if message != "" {
			return &ServerError{Status: resp.StatusCode, Message: message}
		}
	}
	return fmt.Errorf("%w: %s", ErrUnexpected, resp.Status)
}
