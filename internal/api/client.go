// Package api is a typed client for the board backend's REST API.
//
// Calls fall into two categories, mirrored by the generic helpers Query
// and Command: read-many calls degrade to an empty value on any failure so
// list views always have something to render, while single-entity reads and
// all mutations return the original error to the caller.
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

	"github.com/danielolaszy/boardctl/internal/logging"
	"github.com/danielolaszy/boardctl/internal/session"
)

// loginPath is the only endpoint called without a bearer token.
const loginPath = "/auth/login"

// Client talks to the board backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	notifier   Notifier

	Auth     *AuthService
	Projects *ProjectService
	Teams    *TeamService
	Members  *MemberService
	Tickets  *TicketService
	Labels   *LabelService
	Boards   *BoardService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithNotifier routes user-visible failure messages to n.
func WithNotifier(n Notifier) Option {
	return func(c *Client) {
		c.notifier = n
	}
}

// NewClient creates a client for the backend at baseURL. The session supplies
// the bearer token on every call and receives it on login.
func NewClient(baseURL string, sess *session.Session, opts ...Option) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if sess == nil {
		sess = session.New(nil)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		session:    sess,
		notifier:   logNotifier{},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{client: c}
	c.Projects = &ProjectService{client: c}
	c.Teams = &TeamService{client: c}
	c.Members = &MemberService{client: c}
	c.Tickets = &TicketService{client: c}
	c.Labels = &LabelService{client: c}
	c.Boards = &BoardService{client: c}

	return c, nil
}

// Session returns the session the client reads its token from.
func (c *Client) Session() *session.Session {
	return c.session
}

// do performs one HTTP call. A 2xx body is decoded into out when out is
// non-nil. Failures are logged, reported to the notifier once and returned
// as *HTTPError or *NetworkError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if path != loginPath {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	logging.Debug("api request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		netErr := &NetworkError{Method: method, Path: path, Err: err}
		logging.Error("api request failed", "method", method, "path", path, "error", err)
		notifyFailure(c.notifier, netErr)
		return netErr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		netErr := &NetworkError{Method: method, Path: path, Err: err}
		notifyFailure(c.notifier, netErr)
		return netErr
	}

	logging.Debug("api response", "status_code", resp.StatusCode, "path", path)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &HTTPError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       respBody,
		}
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &payload) == nil {
			httpErr.Message = payload.Message
		}

		logging.Error("api error response",
			"status_code", resp.StatusCode,
			"status", resp.Status,
			"url", path,
			"message", httpErr.Message)
		notifyFailure(c.notifier, httpErr)
		return httpErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response from %s %s: %w", method, path, err)
	}
	return nil
}
