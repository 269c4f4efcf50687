// Package console is the admin side of biolink: an API client, a working copy
// of every record and the drafts the operator edits.
package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/Anggahrm/biolink/internal/models"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

type Client struct {
	baseURL *url.URL
	hc      *http.Client
}

type ClientOptions struct {
	Addr    string
	Timeout time.Duration
	// HTTPClient overrides the default client. Its jar must be set for
	// sessions to persist.
	HTTPClient *http.Client
}

func NewClient(opt ClientOptions) (*Client, error) {
	if opt.Addr == "" {
		return nil, errors.New("addr is required")
	}
	if !strings.Contains(opt.Addr, "://") {
		opt.Addr = "http://" + opt.Addr
	}
	u, err := url.Parse(opt.Addr)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, errors.New("invalid addr")
	}

	hc := opt.HTTPClient
	if hc == nil {
		jar, _ := cookiejar.New(nil)
		timeout := opt.Timeout
		if timeout == 0 {
			timeout = 20 * time.Second
		}
		hc = &http.Client{Jar: jar, Timeout: timeout}
	}
	return &Client{baseURL: u, hc: hc}, nil
}

// Addr is the server origin the client talks to.
func (c *Client) Addr() string {
	return c.baseURL.Scheme + "://" + c.baseURL.Host
}

func (c *Client) Login(ctx context.Context, password string) error {
	req := struct {
		Password string `json:"password"`
	}{Password: password}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/login", req, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) Authenticated(ctx context.Context) (bool, error) {
	var resp struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/session", nil, &resp); err != nil {
		return false, err
	}
	return resp.Authenticated, nil
}

// Content fetches every record, inactive ones included.
func (c *Client) Content(ctx context.Context) (models.Content, error) {
	var content models.Content
	err := c.doJSON(ctx, http.MethodGet, "/api/admin/content", nil, &content)
	return content, err
}

func (c *Client) CreateLink(ctx context.Context, p models.LinkPatch) (models.Link, error) {
	var l models.Link
	err := c.doJSON(ctx, http.MethodPost, "/api/links", p, &l)
	return l, err
}

func (c *Client) UpdateLink(ctx context.Context, id string, p models.LinkPatch) (models.Link, error) {
	var l models.Link
	err := c.doJSON(ctx, http.MethodPut, "/api/links/"+url.PathEscape(id), p, &l)
	return l, err
}

func (c *Client) DeleteLink(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/links/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CreateTrack(ctx context.Context, p models.TrackPatch) (models.Track, error) {
	var t models.Track
	err := c.doJSON(ctx, http.MethodPost, "/api/music", p, &t)
	return t, err
}

func (c *Client) UpdateTrack(ctx context.Context, id string, p models.TrackPatch) (models.Track, error) {
	var t models.Track
	err := c.doJSON(ctx, http.MethodPut, "/api/music/"+url.PathEscape(id), p, &t)
	return t, err
}

func (c *Client) DeleteTrack(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/music/"+url.PathEscape(id), nil, nil)
}

func (c *Client) UpdateProfile(ctx context.Context, p models.ProfilePatch) (models.Profile, error) {
	var pr models.Profile
	err := c.doJSON(ctx, http.MethodPut, "/api/profile", p, &pr)
	return pr, err
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(b)
	}
	u := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, u.String(), buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var er struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&er)
		return &APIError{Status: resp.StatusCode, Message: er.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
