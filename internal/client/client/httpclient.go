package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/placeholder/internal/common"
)

// HTTPClient talks to the REST API rooted at baseURL.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 300 {
		var e errorResponse
		_ = json.Unmarshal(data, &e)
		return resp.StatusCode, statusError(resp.StatusCode, e.Error)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func statusError(status int, msg string) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 400 && status < 500:
		if msg == "" {
			msg = http.StatusText(status)
		}
		return fmt.Errorf("%w: %s", ErrRejected, msg)
	default:
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}
}

// Login exchanges credentials for a token.
func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (string, error) {
	req := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: string(password)}

	var resp struct {
		Token string `json:"token"`
	}

	if _, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &resp); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	return resp.Token, nil
}

// Register creates an account.
func (c *HTTPClient) Register(ctx context.Context, r Registration) (*User, error) {
	var u User
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/register", "", r, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Me returns the user the token was issued for.
func (c *HTTPClient) Me(ctx context.Context, token string) (*User, error) {
	var u User
	if _, err := c.do(ctx, http.MethodGet, "/api/users/me", token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
