package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Token is the answer of registration and login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Profile is the answer of /user_data.
type Profile struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the API at baseURL, e.g.
// "http://127.0.0.1:8000".
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Register(ctx context.Context, username, password, email string) (*Token, error) {
	form := url.Values{"username": {username}, "password": {password}, "email": {email}}
	var t Token
	if err := c.postForm(ctx, "/registration", form, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*Token, error) {
	form := url.Values{"grant_type": {"password"}, "username": {username}, "password": {password}}
	var t Token
	if err := c.postForm(ctx, "/authorization", form, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context, token string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user_data", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var p Profile
	if err := c.do(req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return newAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func newAPIError(code int, body []byte) *APIError {
	var payload struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(body, &payload)

	e := &APIError{StatusCode: code, Detail: payload.Detail}
	switch {
	case code == http.StatusBadRequest:
		e.kind = ErrRejected
	case code == http.StatusUnauthorized:
		e.kind = ErrUnauthorized
	case code == http.StatusNotFound:
		e.kind = ErrNotFound
	default:
		e.kind = ErrServer
	}
	return e
}
