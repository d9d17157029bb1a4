// Package api is a thin client for the lab inventory backend. It attaches
// the session token to every request and maps non-2xx responses to a
// single error kind carrying the server's message.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstock-id/labstock/internal/models"
)

// TokenSource provides the bearer token attached to authenticated
// requests. Absence of a token simply omits the Authorization header.
type TokenSource interface {
	Token() (string, bool)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a client for the backend at baseURL. If httpClient is
// nil a default with a 10s timeout is used.
func NewClient(baseURL string, tokens TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
	}
}

// do issues one JSON request and decodes the response into out (unless
// out is nil). Application errors and transport failures both come back
// as *Error.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Status: resp.StatusCode, Message: "unexpected response from server"}
	}
	return nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	body := map[string]string{"name": name, "email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/auth/register", body, &resp)
	return resp, err
}

func (c *Client) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	body := map[string]string{"email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp)
	return resp, err
}

func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/users/profile", nil, &user)
	return user, err
}

// ListItems fetches the caller's full inventory. The backend returns
// either a bare array or a {"data": [...]} envelope; both are accepted.
func (c *Client) ListItems(ctx context.Context) ([]models.Item, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/inventory", nil, &raw); err != nil {
		return nil, err
	}

	var items []models.Item
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}
	var envelope struct {
		Data []models.Item `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &Error{Message: "unexpected response from server"}
	}
	return envelope.Data, nil
}

func (c *Client) GetItem(ctx context.Context, id string) (models.Item, error) {
	var item models.Item
	err := c.do(ctx, http.MethodGet, "/inventory/"+id, nil, &item)
	return item, err
}

func (c *Client) CreateItem(ctx context.Context, in models.ItemInput) (models.Item, error) {
	var item models.Item
	err := c.do(ctx, http.MethodPost, "/inventory", in, &item)
	return item, err
}

func (c *Client) UpdateItem(ctx context.Context, id string, in models.ItemInput) (models.Item, error) {
	var item models.Item
	err := c.do(ctx, http.MethodPut, "/inventory/"+id, in, &item)
	return item, err
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/inventory/"+id, nil, nil)
}
