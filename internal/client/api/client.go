// Package api is a thin HTTP/JSON client for the task-list server, used by
// the interactive CLI.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Task struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken stores the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, wantStatus int) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return err
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("server: %s (%d)", e.Error, resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) SignUp(ctx context.Context, email, password, name string) (*AuthResult, error) {
	req := map[string]string{"email": email, "password": password}
	if name != "" {
		req["name"] = name
	}
	res := &AuthResult{}
	if err := c.do(ctx, http.MethodPost, "/api/auth/sign-up/email", req, res, http.StatusCreated); err != nil {
		return nil, err
	}
	c.token = res.Token
	return res, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	req := map[string]string{"email": email, "password": password}
	res := &AuthResult{}
	if err := c.do(ctx, http.MethodPost, "/api/auth/sign-in/email", req, res, http.StatusOK); err != nil {
		return nil, err
	}
	c.token = res.Token
	return res, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	res := &User{}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, res, http.StatusOK); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) CreateTask(ctx context.Context, title string) (*Task, error) {
	res := &Task{}
	if err := c.do(ctx, http.MethodPost, "/api/tasks", map[string]string{"title": title}, res, http.StatusCreated); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var res []Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &res, http.StatusOK); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) SetCompletion(ctx context.Context, id string, completed bool) (*Task, error) {
	res := &Task{}
	if err := c.do(ctx, http.MethodPatch, "/api/tasks/"+id, map[string]bool{"completed": completed}, res, http.StatusOK); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) Rename(ctx context.Context, id, title string) (*Task, error) {
	res := &Task{}
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, map[string]string{"title": title}, res, http.StatusOK); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil, http.StatusNoContent)
}

// Health checks server liveness.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, http.StatusOK)
}
