package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"project-dashboard/models"
)

// Client reads the dashboard API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API rooted at baseURL, for example
// "http://localhost:5000/api".
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// APIError is a non-200 response.
type APIError struct {
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("GET %s: status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("GET %s: status %d: %s", e.Path, e.Status, e.Message)
}

func (c *Client) Assignments(ctx context.Context) ([]models.AssignmentView, error) {
	var out []models.AssignmentView
	if err := c.get(ctx, "/projectassignments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Employees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	if err := c.get(ctx, "/employees", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Projects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	if err := c.get(ctx, "/projects", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return &APIError{Path: path, Status: resp.StatusCode, Message: body.Error}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
