package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/extpoint/extpoint/config"
	"github.com/sony/gobreaker"
)

// ErrNotFound indicates the requested module, category or value does not
// exist on the host
var ErrNotFound = errors.New("settings: not found")

// Module is a top-level namespace in the host settings store
type Module struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category groups values inside a module
type Category struct {
	ID       string `json:"id"`
	ModuleID string `json:"module_id"`
	Name     string `json:"name"`
}

// Value is one key/value pair inside a category
type Value struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Key        string `json:"key"`
	Value      string `json:"value"`
}

// Client talks to the host settings REST API. All requests run through a
// circuit breaker so a flapping host does not stall every extension.
type Client struct {
	base  string
	token string
	http  *http.Client
	cb    *gobreaker.CircuitBreaker
}

// NewClient creates a settings client from config. Returns nil when no
// endpoint is configured; the lifecycle manager treats a nil client as
// "settings unavailable".
func NewClient(cfg *config.Settings) *Client {
	if cfg == nil || cfg.Endpoint == "" {
		return nil
	}

	timeout := 10 * time.Second
	if cfg.Timeout != "" {
		if parsed, err := time.ParseDuration(cfg.Timeout); err == nil {
			timeout = parsed
		}
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "settings",
		MaxRequests: 100,
		Interval:    5 * time.Second,
		Timeout:     3 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		// A missing record is an answer, not a host failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
	})

	return &Client{
		base:  cfg.Endpoint,
		token: cfg.Token,
		http:  &http.Client{Timeout: timeout},
		cb:    cb,
	}
}

// GetModule fetches a module by name
func (c *Client) GetModule(ctx context.Context, name string) (*Module, error) {
	var m Module
	err := c.get(ctx, "/settings/modules/"+url.PathEscape(name), &m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateModule creates a module
func (c *Client) CreateModule(ctx context.Context, name string) (*Module, error) {
	var m Module
	err := c.post(ctx, "/settings/modules", map[string]string{"name": name}, &m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// EnsureModule fetches a module, creating it when missing
func (c *Client) EnsureModule(ctx context.Context, name string) (*Module, error) {
	m, err := c.GetModule(ctx, name)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return c.CreateModule(ctx, name)
}

// GetCategory fetches a category by name within a module
func (c *Client) GetCategory(ctx context.Context, moduleID, name string) (*Category, error) {
	var cat Category
	path := fmt.Sprintf("/settings/modules/%s/categories/%s", url.PathEscape(moduleID), url.PathEscape(name))
	if err := c.get(ctx, path, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// CreateCategory creates a category within a module
func (c *Client) CreateCategory(ctx context.Context, moduleID, name string) (*Category, error) {
	var cat Category
	path := fmt.Sprintf("/settings/modules/%s/categories", url.PathEscape(moduleID))
	if err := c.post(ctx, path, map[string]string{"name": name}, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// EnsureCategory fetches a category, creating it when missing
func (c *Client) EnsureCategory(ctx context.Context, moduleID, name string) (*Category, error) {
	cat, err := c.GetCategory(ctx, moduleID, name)
	if err == nil {
		return cat, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return c.CreateCategory(ctx, moduleID, name)
}

// GetValue fetches the value stored under module/category/key
func (c *Client) GetValue(ctx context.Context, module, category, key string) (string, error) {
	var val Value
	path := fmt.Sprintf("/settings/modules/%s/categories/%s/values/%s",
		url.PathEscape(module), url.PathEscape(category), url.PathEscape(key))
	if err := c.get(ctx, path, &val); err != nil {
		return "", err
	}
	return val.Value, nil
}

// SetValue stores a value under module/category/key
func (c *Client) SetValue(ctx context.Context, module, category, key, value string) error {
	path := fmt.Sprintf("/settings/modules/%s/categories/%s/values",
		url.PathEscape(module), url.PathEscape(category))
	return c.post(ctx, path, map[string]string{"key": key, "value": value}, nil)
}

// EnsureValue returns the stored value for module/category/key, creating
// the module, category and value with the fallback when any of them is
// missing. This is the get-or-create chain admin pages run on first load.
func (c *Client) EnsureValue(ctx context.Context, module, category, key, fallback string) (string, error) {
	val, err := c.GetValue(ctx, module, category, key)
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	mod, err := c.EnsureModule(ctx, module)
	if err != nil {
		return "", err
	}
	if _, err := c.EnsureCategory(ctx, mod.ID, category); err != nil {
		return "", err
	}
	if err := c.SetValue(ctx, module, category, key, fallback); err != nil {
		return "", err
	}
	return fallback, nil
}

// get performs a GET request and decodes the JSON response
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// post performs a POST request with a JSON body and decodes the response
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// do runs one request through the circuit breaker
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	_, err := c.cb.Execute(func() (any, error) {
		var reader io.Reader
		if body != nil {
			payload, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("failed to encode request body: %w", err)
			}
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("settings request %s %s failed with status %d", method, path, resp.StatusCode)
		}

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return nil, fmt.Errorf("failed to decode response: %w", err)
			}
		}
		return nil, nil
	})
	return err
}
