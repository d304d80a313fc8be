package toastctl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"toastd/pkg/types"
)

// Client talks to a running toastd over its HTTP API.
type Client struct {
	base string
	http *http.Client
}

func NewClient(base string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{base: strings.TrimRight(base, "/"), http: &http.Client{Timeout: timeout}}
}

// apiError is returned for any non-2xx response.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (c *Client) Status(ctx context.Context) (types.StatusResponse, error) {
	var out types.StatusResponse
	err := c.do(ctx, http.MethodGet, "/status", nil, &out)
	return out, err
}

func (c *Client) Start(ctx context.Context) (types.StatusResponse, error) {
	var out types.StatusResponse
	err := c.do(ctx, http.MethodPost, "/toast/start", nil, &out)
	return out, err
}

func (c *Client) Stop(ctx context.Context) (types.StatusResponse, error) {
	var out types.StatusResponse
	err := c.do(ctx, http.MethodPost, "/toast/stop", nil, &out)
	return out, err
}

func (c *Client) Toast(ctx context.Context, strict bool) (types.ToastResponse, error) {
	path := "/toast"
	if strict {
		path += "?strict=1"
	}
	var out types.ToastResponse
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) Emit(ctx context.Context, ev types.AccessibilityEvent) (types.EventAck, error) {
	var out types.EventAck
	err := c.do(ctx, http.MethodPost, "/events", ev, &out)
	return out, err
}

// WaitToast polls until a toast is readable or ctx is done.
func (c *Client) WaitToast(ctx context.Context, strict bool, poll time.Duration) (types.ToastResponse, error) {
	if poll <= 0 {
		poll = 100 * time.Millisecond
	}
	for {
		resp, err := c.Toast(ctx, strict)
		if err != nil {
			if ctx.Err() != nil {
				return resp, fmt.Errorf("no toast captured: %w", ctx.Err())
			}
			return resp, err
		}
		if len(resp.Messages) > 0 {
			return resp, nil
		}
		debug("[toast] nothing yet, retrying in %s", poll)
		select {
		case <-time.After(poll):
		case <-ctx.Done():
			return resp, fmt.Errorf("no toast captured: %w", ctx.Err())
		}
	}
}

// WaitHealthy polls /healthz until it answers 200 or timeout elapses.
func (c *Client) WaitHealthy(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	for {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/healthz", nil)
		resp, err := c.http.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-time.After(50 * time.Millisecond):
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for %s/healthz", c.base)
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	debug("[http] %s %s", method, req.URL)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er types.ErrorResponse
		_ = json.Unmarshal(data, &er)
		return &apiError{Status: resp.StatusCode, Message: er.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
