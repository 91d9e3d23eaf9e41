package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxResponseBytes bounds how much of a backend body is read.
const maxResponseBytes = 10 << 20

// Client talks to the marketplace REST backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the backend rooted at baseURL (for example
// https://host/api).
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// File is an upload forwarded to the backend.
type File struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func setAuth(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
}

// call sends a JSON request and decodes a JSON response into out. A nil body
// sends no payload; a nil out discards the response.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrInvalidResponse, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	setAuth(req, token)

	return c.do(req, out)
}

// callMultipart sends fields and files as multipart/form-data. Each file is
// added as a separate part named fileField.
func (c *Client) callMultipart(ctx context.Context, method, path, token string, fields [][2]string, fileField string, files []File, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("%w: write field %s: %v", ErrTransport, f[0], err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(fileField, f.Name)
		if err != nil {
			return fmt.Errorf("%w: create file part: %v", ErrTransport, err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return fmt.Errorf("%w: copy file %s: %v", ErrTransport, f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: close multipart: %v", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	setAuth(req, token)

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		zap.S().Warnf("[API] %s %s failed: %v", req.Method, req.URL.Path, err)
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}
	zap.S().Debugf("[API] %s %s -> %d (%s)", req.Method, req.URL.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, body)}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrInvalidResponse, req.Method, req.URL.Path, err)
	}
	return nil
}

type pageEnvelope[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// decodeList accepts either a bare JSON array or a paginated envelope.
func decodeList[T any](raw json.RawMessage) (pageEnvelope[T], error) {
	var page pageEnvelope[T]
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		page.Results = []T{}
		return page, nil
	}
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &page.Results); err != nil {
			return page, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		page.Count = len(page.Results)
		return page, nil
	}
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return page, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if page.Results == nil {
		zap.S().Warnf("[API] unexpected list response: %.200s", string(trimmed))
		page.Results = []T{}
	}
	return page, nil
}

func getList[T any](ctx context.Context, c *Client, path string, query url.Values, token string) (pageEnvelope[T], error) {
	var raw json.RawMessage
	if err := c.call(ctx, http.MethodGet, path, query, token, nil, &raw); err != nil {
		return pageEnvelope[T]{}, err
	}
	return decodeList[T](raw)
}

// Ping checks that the backend answers a cheap public endpoint.
func (c *Client) Ping(ctx context.Context) error {
	err := c.call(ctx, http.MethodGet, "categories/", nil, "", nil, nil)
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status < 500 {
		// The backend answered, which is all a ping needs.
		return nil
	}
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
