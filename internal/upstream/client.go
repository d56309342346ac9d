package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Sentinel errors for the two response classes handlers branch on. Everything
// else surfaces as a plain error carrying the backend's message string.
var (
	// ErrUnauthorized is returned for any 401 from the backend. Handlers map
	// it to a single logout-and-redirect response instead of each screen
	// improvising its own policy.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned for a 404 from the backend.
	ErrNotFound = errors.New("not found")
)

// Client is the authenticated REST client for the flower-shop backend. It
// owns bearer propagation, JSON envelope decoding, and error-message
// extraction, so no other package talks HTTP to the backend directly.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the backend at baseURL (no trailing slash).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// FilePart is an uploaded file forwarded inside a multipart request.
type FilePart struct {
	Field    string
	Filename string
	Content  io.Reader
}

// apiError is the JSON error body the backend produces. Some endpoints use
// "message", others "error"; both are observed in the wild.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// dataEnvelope matches the {"data": ...} wrapper most backend responses use.
// Some endpoints return the payload bare, so decoding falls back to that.
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// DoJSON issues a request with an optional JSON body and decodes the response
// into out (which may be nil). token may be empty for public endpoints.
func (c *Client) DoJSON(ctx context.Context, token, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, token, out)
}

// DoMultipart issues a multipart/form-data request with the given fields and
// an optional file part, decoding the response into out.
func (c *Client) DoMultipart(ctx context.Context, token, method, path string, fields map[string]string, file *FilePart, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}
	if file != nil {
		part, err := writer.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return fmt.Errorf("failed to copy file content: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req, token, out)
}

func (c *Client) do(req *http.Request, token string, out any) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read backend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrUnauthorized, errorMessage(raw))
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, errorMessage(raw))
		default:
			return fmt.Errorf("backend returned %d: %s", resp.StatusCode, errorMessage(raw))
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	return decodeData(raw, out)
}

// errorMessage pulls the human-readable message out of an error body,
// falling back to a generic string if the body is not the expected JSON.
func errorMessage(raw []byte) string {
	var body apiError
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return "request failed"
}

// decodeData unwraps the {"data": ...} envelope when present, otherwise
// decodes the payload as-is.
func decodeData(raw []byte, out any) error {
	var env dataEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err == nil {
			return nil
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}
