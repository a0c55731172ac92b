package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"eventsctl/internal/errors"
	"eventsctl/internal/log"
)

// Client is the events backend API client
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string

	logger *log.Logger
}

// NewClient creates a new events backend API client
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log.DefaultLogger(),
	}
}

// SetToken sets the bearer token sent with subsequent requests
func (c *Client) SetToken(token string) {
	c.Token = token
}

// doRequest performs an HTTP request with authentication.
// Transport failures come back as coded network errors.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Debug("request failed",
			"method", method, "path", path, "request_id", requestID)
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "request timed out", err)
		}
		return nil, errors.NewNetworkError(err)
	}

	c.logger.Debug("request completed",
		"method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)

	return resp, nil
}

// errorDetail is the error envelope the backend sends alongside non-2xx
// statuses. FastAPI-style backends use "detail"; others use "error" or
// "message".
type errorDetail struct {
	Detail  string `json:"detail"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (d errorDetail) text() string {
	if d.Detail != "" {
		return d.Detail
	}
	if d.Error != "" {
		return d.Error
	}
	return d.Message
}

// parseResponse decodes the response body into target, mapping non-2xx
// statuses onto the error taxonomy. The backend's own message is preserved
// verbatim wherever one is present.
func parseResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		var detail errorDetail
		_ = json.Unmarshal(body, &detail)

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return errors.NewInvalidCredentialsError(detail.text())
		case http.StatusForbidden:
			msg := detail.text()
			if msg == "" {
				msg = "forbidden"
			}
			return errors.New(errors.ErrCodeForbidden, msg)
		case http.StatusNotFound:
			msg := detail.text()
			if msg == "" {
				msg = "not found"
			}
			return errors.New(errors.ErrCodeNotFound, msg)
		case http.StatusUnprocessableEntity, http.StatusBadRequest, http.StatusConflict:
			return errors.NewValidationError(detail.text())
		}

		msg := detail.text()
		if msg == "" {
			msg = string(body)
		}
		return errors.New(errors.ErrCodeAPIResponse,
			fmt.Sprintf("request failed with status %d: %s", resp.StatusCode, msg))
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return errors.Wrap(errors.ErrCodeAPIDecode, "failed to decode response", err)
		}
	}

	return nil
}
