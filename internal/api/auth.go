package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/url"

	"eventsctl/internal/errors"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a login response.
// Deployed backends answer with either access_token or token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	LegacyToken string `json:"token"`
}

// Token returns whichever token field the backend populated
func (r LoginResponse) Token() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.LegacyToken
}

// Login authenticates with the backend and returns the access token.
// Invalid credentials surface as an AuthError carrying the backend's
// message verbatim.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	req := LoginRequest{
		Username: username,
		Password: password,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/user/login", req)
	if err != nil {
		return "", err
	}

	var loginResp LoginResponse
	if err := parseResponse(resp, &loginResp); err != nil {
		return "", err
	}

	token := loginResp.Token()
	if token == "" {
		return "", errors.New(errors.ErrCodeAPIDecode, "login response carried no token")
	}

	// Automatically set the token for future requests
	c.SetToken(token)

	return token, nil
}

// Register creates a new user account.
// The backend rejects duplicates with an auth status; that is a validation
// failure from the caller's point of view, so it is remapped.
func (c *Client) Register(ctx context.Context, username, password string) error {
	req := LoginRequest{
		Username: username,
		Password: password,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/user/register", req)
	if err != nil {
		return err
	}

	if err := parseResponse(resp, nil); err != nil {
		if errors.HasCode(err, errors.ErrCodeInvalidCredentials) {
			return errors.NewValidationError(errMessage(err))
		}
		return err
	}

	return nil
}

// CheckRole fetches the raw role payload for a username.
// The payload shape varies by backend version; parsing is the role
// resolver's concern, so the raw message is passed through.
func (c *Client) CheckRole(ctx context.Context, username string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("username", username)

	resp, err := c.doRequest(ctx, http.MethodGet, "/user/check_role?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := parseResponse(resp, &raw); err != nil {
		return nil, err
	}

	return raw, nil
}

// errMessage extracts the AppError message, falling back to Error()
func errMessage(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
