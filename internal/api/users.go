package api

import (
	"context"
	"fmt"
	"net/http"
)

// User represents a backend user account
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ChangeRoleRequest represents a role change request
type ChangeRoleRequest struct {
	ID      int    `json:"id"`
	NewRole string `json:"new_role"`
}

// GetUsers retrieves all user accounts.
// The backend serves bare [id, username, role] row arrays, not objects.
func (c *Client) GetUsers(ctx context.Context) ([]User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/user/get_users", nil)
	if err != nil {
		return nil, err
	}

	var rows []tuple
	if err := parseResponse(resp, &rows); err != nil {
		return nil, err
	}
	if err := decodeTuples(rows, 3, "user"); err != nil {
		return nil, err
	}

	users := make([]User, 0, len(rows))
	for _, row := range rows {
		users = append(users, User{
			ID:       row.Int(0),
			Username: row.String(1),
			Role:     row.String(2),
		})
	}

	return users, nil
}

// ChangeRole sets a new role for the user with the given id.
// Callers refetch the user table afterwards; view state is re-derived from
// server truth, never mutated optimistically.
func (c *Client) ChangeRole(ctx context.Context, id int, newRole string) error {
	req := ChangeRoleRequest{
		ID:      id,
		NewRole: newRole,
	}

	resp, err := c.doRequest(ctx, http.MethodPut, "/user/change_role", req)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}

// DeleteUser removes the user with the given id
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	path := fmt.Sprintf("/user/delete_user/%d", id)
	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}
