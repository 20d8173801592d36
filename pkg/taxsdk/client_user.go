package taxsdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// GetUser fetches a single user.
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, errors.New("taxsdk: userID is required")
	}

	var user User
	if err := c.do(ctx, http.MethodGet, "/user/"+url.PathEscape(userID), nil, nil, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers fetches every user.
func (c *Client) ListUsers(ctx context.Context) (*UserList, error) {
	var list UserList
	if err := c.do(ctx, http.MethodGet, "/user", nil, nil, &list, http.StatusOK); err != nil {
		return nil, err
	}
	if list.Users == nil {
		list.Users = []User{}
	}
	return &list, nil
}

// CreateUser registers a user. The service answers 201 Created.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/user", nil, req, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}
