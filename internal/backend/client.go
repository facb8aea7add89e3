// Package backend is the HTTP client for the marketplace REST API the
// front-end is built against. It owns the wire shapes and the error
// contract; everything above it works with internal/model types.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bibocomdigital/bibomarket-frontend/internal/model"
)

// FollowAPI is the slice of the marketplace API the follow domain uses.
type FollowAPI interface {
	ToggleFollow(ctx context.Context, token string, userID int64) (*model.ToggleResult, error)
	ListFollowers(ctx context.Context, userID int64, page, limit int) (*model.FollowerPage, error)
	ListFollowing(ctx context.Context, userID int64, page, limit int) (*model.FollowerPage, error)
	IsFollowing(ctx context.Context, token string, userID int64) (bool, error)
	SuggestedUsers(ctx context.Context, token string, limit int) ([]model.SuggestedUser, error)
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ FollowAPI = (*Client)(nil)

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ToggleFollow flips the edge (current actor -> userID): create if
// absent, delete if present. Not idempotent. The response is the
// authoritative post-mutation state.
func (c *Client) ToggleFollow(ctx context.Context, token string, userID int64) (*model.ToggleResult, error) {
	path := fmt.Sprintf("/users/%d/toggle-follow", userID)
	var out struct {
		Message       string             `json:"message"`
		Action        model.FollowAction `json:"action"`
		FollowerCount int64              `json:"followerCount"`
		UserToFollow  model.User         `json:"userToFollow"`
	}
	if err := c.do(ctx, http.MethodPost, path, token, &out); err != nil {
		return nil, err
	}
	return &model.ToggleResult{
		Action:        out.Action,
		FollowerCount: out.FollowerCount,
		User:          out.UserToFollow,
	}, nil
}

// ListFollowers returns one page of accounts following userID, newest
// edge first. Public; no token.
func (c *Client) ListFollowers(ctx context.Context, userID int64, page, limit int) (*model.FollowerPage, error) {
	path := fmt.Sprintf("/users/%d/followers?%s", userID, pageQuery(page, limit))
	var out struct {
		Followers  []model.FollowedUser `json:"followers"`
		Pagination model.Pagination     `json:"pagination"`
	}
	if err := c.do(ctx, http.MethodGet, path, "", &out); err != nil {
		return nil, err
	}
	if out.Followers == nil {
		out.Followers = []model.FollowedUser{}
	}
	return &model.FollowerPage{Items: out.Followers, Pagination: out.Pagination}, nil
}

// ListFollowing returns one page of accounts userID follows, newest
// edge first. Public; no token.
func (c *Client) ListFollowing(ctx context.Context, userID int64, page, limit int) (*model.FollowerPage, error) {
	path := fmt.Sprintf("/users/%d/following?%s", userID, pageQuery(page, limit))
	var out struct {
		Following  []model.FollowedUser `json:"following"`
		Pagination model.Pagination     `json:"pagination"`
	}
	if err := c.do(ctx, http.MethodGet, path, "", &out); err != nil {
		return nil, err
	}
	if out.Following == nil {
		out.Following = []model.FollowedUser{}
	}
	return &model.FollowerPage{Items: out.Following, Pagination: out.Pagination}, nil
}

func (c *Client) IsFollowing(ctx context.Context, token string, userID int64) (bool, error) {
	path := fmt.Sprintf("/users/%d/isFollowing", userID)
	var out struct {
		IsFollowing bool `json:"isFollowing"`
	}
	if err := c.do(ctx, http.MethodGet, path, token, &out); err != nil {
		return false, err
	}
	return out.IsFollowing, nil
}

func (c *Client) SuggestedUsers(ctx context.Context, token string, limit int) ([]model.SuggestedUser, error) {
	path := "/users/suggestions?limit=" + strconv.Itoa(limit)
	var out struct {
		Suggestions []model.SuggestedUser `json:"suggestions"`
	}
	if err := c.do(ctx, http.MethodGet, path, token, &out); err != nil {
		return nil, err
	}
	if out.Suggestions == nil {
		out.Suggestions = []model.SuggestedUser{}
	}
	return out.Suggestions, nil
}

func pageQuery(page, limit int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q.Encode()
}

// do issues a request and decodes the JSON reply into target. None of
// the follow endpoints take a request body.
func (c *Client) do(ctx context.Context, method, path, token string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
