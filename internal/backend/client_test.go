package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibocomdigital/bibomarket-frontend/internal/model"
)

func TestToggleFollow(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/7/toggle-follow", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"message": "User followed successfully",
			"action": "followed",
			"followerCount": 6,
			"userToFollow": {"id": 7, "name": "shopkeeper", "role": "MERCHANT"}
		}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	res, err := c.ToggleFollow(context.Background(), "tok-123", 7)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, model.ActionFollowed, res.Action)
	assert.Equal(t, int64(6), res.FollowerCount)
	assert.Equal(t, int64(7), res.User.ID)
	assert.Equal(t, model.RoleMerchant, res.User.Role)
}

func TestToggleFollow_NotFoundMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "User not found"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.ToggleFollow(context.Background(), "tok", 999)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "User not found", apiErr.Error())
	assert.True(t, IsNotFound(err))
}

func TestListFollowers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/7/followers", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "10", r.URL.Query().Get("limit"))
		require.Empty(t, r.Header.Get("Authorization"), "public endpoint must not carry a token")
		w.Write([]byte(`{
			"followers": [
				{"id": 3, "name": "newest", "followedAt": "2026-08-20T10:00:00Z"},
				{"id": 2, "name": "older", "followedAt": "2026-08-19T10:00:00Z"}
			],
			"pagination": {"total": 12, "page": 2, "limit": 10, "pages": 2}
		}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	page, err := c.ListFollowers(context.Background(), 7, 2, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "newest", page.Items[0].Name)
	assert.Equal(t, int64(12), page.Pagination.Total)
}

func TestListFollowers_EmptyPageIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"followers": [], "pagination": {"total": 0, "page": 1, "limit": 1, "pages": 0}}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	page, err := c.ListFollowers(context.Background(), 7, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, int64(0), page.Pagination.Total)
}

func TestListFollowing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/4/following", r.URL.Path)
		w.Write([]byte(`{
			"following": [{"id": 9, "name": "brand", "followedAt": "2026-08-21T08:00:00Z"}],
			"pagination": {"total": 1, "page": 1, "limit": 20, "pages": 1}
		}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	page, err := c.ListFollowing(context.Background(), 4, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(9), page.Items[0].ID)
}

func TestIsFollowing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/7/isFollowing", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"isFollowing": true}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	following, err := c.IsFollowing(context.Background(), "tok", 7)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestSuggestedUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/suggestions", r.URL.Path)
		require.Equal(t, "3", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"suggestions": [{"id": 5, "name": "popular", "followerCount": 120}]}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	items, err := c.SuggestedUsers(context.Background(), "tok", 3)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(120), items[0].FollowerCount)
}

func TestErrorWithoutMessageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream exploded`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.IsFollowing(context.Background(), "tok", 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "backend request failed")
}
