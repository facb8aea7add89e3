package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibocomdigital/bibomarket-frontend/internal/model"
	"github.com/bibocomdigital/bibomarket-frontend/internal/session"
)

type fakeAPI struct {
	toggleRes   *model.ToggleResult
	toggleErr   error
	toggleCalls int

	followersTotal int64
	followingTotal int64
	lastPage       int
	lastLimit      int
	listCalls      int

	isFollowing      bool
	isFollowingCalls int

	suggestions []model.SuggestedUser
}

func (f *fakeAPI) ToggleFollow(ctx context.Context, token string, userID int64) (*model.ToggleResult, error) {
	f.toggleCalls++
	if f.toggleErr != nil {
		return nil, f.toggleErr
	}
	return f.toggleRes, nil
}

func (f *fakeAPI) ListFollowers(ctx context.Context, userID int64, page, limit int) (*model.FollowerPage, error) {
	f.listCalls++
	f.lastPage, f.lastLimit = page, limit
	return &model.FollowerPage{
		Items:      []model.FollowedUser{},
		Pagination: model.Pagination{Total: f.followersTotal, Page: page, Limit: limit},
	}, nil
}

func (f *fakeAPI) ListFollowing(ctx context.Context, userID int64, page, limit int) (*model.FollowerPage, error) {
	f.listCalls++
	f.lastPage, f.lastLimit = page, limit
	return &model.FollowerPage{
		Items:      []model.FollowedUser{},
		Pagination: model.Pagination{Total: f.followingTotal, Page: page, Limit: limit},
	}, nil
}

func (f *fakeAPI) IsFollowing(ctx context.Context, token string, userID int64) (bool, error) {
	f.isFollowingCalls++
	return f.isFollowing, nil
}

func (f *fakeAPI) SuggestedUsers(ctx context.Context, token string, limit int) ([]model.SuggestedUser, error) {
	return f.suggestions, nil
}

func testSession(t *testing.T, userID int64) session.Session {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": userID})
	signed, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	sess, err := session.FromToken(signed)
	require.NoError(t, err)
	return sess
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestToggle_AnonymousNeverHitsTheWire(t *testing.T) {
	api := &fakeAPI{}
	svc := NewFollowService(api, nil, 0)

	_, err := svc.Toggle(context.Background(), session.Anonymous(), 7)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Zero(t, api.toggleCalls)
}

func TestIsFollowing_AnonymousNeverHitsTheWire(t *testing.T) {
	api := &fakeAPI{isFollowing: true}
	svc := NewFollowService(api, nil, 0)

	_, err := svc.IsFollowing(context.Background(), session.Anonymous(), 7)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Zero(t, api.isFollowingCalls)
}

func TestToggle_ForwardsServerResult(t *testing.T) {
	api := &fakeAPI{toggleRes: &model.ToggleResult{
		Action:        model.ActionFollowed,
		FollowerCount: 6,
		User:          model.User{ID: 7, Name: "shop"},
	}}
	svc := NewFollowService(api, nil, 0)

	res, err := svc.Toggle(context.Background(), testSession(t, 42), 7)
	require.NoError(t, err)
	assert.Equal(t, model.ActionFollowed, res.Action)
	assert.Equal(t, int64(6), res.FollowerCount)
	assert.Equal(t, 1, api.toggleCalls)
}

func TestCounts_DerivedFromPaginationTotals(t *testing.T) {
	api := &fakeAPI{followersTotal: 12, followingTotal: 3}
	svc := NewFollowService(api, nil, 0)

	counts, err := svc.Counts(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(12), counts.FollowerCount)
	assert.Equal(t, int64(3), counts.FollowingCount)
	// Counter reads use limit-1 probes, never full pages.
	assert.Equal(t, 1, api.lastLimit)
}

func TestCounts_CachedInRedis(t *testing.T) {
	api := &fakeAPI{followersTotal: 5, followingTotal: 2}
	svc := NewFollowService(api, testRedis(t), time.Minute)
	ctx := context.Background()

	first, err := svc.Counts(ctx, 7)
	require.NoError(t, err)
	callsAfterFirst := api.listCalls

	second, err := svc.Counts(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, callsAfterFirst, api.listCalls, "second read must come from cache")
}

func TestToggle_InvalidatesCountSnapshots(t *testing.T) {
	api := &fakeAPI{
		followersTotal: 5,
		followingTotal: 2,
		toggleRes:      &model.ToggleResult{Action: model.ActionFollowed, FollowerCount: 6},
	}
	svc := NewFollowService(api, testRedis(t), time.Minute)
	ctx := context.Background()
	sess := testSession(t, 42)

	_, err := svc.Counts(ctx, 7)
	require.NoError(t, err)

	api.followersTotal = 6
	_, err = svc.Toggle(ctx, sess, 7)
	require.NoError(t, err)

	counts, err := svc.Counts(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(6), counts.FollowerCount, "snapshot must be re-derived after toggle")
}

func TestListings_NormalizePaging(t *testing.T) {
	api := &fakeAPI{}
	svc := NewFollowService(api, nil, 0)

	_, err := svc.Followers(context.Background(), 7, 0, -3)
	require.NoError(t, err)
	assert.Equal(t, 1, api.lastPage)
	assert.Equal(t, defaultPageSize, api.lastLimit)

	_, err = svc.Following(context.Background(), 7, 3, 50)
	require.NoError(t, err)
	assert.Equal(t, 3, api.lastPage)
	assert.Equal(t, 50, api.lastLimit)
}

func TestSuggestions(t *testing.T) {
	api := &fakeAPI{suggestions: []model.SuggestedUser{{User: model.User{ID: 5}, FollowerCount: 100}}}
	svc := NewFollowService(api, nil, 0)

	_, err := svc.Suggestions(context.Background(), session.Anonymous(), 5)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	items, err := svc.Suggestions(context.Background(), testSession(t, 42), 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(5), items[0].ID)
}
