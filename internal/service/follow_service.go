package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bibocomdigital/bibomarket-frontend/internal/backend"
	"github.com/bibocomdigital/bibomarket-frontend/internal/model"
	"github.com/bibocomdigital/bibomarket-frontend/internal/session"
	"github.com/bibocomdigital/bibomarket-frontend/pkg/logger"
)

// ErrUnauthenticated means the operation needs a login session. It is
// raised before any request goes to the wire; the web layer answers it
// with a login redirect, not with a backend 401.
var ErrUnauthenticated = errors.New("login required")

const defaultPageSize = 20

// FollowService is the follow relationship manager: the viewer's edge
// to a target account plus the target's aggregate counters.
type FollowService interface {
	Toggle(ctx context.Context, sess session.Session, targetID int64) (*model.ToggleResult, error)
	IsFollowing(ctx context.Context, sess session.Session, targetID int64) (bool, error)
	Followers(ctx context.Context, targetID int64, page, pageSize int) (*model.FollowerPage, error)
	Following(ctx context.Context, targetID int64, page, pageSize int) (*model.FollowerPage, error)
	Counts(ctx context.Context, targetID int64) (*model.FollowCounts, error)
	Suggestions(ctx context.Context, sess session.Session, limit int) ([]model.SuggestedUser, error)
}

type followService struct {
	api   backend.FollowAPI
	cache *countCache
}

func NewFollowService(api backend.FollowAPI, rdb *redis.Client, cacheTTL time.Duration) FollowService {
	return &followService{api: api, cache: newCountCache(rdb, cacheTTL)}
}

// Toggle flips the edge viewer -> target. Not idempotent: two calls in
// sequence follow then unfollow. The returned result is server truth;
// callers replace their local flag and counter from it wholesale.
func (s *followService) Toggle(ctx context.Context, sess session.Session, targetID int64) (*model.ToggleResult, error) {
	if sess.IsAnonymous() {
		return nil, ErrUnauthenticated
	}
	res, err := s.api.ToggleFollow(ctx, sess.Token(), targetID)
	if err != nil {
		return nil, err
	}
	// The target's counters changed; drop the snapshot so the next
	// read re-derives it. The actor's following count changed too.
	s.cache.invalidate(ctx, targetID)
	s.cache.invalidate(ctx, sess.UserID())
	logger.Info("follow toggled",
		zap.Int64("actor", sess.UserID()),
		zap.Int64("target", targetID),
		zap.String("action", string(res.Action)))
	return res, nil
}

// IsFollowing must never be asked for an anonymous viewer: an implicit
// "not following" would turn into a wrong answer the moment the viewer
// logs in. The guard is mandatory, not best-effort.
func (s *followService) IsFollowing(ctx context.Context, sess session.Session, targetID int64) (bool, error) {
	if sess.IsAnonymous() {
		return false, ErrUnauthenticated
	}
	return s.api.IsFollowing(ctx, sess.Token(), targetID)
}

func (s *followService) Followers(ctx context.Context, targetID int64, page, pageSize int) (*model.FollowerPage, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.api.ListFollowers(ctx, targetID, page, pageSize)
}

func (s *followService) Following(ctx context.Context, targetID int64, page, pageSize int) (*model.FollowerPage, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.api.ListFollowing(ctx, targetID, page, pageSize)
}

// Counts derives the counter snapshot from pagination.total of limit-1
// list calls. Total is the authoritative counter source; item slices
// are never counted.
func (s *followService) Counts(ctx context.Context, targetID int64) (*model.FollowCounts, error) {
	if counts, ok := s.cache.get(ctx, targetID); ok {
		return counts, nil
	}

	followers, err := s.api.ListFollowers(ctx, targetID, 1, 1)
	if err != nil {
		return nil, err
	}
	following, err := s.api.ListFollowing(ctx, targetID, 1, 1)
	if err != nil {
		return nil, err
	}

	counts := &model.FollowCounts{
		FollowerCount:  followers.Pagination.Total,
		FollowingCount: following.Pagination.Total,
	}
	s.cache.set(ctx, targetID, counts)
	return counts, nil
}

func (s *followService) Suggestions(ctx context.Context, sess session.Session, limit int) ([]model.SuggestedUser, error) {
	if sess.IsAnonymous() {
		return nil, ErrUnauthenticated
	}
	if limit < 1 {
		limit = 5
	}
	return s.api.SuggestedUsers(ctx, sess.Token(), limit)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return page, pageSize
}
