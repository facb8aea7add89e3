// Package follow holds the per-profile view model for the follow
// affordance: the state machine that keeps the rendered button and
// counters consistent with server truth.
package follow

import (
	"context"
	"errors"
	"sync"

	"github.com/bibocomdigital/bibomarket-frontend/internal/model"
	"github.com/bibocomdigital/bibomarket-frontend/internal/service"
	"github.com/bibocomdigital/bibomarket-frontend/internal/session"
)

// State of the follow affordance for one rendered profile.
type State string

const (
	StateAnonymous     State = "ANONYMOUS"
	StateLoading       State = "LOADING"
	StateNotFollowing  State = "NOT_FOLLOWING"
	StateFollowing     State = "FOLLOWING"
	StateActionPending State = "ACTION_PENDING"
	StateError         State = "ERROR"
)

// ErrActionPending means a toggle is already in flight for this view.
// The control is disabled while pending; a second invocation is a
// caller bug, not a race to win.
var ErrActionPending = errors.New("follow action already in flight")

// ErrViewClosed means the profile view was torn down; results for it
// must be discarded, not applied.
var ErrViewClosed = errors.New("view closed")

// Snapshot is what the template renders.
type Snapshot struct {
	State          State      `json:"state"`
	FollowerCount  int64      `json:"followerCount"`
	FollowingCount int64      `json:"followingCount"`
	OwnProfile     bool       `json:"ownProfile"`
	Target         model.User `json:"target,omitempty"`
	LastError      string     `json:"lastError,omitempty"`
}

// View is the follow affordance for one rendered profile. Each view
// owns its counter snapshot and following flag exclusively; separate
// views of the same profile share nothing but the backend.
type View struct {
	mu       sync.Mutex
	svc      service.FollowService
	sess     session.Session
	targetID int64

	state  State
	counts model.FollowCounts
	target model.User
	errMsg string
	closed bool
}

// NewView starts in LOADING; call Load to resolve the real state.
func NewView(svc service.FollowService, sess session.Session, targetID int64) *View {
	return &View{svc: svc, sess: sess, targetID: targetID, state: StateLoading}
}

// Load fetches the counters and, for an authenticated viewer, the
// following flag. Anonymous viewers land in ANONYMOUS with counters
// shown: the relationship query is never issued for them, so the view
// never claims NOT_FOLLOWING with certainty. A failed load lands in
// ERROR; Load may be called again as the retry affordance.
func (v *View) Load(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrViewClosed
	}
	v.state = StateLoading
	v.errMsg = ""
	sess, targetID := v.sess, v.targetID
	v.mu.Unlock()

	counts, err := v.svc.Counts(ctx, targetID)
	if err != nil {
		return v.failLoad(err)
	}

	if sess.IsAnonymous() {
		return v.finishLoad(StateAnonymous, counts)
	}
	if sess.Owns(targetID) {
		// Own profile: the control is disabled defensively, no
		// relationship to resolve.
		return v.finishLoad(StateNotFollowing, counts)
	}

	following, err := v.svc.IsFollowing(ctx, sess, targetID)
	if err != nil {
		return v.failLoad(err)
	}
	if following {
		return v.finishLoad(StateFollowing, counts)
	}
	return v.finishLoad(StateNotFollowing, counts)
}

func (v *View) finishLoad(state State, counts *model.FollowCounts) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrViewClosed
	}
	v.state = state
	v.counts = *counts
	return nil
}

func (v *View) failLoad(err error) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrViewClosed
	}
	v.state = StateError
	v.errMsg = err.Error()
	return err
}

// Toggle runs one follow/unfollow round trip. The landing state comes
// from the server-declared action, never from flipping the local flag:
// another tab may have moved the edge since this view loaded. On
// failure the view stays in its pre-action state with the backend's
// message verbatim in LastError; no count mutation survives.
func (v *View) Toggle(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrViewClosed
	}
	switch v.state {
	case StateAnonymous:
		// Short-circuit to the auth flow; the request is never issued.
		v.mu.Unlock()
		return service.ErrUnauthenticated
	case StateActionPending:
		v.mu.Unlock()
		return ErrActionPending
	case StateFollowing, StateNotFollowing:
		// actionable
	default:
		// LOADING and ERROR render a disabled control.
		v.mu.Unlock()
		return ErrActionPending
	}
	prev := v.state
	v.state = StateActionPending
	v.errMsg = ""
	sess, targetID := v.sess, v.targetID
	v.mu.Unlock()

	res, err := v.svc.Toggle(ctx, sess, targetID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		// View unmounted while the request was in flight: discard.
		return ErrViewClosed
	}
	if err != nil {
		v.state = prev
		v.errMsg = err.Error()
		return err
	}

	// Replace, never merge: flag and counter both come from the
	// response object atomically.
	switch res.Action {
	case model.ActionFollowed:
		v.state = StateFollowing
	default:
		v.state = StateNotFollowing
	}
	v.counts.FollowerCount = res.FollowerCount
	v.target = res.User
	return nil
}

// Close tears the view down. Any in-flight result is discarded rather
// than applied to a no-longer-rendered state.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}

// Snapshot returns the renderable state of the view.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{
		State:          v.state,
		FollowerCount:  v.counts.FollowerCount,
		FollowingCount: v.counts.FollowingCount,
		OwnProfile:     v.sess.Owns(v.targetID),
		Target:         v.target,
		LastError:      v.errMsg,
	}
}
