package model

// Pagination describes one page of a follower/following listing.
// Total counts live edges on the server and is the authoritative source
// for displayed counters; never derive a counter from len(items).
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// FollowAction is the server's declaration of what a toggle did.
type FollowAction string

const (
	ActionFollowed   FollowAction = "followed"
	ActionUnfollowed FollowAction = "unfollowed"
)

// ToggleResult is the authoritative post-mutation state of a follow
// edge. Callers replace their local flag and counter from it wholesale;
// a locally guessed direction may be stale (another tab can race).
type ToggleResult struct {
	Action        FollowAction `json:"action"`
	FollowerCount int64        `json:"followerCount"`
	User          User         `json:"userToFollow"`
}

// FollowCounts is a per-account counter snapshot. Derived and
// non-authoritative: always re-fetchable from the edge set.
type FollowCounts struct {
	FollowerCount  int64 `json:"followerCount"`
	FollowingCount int64 `json:"followingCount"`
}

// FollowerPage is one page of accounts following (or followed by) a target.
type FollowerPage struct {
	Items      []FollowedUser `json:"items"`
	Pagination Pagination     `json:"pagination"`
}
