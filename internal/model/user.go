package model

import "time"

// Role of a marketplace account.
type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleMerchant Role = "MERCHANT"
	RoleSupplier Role = "SUPPLIER"
)

// User is a marketplace account as the backend returns it. The ID is
// immutable; everything else may change between fetches.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar"`
	Role      Role   `json:"role"`
}

// FollowedUser is a user carried in a followers/following page together
// with the edge creation time. Pages arrive newest edge first.
type FollowedUser struct {
	User
	FollowedAt time.Time `json:"followedAt"`
}

// SuggestedUser is a follow suggestion with its current follower count.
type SuggestedUser struct {
	User
	FollowerCount int64 `json:"followerCount"`
}
