package models

import "time"

// Reaction kinds form a closed set. A user holds exactly one kind per photo
// at a time; changing kind is last-write-wins and does not touch the counter.
const (
	ReactionHeart       = "heart"
	ReactionFire        = "fire"
	ReactionSparkle     = "sparkle"
	ReactionPurpleHeart = "purple-heart"
	ReactionRose        = "rose"
	ReactionEye         = "eye"
)

// ReactionKinds lists every valid reaction kind.
var ReactionKinds = []string{
	ReactionHeart,
	ReactionFire,
	ReactionSparkle,
	ReactionPurpleHeart,
	ReactionRose,
	ReactionEye,
}

// ValidReactionKind reports whether kind is a member of the closed enum.
func ValidReactionKind(kind string) bool {
	for _, k := range ReactionKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// ReactionRecord is the ledger entry for one user's reaction on one photo.
// The (user_id, photo_id) pair is unique; only the acting user and the
// ledger may create or delete it.
type ReactionRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;uniqueIndex:idx_user_photo_reaction"`
	PhotoID   string    `json:"photo_id" gorm:"index;uniqueIndex:idx_user_photo_reaction"`
	Kind      string    `json:"kind" gorm:"size:20"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveRecord is the ledger entry for one user's bookmark on one photo.
// Presence of the row means saved; there is no payload beyond the pair.
type SaveRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;uniqueIndex:idx_user_photo_save"`
	PhotoID   string    `json:"photo_id" gorm:"index;uniqueIndex:idx_user_photo_save"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReactionRequest defines the request body for reacting to a photo.
type CreateReactionRequest struct {
	Kind string `json:"kind" validate:"required,oneof=heart fire sparkle purple-heart rose eye"`
}

// EngagementState is the viewer's state on a single photo, joined onto feed
// items. Anonymous viewers always get the zero value.
type EngagementState struct {
	ReactionKind string `json:"reaction_kind,omitempty"`
	Saved        bool   `json:"saved"`
}
