package models

import "time"

// GuestPost represents a guest-book entry (PostgreSQL). Posts are
// append-only: the message never changes after creation, and the only state
// transition is Moderated false -> true.
type GuestPost struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	AuthorID      string    `json:"author_id" gorm:"index"`
	Message       string    `json:"message" gorm:"type:text"`
	PhotoRef      string    `json:"photo_ref,omitempty" gorm:"index"`
	CollectionRef string    `json:"collection_ref,omitempty" gorm:"index"`
	Moderated     bool      `json:"moderated" gorm:"default:false;index"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}

// CreateGuestPostRequest defines the request body for writing in the guest book.
type CreateGuestPostRequest struct {
	Message       string `json:"message" validate:"required,min=1,max=1000"`
	PhotoRef      string `json:"photo_ref,omitempty"`
	CollectionRef string `json:"collection_ref,omitempty"`
}
