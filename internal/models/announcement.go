package models

import "time"

// Announcement represents a site announcement (PostgreSQL): a new gallery,
// weekly highlights, guest-book activity or a monthly digest. The service
// stores and lists them; delivery is out of scope.
type Announcement struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Type         string    `json:"type" gorm:"size:30;index"` // new-gallery, weekly-highlights, guest-book, monthly-digest
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	PhotoID      string    `json:"photo_id,omitempty"`
	CollectionID string    `json:"collection_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}

// CreateAnnouncementRequest defines the request body for publishing an announcement.
type CreateAnnouncementRequest struct {
	Type         string `json:"type" validate:"required,oneof=new-gallery weekly-highlights guest-book monthly-digest"`
	Title        string `json:"title" validate:"required,min=1,max=200"`
	Body         string `json:"body" validate:"required,min=1,max=2000"`
	PhotoID      string `json:"photo_id,omitempty"`
	CollectionID string `json:"collection_id,omitempty"`
}
