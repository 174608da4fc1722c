package models

import "time"

// Photo represents a single photograph in the catalog, stored in MongoDB.
// Descriptive metadata is immutable after ingest; only the engagement
// counters change, and those are a cached projection of the ledger records
// (the ledger is the source of truth).
type Photo struct {
	ID            string    `json:"id" bson:"_id"`
	Title         string    `json:"title" bson:"title"`
	Description   string    `json:"description" bson:"description"`
	Tags          []string  `json:"tags" bson:"tags"`
	Location      string    `json:"location,omitempty" bson:"location,omitempty"`
	CollectionID  string    `json:"collection_id" bson:"collection_id"`
	CloudinaryID  string    `json:"cloudinary_id" bson:"cloudinary_id"`
	ShotDate      time.Time `json:"shot_date" bson:"shot_date"`
	ReactionCount int64     `json:"reaction_count" bson:"reaction_count"`
	SaveCount     int64     `json:"save_count" bson:"save_count"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// CreatePhotoRequest defines the request body for ingesting a new photo.
type CreatePhotoRequest struct {
	Title        string    `json:"title" validate:"required,min=1,max=200"`
	Description  string    `json:"description" validate:"max=2000"`
	Tags         []string  `json:"tags" validate:"omitempty,dive,min=1,max=50"`
	Location     string    `json:"location,omitempty" validate:"max=200"`
	CollectionID string    `json:"collection_id" validate:"required"`
	CloudinaryID string    `json:"cloudinary_id" validate:"required"`
	ShotDate     time.Time `json:"shot_date"`
}
