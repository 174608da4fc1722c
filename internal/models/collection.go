package models

// Collection represents a curated, ordered set of photos sharing a theme,
// stored in MongoDB. PhotoIDs order is curatorial, not chronological.
// Collections are created and reordered by an administrative actor.
type Collection struct {
	ID           string   `json:"id" bson:"_id"`
	Title        string   `json:"title" bson:"title"`
	Theme        string   `json:"theme" bson:"theme"`
	Description  string   `json:"description" bson:"description"`
	PhotoIDs     []string `json:"photo_ids" bson:"photo_ids"`
	CoverPhotoID string   `json:"cover_photo_id,omitempty" bson:"cover_photo_id,omitempty"`
	Order        int      `json:"order" bson:"order"`
}
