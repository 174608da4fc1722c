// Package memory provides in-memory implementations of every repository
// interface. The services are written against the interfaces, so tests run
// against this store with no external dependencies.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/pkg/apperrors"
)

// Store implements all repository interfaces in memory. A single mutex
// makes each store operation atomic, mirroring the atomicity the real
// backends provide per statement.
type Store struct {
	mu            sync.Mutex
	photos        map[string]*models.Photo
	collections   map[string]*models.Collection
	reactions     map[string]*models.ReactionRecord
	saves         map[string]*models.SaveRecord
	guestPosts    map[uint]*models.GuestPost
	users         map[string]*models.User
	announcements []*models.Announcement
	nextPostID    uint
	nextRecordID  uint

	// counterErr, when set, makes every counter mutation fail. Used to
	// exercise the partial-failure repair path.
	counterErr error
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		photos:      make(map[string]*models.Photo),
		collections: make(map[string]*models.Collection),
		reactions:   make(map[string]*models.ReactionRecord),
		saves:       make(map[string]*models.SaveRecord),
		guestPosts:  make(map[uint]*models.GuestPost),
		users:       make(map[string]*models.User),
	}
}

// FailCounterWrites makes subsequent counter mutations return err. Pass nil
// to restore normal behavior.
func (s *Store) FailCounterWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counterErr = err
}

func pairKey(userID, photoID string) string {
	return userID + "|" + photoID
}

// --- PhotoRepository ---

// CreatePhoto stores a new photo.
func (s *Store) CreatePhoto(_ context.Context, photo *models.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *photo
	s.photos[photo.ID] = &cp
	return nil
}

// GetPhotoByID returns a copy of the photo or ErrNotFound.
func (s *Store) GetPhotoByID(_ context.Context, id string) (*models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	photo, ok := s.photos[id]
	if !ok {
		return nil, apperrors.NotFound("photo", id)
	}
	cp := *photo
	return &cp, nil
}

// PhotoExists reports whether the photo exists.
func (s *Store) PhotoExists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.photos[id]
	return ok, nil
}

// ListRecent returns photos by creation time descending, ties broken by ID.
func (s *Store) ListRecent(_ context.Context, limit int64) ([]models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	photos := s.allPhotos()
	sortByCreatedAtDesc(photos)
	if int64(len(photos)) > limit {
		photos = photos[:limit]
	}
	return photos, nil
}

// ListByCollection returns a collection's photos by shot date descending.
func (s *Store) ListByCollection(_ context.Context, collectionID string) ([]models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	photos := []models.Photo{}
	for _, p := range s.photos {
		if p.CollectionID == collectionID {
			photos = append(photos, *p)
		}
	}
	sort.Slice(photos, func(i, j int) bool {
		if !photos[i].ShotDate.Equal(photos[j].ShotDate) {
			return photos[i].ShotDate.After(photos[j].ShotDate)
		}
		return photos[i].ID > photos[j].ID
	})
	return photos, nil
}

// ListByTags returns photos whose tag set intersects tags, newest first.
func (s *Store) ListByTags(_ context.Context, tags []string) ([]models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(tags) == 0 {
		return []models.Photo{}, nil
	}
	query := make(map[string]bool, len(tags))
	for _, t := range tags {
		query[t] = true
	}
	photos := []models.Photo{}
	for _, p := range s.photos {
		for _, t := range p.Tags {
			if query[strings.ToLower(t)] {
				photos = append(photos, *p)
				break
			}
		}
	}
	sortByCreatedAtDesc(photos)
	return photos, nil
}

func (s *Store) allPhotos() []models.Photo {
	photos := make([]models.Photo, 0, len(s.photos))
	for _, p := range s.photos {
		photos = append(photos, *p)
	}
	return photos
}

func sortByCreatedAtDesc(photos []models.Photo) {
	sort.Slice(photos, func(i, j int) bool {
		if !photos[i].CreatedAt.Equal(photos[j].CreatedAt) {
			return photos[i].CreatedAt.After(photos[j].CreatedAt)
		}
		return photos[i].ID > photos[j].ID
	})
}

// IncrementReactionCount atomically increments the reaction counter.
func (s *Store) IncrementReactionCount(_ context.Context, photoID string) error {
	return s.addToCounter(photoID, "reaction", 1)
}

// DecrementReactionCount decrements the reaction counter, floored at zero.
func (s *Store) DecrementReactionCount(_ context.Context, photoID string) (bool, error) {
	return s.guardedDecrement(photoID, "reaction")
}

// IncrementSaveCount atomically increments the save counter.
func (s *Store) IncrementSaveCount(_ context.Context, photoID string) error {
	return s.addToCounter(photoID, "save", 1)
}

// DecrementSaveCount decrements the save counter, floored at zero.
func (s *Store) DecrementSaveCount(_ context.Context, photoID string) (bool, error) {
	return s.guardedDecrement(photoID, "save")
}

func (s *Store) addToCounter(photoID, field string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counterErr != nil {
		return s.counterErr
	}
	photo, ok := s.photos[photoID]
	if !ok {
		return apperrors.NotFound("photo", photoID)
	}
	if field == "reaction" {
		photo.ReactionCount += delta
	} else {
		photo.SaveCount += delta
	}
	return nil
}

func (s *Store) guardedDecrement(photoID, field string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counterErr != nil {
		return false, s.counterErr
	}
	photo, ok := s.photos[photoID]
	if !ok {
		return false, nil
	}
	if field == "reaction" {
		if photo.ReactionCount <= 0 {
			return false, nil
		}
		photo.ReactionCount--
	} else {
		if photo.SaveCount <= 0 {
			return false, nil
		}
		photo.SaveCount--
	}
	return true, nil
}

// SetEngagementCounts overwrites both counters (reconciliation repair only).
func (s *Store) SetEngagementCounts(_ context.Context, photoID string, reactionCount, saveCount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counterErr != nil {
		return s.counterErr
	}
	photo, ok := s.photos[photoID]
	if !ok {
		return apperrors.NotFound("photo", photoID)
	}
	photo.ReactionCount = reactionCount
	photo.SaveCount = saveCount
	return nil
}

// --- CollectionRepository ---

// CreateCollection seeds a collection (test/administrative use).
func (s *Store) CreateCollection(col *models.Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *col
	s.collections[col.ID] = &cp
}

// GetCollectionByID returns a copy of the collection or ErrNotFound.
func (s *Store) GetCollectionByID(_ context.Context, id string) (*models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.collections[id]
	if !ok {
		return nil, apperrors.NotFound("collection", id)
	}
	cp := *col
	return &cp, nil
}

// CollectionExists reports whether the collection exists.
func (s *Store) CollectionExists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.collections[id]
	return ok, nil
}

// ListCollections returns all collections ordered by display order.
func (s *Store) ListCollections(_ context.Context) ([]models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	collections := make([]models.Collection, 0, len(s.collections))
	for _, c := range s.collections {
		collections = append(collections, *c)
	}
	sort.Slice(collections, func(i, j int) bool { return collections[i].Order < collections[j].Order })
	return collections, nil
}

// --- ReactionRepository ---

// CreateReaction stores a new reaction record.
func (s *Store) CreateReaction(record *models.ReactionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRecordID++
	record.ID = s.nextRecordID
	cp := *record
	s.reactions[pairKey(record.UserID, record.PhotoID)] = &cp
	return nil
}

// GetReaction returns the record for a pair, or (nil, nil) when absent.
func (s *Store) GetReaction(userID, photoID string) (*models.ReactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.reactions[pairKey(userID, photoID)]
	if !ok {
		return nil, nil
	}
	cp := *record
	return &cp, nil
}

// UpdateReactionKind replaces the kind on an existing record.
func (s *Store) UpdateReactionKind(userID, photoID, kind string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.reactions[pairKey(userID, photoID)]; ok {
		record.Kind = kind
		record.UpdatedAt = time.Now()
	}
	return nil
}

// DeleteReaction removes the record for a pair, reporting whether it existed.
func (s *Store) DeleteReaction(userID, photoID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(userID, photoID)
	if _, ok := s.reactions[key]; !ok {
		return false, nil
	}
	delete(s.reactions, key)
	return true, nil
}

// CountReactionsByPhoto returns the reaction membership cardinality.
func (s *Store) CountReactionsByPhoto(photoID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, r := range s.reactions {
		if r.PhotoID == photoID {
			count++
		}
	}
	return count, nil
}

// GetKindsForPhotos returns the user's reaction kind per photo ID.
func (s *Store) GetKindsForPhotos(userID string, photoIDs []string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make(map[string]string)
	for _, id := range photoIDs {
		if record, ok := s.reactions[pairKey(userID, id)]; ok {
			result[id] = record.Kind
		}
	}
	return result, nil
}

// --- SaveRepository ---

// CreateSave stores a new save record.
func (s *Store) CreateSave(record *models.SaveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRecordID++
	record.ID = s.nextRecordID
	cp := *record
	s.saves[pairKey(record.UserID, record.PhotoID)] = &cp
	return nil
}

// DeleteSave removes the save record for a pair, reporting whether it existed.
func (s *Store) DeleteSave(userID, photoID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(userID, photoID)
	if _, ok := s.saves[key]; !ok {
		return false, nil
	}
	delete(s.saves, key)
	return true, nil
}

// HasSaved reports whether the user has saved the photo.
func (s *Store) HasSaved(userID, photoID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.saves[pairKey(userID, photoID)]
	return ok, nil
}

// CountSavesByPhoto returns the save membership cardinality.
func (s *Store) CountSavesByPhoto(photoID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, r := range s.saves {
		if r.PhotoID == photoID {
			count++
		}
	}
	return count, nil
}

// GetSavedIDs returns which of the given photo IDs the user has saved.
func (s *Store) GetSavedIDs(userID string, photoIDs []string) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make(map[string]bool)
	for _, id := range photoIDs {
		if _, ok := s.saves[pairKey(userID, id)]; ok {
			result[id] = true
		}
	}
	return result, nil
}

// --- GuestPostRepository ---

// CreateGuestPost stores a new guest-book post and assigns its ID.
func (s *Store) CreateGuestPost(post *models.GuestPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPostID++
	post.ID = s.nextPostID
	cp := *post
	s.guestPosts[post.ID] = &cp
	return nil
}

// GetGuestPostByID returns a copy of the post or ErrNotFound.
func (s *Store) GetGuestPostByID(id uint) (*models.GuestPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.guestPosts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *post
	return &cp, nil
}

// ListModerated returns approved posts, newest first, optionally scoped to
// a collection.
func (s *Store) ListModerated(limit int, collectionRef string) ([]models.GuestPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := []models.GuestPost{}
	for _, p := range s.guestPosts {
		if !p.Moderated {
			continue
		}
		if collectionRef != "" && p.CollectionRef != collectionRef {
			continue
		}
		posts = append(posts, *p)
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

// MarkModerated flips the moderation flag to approved.
func (s *Store) MarkModerated(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if post, ok := s.guestPosts[id]; ok {
		post.Moderated = true
	}
	return nil
}

// --- UserRepository ---

// EnsureUser creates the profile row on first sight of a UID.
func (s *Store) EnsureUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.users[user.ID]; ok {
		*user = *existing
		return nil
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

// GetUserByID returns a copy of the user or ErrNotFound.
func (s *Store) GetUserByID(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", id)
	}
	cp := *user
	return &cp, nil
}

// UserExists reports whether the user exists.
func (s *Store) UserExists(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[id]
	return ok, nil
}

// UpdateUser replaces the stored profile.
func (s *Store) UpdateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

// --- AnnouncementRepository ---

// CreateAnnouncement stores a new announcement.
func (s *Store) CreateAnnouncement(a *models.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uint(len(s.announcements) + 1)
	cp := *a
	s.announcements = append(s.announcements, &cp)
	return nil
}

// ListAnnouncements returns announcements, newest first.
func (s *Store) ListAnnouncements(limit int) ([]models.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	announcements := make([]models.Announcement, 0, len(s.announcements))
	for _, a := range s.announcements {
		announcements = append(announcements, *a)
	}
	sort.Slice(announcements, func(i, j int) bool {
		return announcements[i].CreatedAt.After(announcements[j].CreatedAt)
	})
	if len(announcements) > limit {
		announcements = announcements[:limit]
	}
	return announcements, nil
}
