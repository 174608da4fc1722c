package services

import (
	"context"
	"strings"
	"time"

	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/internal/repositories"
	"github.com/seejoshsphotos/backend/pkg/apperrors"
)

// GuestBook handles append-only guest-book authorship with a moderation
// gate. Posts are created pending and become publicly visible only after
// the external moderation collaborator approves them.
type GuestBook struct {
	posts       repositories.GuestPostRepository
	users       repositories.UserRepository
	photos      repositories.PhotoRepository
	collections repositories.CollectionRepository
}

// NewGuestBook creates a new GuestBook service.
func NewGuestBook(
	postRepo repositories.GuestPostRepository,
	userRepo repositories.UserRepository,
	photoRepo repositories.PhotoRepository,
	collectionRepo repositories.CollectionRepository,
) *GuestBook {
	return &GuestBook{
		posts:       postRepo,
		users:       userRepo,
		photos:      photoRepo,
		collections: collectionRepo,
	}
}

// Create appends a new pending post. The message must contain non-whitespace
// text, and any photo or collection reference must resolve. Returns the new
// post immediately; it does not block on moderation.
func (g *GuestBook) Create(ctx context.Context, authorID, message, photoRef, collectionRef string) (*models.GuestPost, error) {
	if authorID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.InvalidArgument("guest-book message is empty")
	}

	exists, err := g.users.UserExists(authorID)
	if err != nil {
		return nil, apperrors.Transient(err)
	}
	if !exists {
		return nil, apperrors.NotFound("user", authorID)
	}
	if photoRef != "" {
		exists, err := g.photos.PhotoExists(ctx, photoRef)
		if err != nil {
			return nil, apperrors.Transient(err)
		}
		if !exists {
			return nil, apperrors.NotFound("photo", photoRef)
		}
	}
	if collectionRef != "" {
		exists, err := g.collections.CollectionExists(ctx, collectionRef)
		if err != nil {
			return nil, apperrors.Transient(err)
		}
		if !exists {
			return nil, apperrors.NotFound("collection", collectionRef)
		}
	}

	post := &models.GuestPost{
		AuthorID:      authorID,
		Message:       message,
		PhotoRef:      photoRef,
		CollectionRef: collectionRef,
		Moderated:     false,
		CreatedAt:     time.Now(),
	}
	if err := g.posts.CreateGuestPost(post); err != nil {
		return nil, apperrors.Transient(err)
	}
	return post, nil
}

// ListApproved returns approved posts, newest first, optionally scoped to a
// collection.
func (g *GuestBook) ListApproved(limit int, collectionRef string) ([]models.GuestPost, error) {
	if limit <= 0 {
		return []models.GuestPost{}, nil
	}
	posts, err := g.posts.ListModerated(limit, collectionRef)
	if err != nil {
		return nil, apperrors.Transient(err)
	}
	return posts, nil
}

// Approve transitions a post from pending to approved. Idempotent on an
// already-approved post; NotFound when the post does not exist. There is no
// reverse transition.
func (g *GuestBook) Approve(postID uint) (*models.GuestPost, error) {
	post, err := g.posts.GetGuestPostByID(postID)
	if err != nil {
		return nil, err
	}
	if post.Moderated {
		return post, nil
	}
	if err := g.posts.MarkModerated(postID); err != nil {
		return nil, apperrors.Transient(err)
	}
	post.Moderated = true
	return post, nil
}
