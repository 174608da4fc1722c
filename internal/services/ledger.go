package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/internal/repositories"
	"github.com/seejoshsphotos/backend/pkg/apperrors"
	"github.com/seejoshsphotos/backend/pkg/retry"
)

// Ledger maintains the per-(user, photo) membership records for both
// engagement channels and keeps the photo's denormalized counters consistent
// with them. The records are the source of truth; the counters are a cached
// projection.
//
// Each toggle serializes on its (user, photo) pair, so the record check and
// the counter increment form one unit per pair while toggles by different
// users on the same photo proceed concurrently. Counter mutations are
// relative increments applied atomically by the photo store, never absolute
// overwrites computed from a stale read.
type Ledger struct {
	photos    repositories.PhotoRepository
	reactions repositories.ReactionRepository
	saves     repositories.SaveRepository
	users     repositories.UserRepository
	log       zerolog.Logger
	retryCfg  retry.Config

	locks pairLocks

	// pending holds photo IDs whose counters diverged from membership
	// (partial failure or refused decrement) and await reconciliation.
	pending sync.Map
}

// NewLedger creates a new engagement Ledger.
func NewLedger(
	photoRepo repositories.PhotoRepository,
	reactionRepo repositories.ReactionRepository,
	saveRepo repositories.SaveRepository,
	userRepo repositories.UserRepository,
	log zerolog.Logger,
) *Ledger {
	return &Ledger{
		photos:    photoRepo,
		reactions: reactionRepo,
		saves:     saveRepo,
		users:     userRepo,
		log:       log,
		retryCfg:  retry.DefaultConfig(),
		locks:     pairLocks{entries: make(map[string]*pairLock)},
	}
}

// React records the user's reaction on a photo. First reaction creates the
// record and increments the counter; a different kind replaces the kind in
// place without touching the counter; the same kind is a no-op. Repeated
// identical calls never error.
func (l *Ledger) React(ctx context.Context, userID, photoID, kind string) (*models.ReactionRecord, error) {
	if !models.ValidReactionKind(kind) {
		return nil, apperrors.InvalidArgument("unknown reaction kind " + kind)
	}
	if err := l.checkPair(ctx, userID, photoID); err != nil {
		return nil, err
	}

	unlock := l.locks.lock(userID + "|" + photoID)
	defer unlock()

	record, err := l.reactions.GetReaction(userID, photoID)
	if err != nil {
		return nil, apperrors.Transient(err)
	}

	if record == nil {
		record = &models.ReactionRecord{
			UserID:    userID,
			PhotoID:   photoID,
			Kind:      kind,
			CreatedAt: time.Now(),
		}
		if err := l.reactions.CreateReaction(record); err != nil {
			return nil, apperrors.Transient(err)
		}
		if err := l.photos.IncrementReactionCount(ctx, photoID); err != nil {
			return record, l.counterFailure(ctx, photoID, err)
		}
		return record, nil
	}

	if record.Kind != kind {
		if err := l.reactions.UpdateReactionKind(userID, photoID, kind); err != nil {
			return nil, apperrors.Transient(err)
		}
		record.Kind = kind
	}
	return record, nil
}

// Unreact removes the user's reaction on a photo and decrements the
// counter. Without a record the call is a no-op.
func (l *Ledger) Unreact(ctx context.Context, userID, photoID string) error {
	if err := l.checkPair(ctx, userID, photoID); err != nil {
		return err
	}

	unlock := l.locks.lock(userID + "|" + photoID)
	defer unlock()

	deleted, err := l.reactions.DeleteReaction(userID, photoID)
	if err != nil {
		return apperrors.Transient(err)
	}
	if !deleted {
		return nil
	}

	applied, err := l.photos.DecrementReactionCount(ctx, photoID)
	if err != nil {
		return l.counterFailure(ctx, photoID, err)
	}
	if !applied {
		// A record existed but the counter was already at zero. The floor
		// guard kept it non-negative; the divergence itself is a ledger bug.
		l.warnDivergence(photoID, "reaction counter already at floor during decrement")
		l.scheduleRepair(ctx, photoID)
	}
	return nil
}

// Save records the user's bookmark on a photo. Saving twice is a no-op.
func (l *Ledger) Save(ctx context.Context, userID, photoID string) error {
	if err := l.checkPair(ctx, userID, photoID); err != nil {
		return err
	}

	unlock := l.locks.lock(userID + "|" + photoID)
	defer unlock()

	saved, err := l.saves.HasSaved(userID, photoID)
	if err != nil {
		return apperrors.Transient(err)
	}
	if saved {
		return nil
	}

	record := &models.SaveRecord{UserID: userID, PhotoID: photoID, CreatedAt: time.Now()}
	if err := l.saves.CreateSave(record); err != nil {
		return apperrors.Transient(err)
	}
	if err := l.photos.IncrementSaveCount(ctx, photoID); err != nil {
		return l.counterFailure(ctx, photoID, err)
	}
	return nil
}

// Unsave removes the user's bookmark. Without a record the call is a no-op.
func (l *Ledger) Unsave(ctx context.Context, userID, photoID string) error {
	if err := l.checkPair(ctx, userID, photoID); err != nil {
		return err
	}

	unlock := l.locks.lock(userID + "|" + photoID)
	defer unlock()

	deleted, err := l.saves.DeleteSave(userID, photoID)
	if err != nil {
		return apperrors.Transient(err)
	}
	if !deleted {
		return nil
	}

	applied, err := l.photos.DecrementSaveCount(ctx, photoID)
	if err != nil {
		return l.counterFailure(ctx, photoID, err)
	}
	if !applied {
		l.warnDivergence(photoID, "save counter already at floor during decrement")
		l.scheduleRepair(ctx, photoID)
	}
	return nil
}

// ReactionState returns the viewer's reaction kind on a photo, or "" when
// there is none. Anonymous viewers (empty userID) never have state.
func (l *Ledger) ReactionState(_ context.Context, userID, photoID string) (string, error) {
	if userID == "" {
		return "", nil
	}
	record, err := l.reactions.GetReaction(userID, photoID)
	if err != nil {
		return "", apperrors.Transient(err)
	}
	if record == nil {
		return "", nil
	}
	return record.Kind, nil
}

// SaveState returns whether the viewer has saved the photo. Anonymous
// viewers never have state.
func (l *Ledger) SaveState(_ context.Context, userID, photoID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	saved, err := l.saves.HasSaved(userID, photoID)
	if err != nil {
		return false, apperrors.Transient(err)
	}
	return saved, nil
}

// States returns the viewer's engagement state for a set of photos in two
// queries. For an anonymous viewer every state is absent.
func (l *Ledger) States(_ context.Context, userID string, photoIDs []string) (map[string]models.EngagementState, error) {
	states := make(map[string]models.EngagementState, len(photoIDs))
	if userID == "" {
		return states, nil
	}

	kinds, err := l.reactions.GetKindsForPhotos(userID, photoIDs)
	if err != nil {
		return nil, apperrors.Transient(err)
	}
	saved, err := l.saves.GetSavedIDs(userID, photoIDs)
	if err != nil {
		return nil, apperrors.Transient(err)
	}

	for _, id := range photoIDs {
		states[id] = models.EngagementState{ReactionKind: kinds[id], Saved: saved[id]}
	}
	return states, nil
}

// Reconcile recomputes both counters of a photo from true membership
// cardinality and overwrites them. It is idempotent and safe to run at any
// time; it is the single recovery path for counter drift.
func (l *Ledger) Reconcile(ctx context.Context, photoID string) error {
	reactionCount, err := l.reactions.CountReactionsByPhoto(photoID)
	if err != nil {
		return apperrors.Transient(err)
	}
	saveCount, err := l.saves.CountSavesByPhoto(photoID)
	if err != nil {
		return apperrors.Transient(err)
	}
	if err := l.photos.SetEngagementCounts(ctx, photoID, reactionCount, saveCount); err != nil {
		return apperrors.Transient(err)
	}
	return nil
}

// RepairPending reconciles every photo flagged after a partial failure.
// Cheap when nothing is pending; the feed composer calls it opportunistically
// before composing a page.
func (l *Ledger) RepairPending(ctx context.Context) {
	l.pending.Range(func(key, _ interface{}) bool {
		photoID := key.(string)
		err := retry.Do(ctx, l.log, "reconcile engagement counters", func() error {
			return l.Reconcile(ctx, photoID)
		}, l.retryCfg)
		if err != nil {
			l.log.Warn().Str("photo_id", photoID).Err(err).Msg("counter repair failed, will retry on next read")
			return true
		}
		l.pending.Delete(photoID)
		return true
	})
}

// checkPair validates that both sides of a toggle reference existing entities.
func (l *Ledger) checkPair(ctx context.Context, userID, photoID string) error {
	if userID == "" {
		return apperrors.ErrUnauthorized
	}
	exists, err := l.users.UserExists(userID)
	if err != nil {
		return apperrors.Transient(err)
	}
	if !exists {
		return apperrors.NotFound("user", userID)
	}
	exists, err = l.photos.PhotoExists(ctx, photoID)
	if err != nil {
		return apperrors.Transient(err)
	}
	if !exists {
		return apperrors.NotFound("photo", photoID)
	}
	return nil
}

// counterFailure handles the record-written-counter-not case: the system is
// in a detected-inconsistent state, and reconciliation is the only recovery
// path. An immediate repair is attempted; if it fails the photo stays
// flagged for the next opportunistic pass.
func (l *Ledger) counterFailure(ctx context.Context, photoID string, cause error) error {
	l.warnDivergence(photoID, "counter mutation failed after record write")
	l.pending.Store(photoID, struct{}{})

	if err := l.Reconcile(ctx, photoID); err == nil {
		l.pending.Delete(photoID)
		return nil
	}
	return apperrors.Transient(cause)
}

func (l *Ledger) scheduleRepair(ctx context.Context, photoID string) {
	l.pending.Store(photoID, struct{}{})
	if err := l.Reconcile(ctx, photoID); err == nil {
		l.pending.Delete(photoID)
	}
}

func (l *Ledger) warnDivergence(photoID, detail string) {
	l.log.Warn().
		Str("photo_id", photoID).
		Str("detail", detail).
		Msg("consistency warning: counter/membership divergence")
}

// pairLocks provides one mutex per (user, photo) pair. Entries are created
// on demand and removed when the last holder releases, so disjoint pairs
// never contend.
type pairLocks struct {
	mu      sync.Mutex
	entries map[string]*pairLock
}

type pairLock struct {
	mu   sync.Mutex
	refs int
}

func (p *pairLocks) lock(key string) (unlock func()) {
	p.mu.Lock()
	entry, ok := p.entries[key]
	if !ok {
		entry = &pairLock{}
		p.entries[key] = entry
	}
	entry.refs++
	p.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		p.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(p.entries, key)
		}
		p.mu.Unlock()
	}
}
