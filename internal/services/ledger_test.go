package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/internal/repositories/memory"
	"github.com/seejoshsphotos/backend/pkg/apperrors"
)

func newTestLedger(t *testing.T) (*Ledger, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	ledger := NewLedger(store, store, store, store, zerolog.Nop())
	return ledger, store
}

func seedPhoto(t *testing.T, store *memory.Store, id string) {
	t.Helper()
	err := store.CreatePhoto(context.Background(), &models.Photo{
		ID:           id,
		Title:        "Test photo " + id,
		CollectionID: "roses",
		CloudinaryID: "photos/" + id,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("seeding photo %s: %v", id, err)
	}
}

func seedUser(t *testing.T, store *memory.Store, id string) {
	t.Helper()
	if err := store.EnsureUser(&models.User{ID: id, CreatedAt: time.Now()}); err != nil {
		t.Fatalf("seeding user %s: %v", id, err)
	}
}

func photoCounts(t *testing.T, store *memory.Store, photoID string) (int64, int64) {
	t.Helper()
	photo, err := store.GetPhotoByID(context.Background(), photoID)
	if err != nil {
		t.Fatalf("getting photo %s: %v", photoID, err)
	}
	return photo.ReactionCount, photo.SaveCount
}

func TestReactIdempotent(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	seedPhoto(t, store, "p1")
	seedUser(t, store, "alice")

	first, err := ledger.React(ctx, "alice", "p1", models.ReactionHeart)
	if err != nil {
		t.Fatalf("first react: %v", err)
	}
	second, err := ledger.React(ctx, "alice", "p1", models.ReactionHeart)
	if err != nil {
		t.Fatalf("repeated react must not error: %v", err)
	}
	if second.Kind != first.Kind {
		t.Errorf("repeated react changed kind: %q -> %q", first.Kind, second.Kind)
	}
	if reactions, _ := photoCounts(t, store, "p1"); reactions != 1 {
		t.Errorf("reaction count after double react = %d, want 1", reactions)
	}
}

func TestReactKindReplaceKeepsCount(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	seedPhoto(t, store, "p1")
	seedUser(t, store, "alice")

	if _, err := ledger.React(ctx, "alice", "p1", models.ReactionHeart); err != nil {
		t.Fatalf("react heart: %v", err)
	}
	record, err := ledger.React(ctx, "alice", "p1", models.ReactionFire)
	if err != nil {
		t.Fatalf("react fire: %v", err)
	}
	if record.Kind != models.ReactionFire {
		t.Errorf("kind = %q, want %q", record.Kind, models.ReactionFire)
	}
	if reactions, _ := photoCounts(t, store, "p1"); reactions != 1 {
		t.Errorf("kind change must not recount, got %d", reactions)
	}
}

func TestUnreactNeverReactedIsNoOp(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	seedPhoto(t, store, "p1")
	seedUser(t, store, "alice")

	if err := ledger.Unreact(ctx, "alice", "p1"); err != nil {
		t.Fatalf("unreact without record must not error: %v", err)
	}
	if reactions, _ := photoCounts(t, store, "p1"); reactions != 0 {
		t.Errorf("reaction count = %d, want 0", reactions)
	}
}

func TestReactUnreactRoundTrip(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	seedPhoto(t, store, "p1")
	seedUser(t, store, "alice")

	if _, err := ledger.React(ctx, "alice", "p1", models.ReactionRose); err != nil {
		t.Fatalf("react: %v", err)
	}
	if err := ledger.Unreact(ctx, "alice", "p1"); err != nil {
		t.Fatalf("unreact: %v", err)
	}

	if reactions, _ := photoCounts(t, store, "p1"); reactions != 0 {
		t.Errorf("round trip left count at %d, want 0", reactions)
	}
	kind, err := ledger.ReactionState(ctx, "alice", "p1")
	if err != nil {
		t.Fatalf("reaction state: %v", err)
	}
	if kind != "" {
		t.Errorf("record still present after unreact: %q", kind)
	}
}

func TestConcurrentReactsByDistinctUsers(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	seedPhoto(t, store, "p1")

	const n = 32
	userIDs := make([]string, n)
	for i := range userIDs {
		userIDs[i] = fmt.Sprintf("user-%02d", i)
		seedUser(t, store, userIDs[i])
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, userID := range userIDs {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			if _, err := ledger.React(ctx, userID, "p1", models.ReactionHeart); err != nil {
				errs <- err
			}
		}(userID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent react: %v", err)
	}

	if reactions, _ := photoCounts(t, store, "p1"); reactions != n {
		t.Errorf("reaction count = %d, want %d", reactions, n)
	}
}

// The concrete toggle scenario: A hearts, A switches to fire, B hearts,
// A un-reacts.
func TestEngagementScenario(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	seedPhoto(t, store, "x")
	seedUser(t, store, "a")
	seedUser(t, store, "b")

	if _, err := ledger.React(ctx, "a", "x", models.ReactionHeart); err != nil {
		t.Fatalf("A heart: %v", err)
	}
	if reactions, _ := photoCounts(t, store, "x"); reactions != 1 {
		t.Fatalf("after A heart, count = %d, want 1", reactions)
	}

	if _, err := ledger.React(ctx, "a", "x", models.ReactionFire); err != nil {
		t.Fatalf("A fire: %v", err)
	}
	if reactions, _ := photoCounts(t, store, "x"); reactions != 1 {
		t.Fatalf("after A kind change, count = %d, want 1", reactions)
	}
	if kind, _ := ledger.ReactionState(ctx, "a", "x"); kind != models.ReactionFire {
		t.Fatalf("A state = %q, want %q", kind, models.ReactionFire)
	}

	if _, err := ledger.React(ctx, "b", "x", models.ReactionHeart); err != nil {
		t.Fatalf("B heart: %v", err)
	}
	if reactions, _ := photoCounts(t, store, "x"); reactions != 2 {
		t.Fatalf("after B heart, count = %d, want 2", reactions)
	}

	if err := ledger.Unreact(ctx, "a", "x"); err != nil {
		t.Fatalf("A unreact: %v", err)
	}
	if reactions, _ := photoCounts(t, store, "x"); reactions != 1 {
		t.Errorf("after A unreact, count = %d, want 1", reactions)
	}
	if kind, _ := ledger.ReactionState(ctx, "b", "x"); kind != models.ReactionHeart {
		t.Errorf("B state = %q, want %q", kind, models.ReactionHeart)
	}
	if kind, _ := ledger.ReactionState(ctx, "a", "x"); kind != "" {
		t.Errorf("A state = %q, want absent", kind)
	}
}

func TestSavesAreIndependentOfReactions(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	seedPhoto(t, store, "p1")
	seedUser(t, store, "alice")

	if err := ledger.Save(ctx, "alice", "p1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := ledger.Save(ctx, "alice", "p1"); err != nil {
		t.Fatalf("repeated save must not error: %v", err)
	}

	reactions, saves := photoCounts(t, store, "p1")
	if reactions != 0 || saves != 1 {
		t.Errorf("counts = (%d, %d), want (0, 1)", reactions, saves)
	}

	if err := ledger.Unsave(ctx, "alice", "p1"); err != nil {
		t.Fatalf("unsave: %v", err)
	}
	if err := ledger.Unsave(ctx, "alice", "p1"); err != nil {
		t.Fatalf("repeated unsave must not error: %v", err)
	}
	if _, saves := photoCounts(t, store, "p1"); saves != 0 {
		t.Errorf("save count = %d, want 0", saves)
	}
}

func TestReactValidation(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	seedPhoto(t, store, "p1")
	seedUser(t, store, "alice")

	if _, err := ledger.React(ctx, "alice", "p1", "thumbs-up"); !apperrors.IsInvalidArgument(err) {
		t.Errorf("unknown kind: got %v, want InvalidArgument", err)
	}
	if _, err := ledger.React(ctx, "alice", "missing", models.ReactionHeart); !apperrors.IsNotFound(err) {
		t.Errorf("unknown photo: got %v, want NotFound", err)
	}
	if _, err := ledger.React(ctx, "nobody", "p1", models.ReactionHeart); !apperrors.IsNotFound(err) {
		t.Errorf("unknown user: got %v, want NotFound", err)
	}
	if _, err := ledger.React(ctx, "", "p1", models.ReactionHeart); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("anonymous react: got %v, want ErrUnauthorized", err)
	}
}

func TestAnonymousViewerHasNoState(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	seedPhoto(t, store, "p1")

	kind, err := ledger.ReactionState(ctx, "", "p1")
	if err != nil || kind != "" {
		t.Errorf("anonymous reaction state = (%q, %v), want absent", kind, err)
	}
	saved, err := ledger.SaveState(ctx, "", "p1")
	if err != nil || saved {
		t.Errorf("anonymous save state = (%v, %v), want absent", saved, err)
	}
}

func TestReconcileHealsPartialFailure(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	seedPhoto(t, store, "p1")
	seedUser(t, store, "alice")

	storeDown := errors.New("store unavailable")
	store.FailCounterWrites(storeDown)

	// Record write succeeds, counter write fails, immediate repair fails:
	// the call surfaces a retryable failure and the photo stays flagged.
	if _, err := ledger.React(ctx, "alice", "p1", models.ReactionHeart); !apperrors.IsTransient(err) {
		t.Fatalf("react during counter outage: got %v, want TransientStoreFailure", err)
	}

	store.FailCounterWrites(nil)
	if reactions, _ := photoCounts(t, store, "p1"); reactions != 0 {
		t.Fatalf("counter mutated despite failure injection: %d", reactions)
	}

	ledger.RepairPending(ctx)

	if reactions, _ := photoCounts(t, store, "p1"); reactions != 1 {
		t.Errorf("count after repair = %d, want 1", reactions)
	}
	if kind, _ := ledger.ReactionState(ctx, "alice", "p1"); kind != models.ReactionHeart {
		t.Errorf("record lost during repair: %q", kind)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	seedPhoto(t, store, "p1")
	seedUser(t, store, "alice")
	seedUser(t, store, "bob")

	if _, err := ledger.React(ctx, "alice", "p1", models.ReactionHeart); err != nil {
		t.Fatalf("react: %v", err)
	}
	if err := ledger.Save(ctx, "bob", "p1"); err != nil {
		t.Fatalf("save: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := ledger.Reconcile(ctx, "p1"); err != nil {
			t.Fatalf("reconcile run %d: %v", i, err)
		}
	}

	reactions, saves := photoCounts(t, store, "p1")
	if reactions != 1 || saves != 1 {
		t.Errorf("counts after repeated reconcile = (%d, %d), want (1, 1)", reactions, saves)
	}
}

func TestDecrementFloorTriggersRepair(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	seedPhoto(t, store, "p1")
	seedUser(t, store, "alice")

	if _, err := ledger.React(ctx, "alice", "p1", models.ReactionHeart); err != nil {
		t.Fatalf("react: %v", err)
	}
	// Simulate external counter drift down to the floor.
	if err := store.SetEngagementCounts(ctx, "p1", 0, 0); err != nil {
		t.Fatalf("forcing drift: %v", err)
	}

	// The floor guard must refuse to go negative, and the repair recomputes
	// the true cardinality (zero, since the record is gone).
	if err := ledger.Unreact(ctx, "alice", "p1"); err != nil {
		t.Fatalf("unreact at floor: %v", err)
	}
	if reactions, _ := photoCounts(t, store, "p1"); reactions != 0 {
		t.Errorf("count = %d, want 0", reactions)
	}
}

func TestStatesBatchJoin(t *testing.T) {
	ledger, store := newTestLedger(t)
	ctx := context.Background()
	seedPhoto(t, store, "p1")
	seedPhoto(t, store, "p2")
	seedPhoto(t, store, "p3")
	seedUser(t, store, "alice")

	if _, err := ledger.React(ctx, "alice", "p1", models.ReactionSparkle); err != nil {
		t.Fatalf("react: %v", err)
	}
	if err := ledger.Save(ctx, "alice", "p2"); err != nil {
		t.Fatalf("save: %v", err)
	}

	states, err := ledger.States(ctx, "alice", []string{"p1", "p2", "p3"})
	if err != nil {
		t.Fatalf("states: %v", err)
	}
	if got := states["p1"]; got.ReactionKind != models.ReactionSparkle || got.Saved {
		t.Errorf("p1 state = %+v", got)
	}
	if got := states["p2"]; got.ReactionKind != "" || !got.Saved {
		t.Errorf("p2 state = %+v", got)
	}
	if got := states["p3"]; got.ReactionKind != "" || got.Saved {
		t.Errorf("p3 state = %+v", got)
	}
}
