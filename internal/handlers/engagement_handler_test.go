package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/seejoshsphotos/backend/internal/middleware"
	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/internal/repositories/memory"
	"github.com/seejoshsphotos/backend/internal/services"
	"github.com/seejoshsphotos/backend/validators"
)

// authAs stamps a fixed user onto the request context, standing in for the
// token-verifying middleware.
func authAs(userID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.ContextUserIDKey, userID)
			return next(c)
		}
	}
}

func newEngagementServer(t *testing.T, userID string) (*echo.Echo, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	ledger := services.NewLedger(store, store, store, store, zerolog.Nop())

	e := echo.New()
	e.Validator = validators.NewValidator()
	g := e.Group("", authAs(userID))
	NewEngagementHandler(ledger).RegisterEngagementRoutes(g)
	return e, store
}

func seedEngagementFixtures(t *testing.T, store *memory.Store) {
	t.Helper()
	err := store.CreatePhoto(context.Background(), &models.Photo{
		ID:           "p1",
		Title:        "Test",
		CloudinaryID: "photos/p1",
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("seeding photo: %v", err)
	}
	if err := store.EnsureUser(&models.User{ID: "alice", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestReactEndpoint(t *testing.T) {
	e, store := newEngagementServer(t, "alice")
	seedEngagementFixtures(t, store)

	rec := doJSON(e, http.MethodPost, "/photos/p1/reactions", `{"kind":"heart"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var record models.ReactionRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if record.Kind != models.ReactionHeart {
		t.Errorf("kind = %q, want heart", record.Kind)
	}

	photo, err := store.GetPhotoByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("getting photo: %v", err)
	}
	if photo.ReactionCount != 1 {
		t.Errorf("reaction count = %d, want 1", photo.ReactionCount)
	}
}

func TestReactEndpointRejectsUnknownKind(t *testing.T) {
	e, store := newEngagementServer(t, "alice")
	seedEngagementFixtures(t, store)

	rec := doJSON(e, http.MethodPost, "/photos/p1/reactions", `{"kind":"thumbs-up"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestReactEndpointUnknownPhoto(t *testing.T) {
	e, store := newEngagementServer(t, "alice")
	seedEngagementFixtures(t, store)

	rec := doJSON(e, http.MethodPost, "/photos/missing/reactions", `{"kind":"heart"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestReactEndpointAnonymous(t *testing.T) {
	e, store := newEngagementServer(t, "")
	seedEngagementFixtures(t, store)

	rec := doJSON(e, http.MethodPost, "/photos/p1/reactions", `{"kind":"heart"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSaveToggleEndpoints(t *testing.T) {
	e, store := newEngagementServer(t, "alice")
	seedEngagementFixtures(t, store)

	if rec := doJSON(e, http.MethodPost, "/photos/p1/save", ""); rec.Code != http.StatusOK {
		t.Fatalf("save status = %d, body = %s", rec.Code, rec.Body.String())
	}
	// Repeating the save must not conflict.
	if rec := doJSON(e, http.MethodPost, "/photos/p1/save", ""); rec.Code != http.StatusOK {
		t.Fatalf("repeated save status = %d", rec.Code)
	}

	rec := doJSON(e, http.MethodGet, "/photos/p1/engagement", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("engagement status = %d", rec.Code)
	}
	var state models.EngagementState
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decoding state: %v", err)
	}
	if !state.Saved {
		t.Error("state.Saved = false after save")
	}

	if rec := doJSON(e, http.MethodDelete, "/photos/p1/save", ""); rec.Code != http.StatusOK {
		t.Fatalf("unsave status = %d", rec.Code)
	}
	photo, err := store.GetPhotoByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("getting photo: %v", err)
	}
	if photo.SaveCount != 0 {
		t.Errorf("save count = %d, want 0", photo.SaveCount)
	}
}

func TestUnreactEndpointIsNoOpWithoutRecord(t *testing.T) {
	e, store := newEngagementServer(t, "alice")
	seedEngagementFixtures(t, store)

	rec := doJSON(e, http.MethodDelete, "/photos/p1/reactions", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
