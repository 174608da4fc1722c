package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/seejoshsphotos/backend/internal/models"
	"github.com/seejoshsphotos/backend/internal/repositories/memory"
	"github.com/seejoshsphotos/backend/pkg/apperrors"
)

func newTestCatalog(t *testing.T) (*Catalog, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewCatalog(store, store, nil, zerolog.Nop()), store
}

func TestIngestMintsPhoto(t *testing.T) {
	catalog, store := newTestCatalog(t)
	ctx := context.Background()
	store.CreateCollection(&models.Collection{ID: "roses", Title: "Roses"})

	shotDate := time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)
	photo, err := catalog.Ingest(ctx, &models.CreatePhotoRequest{
		Title:        "Morning rose",
		Tags:         []string{" Pink", "garden", "pink", ""},
		CollectionID: "roses",
		CloudinaryID: "photos/morning-rose",
		ShotDate:     shotDate,
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if photo.ID == "" {
		t.Error("photo ID not minted")
	}
	if photo.ReactionCount != 0 || photo.SaveCount != 0 {
		t.Errorf("counters = (%d, %d), want zeros", photo.ReactionCount, photo.SaveCount)
	}
	if !photo.ShotDate.Equal(shotDate) {
		t.Errorf("shot date = %v, want %v", photo.ShotDate, shotDate)
	}
	if len(photo.Tags) != 2 || photo.Tags[0] != "pink" || photo.Tags[1] != "garden" {
		t.Errorf("tags = %v, want folded [pink garden]", photo.Tags)
	}

	stored, err := store.GetPhotoByID(ctx, photo.ID)
	if err != nil {
		t.Fatalf("ingested photo not retrievable: %v", err)
	}
	if stored.Title != "Morning rose" {
		t.Errorf("stored title = %q", stored.Title)
	}
}

func TestIngestDefaultsShotDate(t *testing.T) {
	catalog, store := newTestCatalog(t)
	store.CreateCollection(&models.Collection{ID: "roses", Title: "Roses"})

	photo, err := catalog.Ingest(context.Background(), &models.CreatePhotoRequest{
		Title:        "Untitled",
		CollectionID: "roses",
		CloudinaryID: "photos/untitled",
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if photo.ShotDate.IsZero() {
		t.Error("shot date not defaulted")
	}
}

func TestIngestUnknownCollection(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	_, err := catalog.Ingest(context.Background(), &models.CreatePhotoRequest{
		Title:        "Orphan",
		CollectionID: "missing",
		CloudinaryID: "photos/orphan",
	})
	if !apperrors.IsNotFound(err) {
		t.Errorf("unknown collection: got %v, want NotFound", err)
	}
}
