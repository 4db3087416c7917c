package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lewieville/g1-creative-sub000/internal/domain"
)

func newTestStore(t *testing.T) Repository {
	t.Helper()
	repo, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("Close() failed: %v", err)
		}
	})
	return repo
}

func TestProfileRoundTrip(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	last := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	want := &domain.BehaviorProfile{
		HasViewedPricing: true,
		TimeOnSite:       75,
		VisitCount:       3,
		LastVisitDate:    &last,
	}

	if err := repo.UpsertProfile(ctx, "v1", want); err != nil {
		t.Fatalf("UpsertProfile() failed: %v", err)
	}

	got, err := repo.GetProfile(ctx, "v1")
	if err != nil {
		t.Fatalf("GetProfile() failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetProfile() returned nil for stored profile")
	}
	if got.VisitCount != 3 || !got.HasViewedPricing || got.TimeOnSite != 75 {
		t.Errorf("GetProfile() = %+v, want %+v", got, want)
	}
	if got.LastVisitDate == nil || !got.LastVisitDate.Equal(last) {
		t.Errorf("LastVisitDate = %v, want %v", got.LastVisitDate, last)
	}
}

func TestGetProfileMissing(t *testing.T) {
	repo := newTestStore(t)

	got, err := repo.GetProfile(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("GetProfile() failed: %v", err)
	}
	if got != nil {
		t.Errorf("GetProfile() = %+v, want nil for unknown visitor", got)
	}
}

func TestUpsertProfileReplacesExisting(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	if err := repo.UpsertProfile(ctx, "v1", &domain.BehaviorProfile{VisitCount: 1}); err != nil {
		t.Fatalf("first UpsertProfile() failed: %v", err)
	}
	if err := repo.UpsertProfile(ctx, "v1", &domain.BehaviorProfile{VisitCount: 2, TimeOnSite: 10}); err != nil {
		t.Fatalf("second UpsertProfile() failed: %v", err)
	}

	got, err := repo.GetProfile(ctx, "v1")
	if err != nil {
		t.Fatalf("GetProfile() failed: %v", err)
	}
	if got == nil || got.VisitCount != 2 || got.TimeOnSite != 10 {
		t.Errorf("GetProfile() = %+v, want replaced profile", got)
	}
}

func TestGetProfileCorruptRowTreatedAsAbsent(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	sqlStore := repo.(*SQLiteStore)
	_, err := sqlStore.db.ExecContext(ctx,
		`INSERT INTO behavior_profiles (visitor_id, profile_json, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		"v1", "{not json", time.Now().Unix(), time.Now().Unix())
	if err != nil {
		t.Fatalf("inserting corrupt row failed: %v", err)
	}

	got, err := repo.GetProfile(ctx, "v1")
	if err != nil {
		t.Fatalf("GetProfile() failed on corrupt row: %v", err)
	}
	if got != nil {
		t.Errorf("GetProfile() = %+v, want nil for corrupt row", got)
	}
}

func TestBehaviorStoreAdapter(t *testing.T) {
	repo := newTestStore(t)
	bs := NewBehaviorStore(repo)
	ctx := context.Background()

	_, found, err := bs.Read(ctx, "v1")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if found {
		t.Error("Read() found = true for unseen visitor")
	}

	if err := bs.Write(ctx, "v1", domain.BehaviorProfile{VisitCount: 5}); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	p, found, err := bs.Read(ctx, "v1")
	if err != nil {
		t.Fatalf("Read() after Write() failed: %v", err)
	}
	if !found || p.VisitCount != 5 {
		t.Errorf("Read() = %+v found=%v, want stored profile", p, found)
	}
}

func TestPing(t *testing.T) {
	repo := newTestStore(t)
	if err := repo.Ping(context.Background()); err != nil {
		t.Errorf("Ping() failed: %v", err)
	}
}
