package analytics

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndCount(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	visits := []Visit{
		{Path: "/blog/go-basics/", IPHash: "a", Timestamp: now},
		{Path: "/blog/go-basics/", IPHash: "b", Timestamp: now},
		{Path: "/blog/travel-notes/", IPHash: "a", Referrer: "https://example.com", Timestamp: now},
	}
	for _, v := range visits {
		if err := s.RecordVisit(v); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}

	total, err := s.TotalVisits(30)
	if err != nil {
		t.Fatalf("TotalVisits: %v", err)
	}
	if total != 3 {
		t.Errorf("got %d visits, want 3", total)
	}
}

func TestTopPaths(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		if err := s.RecordVisit(Visit{Path: "/blog/popular/", IPHash: "x", Timestamp: now}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.RecordVisit(Visit{Path: "/blog/quiet/", IPHash: "x", Timestamp: now}); err != nil {
		t.Fatal(err)
	}

	top, err := s.TopPaths(10, 30)
	if err != nil {
		t.Fatalf("TopPaths: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("got %d paths, want 2", len(top))
	}
	if top[0].Path != "/blog/popular/" || top[0].Count != 3 {
		t.Errorf("top path = %+v, want /blog/popular/ with 3", top[0])
	}

	limited, err := s.TopPaths(1, 30)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("limit not applied: got %d paths", len(limited))
	}
}

func TestTimeWindowExcludesOldVisits(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	if err := s.RecordVisit(Visit{Path: "/old/", IPHash: "x", Timestamp: now.AddDate(0, 0, -60)}); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordVisit(Visit{Path: "/new/", IPHash: "x", Timestamp: now}); err != nil {
		t.Fatal(err)
	}

	total, err := s.TotalVisits(30)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Errorf("got %d visits in window, want 1", total)
	}
}

func TestPruneBefore(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	if err := s.RecordVisit(Visit{Path: "/old/", IPHash: "x", Timestamp: now.AddDate(0, 0, -400)}); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordVisit(Visit{Path: "/new/", IPHash: "x", Timestamp: now}); err != nil {
		t.Fatal(err)
	}

	if err := s.PruneBefore(now.AddDate(0, 0, -365)); err != nil {
		t.Fatalf("PruneBefore: %v", err)
	}

	total, err := s.TotalVisits(1000)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Errorf("got %d visits after prune, want 1", total)
	}
}

func TestHashIP(t *testing.T) {
	h1 := HashIP("203.0.113.7", "salt")
	h2 := HashIP("203.0.113.7", "salt")
	h3 := HashIP("203.0.113.7", "other-salt")

	if h1 != h2 {
		t.Error("same input should hash identically")
	}
	if h1 == h3 {
		t.Error("different salt should produce a different hash")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}
	if h1 == "203.0.113.7" {
		t.Error("raw IP must not appear in hash")
	}
}
