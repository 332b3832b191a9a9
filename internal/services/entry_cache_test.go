package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lunover/attendly/internal/db"
	"github.com/lunover/attendly/internal/harvest"
)

type fakeRemote struct {
	entries []harvest.TimeEntry
	err     error
	calls   int
}

func (remote *fakeRemote) ListTimeEntries(ctx context.Context, from string, to string) ([]harvest.TimeEntry, error) {
	remote.calls++
	if remote.err != nil {
		return nil, remote.err
	}
	return remote.entries, nil
}

func remoteEntry(id int64, date string, hours float64) harvest.TimeEntry {
	return harvest.TimeEntry{
		ID:        id,
		SpentDate: date,
		User:      harvest.Ref{ID: 1, Name: "Ada Lovelace"},
		Project:   harvest.Ref{ID: 10, Name: "Engine"},
		Client:    harvest.Ref{ID: 20, Name: "Babbage & Co"},
		Task:      harvest.Ref{ID: 30, Name: "Development"},
		Hours:     hours,
	}
}

func newCacheUnderTest(t *testing.T, remote *fakeRemote) *EntryCache {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "attendly.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		if conn, err := database.DB(); err == nil {
			conn.Close()
		}
	})

	return NewEntryCache(remote, db.NewTimeEntryRepository(database))
}

func TestResolveFetchesAndCachesOnMiss(t *testing.T) {
	t.Parallel()

	remote := &fakeRemote{entries: []harvest.TimeEntry{
		remoteEntry(101, "2026-03-02", 8),
		remoteEntry(102, "2026-03-03", 6.5),
	}}
	cache := newCacheUnderTest(t, remote)

	entries, err := cache.Resolve(context.Background(), "2026-03-01", "2026-03-31", false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if remote.calls != 1 {
		t.Fatalf("remote called %d times, want 1", remote.calls)
	}
	for _, entry := range entries {
		if entry.Overtime != 0 {
			t.Errorf("fresh entry %d has overtime %v, want 0", entry.ID, entry.Overtime)
		}
	}

	info, err := cache.Info("2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if !info.Exists || info.EntryCount != 2 {
		t.Errorf("cache info = %+v, want 2 persisted entries", info)
	}
}

func TestResolveServesCachedRangeWithoutRemoteCall(t *testing.T) {
	t.Parallel()

	remote := &fakeRemote{entries: []harvest.TimeEntry{remoteEntry(101, "2026-03-02", 8)}}
	cache := newCacheUnderTest(t, remote)

	if _, err := cache.Resolve(context.Background(), "2026-03-01", "2026-03-31", false); err != nil {
		t.Fatalf("priming Resolve: %v", err)
	}

	entries, err := cache.Resolve(context.Background(), "2026-03-01", "2026-03-31", false)
	if err != nil {
		t.Fatalf("cached Resolve: %v", err)
	}
	if remote.calls != 1 {
		t.Fatalf("remote called %d times, want 1 (second read must hit the cache)", remote.calls)
	}
	if len(entries) != 1 || entries[0].User.Name != "Ada Lovelace" {
		t.Errorf("cached entries = %+v, want the persisted entry back", entries)
	}
}

func TestResolveCachedRangeReflectsOvertimeToggle(t *testing.T) {
	t.Parallel()

	remote := &fakeRemote{entries: []harvest.TimeEntry{remoteEntry(101, "2026-03-02", 8)}}
	cache := newCacheUnderTest(t, remote)

	if _, err := cache.Resolve(context.Background(), "2026-03-01", "2026-03-31", false); err != nil {
		t.Fatalf("priming Resolve: %v", err)
	}
	if err := cache.SetOvertime(101, "2026-03-01", "2026-03-31", true); err != nil {
		t.Fatalf("SetOvertime: %v", err)
	}

	entries, err := cache.Resolve(context.Background(), "2026-03-01", "2026-03-31", false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if entries[0].Overtime != 8 {
		t.Errorf("Overtime = %v, want the entry's full hours (8)", entries[0].Overtime)
	}

	if err := cache.SetOvertime(101, "2026-03-01", "2026-03-31", false); err != nil {
		t.Fatalf("SetOvertime off: %v", err)
	}
	entries, err = cache.Resolve(context.Background(), "2026-03-01", "2026-03-31", false)
	if err != nil {
		t.Fatalf("Resolve after toggle off: %v", err)
	}
	if entries[0].Overtime != 0 {
		t.Errorf("Overtime = %v after toggle off, want 0", entries[0].Overtime)
	}
}

func TestResolveForceRefreshRefetchesAndClearsOvertime(t *testing.T) {
	t.Parallel()

	remote := &fakeRemote{entries: []harvest.TimeEntry{remoteEntry(101, "2026-03-02", 8)}}
	cache := newCacheUnderTest(t, remote)

	if _, err := cache.Resolve(context.Background(), "2026-03-01", "2026-03-31", false); err != nil {
		t.Fatalf("priming Resolve: %v", err)
	}
	if err := cache.SetOvertime(101, "2026-03-01", "2026-03-31", true); err != nil {
		t.Fatalf("SetOvertime: %v", err)
	}

	entries, err := cache.Resolve(context.Background(), "2026-03-01", "2026-03-31", true)
	if err != nil {
		t.Fatalf("forced Resolve: %v", err)
	}
	if remote.calls != 2 {
		t.Fatalf("remote called %d times, want 2 (force refresh bypasses the cache)", remote.calls)
	}
	if entries[0].Overtime != 0 {
		t.Errorf("Overtime = %v after force refresh, want 0", entries[0].Overtime)
	}
}

func TestResolveDistinctRangeKeysAreIndependent(t *testing.T) {
	t.Parallel()

	remote := &fakeRemote{entries: []harvest.TimeEntry{remoteEntry(101, "2026-03-02", 8)}}
	cache := newCacheUnderTest(t, remote)

	ctx := context.Background()
	if _, err := cache.Resolve(ctx, "2026-03-01", "2026-03-31", false); err != nil {
		t.Fatalf("Resolve month: %v", err)
	}

	// The same entry under a narrower range is a separate cache key.
	if _, err := cache.Resolve(ctx, "2026-03-01", "2026-03-15", false); err != nil {
		t.Fatalf("Resolve half-month: %v", err)
	}
	if remote.calls != 2 {
		t.Fatalf("remote called %d times, want 2 (overlapping ranges never share cache rows)", remote.calls)
	}

	if err := cache.SetOvertime(101, "2026-03-01", "2026-03-15", true); err != nil {
		t.Fatalf("SetOvertime: %v", err)
	}

	monthEntries, err := cache.Resolve(ctx, "2026-03-01", "2026-03-31", false)
	if err != nil {
		t.Fatalf("Resolve month again: %v", err)
	}
	if monthEntries[0].Overtime != 0 {
		t.Errorf("month-range Overtime = %v, want 0 (toggle applied to a different key)", monthEntries[0].Overtime)
	}
}

func TestResolveRemoteErrorLeavesCacheUnwritten(t *testing.T) {
	t.Parallel()

	remoteErr := errors.New("harvest API error: 500 Internal Server Error")
	remote := &fakeRemote{err: remoteErr}
	cache := newCacheUnderTest(t, remote)

	if _, err := cache.Resolve(context.Background(), "2026-03-01", "2026-03-31", false); !errors.Is(err, remoteErr) {
		t.Fatalf("Resolve error = %v, want the remote error", err)
	}

	info, err := cache.Info("2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Exists {
		t.Error("failed fetch must not leave cache rows behind")
	}
}
