package services

import (
	"context"
	"time"

	"github.com/lunover/attendly/internal/db"
	"github.com/lunover/attendly/internal/harvest"
	"github.com/lunover/attendly/internal/models"
)

// Entry is a remote time entry carrying its local overtime annotation.
// Overtime is either 0 or the entry's full hours; the remote source knows
// nothing about it.
type Entry struct {
	harvest.TimeEntry
	Overtime float64 `json:"overtime"`
}

// RemoteEntrySource is the paginated remote fetch the cache falls back to.
type RemoteEntrySource interface {
	ListTimeEntries(ctx context.Context, from string, to string) ([]harvest.TimeEntry, error)
}

// EntryCacheRepository is the slice of the local store the cache decision
// needs.
type EntryCacheRepository interface {
	ReplaceForRange(entries []models.CachedTimeEntry, rangeStart string, rangeEnd string) error
	ListByRange(rangeStart string, rangeEnd string) ([]models.CachedTimeEntry, error)
	DeleteRange(rangeStart string, rangeEnd string) error
	RangeInfo(rangeStart string, rangeEnd string) (db.RangeInfo, error)
	SetOvertime(entryID int64, rangeStart string, rangeEnd string, overtime bool) error
}

// EntryCache decides, per exact (rangeStart, rangeEnd) key, whether time
// entries come from the local store or a fresh remote fetch.
type EntryCache struct {
	remote  RemoteEntrySource
	entries EntryCacheRepository
}

func NewEntryCache(remote RemoteEntrySource, entries EntryCacheRepository) *EntryCache {
	return &EntryCache{
		remote:  remote,
		entries: entries,
	}
}

// Resolve returns the authoritative entry list for a range. A cached range
// is served without touching the remote source; a miss (or forced refresh)
// fetches every page, then replaces the range's cache rows in one
// transaction. Freshly fetched entries always carry overtime 0. Remote
// errors propagate untouched and leave the cache unwritten.
func (cache *EntryCache) Resolve(ctx context.Context, rangeStart string, rangeEnd string, forceRefresh bool) ([]Entry, error) {
	if forceRefresh {
		if err := cache.entries.DeleteRange(rangeStart, rangeEnd); err != nil {
			return nil, err
		}
	} else {
		info, err := cache.entries.RangeInfo(rangeStart, rangeEnd)
		if err != nil {
			return nil, err
		}
		if info.Exists {
			cached, err := cache.entries.ListByRange(rangeStart, rangeEnd)
			if err != nil {
				return nil, err
			}
			return entriesFromCache(cached), nil
		}
	}

	fetched, err := cache.remote.ListTimeEntries(ctx, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	if err := cache.entries.ReplaceForRange(cacheRows(fetched, rangeStart, rangeEnd, time.Now()), rangeStart, rangeEnd); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(fetched))
	for _, entry := range fetched {
		entries = append(entries, Entry{TimeEntry: entry})
	}
	return entries, nil
}

// SetOvertime marks one cached entry's hours as overtime (or not) under one
// exact range key. An entry cached under a different key is untouched.
func (cache *EntryCache) SetOvertime(entryID int64, rangeStart string, rangeEnd string, overtime bool) error {
	return cache.entries.SetOvertime(entryID, rangeStart, rangeEnd, overtime)
}

// Info exposes cache metadata for a range key.
func (cache *EntryCache) Info(rangeStart string, rangeEnd string) (db.RangeInfo, error) {
	return cache.entries.RangeInfo(rangeStart, rangeEnd)
}

func entriesFromCache(cached []models.CachedTimeEntry) []Entry {
	entries := make([]Entry, 0, len(cached))
	for _, row := range cached {
		overtime := 0.0
		if row.Overtime {
			overtime = row.Hours
		}
		entries = append(entries, Entry{
			TimeEntry: harvest.TimeEntry{
				ID:        row.EntryID,
				SpentDate: row.SpentDate,
				User:      harvest.Ref{ID: row.UserID, Name: row.UserName},
				Project:   harvest.Ref{ID: row.ProjectID, Name: row.ProjectName},
				Client:    harvest.Ref{ID: row.ClientID, Name: row.ClientName},
				Task:      harvest.Ref{ID: row.TaskID, Name: row.TaskName},
				Notes:     row.Notes,
				Hours:     row.Hours,
				Billable:  row.Billable,
			},
			Overtime: overtime,
		})
	}
	return entries
}

func cacheRows(fetched []harvest.TimeEntry, rangeStart string, rangeEnd string, cachedAt time.Time) []models.CachedTimeEntry {
	rows := make([]models.CachedTimeEntry, 0, len(fetched))
	for _, entry := range fetched {
		rows = append(rows, models.CachedTimeEntry{
			EntryID:     entry.ID,
			SpentDate:   entry.SpentDate,
			UserID:      entry.User.ID,
			UserName:    entry.User.Name,
			ProjectID:   entry.Project.ID,
			ProjectName: entry.Project.Name,
			ClientID:    entry.Client.ID,
			ClientName:  entry.Client.Name,
			TaskID:      entry.Task.ID,
			TaskName:    entry.Task.Name,
			Notes:       entry.Notes,
			Hours:       entry.Hours,
			Billable:    entry.Billable,
			RangeStart:  rangeStart,
			RangeEnd:    rangeEnd,
			CachedAt:    cachedAt,
		})
	}
	return rows
}
