// Package pipeline orchestrates transaction loading, caching, and the
// weekly history aggregation used for display.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"flowcast/internal/ingest"
	"flowcast/internal/model"
	"flowcast/internal/store"
)

// LoadResult holds the output of the data loading path.
type LoadResult struct {
	Transactions []model.Transaction
	Path         string
	FromCache    bool
}

// Load parses the transaction CSV directly, bypassing the cache.
func Load(path string) (*LoadResult, error) {
	txs, err := ingest.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return &LoadResult{Transactions: txs, Path: path}, nil
}

// LoadWithCache serves the file from the SQLite cache when its mtime and
// size are unchanged, reparsing and re-caching otherwise.
func LoadWithCache(path string, cache *store.Cache) (*LoadResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	tracked, ok, err := cache.TrackedFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	if ok && tracked.MtimeNs == info.ModTime().UnixNano() && tracked.SizeBytes == info.Size() {
		txs, err := cache.LoadTransactions(abs)
		if err != nil {
			return nil, fmt.Errorf("loading cached transactions: %w", err)
		}
		return &LoadResult{Transactions: txs, Path: path, FromCache: true}, nil
	}

	txs, err := ingest.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cache.SaveTransactions(abs, txs, info.ModTime().UnixNano(), info.Size()); err != nil {
		return nil, fmt.Errorf("caching transactions: %w", err)
	}
	return &LoadResult{Transactions: txs, Path: path}, nil
}

// FilterByCategory returns transactions matching the given category.
func FilterByCategory(txs []model.Transaction, cat model.Category) []model.Transaction {
	var result []model.Transaction
	for _, t := range txs {
		if t.Category == cat {
			result = append(result, t)
		}
	}
	return result
}

// FilterByDateRange returns transactions whose date falls within [since, until).
// A zero since or until leaves that bound open.
func FilterByDateRange(txs []model.Transaction, since, until time.Time) []model.Transaction {
	if since.IsZero() && until.IsZero() {
		return txs
	}
	var result []model.Transaction
	for _, t := range txs {
		if !since.IsZero() && t.Date.Before(since) {
			continue
		}
		if !until.IsZero() && !t.Date.Before(until) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// WeekSummary holds per-week historical totals for display.
type WeekSummary struct {
	WeekStart   time.Time
	Revenue     float64
	Collections float64
	Outflows    float64
}

// AggregateWeeks buckets history into calendar weeks, oldest first.
func AggregateWeeks(txs []model.Transaction) []WeekSummary {
	byWeek := make(map[time.Time]*WeekSummary)
	for _, t := range txs {
		ws := t.WeekStart()
		s, ok := byWeek[ws]
		if !ok {
			s = &WeekSummary{WeekStart: ws}
			byWeek[ws] = s
		}
		switch t.Category {
		case model.CategoryRevenue:
			s.Revenue += t.Amount
		case model.CategoryARCollections:
			s.Collections += t.Amount
		default:
			s.Outflows += t.Amount
		}
	}

	weeks := make([]WeekSummary, 0, len(byWeek))
	for _, s := range byWeek {
		weeks = append(weeks, *s)
	}
	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].WeekStart.Before(weeks[j].WeekStart)
	})
	return weeks
}

// CacheDir returns the platform cache directory for flowcast.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "flowcast")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "flowcast")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "flowcast.db")
}
