// Package memory keeps profiles and food logs in process memory.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/PodderInstituteBD/NutriVision/internal/store"
	apperrors "github.com/PodderInstituteBD/NutriVision/pkg/errors"
)

// Store is a mutex-guarded in-memory store.Store.
type Store struct {
	mu         sync.RWMutex
	profiles   map[int64]store.ProfileRecord
	byToken    map[string]int64
	items      map[int64][]store.FoodLogItem
	nextProfID int64
	nextItemID int64
	now        func() time.Time
}

// New constructs an empty store.
func New() *Store {
	return &Store{
		profiles: make(map[int64]store.ProfileRecord),
		byToken:  make(map[string]int64),
		items:    make(map[int64][]store.FoodLogItem),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) CreateProfile(_ context.Context, p store.ProfileRecord) (store.ProfileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextProfID++
	p.ID = s.nextProfID
	p.CreatedAt = s.now()
	s.profiles[p.ID] = p
	s.byToken[p.SessionToken] = p.ID
	return p, nil
}

func (s *Store) GetProfileByToken(_ context.Context, token string) (store.ProfileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byToken[token]
	if !ok || token == "" {
		return store.ProfileRecord{}, apperrors.NotFound("profile not found")
	}
	return s.profiles[id], nil
}

func (s *Store) CreateFoodLogItem(_ context.Context, item store.FoodLogItem) (store.FoodLogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[item.ProfileID]; !ok {
		return store.FoodLogItem{}, apperrors.NotFound("profile not found")
	}
	s.nextItemID++
	item.ID = s.nextItemID
	item.CreatedAt = s.now()
	s.items[item.ProfileID] = append(s.items[item.ProfileID], item)
	return item, nil
}

func (s *Store) ListFoodLogItems(_ context.Context, profileID int64, from, to time.Time) ([]store.FoodLogItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lo, hi := store.NewDateOnly(from).Time, store.NewDateOnly(to).Time
	out := []store.FoodLogItem{}
	for _, it := range s.items[profileID] {
		if it.LoggedOn.Before(lo) || it.LoggedOn.After(hi) {
			continue
		}
		out = append(out, it)
	}
	// Rows are appended in ID order; a stable sort by day keeps that within a day.
	slices.SortStableFunc(out, func(a, b store.FoodLogItem) int {
		return a.LoggedOn.Compare(b.LoggedOn.Time)
	})
	return out, nil
}

func (s *Store) DeleteFoodLogItem(_ context.Context, profileID, itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items[profileID]
	idx := slices.IndexFunc(items, func(it store.FoodLogItem) bool { return it.ID == itemID })
	if idx < 0 {
		return apperrors.NotFound("item not found")
	}
	s.items[profileID] = slices.Delete(items, idx, idx+1)
	return nil
}

func (s *Store) ClearFoodLog(_ context.Context, profileID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, profileID)
	return nil
}

func (s *Store) EarliestLogDate(_ context.Context, profileID int64) (store.DateOnly, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var earliest store.DateOnly
	found := false
	for _, it := range s.items[profileID] {
		if !found || it.LoggedOn.Before(earliest.Time) {
			earliest = it.LoggedOn
			found = true
		}
	}
	return earliest, found, nil
}

func (s *Store) Close() error { return nil }

var _ store.Store = (*Store)(nil)
