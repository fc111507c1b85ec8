// Package valkeystore keeps session-scoped profiles and food logs in a
// Valkey-compatible server. Every key expires after the configured TTL. A
// successful token lookup pushes the expiry of the token, profile and log
// keys forward together, so they disappear together once the session goes idle.
package valkeystore

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/PodderInstituteBD/NutriVision/internal/store"
	apperrors "github.com/PodderInstituteBD/NutriVision/pkg/errors"
)

// Store implements store.Store on a valkey client.
type Store struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// storedProfile carries the credential fields that ProfileRecord hides from JSON.
type storedProfile struct {
	store.ProfileRecord
	PasswordHash string `json:"password_hash"`
	SessionToken string `json:"session_token"`
}

// NewClient builds a client from an address or a valkey:// URL.
func NewClient(addr string) (valkey.Client, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(addr, "://") {
		opt, err = valkey.ParseURL(addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{addr}}
	}
	if err != nil {
		return nil, err
	}
	return valkey.NewClient(opt)
}

// NewStore wraps client. A ttl of zero keeps keys forever.
func NewStore(client valkey.Client, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = "nutri"
	}
	return &Store{client: client, prefix: prefix, ttl: ttl}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Do(ctx, s.client.B().Ping().Build()).Error()
}

func (s *Store) CreateProfile(ctx context.Context, p store.ProfileRecord) (store.ProfileRecord, error) {
	if p.SessionToken != "" {
		_, err := s.lookupToken(ctx, p.SessionToken)
		if err == nil {
			return store.ProfileRecord{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save profile",
				fmt.Errorf("session token already in use"))
		}
		if !apperrors.IsCode(err, apperrors.CodeNotFound) {
			return store.ProfileRecord{}, err
		}
	}

	id, err := s.client.Do(ctx, s.client.B().Incr().Key(s.seqKey("profile")).Build()).AsInt64()
	if err != nil {
		return store.ProfileRecord{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save profile", err)
	}
	p.ID = id
	p.CreatedAt = time.Now().UTC()

	payload, err := json.Marshal(storedProfile{ProfileRecord: p, PasswordHash: p.PasswordHash, SessionToken: p.SessionToken})
	if err != nil {
		return store.ProfileRecord{}, apperrors.Wrap(apperrors.CodeStorage, "failed to encode profile", err)
	}
	if err := s.setString(ctx, s.profileKey(id), string(payload)); err != nil {
		return store.ProfileRecord{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save profile", err)
	}
	if err := s.setString(ctx, s.tokenKey(p.SessionToken), strconv.FormatInt(id, 10)); err != nil {
		return store.ProfileRecord{}, apperrors.Wrap(apperrors.CodeStorage, "failed to index token", err)
	}
	return p, nil
}

func (s *Store) GetProfileByToken(ctx context.Context, token string) (store.ProfileRecord, error) {
	if token == "" {
		return store.ProfileRecord{}, apperrors.NotFound("profile not found")
	}
	id, err := s.lookupToken(ctx, token)
	if err != nil {
		return store.ProfileRecord{}, err
	}
	p, err := s.getProfile(ctx, id)
	if err != nil {
		return store.ProfileRecord{}, err
	}
	if err := s.touch(ctx, s.tokenKey(token), s.profileKey(id), s.logKey(id)); err != nil {
		return store.ProfileRecord{}, apperrors.Wrap(apperrors.CodeStorage, "failed to refresh session", err)
	}
	return p, nil
}

func (s *Store) CreateFoodLogItem(ctx context.Context, item store.FoodLogItem) (store.FoodLogItem, error) {
	exists, err := s.client.Do(ctx, s.client.B().Exists().Key(s.profileKey(item.ProfileID)).Build()).AsInt64()
	if err != nil {
		return store.FoodLogItem{}, apperrors.Wrap(apperrors.CodeStorage, "failed to create item", err)
	}
	if exists == 0 {
		return store.FoodLogItem{}, apperrors.NotFound("profile not found")
	}

	id, err := s.client.Do(ctx, s.client.B().Incr().Key(s.seqKey("item")).Build()).AsInt64()
	if err != nil {
		return store.FoodLogItem{}, apperrors.Wrap(apperrors.CodeStorage, "failed to create item", err)
	}
	item.ID = id
	item.CreatedAt = time.Now().UTC()

	payload, err := json.Marshal(item)
	if err != nil {
		return store.FoodLogItem{}, apperrors.Wrap(apperrors.CodeStorage, "failed to encode item", err)
	}
	key := s.logKey(item.ProfileID)
	if err := s.client.Do(ctx, s.client.B().Rpush().Key(key).Element(string(payload)).Build()).Error(); err != nil {
		return store.FoodLogItem{}, apperrors.Wrap(apperrors.CodeStorage, "failed to create item", err)
	}
	if err := s.touch(ctx, key, s.profileKey(item.ProfileID)); err != nil {
		return store.FoodLogItem{}, apperrors.Wrap(apperrors.CodeStorage, "failed to refresh ttl", err)
	}
	return item, nil
}

func (s *Store) ListFoodLogItems(ctx context.Context, profileID int64, from, to time.Time) ([]store.FoodLogItem, error) {
	all, _, err := s.loadLog(ctx, profileID)
	if err != nil {
		return nil, err
	}

	lo, hi := store.NewDateOnly(from).Time, store.NewDateOnly(to).Time
	out := []store.FoodLogItem{}
	for _, it := range all {
		if it.LoggedOn.Before(lo) || it.LoggedOn.After(hi) {
			continue
		}
		out = append(out, it)
	}
	slices.SortStableFunc(out, func(a, b store.FoodLogItem) int {
		return a.LoggedOn.Compare(b.LoggedOn.Time)
	})
	return out, nil
}

func (s *Store) DeleteFoodLogItem(ctx context.Context, profileID, itemID int64) error {
	all, raw, err := s.loadLog(ctx, profileID)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(all, func(it store.FoodLogItem) bool { return it.ID == itemID })
	if idx < 0 {
		return apperrors.NotFound("item not found")
	}

	// LREM matches on the exact stored payload.
	cmd := s.client.B().Lrem().Key(s.logKey(profileID)).Count(1).Element(raw[idx]).Build()
	removed, err := s.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to delete item", err)
	}
	if removed == 0 {
		return apperrors.NotFound("item not found")
	}
	return nil
}

func (s *Store) ClearFoodLog(ctx context.Context, profileID int64) error {
	if err := s.client.Do(ctx, s.client.B().Del().Key(s.logKey(profileID)).Build()).Error(); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to clear log", err)
	}
	return nil
}

func (s *Store) EarliestLogDate(ctx context.Context, profileID int64) (store.DateOnly, bool, error) {
	all, _, err := s.loadLog(ctx, profileID)
	if err != nil {
		return store.DateOnly{}, false, err
	}
	if len(all) == 0 {
		return store.DateOnly{}, false, nil
	}
	earliest := slices.MinFunc(all, func(a, b store.FoodLogItem) int {
		return a.LoggedOn.Compare(b.LoggedOn.Time)
	})
	return earliest.LoggedOn, true, nil
}

func (s *Store) Close() error {
	s.client.Close()
	return nil
}

func (s *Store) lookupToken(ctx context.Context, token string) (int64, error) {
	raw, err := s.client.Do(ctx, s.client.B().Get().Key(s.tokenKey(token)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return 0, apperrors.NotFound("profile not found")
		}
		return 0, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch profile", err)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeStorage, "corrupt token index", err)
	}
	return id, nil
}

func (s *Store) getProfile(ctx context.Context, id int64) (store.ProfileRecord, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.profileKey(id)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return store.ProfileRecord{}, apperrors.NotFound("profile not found")
		}
		return store.ProfileRecord{}, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch profile", err)
	}
	var doc storedProfile
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return store.ProfileRecord{}, apperrors.Wrap(apperrors.CodeStorage, "corrupt profile", err)
	}
	p := doc.ProfileRecord
	p.PasswordHash = doc.PasswordHash
	p.SessionToken = doc.SessionToken
	return p, nil
}

// loadLog returns the decoded items alongside their raw payloads, in insertion order.
func (s *Store) loadLog(ctx context.Context, profileID int64) ([]store.FoodLogItem, []string, error) {
	cmd := s.client.B().Lrange().Key(s.logKey(profileID)).Start(0).Stop(-1).Build()
	raw, err := s.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil, nil
		}
		return nil, nil, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch items", err)
	}
	items := make([]store.FoodLogItem, 0, len(raw))
	for _, payload := range raw {
		var it store.FoodLogItem
		if err := json.Unmarshal([]byte(payload), &it); err != nil {
			return nil, nil, apperrors.Wrap(apperrors.CodeStorage, "corrupt food log item", err)
		}
		items = append(items, it)
	}
	return items, raw, nil
}

func (s *Store) setString(ctx context.Context, key, value string) error {
	builder := s.client.B().Set().Key(key).Value(value)
	var cmd valkey.Completed
	if s.ttl > 0 {
		ttl := s.ttl
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

// touch resets the expiry of keys to the store TTL in one round trip.
// Missing keys are skipped by the server.
func (s *Store) touch(ctx context.Context, keys ...string) error {
	if s.ttl <= 0 {
		return nil
	}
	seconds := max(int64(s.ttl/time.Second), 1)
	cmds := make(valkey.Commands, 0, len(keys))
	for _, key := range keys {
		cmds = append(cmds, s.client.B().Expire().Key(key).Seconds(seconds).Build())
	}
	for _, resp := range s.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) profileKey(id int64) string {
	return fmt.Sprintf("%s:profile:%d", s.prefix, id)
}

func (s *Store) tokenKey(token string) string {
	return fmt.Sprintf("%s:token:%s", s.prefix, token)
}

func (s *Store) logKey(profileID int64) string {
	return fmt.Sprintf("%s:log:%d", s.prefix, profileID)
}

func (s *Store) seqKey(name string) string {
	return fmt.Sprintf("%s:seq:%s", s.prefix, name)
}

var _ store.Store = (*Store)(nil)
