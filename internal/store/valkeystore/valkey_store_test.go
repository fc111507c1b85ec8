package valkeystore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/PodderInstituteBD/NutriVision/internal/store"
	"github.com/PodderInstituteBD/NutriVision/internal/store/storetest"
)

// newTestStore connects to TEST_VALKEY_ADDR under a fresh key prefix so
// sub-tests never see each other's keys.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	return newTestStoreTTL(t, time.Minute)
}

func newTestStoreTTL(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	addr := os.Getenv("TEST_VALKEY_ADDR")
	if addr == "" {
		t.Skip("TEST_VALKEY_ADDR not set")
	}
	client, err := NewClient(addr)
	require.NoError(t, err)

	s := NewStore(client, "nutri-test:"+uuid.NewString()[:8], ttl)
	require.NoError(t, s.Ping(context.Background()))
	return s
}

func TestStoreContract(t *testing.T) {
	if os.Getenv("TEST_VALKEY_ADDR") == "" {
		t.Skip("TEST_VALKEY_ADDR not set")
	}
	storetest.Run(t, func(t *testing.T) store.Store { return newTestStore(t) })
}

func TestCreateProfile_KeepsCredentials(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	defer s.Close()

	created, err := s.CreateProfile(ctx, storetest.SampleProfile("cred"))
	require.NoError(t, err)

	got, err := s.GetProfileByToken(ctx, "cred")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "cred", got.SessionToken)
	require.NotEmpty(t, got.PasswordHash)
}

func TestCreateProfile_DuplicateToken(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	defer s.Close()

	_, err := s.CreateProfile(ctx, storetest.SampleProfile("dup"))
	require.NoError(t, err)
	_, err = s.CreateProfile(ctx, storetest.SampleProfile("dup"))
	require.Error(t, err)
}

// TestSessionExpiry checks that token lookups keep an active session alive
// past the TTL and that an idle session loses its profile and log together.
func TestSessionExpiry(t *testing.T) {
	ctx := context.Background()
	s := newTestStoreTTL(t, 2*time.Second)
	defer s.Close()

	created, err := s.CreateProfile(ctx, storetest.SampleProfile("ttl"))
	require.NoError(t, err)
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	_, err = s.CreateFoodLogItem(ctx, store.FoodLogItem{ProfileID: created.ID, LoggedOn: store.NewDateOnly(day), FoodName: "Banana", Quantity: 100})
	require.NoError(t, err)

	// Two accesses 1.2s apart outlive the 2s TTL measured from creation.
	for range 2 {
		time.Sleep(1200 * time.Millisecond)
		_, err = s.GetProfileByToken(ctx, "ttl")
		require.NoError(t, err)
	}
	items, err := s.ListFoodLogItems(ctx, created.ID, day, day)
	require.NoError(t, err)
	require.Len(t, items, 1)

	for _, key := range []string{s.tokenKey("ttl"), s.profileKey(created.ID), s.logKey(created.ID)} {
		ttl, err := s.client.Do(ctx, s.client.B().Ttl().Key(key).Build()).AsInt64()
		require.NoError(t, err)
		require.Positive(t, ttl, key)
	}

	time.Sleep(2500 * time.Millisecond)
	_, err = s.GetProfileByToken(ctx, "ttl")
	require.Error(t, err)
	items, err = s.ListFoodLogItems(ctx, created.ID, day, day)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestKeys(t *testing.T) {
	s := &Store{prefix: "nutri"}
	require.Equal(t, "nutri:profile:7", s.profileKey(7))
	require.Equal(t, "nutri:token:abc", s.tokenKey("abc"))
	require.Equal(t, "nutri:log:7", s.logKey(7))
	require.Equal(t, "nutri:seq:item", s.seqKey("item"))
}
