package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickchat/internal/domain"
	"quickchat/internal/store"
)

func backends(t *testing.T) map[string]domain.KeyValueStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]domain.KeyValueStore{
		"memory": store.NewMemoryKV(),
		"file":   store.NewFileKV(t.TempDir(), ""),
		"sealed": store.NewFileKV(t.TempDir(), "pass"),
		"redis":  store.NewRedisKV(client, "test"),
	}
}

func TestSessionStore_WriteReadClear(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := store.NewSessionStore(kv)

			_, ok, err := s.Read(ctx)
			require.NoError(t, err)
			assert.False(t, ok, "fresh store has no token")

			for _, tok := range []string{"tok123", "another-token", "x"} {
				require.NoError(t, s.Write(ctx, tok))
				got, ok, err := s.Read(ctx)
				require.NoError(t, err)
				require.True(t, ok)
				assert.Equal(t, tok, got)

				// A new store on the same backend sees the persisted value.
				got, ok, err = store.NewSessionStore(kv).Read(ctx)
				require.NoError(t, err)
				require.True(t, ok)
				assert.Equal(t, tok, got)
			}

			require.NoError(t, s.Clear(ctx))
			_, ok, err = s.Read(ctx)
			require.NoError(t, err)
			assert.False(t, ok)

			_, ok, err = store.NewSessionStore(kv).Read(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

// brokenKV fails every operation.
type brokenKV struct{}

var errDiskGone = errors.New("disk gone")

func (brokenKV) Get(context.Context, string) (string, bool, error) { return "", false, errDiskGone }
func (brokenKV) Set(context.Context, string, string) error         { return errDiskGone }
func (brokenKV) Clear(context.Context) error                       { return errDiskGone }

func TestSessionStore_WriteFailureKeepsVolatileToken(t *testing.T) {
	ctx := context.Background()
	s := store.NewSessionStore(brokenKV{})

	err := s.Write(ctx, "tok123")
	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, errDiskGone)

	got, ok, err := s.Read(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok123", got)
}

func TestSessionStore_ReadFailureIsPersistenceError(t *testing.T) {
	_, _, err := store.NewSessionStore(brokenKV{}).Read(context.Background())
	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "read", perr.Op)
}
