package bootstrap_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickchat/internal/domain"
	"quickchat/internal/logging"
	"quickchat/internal/services/bootstrap"
	"quickchat/internal/store"
	"quickchat/internal/ui"
)

// countingKV counts reads and can fail on demand.
type countingKV struct {
	*store.MemoryKV
	gets     atomic.Int32
	getErr   error
	clearErr error
}

func (c *countingKV) Get(ctx context.Context, key string) (string, bool, error) {
	c.gets.Add(1)
	if c.getErr != nil {
		return "", false, c.getErr
	}
	return c.MemoryKV.Get(ctx, key)
}

func (c *countingKV) Clear(ctx context.Context) error {
	if c.clearErr != nil {
		return c.clearErr
	}
	return c.MemoryKV.Clear(ctx)
}

func newRouter(kv domain.KeyValueStore) (*bootstrap.Router, *ui.Navigator) {
	nav := ui.NewNavigator(nil)
	return bootstrap.New(store.NewSessionStore(kv), nav, logging.Discard()), nav
}

func TestSelectInitialRoute(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		token string
		want  domain.Route
	}{
		{"token present", "abc", domain.RouteHome},
		{"no token", "", domain.RouteLanding},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kv := store.NewMemoryKV()
			if tc.token != "" {
				require.NoError(t, kv.Set(ctx, store.SessionTokenKey, tc.token))
			}
			r, nav := newRouter(kv)

			_, ok := r.Selected()
			assert.False(t, ok, "nothing selected before bootstrap")

			assert.Equal(t, tc.want, r.SelectInitialRoute(ctx))
			got, ok := r.Selected()
			assert.True(t, ok)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, []domain.Route{tc.want}, nav.History())
		})
	}
}

func TestSelectInitialRoute_ReadFailureMeansLanding(t *testing.T) {
	kv := &countingKV{MemoryKV: store.NewMemoryKV(), getErr: errors.New("disk gone")}
	r, _ := newRouter(kv)

	assert.Equal(t, domain.RouteLanding, r.SelectInitialRoute(context.Background()))
}

func TestSelectInitialRoute_RunsOnce(t *testing.T) {
	ctx := context.Background()
	kv := &countingKV{MemoryKV: store.NewMemoryKV()}
	require.NoError(t, kv.Set(ctx, store.SessionTokenKey, "abc"))
	r, nav := newRouter(kv)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.SelectInitialRoute(ctx)
		}()
	}
	wg.Wait()

	// A later logout does not change the selection already made.
	require.NoError(t, kv.Clear(ctx))
	assert.Equal(t, domain.RouteHome, r.SelectInitialRoute(ctx))
	assert.Equal(t, int32(1), kv.gets.Load())
	assert.Len(t, nav.History(), 1)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, store.SessionTokenKey, "abc"))
	require.NoError(t, kv.Set(ctx, "other", "x"))
	sessions := store.NewSessionStore(kv)
	nav := ui.NewNavigator(nil)
	r := bootstrap.New(sessions, nav, logging.Discard())

	require.NoError(t, r.Logout(ctx))

	_, ok, err := sessions.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, _ = kv.Get(ctx, "other")
	assert.False(t, ok, "logout clears every key")
	cur, _ := nav.Current()
	assert.Equal(t, domain.RouteLanding, cur)
}

func TestLogout_ClearFailureStaysPut(t *testing.T) {
	kv := &countingKV{MemoryKV: store.NewMemoryKV(), clearErr: errors.New("read-only")}
	r, nav := newRouter(kv)

	err := r.Logout(context.Background())
	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "clear", perr.Op)
	assert.Empty(t, nav.History())
}
