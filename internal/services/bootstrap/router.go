package bootstrap

import (
	"context"
	"log/slog"
	"sync"

	"quickchat/internal/domain"
)

// Router selects the initial route exactly once per process run. Until the
// selection completes Selected reports ok=false and no screen is shown.
type Router struct {
	sessions domain.SessionStore
	nav      domain.Navigator
	log      *slog.Logger

	once     sync.Once
	mu       sync.RWMutex
	selected domain.Route
	done     bool
}

// New returns a Router reading sessions and navigating through nav.
func New(sessions domain.SessionStore, nav domain.Navigator, log *slog.Logger) *Router {
	return &Router{sessions: sessions, nav: nav, log: log}
}

// SelectInitialRoute reads the stored token and shows Home when one exists,
// Landing otherwise. A read failure counts as no token. Later calls return
// the first result without reading the store again.
func (r *Router) SelectInitialRoute(ctx context.Context) domain.Route {
	r.once.Do(func() {
		route := domain.RouteLanding
		_, ok, err := r.sessions.Read(ctx)
		switch {
		case err != nil:
			r.log.Warn("session read failed; starting signed out", "error_kind", domain.ErrorKind(err), "err", err)
		case ok:
			route = domain.RouteHome
		}

		r.mu.Lock()
		r.selected, r.done = route, true
		r.mu.Unlock()

		r.log.Debug("initial route selected", "route", route)
		r.nav.Navigate(route, nil)
	})

	route, _ := r.Selected()
	return route
}

// Selected returns the chosen initial route once selection has completed.
func (r *Router) Selected() (domain.Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selected, r.done
}

// Logout clears all persisted session state and returns to Landing. When the
// clear fails the error is returned and no navigation happens.
func (r *Router) Logout(ctx context.Context) error {
	if err := r.sessions.Clear(ctx); err != nil {
		r.log.Warn("logout failed", "err", err)
		return err
	}
	r.log.Info("logged out")
	r.nav.Navigate(domain.RouteLanding, nil)
	return nil
}

// Compile-time assertion that Router implements domain.Router.
var _ domain.Router = (*Router)(nil)
