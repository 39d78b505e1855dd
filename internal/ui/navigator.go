package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"quickchat/internal/domain"
)

var screenTitles = map[domain.Route]string{
	domain.RouteLanding:  "Welcome to QuickChat",
	domain.RouteLogin:    "Log in",
	domain.RouteRegister: "Create your account",
	domain.RouteHome:     "QuickChat home",
}

// Navigator prints each screen change to out and remembers the route stack.
type Navigator struct {
	out io.Writer

	mu      sync.Mutex
	history []domain.Route
}

// NewNavigator writes screen changes to out; nil discards them.
func NewNavigator(out io.Writer) *Navigator {
	if out == nil {
		out = io.Discard
	}
	return &Navigator{out: out}
}

// Navigate records route and prints its title with any params.
func (n *Navigator) Navigate(route domain.Route, params map[string]string) {
	n.mu.Lock()
	n.history = append(n.history, route)
	n.mu.Unlock()

	title, ok := screenTitles[route]
	if !ok {
		title = route.String()
	}
	line := fmt.Sprintf("-> %s [%s]", title, route)
	if len(params) > 0 {
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, k+"="+params[k])
		}
		line += " " + strings.Join(pairs, " ")
	}
	_, _ = fmt.Fprintln(n.out, line)
}

// Current returns the last route navigated to.
func (n *Navigator) Current() (domain.Route, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) == 0 {
		return "", false
	}
	return n.history[len(n.history)-1], true
}

// History returns every route navigated to, oldest first.
func (n *Navigator) History() []domain.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Route(nil), n.history...)
}

var _ domain.Navigator = (*Navigator)(nil)
