// Package gate picks which surface a client shows for the current session state.
package gate

import (
	"context"
	"sync"

	"github.com/calendarapp/calendar-service/internal/client/session"
)

// Renderer draws the three surfaces.
type Renderer interface {
	Loading()
	Public(errorMessage string)
	Protected(user session.User)
}

// Session is what the gate needs from the session state machine.
type Session interface {
	Watch(listener session.Listener) (current session.State, unsubscribe func())
	RenewSilently(ctx context.Context) session.State
}

// Gate re-renders whenever the session changes. It holds no state of its own.
type Gate struct {
	session  Session
	renderer Renderer

	mountOnce sync.Once
}

// New builds a gate.
func New(s Session, r Renderer) *Gate {
	return &Gate{session: s, renderer: r}
}

// Render draws the surface for state.
func (g *Gate) Render(state session.State) {
	switch st := state.(type) {
	case session.Authenticated:
		g.renderer.Protected(st.User)
	case session.NotAuthenticated:
		g.renderer.Public(st.ErrorMessage)
	default:
		g.renderer.Loading()
	}
}

// Mount subscribes to the session and renders the current surface. When the session
// is still checking, it triggers exactly one silent renewal; later calls to Mount do
// nothing. The returned function unsubscribes.
func (g *Gate) Mount(ctx context.Context) (unmount func()) {
	unmount = func() {}
	g.mountOnce.Do(func() {
		var current session.State
		current, unmount = g.session.Watch(g.Render)
		if current.Status() == session.StatusChecking {
			g.session.RenewSilently(ctx)
		}
	})
	return unmount
}
