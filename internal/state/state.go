// Package state owns the in-memory application list, the current selection
// and the loading/auth state machine. The fetched list is ground truth:
// mutations never patch it locally, they re-fetch.
package state

import (
	"context"
	"sync"

	"go-jobcal-web/internal/domain"
	"go-jobcal-web/pkg/apperror"
	"go-jobcal-web/pkg/logger"
	"go-jobcal-web/pkg/session"
)

type Phase string

const (
	PhaseUninitialized   Phase = "uninitialized"
	PhaseAuthenticating  Phase = "authenticating"
	PhaseUnauthenticated Phase = "unauthenticated"
	PhaseLoading         Phase = "loading"
	PhaseReady           Phase = "ready"
)

// List is the application-list state machine. Calls may resolve in any order
// when triggered concurrently; the last write observed wins, there is no
// request sequencing or in-flight cancellation.
type List struct {
	mu            sync.Mutex
	backend       domain.Backend
	store         session.Store
	phase         Phase
	apps          []domain.Application
	selectedID    int64 // 0 = nothing selected
	authenticated bool
}

// Snapshot is a consistent view of the state for rendering. Applications is a
// copy; Selected is re-resolved by id against the current list.
type Snapshot struct {
	Phase         Phase
	Authenticated bool
	Applications  []domain.Application
	Selected      *domain.Application
}

func NewList(backend domain.Backend, store session.Store) *List {
	return &List{
		backend: backend,
		store:   store,
		phase:   PhaseUninitialized,
	}
}

// Bootstrap performs the silent session-to-token exchange and, when a session
// exists, the initial visible list fetch. An authorization failure lands in
// Unauthenticated: the user must log in explicitly.
func (l *List) Bootstrap(ctx context.Context) error {
	l.mu.Lock()
	l.phase = PhaseAuthenticating
	l.mu.Unlock()

	if err := l.backend.FetchAccessToken(ctx); err != nil {
		if apperror.IsUnauthorized(err) {
			l.becomeUnauthenticated()
			return nil
		}
		// A transport failure here is not proof the session is gone; the
		// list fetch below settles it either way.
		logger.Log.Warn("token exchange failed", "error", err)
	}

	return l.Refresh(ctx, true)
}

// Refresh re-fetches the application list. With showLoading the machine
// passes through Loading (UI spinner); without it the previous list stays
// visible until the new one arrives. On success the list is replaced
// wholesale and the selection is re-resolved by id. An authorization failure
// transitions to Unauthenticated; any other failure leaves the list untouched
// and is returned for logging only.
func (l *List) Refresh(ctx context.Context, showLoading bool) error {
	if showLoading {
		l.mu.Lock()
		l.phase = PhaseLoading
		l.mu.Unlock()
	}

	apps, err := l.backend.ListApplications(ctx)
	if err != nil {
		if apperror.IsUnauthorized(err) {
			l.becomeUnauthenticated()
			return nil
		}
		l.mu.Lock()
		// Leave the list untouched; dropping back to Ready keeps the last
		// good view on screen instead of a stuck spinner.
		if l.phase == PhaseLoading {
			l.phase = PhaseReady
		}
		l.mu.Unlock()
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.apps = apps
	l.authenticated = true
	l.phase = PhaseReady
	// Selection reconciliation: the previously selected id may be gone after
	// a delete elsewhere; object references are never stable across fetches.
	if l.selectedID != 0 && l.findLocked(l.selectedID) == nil {
		l.selectedID = 0
	}
	return nil
}

// Select marks the application with the given id as selected. Returns false
// when the id is not in the current list.
func (l *List) Select(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.findLocked(id) == nil {
		return false
	}
	l.selectedID = id
	return true
}

func (l *List) ClearSelection() {
	l.mu.Lock()
	l.selectedID = 0
	l.mu.Unlock()
}

// Selected re-resolves the selection against the freshest list.
func (l *List) Selected() (domain.Application, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	app := l.findLocked(l.selectedID)
	if app == nil {
		return domain.Application{}, false
	}
	return *app, true
}

// UpdateStatus fires the status mutation and then re-establishes consistency
// with a silent refresh; the list is never patched locally.
func (l *List) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	_, err := l.backend.UpdateApplicationStatus(ctx, id, domain.ApplicationUpdate{Status: status})
	if err != nil {
		if apperror.IsUnauthorized(err) {
			l.becomeUnauthenticated()
		}
		return err
	}

	if err := l.Refresh(ctx, false); err != nil {
		logger.Log.Warn("silent refresh after status update failed", "error", err)
	}
	return nil
}

// Delete removes the application and silently refreshes. A selection pointing
// at the deleted id is cleared immediately rather than waiting for the
// refresh to reconcile it.
func (l *List) Delete(ctx context.Context, id int64) error {
	if err := l.backend.DeleteApplication(ctx, id); err != nil {
		if apperror.IsUnauthorized(err) {
			l.becomeUnauthenticated()
		}
		return err
	}

	l.mu.Lock()
	if l.selectedID == id {
		l.selectedID = 0
	}
	l.mu.Unlock()

	if err := l.Refresh(ctx, false); err != nil {
		logger.Log.Warn("silent refresh after delete failed", "error", err)
	}
	return nil
}

// Logout invalidates the backend session, clears the token store and drops
// all in-memory state.
func (l *List) Logout(ctx context.Context) {
	if err := l.backend.Logout(ctx); err != nil {
		logger.Log.Warn("backend logout failed", "error", err)
	}
	l.store.Clear()
	l.becomeUnauthenticated()
}

func (l *List) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := Snapshot{
		Phase:         l.phase,
		Authenticated: l.authenticated,
		Applications:  make([]domain.Application, len(l.apps)),
	}
	copy(snap.Applications, l.apps)
	if app := l.findLocked(l.selectedID); app != nil {
		selected := *app
		snap.Selected = &selected
	}
	return snap
}

func (l *List) becomeUnauthenticated() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.phase = PhaseUnauthenticated
	l.authenticated = false
	l.apps = nil
	l.selectedID = 0
}

func (l *List) findLocked(id int64) *domain.Application {
	if id == 0 {
		return nil
	}
	for i := range l.apps {
		if l.apps[i].ID == id {
			return &l.apps[i]
		}
	}
	return nil
}
