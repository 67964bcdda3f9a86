// Package session owns the authentication state and its persistence: the one
// piece of mutable process-wide state in the client.
package session

import (
	"context"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"securebank/internal/backend"
	"securebank/internal/bank"
	"securebank/internal/models"
)

// Phase tracks how much the restored session can be trusted. Persisted state
// is only Tentative until the backend confirms the token.
type Phase string

const (
	PhaseNone      Phase = "none"
	PhaseTentative Phase = "tentative"
	PhaseConfirmed Phase = "confirmed"
)

// Result is the outcome of a state-changing session operation. Failures carry
// a human-readable reason; the caller decides the user-visible messaging.
type Result struct {
	OK     bool
	Reason string
}

func failure(err error, fallback string) Result {
	reason := fallback
	if err != nil && err.Error() != "" {
		reason = err.Error()
	}
	return Result{Reason: reason}
}

// Manager owns the current user, token, and loading flag, and writes every
// mutation through to the StateStore so disk and memory stay consistent.
// At most one authenticated user is represented at a time.
type Manager struct {
	mu       sync.Mutex
	provider backend.Provider
	store    *StateStore

	user    *models.User
	token   string
	phase   Phase
	loading bool
}

// NewManager creates a manager over the given store. The provider is attached
// separately because it needs the manager's token source first.
func NewManager(store *StateStore) *Manager {
	return &Manager{store: store, phase: PhaseNone, loading: true}
}

// SetProvider attaches the backend strategy.
func (m *Manager) SetProvider(p backend.Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.provider = p
}

// Provider exposes the backend for screen data operations.
func (m *Manager) Provider() backend.Provider {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.provider
}

// Token is the token source for the HTTP boundary; "" when logged out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// User returns the current user, if any.
func (m *Manager) User() (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

// Loading reports whether Initialize has resolved yet.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// SessionPhase reports how trusted the current state is.
func (m *Manager) SessionPhase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Initialize restores persisted state. A restored user is set optimistically
// as tentative, then validated against the backend's current-user operation;
// validation failure clears both memory and disk. The loading flag drops once
// this resolves, regardless of outcome.
func (m *Manager) Initialize(ctx context.Context) {
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	token, err := m.store.LoadToken()
	if err != nil {
		log.Printf("session: load token: %v", err)
	}
	saved, err := m.store.LoadUser()
	if err != nil {
		log.Printf("session: load user: %v", err)
	}
	if token == "" || saved == nil {
		return
	}

	m.mu.Lock()
	m.token = token
	m.user = saved
	m.phase = PhaseTentative
	provider := m.provider
	m.mu.Unlock()

	user, err := provider.CurrentUser(ctx)
	if err != nil {
		// Token is invalid.
		m.Invalidate()
		return
	}
	m.setUser(user)
	m.mu.Lock()
	m.phase = PhaseConfirmed
	m.mu.Unlock()
}

// Login exchanges credentials for a session. Failure leaves state untouched.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	creds, err := m.provider.Login(ctx, email, password)
	if err != nil {
		return failure(err, "Login failed")
	}
	m.establish(creds)
	return Result{OK: true}
}

// Signup creates an account and establishes the session, like Login.
func (m *Manager) Signup(ctx context.Context, req bank.SignupRequest) Result {
	creds, err := m.provider.Signup(ctx, req)
	if err != nil {
		return failure(err, "Signup failed")
	}
	m.establish(creds)
	return Result{OK: true}
}

// Logout clears memory and disk unconditionally; no server round-trip.
func (m *Manager) Logout() {
	m.Invalidate()
}

// Invalidate force-clears the session. It is wired as the 401 hook on the
// HTTP boundary so any unauthorized response ends the session uniformly.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.user = nil
	m.token = ""
	m.phase = PhaseNone
	m.mu.Unlock()
	if err := m.store.Clear(); err != nil {
		log.Printf("session: clear persisted state: %v", err)
	}
}

// RefreshUserData re-fetches the profile and overwrites stored state.
// Failures are logged, not surfaced; prior state stays intact.
func (m *Manager) RefreshUserData(ctx context.Context) {
	user, err := m.provider.Profile(ctx)
	if err != nil {
		log.Printf("session: refresh user data: %v", err)
		return
	}
	m.setUser(user)
}

// ApplyBalance overwrites the stored balance with a server-reported value,
// typically from a transfer receipt, without another round-trip. No-op when
// no session is established.
func (m *Manager) ApplyBalance(balance decimal.Decimal) {
	m.mu.Lock()
	if m.user == nil {
		m.mu.Unlock()
		return
	}
	u := *m.user
	u.Balance = balance
	m.user = &u
	m.mu.Unlock()
	if err := m.store.SaveUser(u); err != nil {
		log.Printf("session: persist user: %v", err)
	}
}

// UpdateBalance requests a server-side adjustment by delta. On success the
// server's balance overwrites local state; on failure state is unchanged.
func (m *Manager) UpdateBalance(ctx context.Context, delta decimal.Decimal) Result {
	balance, err := m.provider.UpdateBalance(ctx, delta)
	if err != nil {
		return failure(err, "Balance update failed")
	}
	m.mu.Lock()
	if m.user != nil {
		u := *m.user
		u.Balance = balance
		m.user = &u
	}
	user := m.user
	m.mu.Unlock()
	if user != nil {
		if err := m.store.SaveUser(*user); err != nil {
			log.Printf("session: persist user: %v", err)
		}
	}
	return Result{OK: true}
}

func (m *Manager) establish(creds backend.Credentials) {
	m.mu.Lock()
	u := creds.User
	m.user = &u
	m.token = creds.AccessToken
	m.phase = PhaseConfirmed
	m.mu.Unlock()

	if err := m.store.SaveToken(creds.AccessToken); err != nil {
		log.Printf("session: persist token: %v", err)
	}
	if err := m.store.SaveUser(creds.User); err != nil {
		log.Printf("session: persist user: %v", err)
	}
}

func (m *Manager) setUser(user models.User) {
	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	if err := m.store.SaveUser(user); err != nil {
		log.Printf("session: persist user: %v", err)
	}
}
