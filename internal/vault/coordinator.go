package vault

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Coordinator enforces "at most one connected account". The current
// account name and the active session are set and cleared together;
// one is non-nil exactly when the other is.
type Coordinator struct {
	mu       sync.Mutex
	store    *Store
	verifier Verifier
	log      zerolog.Logger
	current  string
	session  *Session
}

// Status is the coordinator's externally visible state.
type Status struct {
	Connected      bool   `json:"connected"`
	CurrentAccount string `json:"current_account,omitempty"`
	TotalAccounts  int    `json:"total_accounts"`
}

func NewCoordinator(store *Store, verifier Verifier, log zerolog.Logger) *Coordinator {
	return &Coordinator{store: store, verifier: verifier, log: log}
}

// Connect validates the named account and makes it the active one.
// Expected failures come back as ErrNotFound, ErrAlreadyExpired or
// ErrInvalidCredentials and leave the coordinator exactly as it was,
// including any previously connected account. Connecting while
// already connected replaces the session without an explicit
// disconnect. An expired record fails closed: the remote identity
// check is never invoked for it.
func (c *Coordinator) Connect(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := c.store.Get(name)
	if err != nil {
		return err
	}
	if rec.IsExpired() {
		return fmt.Errorf("account %q: %w", name, ErrAlreadyExpired)
	}

	id, err := c.verifier.Verify(ctx, rec)
	if err != nil {
		return err
	}

	sess, err := newSession(ctx, rec, id)
	if err != nil {
		return fmt.Errorf("building session for %q: %w", name, err)
	}

	c.current = name
	c.session = sess

	if err := c.store.SetAccountID(name, id.AccountID); err != nil {
		return err
	}
	if err := c.store.UpdateLastUsed(name); err != nil {
		return err
	}

	c.log.Info().Str("account", name).Str("account_id", id.AccountID).
		Str("principal", id.PrincipalARN).Msg("connected")
	return nil
}

// Disconnect clears the active session. Calling it while disconnected
// is a no-op.
func (c *Coordinator) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != "" {
		c.log.Info().Str("account", c.current).Msg("disconnected")
	}
	c.current = ""
	c.session = nil
}

// RemoveAccount removes an account from the store. Removing the
// connected account forces a disconnect first; a dangling session for
// a deleted account must never survive.
func (c *Coordinator) RemoveAccount(name string) error {
	c.mu.Lock()
	if c.current == name {
		c.log.Info().Str("account", c.current).Msg("disconnected")
		c.current = ""
		c.session = nil
	}
	c.mu.Unlock()
	return c.store.Remove(name)
}

// CurrentAccount returns the connected account name, if any.
func (c *Coordinator) CurrentAccount() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.current != ""
}

// ActiveSession returns the validated session handle, or nil when
// disconnected. Service wrappers build their clients from it.
func (c *Coordinator) ActiveSession() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// CurrentRegion returns the connected session's region, falling back
// to the store's default when disconnected.
func (c *Coordinator) CurrentRegion() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		return c.session.Region()
	}
	return c.store.defaultRegion
}

// Status reports the connection state.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()
	return Status{
		Connected:      current != "",
		CurrentAccount: current,
		TotalAccounts:  c.store.Count(),
	}
}
