package vault

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The coordinator invariant: the current account is set exactly when
// the active session is. Checked after every transition.
func assertInvariant(t *testing.T, c *Coordinator) {
	t.Helper()
	_, connected := c.CurrentAccount()
	if connected {
		require.NotNil(t, c.ActiveSession())
	} else {
		require.Nil(t, c.ActiveSession())
	}
}

func newTestVault(t *testing.T) (*Store, *Coordinator, *fakeVerifier) {
	t.Helper()
	verifier := okVerifier()
	store := NewStore(testConfig(t), testKey, verifier, zerolog.Nop())
	coord := NewCoordinator(store, verifier, zerolog.Nop())
	return store, coord, verifier
}

func TestConnectSuccess(t *testing.T) {
	store, coord, _ := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "dev", testRecord(), false))
	require.NoError(t, coord.Connect(ctx, "dev"))
	assertInvariant(t, coord)

	name, ok := coord.CurrentAccount()
	assert.True(t, ok)
	assert.Equal(t, "dev", name)

	sess := coord.ActiveSession()
	require.NotNil(t, sess)
	assert.Equal(t, "dev", sess.Account())
	assert.Equal(t, "us-east-1", sess.Region())
	assert.Equal(t, "111122223333", sess.Identity().AccountID)

	// Discovered account id and last-used written back into the store
	rec, err := store.Get("dev")
	require.NoError(t, err)
	assert.Equal(t, "111122223333", rec.AccountID)
	require.NotNil(t, rec.LastUsed)
	assert.WithinDuration(t, time.Now(), *rec.LastUsed, 5*time.Second)

	status := coord.Status()
	assert.True(t, status.Connected)
	assert.Equal(t, "dev", status.CurrentAccount)
	assert.Equal(t, 1, status.TotalAccounts)
}

func TestConnectUnknownAccount(t *testing.T) {
	_, coord, verifier := newTestVault(t)

	err := coord.Connect(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
	assertInvariant(t, coord)

	_, ok := coord.CurrentAccount()
	assert.False(t, ok)
	assert.Equal(t, 0, verifier.calls)
}

func TestConnectExpiredFailsClosed(t *testing.T) {
	store, coord, verifier := newTestVault(t)
	ctx := context.Background()

	rec := testRecord()
	require.NoError(t, store.Add(ctx, "dev", rec, false))

	// Expire the stored record
	past := time.Now().Add(-time.Hour)
	expired := testRecord()
	expired.ExpiresAt = &past
	require.NoError(t, store.Add(ctx, "dev", expired, true))

	verifier.calls = 0
	err := coord.Connect(ctx, "dev")
	require.ErrorIs(t, err, ErrAlreadyExpired)
	assertInvariant(t, coord)

	// The remote identity check must never run for an expired record
	assert.Equal(t, 0, verifier.calls)
}

func TestFailedConnectLeavesCoordinatorUnchanged(t *testing.T) {
	store, coord, verifier := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "a", testRecord(), false))
	require.NoError(t, store.Add(ctx, "b", testRecord(), false))
	require.NoError(t, coord.Connect(ctx, "a"))

	verifier.err = ErrInvalidCredentials
	err := coord.Connect(ctx, "b")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assertInvariant(t, coord)

	// Still connected to the previous account
	name, ok := coord.CurrentAccount()
	assert.True(t, ok)
	assert.Equal(t, "a", name)
}

func TestConnectSwitchesWithoutDisconnect(t *testing.T) {
	store, coord, _ := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "a", testRecord(), false))
	require.NoError(t, store.Add(ctx, "b", testRecord(), false))

	require.NoError(t, coord.Connect(ctx, "a"))
	require.NoError(t, coord.Connect(ctx, "b"))
	assertInvariant(t, coord)

	name, _ := coord.CurrentAccount()
	assert.Equal(t, "b", name)
	assert.Equal(t, "b", coord.ActiveSession().Account())
}

func TestRemoveConnectedAccountForcesDisconnect(t *testing.T) {
	store, coord, _ := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "a", testRecord(), false))
	require.NoError(t, coord.Connect(ctx, "a"))

	require.NoError(t, coord.RemoveAccount("a"))
	assertInvariant(t, coord)

	_, ok := coord.CurrentAccount()
	assert.False(t, ok)
	_, err := store.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveOtherAccountKeepsSession(t *testing.T) {
	store, coord, _ := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "a", testRecord(), false))
	require.NoError(t, store.Add(ctx, "b", testRecord(), false))
	require.NoError(t, coord.Connect(ctx, "a"))

	require.NoError(t, coord.RemoveAccount("b"))
	assertInvariant(t, coord)

	name, ok := coord.CurrentAccount()
	assert.True(t, ok)
	assert.Equal(t, "a", name)
}

func TestDisconnectIdempotent(t *testing.T) {
	store, coord, _ := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "dev", testRecord(), false))
	require.NoError(t, coord.Connect(ctx, "dev"))

	coord.Disconnect()
	assertInvariant(t, coord)
	_, ok := coord.CurrentAccount()
	assert.False(t, ok)

	// Second disconnect is a no-op, not an error
	coord.Disconnect()
	assertInvariant(t, coord)
	_, ok = coord.CurrentAccount()
	assert.False(t, ok)
}

func TestCurrentRegionFallsBackToDefault(t *testing.T) {
	store, coord, _ := newTestVault(t)
	ctx := context.Background()

	assert.Equal(t, "us-east-1", coord.CurrentRegion())

	rec := testRecord()
	rec.Region = "eu-central-1"
	require.NoError(t, store.Add(ctx, "dev", rec, false))
	require.NoError(t, coord.Connect(ctx, "dev"))
	assert.Equal(t, "eu-central-1", coord.CurrentRegion())

	coord.Disconnect()
	assert.Equal(t, "us-east-1", coord.CurrentRegion())
}
