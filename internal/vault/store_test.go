package vault

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcoviana/awsvault/internal/config"
)

var testKey = []byte("1234567890ABCDEF1234567890ABCDEF")

// fakeVerifier stands in for the STS identity check.
type fakeVerifier struct {
	identity Identity
	err      error
	calls    int
}

func (f *fakeVerifier) Verify(ctx context.Context, r *Record) (Identity, error) {
	f.calls++
	if f.err != nil {
		return Identity{}, f.err
	}
	return f.identity, nil
}

func okVerifier() *fakeVerifier {
	return &fakeVerifier{identity: Identity{
		AccountID:    "111122223333",
		PrincipalARN: "arn:aws:iam::111122223333:user/test",
		UserID:       "AIDATEST",
	}}
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	var c config.Config
	c.ConfigDir = t.TempDir()
	c.CredentialsFile = "credentials.enc"
	c.BackupDir = "backups"
	c.DefaultRegion = "us-east-1"
	return c
}

func testRecord() *Record {
	return &Record{
		AccessKeyID:     "AKIATEST1234",
		SecretAccessKey: "SecretKey1234",
		Region:          "us-east-1",
	}
}

func TestAddGetRoundTripAcrossReload(t *testing.T) {
	cfg := testConfig(t)
	store := NewStore(cfg, testKey, okVerifier(), zerolog.Nop())

	expires := time.Now().Add(2 * time.Hour)
	rec := &Record{
		AccessKeyID:     "AKIATEST1234",
		SecretAccessKey: "SecretKey1234",
		SessionToken:    "Token1234",
		Region:          "eu-west-1",
		MFASerial:       "arn:aws:iam::111122223333:mfa/dev",
		RoleARN:         "arn:aws:iam::111122223333:role/Admin",
		ExternalID:      "ext-42",
		ExpiresAt:       &expires,
	}
	require.NoError(t, store.Add(context.Background(), "dev", rec, false))

	// Reload from disk, simulating a process restart
	reloaded := NewStore(cfg, testKey, okVerifier(), zerolog.Nop())
	got, err := reloaded.Get("dev")
	require.NoError(t, err)

	assert.Equal(t, "dev", got.AccountName)
	assert.Equal(t, "AKIATEST1234", got.AccessKeyID)
	assert.Equal(t, "SecretKey1234", got.SecretAccessKey)
	assert.Equal(t, "Token1234", got.SessionToken)
	assert.Equal(t, "eu-west-1", got.Region)
	assert.Equal(t, "111122223333", got.AccountID)
	assert.Equal(t, "dev", got.ProfileName)
	assert.Equal(t, "arn:aws:iam::111122223333:mfa/dev", got.MFASerial)
	assert.Equal(t, "arn:aws:iam::111122223333:role/Admin", got.RoleARN)
	assert.Equal(t, "ext-42", got.ExternalID)
	assert.False(t, got.CreatedAt.IsZero())
	require.NotNil(t, got.ExpiresAt)
	assert.WithinDuration(t, expires, *got.ExpiresAt, time.Second)
	assert.True(t, got.IsTemporary())
	assert.False(t, got.IsExpired())
}

func TestAddDefaultsRegion(t *testing.T) {
	store := NewStore(testConfig(t), testKey, okVerifier(), zerolog.Nop())

	rec := testRecord()
	rec.Region = ""
	require.NoError(t, store.Add(context.Background(), "dev", rec, false))

	got, err := store.Get("dev")
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", got.Region)
}

func TestAddDuplicateRejectedWithoutOverwrite(t *testing.T) {
	store := NewStore(testConfig(t), testKey, okVerifier(), zerolog.Nop())

	require.NoError(t, store.Add(context.Background(), "dev", testRecord(), false))

	second := testRecord()
	second.AccessKeyID = "AKIAOTHER"
	err := store.Add(context.Background(), "dev", second, false)
	require.ErrorIs(t, err, ErrAccountExists)

	// The original record survives
	got, err := store.Get("dev")
	require.NoError(t, err)
	assert.Equal(t, "AKIATEST1234", got.AccessKeyID)
}

func TestAddDuplicateOverwriteWithFlag(t *testing.T) {
	store := NewStore(testConfig(t), testKey, okVerifier(), zerolog.Nop())

	require.NoError(t, store.Add(context.Background(), "dev", testRecord(), false))

	second := testRecord()
	second.AccessKeyID = "AKIAOTHER"
	require.NoError(t, store.Add(context.Background(), "dev", second, true))

	got, err := store.Get("dev")
	require.NoError(t, err)
	assert.Equal(t, "AKIAOTHER", got.AccessKeyID)
}

func TestAddInvalidCredentialsLeavesStoreUnchanged(t *testing.T) {
	verifier := &fakeVerifier{err: ErrInvalidCredentials}
	store := NewStore(testConfig(t), testKey, verifier, zerolog.Nop())

	err := store.Add(context.Background(), "dev", testRecord(), false)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = store.Get("dev")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.Count())
}

func TestAddDiscoversAccountID(t *testing.T) {
	store := NewStore(testConfig(t), testKey, okVerifier(), zerolog.Nop())

	require.NoError(t, store.Add(context.Background(), "dev", testRecord(), false))

	got, err := store.Get("dev")
	require.NoError(t, err)
	assert.Equal(t, "111122223333", got.AccountID)
}

func TestRemove(t *testing.T) {
	store := NewStore(testConfig(t), testKey, okVerifier(), zerolog.Nop())

	require.NoError(t, store.Add(context.Background(), "dev", testRecord(), false))
	require.NoError(t, store.Remove("dev"))

	_, err := store.Get("dev")
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing again reports NotFound, no crash
	assert.ErrorIs(t, store.Remove("dev"), ErrNotFound)
}

func TestListSorted(t *testing.T) {
	store := NewStore(testConfig(t), testKey, okVerifier(), zerolog.Nop())

	for _, name := range []string{"staging", "dev", "prod"} {
		require.NoError(t, store.Add(context.Background(), name, testRecord(), false))
	}
	assert.Equal(t, []string{"dev", "prod", "staging"}, store.List())
}

func TestUpdateLastUsed(t *testing.T) {
	cfg := testConfig(t)
	store := NewStore(cfg, testKey, okVerifier(), zerolog.Nop())

	require.NoError(t, store.Add(context.Background(), "dev", testRecord(), false))
	require.NoError(t, store.UpdateLastUsed("dev"))

	// Persisted across reload
	reloaded := NewStore(cfg, testKey, okVerifier(), zerolog.Nop())
	got, err := reloaded.Get("dev")
	require.NoError(t, err)
	require.NotNil(t, got.LastUsed)
	assert.WithinDuration(t, time.Now(), *got.LastUsed, 5*time.Second)

	assert.ErrorIs(t, store.UpdateLastUsed("ghost"), ErrNotFound)
}

func TestCleanupExpiredRemovesExactlyExpired(t *testing.T) {
	store := NewStore(testConfig(t), testKey, okVerifier(), zerolog.Nop())

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	expired := testRecord()
	expired.ExpiresAt = &past
	stillValid := testRecord()
	stillValid.ExpiresAt = &future
	permanent := testRecord()

	require.NoError(t, store.Add(context.Background(), "old", expired, false))
	require.NoError(t, store.Add(context.Background(), "valid", stillValid, false))
	require.NoError(t, store.Add(context.Background(), "forever", permanent, false))

	removed, err := store.CleanupExpired()
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, removed)
	assert.Equal(t, []string{"forever", "valid"}, store.List())

	// Second run finds nothing
	removed, err = store.CleanupExpired()
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestCorruptStoreLoadsEmpty(t *testing.T) {
	cfg := testConfig(t)
	store := NewStore(cfg, testKey, okVerifier(), zerolog.Nop())
	require.NoError(t, store.Add(context.Background(), "dev", testRecord(), false))

	// Corrupt the file bytes directly
	require.NoError(t, os.WriteFile(cfg.CredentialsPath(), []byte("not ciphertext"), 0600))

	// Restart: the store must come up empty instead of failing
	reloaded := NewStore(cfg, testKey, okVerifier(), zerolog.Nop())
	assert.Equal(t, 0, reloaded.Count())
	assert.Empty(t, reloaded.List())
}

func TestWrongKeyLoadsEmpty(t *testing.T) {
	cfg := testConfig(t)
	store := NewStore(cfg, testKey, okVerifier(), zerolog.Nop())
	require.NoError(t, store.Add(context.Background(), "dev", testRecord(), false))

	otherKey := []byte("TOTAL_DIFFERENT_KEY_1234567890AB")
	reloaded := NewStore(cfg, otherKey, okVerifier(), zerolog.Nop())
	assert.Equal(t, 0, reloaded.Count())
}

func TestBackupAndRestore(t *testing.T) {
	cfg := testConfig(t)
	store := NewStore(cfg, testKey, okVerifier(), zerolog.Nop())

	require.NoError(t, store.Add(context.Background(), "dev", testRecord(), false))
	path, err := store.Backup("")
	require.NoError(t, err)
	require.FileExists(t, path)

	// Mutate after the backup
	require.NoError(t, store.Add(context.Background(), "prod", testRecord(), false))
	require.Equal(t, 2, store.Count())

	require.NoError(t, store.Restore(path))
	assert.Equal(t, []string{"dev"}, store.List())
}

func TestRestoreCorruptBackupLeavesStoreIntact(t *testing.T) {
	cfg := testConfig(t)
	store := NewStore(cfg, testKey, okVerifier(), zerolog.Nop())
	require.NoError(t, store.Add(context.Background(), "dev", testRecord(), false))

	bad := cfg.CredentialsPath() + ".bad"
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0600))

	err := store.Restore(bad)
	require.Error(t, err)

	// Live store untouched, in memory and on disk
	assert.Equal(t, []string{"dev"}, store.List())
	reloaded := NewStore(cfg, testKey, okVerifier(), zerolog.Nop())
	assert.Equal(t, []string{"dev"}, reloaded.List())
}

func TestBackupWithoutStoreFails(t *testing.T) {
	store := NewStore(testConfig(t), testKey, okVerifier(), zerolog.Nop())

	_, err := store.Backup("")
	require.Error(t, err)
	var perr *PersistenceError
	assert.ErrorAs(t, err, &perr)
}
