package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marcoviana/awsvault/internal/config"
)

// Store is the encrypted, file-backed mapping from account name to
// credential record. It exclusively owns the on-disk file and the
// encryption key handle; every mutation re-encrypts and rewrites the
// whole file. A single mutex guards the load-mutate-save sequence.
type Store struct {
	mu            sync.Mutex
	path          string
	backupDir     string
	defaultRegion string
	key           []byte
	verifier      Verifier
	log           zerolog.Logger
	accounts      map[string]*Record
}

// NewStore opens the store at the configured path. A missing file
// means an empty store. A file that cannot be decrypted or parsed
// also yields an empty store, with a loud log: credential loss is
// recoverable by re-adding accounts, returning garbage is not.
func NewStore(cfg config.Config, key []byte, verifier Verifier, log zerolog.Logger) *Store {
	s := &Store{
		path:          cfg.CredentialsPath(),
		backupDir:     cfg.BackupPath(),
		defaultRegion: cfg.DefaultRegion,
		key:           key,
		verifier:      verifier,
		log:           log,
		accounts:      make(map[string]*Record),
	}
	s.load()
	return s
}

func (s *Store) load() {
	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("path", s.path).
			Msg("store file unreadable, starting with zero accounts")
		return
	}
	accounts, err := decodeStore(b, s.key)
	if err != nil {
		s.log.Error().Err(err).Str("path", s.path).
			Msg("store file undecryptable, starting with zero accounts")
		return
	}
	s.accounts = accounts
}

func decodeStore(ciphertext, key []byte) (map[string]*Record, error) {
	plaintext, err := Decrypt(ciphertext, key)
	if err != nil {
		return nil, err
	}
	accounts := make(map[string]*Record)
	if err := json.Unmarshal(plaintext, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// save must be called with the mutex held.
func (s *Store) save() error {
	plaintext, err := json.MarshalIndent(s.accounts, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	ciphertext, err := Encrypt(plaintext, s.key)
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if err := os.WriteFile(s.path, ciphertext, 0600); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// Add validates the record against the identity check, writes the
// discovered account id into it, and persists. Overwriting an
// existing name requires the explicit overwrite flag. On any failure
// the store is left unchanged.
func (s *Store) Add(ctx context.Context, name string, rec *Record, overwrite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[name]; ok && !overwrite {
		return fmt.Errorf("account %q: %w", name, ErrAccountExists)
	}

	rec = rec.Clone()
	rec.AccountName = name
	if rec.Region == "" {
		rec.Region = s.defaultRegion
	}
	if rec.ProfileName == "" {
		rec.ProfileName = name
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	id, err := s.verifier.Verify(ctx, rec)
	if err != nil {
		return err
	}
	rec.AccountID = id.AccountID

	prev, existed := s.accounts[name]
	s.accounts[name] = rec
	if err := s.save(); err != nil {
		if existed {
			s.accounts[name] = prev
		} else {
			delete(s.accounts, name)
		}
		return err
	}
	s.log.Info().Str("account", name).Str("account_id", rec.AccountID).Msg("account added")
	return nil
}

// Remove deletes the entry and persists.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.accounts[name]
	if !ok {
		return fmt.Errorf("account %q: %w", name, ErrNotFound)
	}
	delete(s.accounts, name)
	if err := s.save(); err != nil {
		s.accounts[name] = prev
		return err
	}
	s.log.Info().Str("account", name).Msg("account removed")
	return nil
}

// Get returns a copy of the record so callers cannot mutate store
// state behind the lock.
func (s *Store) Get(name string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.accounts[name]
	if !ok {
		return nil, fmt.Errorf("account %q: %w", name, ErrNotFound)
	}
	return rec.Clone(), nil
}

// List returns all account names, sorted for stable output.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.accounts))
	for name := range s.accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of stored accounts.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// UpdateLastUsed stamps the account with the current time and persists.
func (s *Store) UpdateLastUsed(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.accounts[name]
	if !ok {
		return fmt.Errorf("account %q: %w", name, ErrNotFound)
	}
	prev := rec.LastUsed
	now := time.Now()
	rec.LastUsed = &now
	if err := s.save(); err != nil {
		rec.LastUsed = prev
		return err
	}
	return nil
}

// SetAccountID writes a discovered account id back into the record
// and persists.
func (s *Store) SetAccountID(name, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.accounts[name]
	if !ok {
		return fmt.Errorf("account %q: %w", name, ErrNotFound)
	}
	prev := rec.AccountID
	rec.AccountID = accountID
	if err := s.save(); err != nil {
		rec.AccountID = prev
		return err
	}
	return nil
}

// CleanupExpired removes every expired record, persists once after
// the batch, and returns the removed names. Records without an expiry
// are never touched.
func (s *Store) CleanupExpired() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := []string{}
	stash := make(map[string]*Record)
	for name, rec := range s.accounts {
		if rec.IsExpired() {
			stash[name] = rec
			removed = append(removed, name)
			delete(s.accounts, name)
		}
	}
	if len(removed) == 0 {
		return removed, nil
	}
	if err := s.save(); err != nil {
		for name, rec := range stash {
			s.accounts[name] = rec
		}
		return nil, err
	}
	sort.Strings(removed)
	s.log.Info().Strs("accounts", removed).Msg("expired credentials removed")
	return removed, nil
}

// Backup copies the encrypted file byte-for-byte to path. An empty
// path picks a timestamped name under the configured backup
// directory. Returns the path written.
func (s *Store) Backup(path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backup(path)
}

// backup must be called with the mutex held.
func (s *Store) backup(path string) (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return "", &PersistenceError{Op: "backup", Path: s.path, Err: err}
	}
	if path == "" {
		name := fmt.Sprintf("accounts-%s-%s.enc",
			time.Now().Format("20060102-150405"), uuid.NewString()[:8])
		path = filepath.Join(s.backupDir, name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", &PersistenceError{Op: "backup", Path: path, Err: err}
	}
	if err := os.WriteFile(path, b, 0600); err != nil {
		return "", &PersistenceError{Op: "backup", Path: path, Err: err}
	}
	s.log.Info().Str("path", path).Msg("store backed up")
	return path, nil
}

// Restore replaces the live store with the backup at path. The backup
// must decrypt and parse with the current key before anything is
// touched, and the live file is itself backed up first, so a bad
// restore can never destroy data.
func (s *Store) Restore(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(path)
	if err != nil {
		return &PersistenceError{Op: "restore", Path: path, Err: err}
	}
	accounts, err := decodeStore(b, s.key)
	if err != nil {
		return &PersistenceError{Op: "restore", Path: path, Err: err}
	}

	if _, statErr := os.Stat(s.path); statErr == nil {
		if _, err := s.backup(""); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return &PersistenceError{Op: "restore", Path: s.path, Err: err}
	}
	if err := os.WriteFile(s.path, b, 0600); err != nil {
		return &PersistenceError{Op: "restore", Path: s.path, Err: err}
	}
	s.accounts = accounts
	s.log.Info().Str("path", path).Int("accounts", len(accounts)).Msg("store restored")
	return nil
}
