package storage

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v2"
)

var (
	stateKey   = []byte("ledger/state")
	savedAtKey = []byte("ledger/saved_at")
)

// BadgerStore keeps the state in a badger database directory.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens, creating if needed, the database at dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	// badger v2 does not create parent directories
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db dir: %w", err)
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Load() ([]byte, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(stateKey)
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}
	return raw, nil
}

// Save stores raw together with the time it was written, in one transaction.
func (s *BadgerStore) Save(raw []byte) error {
	savedAt, err := time.Now().UTC().MarshalText()
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(stateKey, raw); err != nil {
			return err
		}
		return txn.Set(savedAtKey, savedAt)
	})
	if err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

// SavedAt returns when the state was last saved.
func (s *BadgerStore) SavedAt() (time.Time, error) {
	var t time.Time
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(savedAtKey)
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			return t.UnmarshalText(v)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return time.Time{}, ErrNoState
	}
	return t, err
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
