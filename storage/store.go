// Package storage persists the serialized ledger produced by ledger.Save.
// Stores move opaque bytes; they never interpret the ledger format.
package storage

import (
	"errors"
	"fmt"

	"github.com/luca-patrignani/hashcash-ledger/config"
)

// ErrNoState is returned by Load when nothing was ever saved.
var ErrNoState = errors.New("no persisted state")

// Store defines where raw ledger state lives between runs.
type Store interface {
	// Load returns the last saved state, or ErrNoState.
	Load() ([]byte, error)
	// Save replaces the stored state with raw.
	Save(raw []byte) error
	Close() error
}

// Open returns the store selected by cfg.
func Open(cfg config.Storage) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.Path), nil
	case config.BackendBadger:
		return OpenBadgerStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
