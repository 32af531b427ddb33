package ledger

import (
	"log/slog"

	"github.com/luca-patrignani/hashcash-ledger/consensus"
)

// Option configures a Ledger built by New or Load.
type Option func(*Ledger)

// WithOwner registers owner as a participant from the start.
func WithOwner(owner string) Option {
	return func(l *Ledger) {
		l.owner = owner
	}
}

// WithLogger sets the logger for the ledger and its default prover.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithProver replaces the proof-of-work search used by Mine.
func WithProver(p consensus.Prover) Option {
	return func(l *Ledger) {
		l.prover = p
	}
}
