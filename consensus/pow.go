package consensus

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/luca-patrignani/hashcash-ledger/domain/chain"
)

// Difficulty is the number of leading hex zeros a proof hash must have.
const Difficulty = 2

// checkInterval is how many attempts run between two context checks.
const checkInterval = 1 << 12

var target = strings.Repeat("0", Difficulty)

// Miner searches for proofs of work.
type Miner struct {
	logger *slog.Logger
	target string
}

type minerOption func(*Miner)

// WithLogger sets the logger used to report search progress.
func WithLogger(logger *slog.Logger) minerOption {
	return func(m *Miner) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMiner creates a Miner. Without options it logs to slog.Default().
func NewMiner(opts ...minerOption) *Miner {
	m := &Miner{logger: slog.Default(), target: target}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ProofHash returns the digest a proof is judged on.
func ProofHash(txs chain.Transactions, previousHash string, proof uint64) string {
	guess := txs.Canonical() + previousHash + strconv.FormatUint(proof, 10)
	return chain.Hash([]byte(guess))
}

// ValidProof reports whether proof solves the puzzle formed by txs and previousHash.
func ValidProof(txs chain.Transactions, previousHash string, proof uint64) bool {
	return strings.HasPrefix(ProofHash(txs, previousHash, proof), target)
}

// FindProof returns the smallest proof, counting up from zero, that satisfies
// ValidProof. The search has no upper bound; it stops early only when ctx is
// done, in which case ctx.Err() is returned.
func (m *Miner) FindProof(ctx context.Context, txs chain.Transactions, previousHash string) (uint64, error) {
	prefix := txs.Canonical() + previousHash
	for proof := uint64(0); ; proof++ {
		if proof%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				m.logger.Debug("proof search cancelled", "attempts", proof, "err", err)
				return 0, err
			}
			if proof > 0 {
				m.logger.Debug("proof search in progress", "attempts", proof)
			}
		}
		h := chain.Hash([]byte(prefix + strconv.FormatUint(proof, 10)))
		if strings.HasPrefix(h, m.target) {
			m.logger.Debug("proof found", "proof", proof, "hash", h, "transactions", len(txs))
			return proof, nil
		}
	}
}

// FindProof runs a search with the default Miner.
func FindProof(ctx context.Context, txs chain.Transactions, previousHash string) (uint64, error) {
	return NewMiner().FindProof(ctx, txs, previousHash)
}
