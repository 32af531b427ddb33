package consensus

import (
	"context"

	"github.com/luca-patrignani/hashcash-ledger/domain/chain"
)

// Prover defines the proof-of-work search the mining coordinator relies on.
// *Miner is the production implementation.
type Prover interface {
	// FindProof returns a proof p for which ValidProof(txs, previousHash, p)
	// holds. It blocks until one is found or ctx is done; in the latter case
	// it returns ctx.Err().
	FindProof(ctx context.Context, txs chain.Transactions, previousHash string) (uint64, error)
}

var _ Prover = (*Miner)(nil)
