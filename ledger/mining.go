package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/luca-patrignani/hashcash-ledger/domain/chain"
)

// Mine seals the pending pool into a new block rewarding owner with reward.
//
// The proof is searched over the pool as it is now. The reward is appended
// to a copy of the pool, never to the pool itself, and the pool is emptied
// only once the block is on the chain. If ctx is cancelled during the search
// nothing changes and ctx.Err() is returned wrapped.
//
// The write lock is held for the whole call.
func (l *Ledger) Mine(ctx context.Context, owner string, reward chain.Amount) (chain.Block, error) {
	if owner == "" {
		return chain.Block{}, fmt.Errorf("mine: %w", ErrInvalidParticipant)
	}
	if !reward.IsPositive() {
		return chain.Block{}, fmt.Errorf("mine: reward %s: %w", reward.String(), ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	last := l.blocks[len(l.blocks)-1]
	previousHash := chain.HashBlock(last)

	start := time.Now()
	pool := l.pending.Clone()
	proof, err := l.prover.FindProof(ctx, pool, previousHash)
	if err != nil {
		return chain.Block{}, fmt.Errorf("mine block %d: %w", last.Index+1, err)
	}

	txs := append(pool.Clone(), chain.NewReward(owner, reward))

	block := chain.Block{
		PreviousHash: previousHash,
		Index:        uint64(len(l.blocks)),
		Proof:        proof,
		Transactions: txs,
		Timestamp:    time.Now().UTC(),
	}
	l.blocks = append(l.blocks, block)
	l.pending = chain.Transactions{}
	l.register(owner)

	l.logger.Info("block mined",
		"index", block.Index,
		"proof", proof,
		"transactions", len(txs),
		"elapsed", time.Since(start).String(),
	)
	return block.Clone(), nil
}
