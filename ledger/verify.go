package ledger

import (
	"github.com/luca-patrignani/hashcash-ledger/consensus"
	"github.com/luca-patrignani/hashcash-ledger/domain/chain"
)

// VerifyChain replays the whole chain and returns a *CorruptionError for the
// first block that fails, or nil when every block checks out.
//
// Verification checks:
//   - the chain is not empty
//   - chain[0] is the genesis sentinel
//   - each block's index matches its position
//   - each block's previous hash matches the hash of the block before it
//   - each mined block ends with a reward transaction
//   - each block's proof solves the puzzle over its transactions but the reward
//
// VerifyChain has no side effects and can be called at any time.
func (l *Ledger) VerifyChain() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return verifyBlocks(l.blocks)
}

// Valid reports whether VerifyChain succeeds.
func (l *Ledger) Valid() bool {
	return l.VerifyChain() == nil
}

func verifyBlocks(blocks []chain.Block) error {
	if len(blocks) == 0 {
		return corrupted(0, "empty chain")
	}
	if h := chain.HashBlock(blocks[0]); h != chain.GenesisHash {
		return corrupted(0, "genesis block altered: hash %s, expected %s", h, chain.GenesisHash)
	}
	for i := 1; i < len(blocks); i++ {
		if err := validateBlock(i, blocks[i], blocks[i-1]); err != nil {
			return err
		}
	}
	return nil
}

// validateBlock verifies current against the block before it.
func validateBlock(i int, current, previous chain.Block) error {
	if current.Index != uint64(i) {
		return corrupted(i, "invalid index: expected %d, got %d", i, current.Index)
	}

	if expected := chain.HashBlock(previous); current.PreviousHash != expected {
		return corrupted(i, "invalid previous hash: expected %s, got %s", expected, current.PreviousHash)
	}

	if _, ok := current.Reward(); !ok {
		return corrupted(i, "missing trailing reward transaction")
	}

	if !consensus.ValidProof(current.Body(), current.PreviousHash, current.Proof) {
		return corrupted(i, "invalid proof of work %d", current.Proof)
	}
	return nil
}
