package ledger

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/luca-patrignani/hashcash-ledger/consensus"
	"github.com/luca-patrignani/hashcash-ledger/domain/chain"
)

// Ledger is the single owned state object of a node: the chain of mined
// blocks, the pool of admitted but unmined transactions and the set of
// known participants.
//
// All mutations go through Admit, Mine and CorruptGenesis, which take the
// write lock; every other method only reads.
type Ledger struct {
	mu           sync.RWMutex
	blocks       []chain.Block
	pending      chain.Transactions
	participants map[string]struct{}

	owner  string
	prover consensus.Prover
	logger *slog.Logger
}

// New creates a ledger holding only the genesis block.
func New(opts ...Option) *Ledger {
	l := newLedger(opts...)
	l.blocks = []chain.Block{chain.Genesis()}
	return l
}

func newLedger(opts ...Option) *Ledger {
	l := &Ledger{
		pending:      chain.Transactions{},
		participants: make(map[string]struct{}),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.prover == nil {
		l.prover = consensus.NewMiner(consensus.WithLogger(l.logger))
	}
	if l.owner != "" {
		l.participants[l.owner] = struct{}{}
	}
	return l
}

// Owner returns the identifier this node mines for, if one was configured.
func (l *Ledger) Owner() string {
	return l.owner
}

// GetLatest returns the most recently appended block.
func (l *Ledger) GetLatest() chain.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.blocks[len(l.blocks)-1].Clone()
}

// GetByIndex returns the block at position index.
func (l *Ledger) GetByIndex(index int) (chain.Block, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if index < 0 || index >= len(l.blocks) {
		return chain.Block{}, fmt.Errorf("index %d out of range [0, %d)", index, len(l.blocks))
	}
	return l.blocks[index].Clone(), nil
}

// Height returns the number of blocks, genesis included.
func (l *Ledger) Height() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.blocks)
}

// Blocks returns a deep copy of the chain.
func (l *Ledger) Blocks() []chain.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return cloneBlocks(l.blocks)
}

// Pending returns a copy of the pending pool in arrival order.
func (l *Ledger) Pending() chain.Transactions {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.pending.Clone()
}

// Participants returns the known participants in lexical order.
func (l *Ledger) Participants() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.sortedParticipants()
}

// Snapshot is a detached copy of the ledger state.
type Snapshot struct {
	Blocks       []chain.Block
	Pending      chain.Transactions
	Participants []string
}

// Snapshot copies chain, pool and participants under a single read lock.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Snapshot{
		Blocks:       cloneBlocks(l.blocks),
		Pending:      l.pending.Clone(),
		Participants: l.sortedParticipants(),
	}
}

func (l *Ledger) sortedParticipants() []string {
	out := make([]string, 0, len(l.participants))
	for p := range l.participants {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (l *Ledger) register(ids ...string) {
	for _, id := range ids {
		if id == "" || id == chain.MiningSender {
			continue
		}
		l.participants[id] = struct{}{}
	}
}

func cloneBlocks(blocks []chain.Block) []chain.Block {
	out := make([]chain.Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}
