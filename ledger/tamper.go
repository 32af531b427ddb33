package ledger

import (
	"github.com/luca-patrignani/hashcash-ledger/domain/chain"
)

// CorruptGenesis overwrites chain[0] with a forged block granting 100 coins
// to the owner. It exists to demonstrate that VerifyChain catches tampering.
func (l *Ledger) CorruptGenesis() {
	l.mu.Lock()
	defer l.mu.Unlock()

	recipient := l.owner
	if recipient == "" {
		recipient = "owner"
	}
	l.blocks[0] = chain.Block{
		PreviousHash: "",
		Index:        0,
		Transactions: chain.Transactions{chain.NewTransaction("Chris", recipient, chain.NewAmount(100))},
	}
	l.logger.Warn("genesis block overwritten", "recipient", recipient)
}
