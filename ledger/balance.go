package ledger

import (
	"github.com/luca-patrignani/hashcash-ledger/domain/chain"
)

// Balance returns what participant can still spend: every amount received in
// mined blocks, minus every amount sent in mined blocks, minus every amount
// already promised in the pending pool. Pending receipts are not counted, so
// funds cannot be spent before the block crediting them is mined.
func (l *Ledger) Balance(participant string) chain.Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balance(participant)
}

// ProjectedBalance is Balance plus the amounts participant receives in the
// pending pool: the balance once the pool is mined.
func (l *Ledger) ProjectedBalance(participant string) chain.Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()

	projected := l.balance(participant)
	for _, tx := range l.pending {
		if tx.Recipient == participant {
			projected = projected.Add(tx.Amount)
		}
	}
	return projected
}

func (l *Ledger) balance(participant string) chain.Amount {
	b := l.committedBalance(participant)
	for _, tx := range l.pending {
		if tx.Sender == participant {
			b = b.Sub(tx.Amount)
		}
	}
	return b
}

// committedBalance only looks at mined blocks.
func (l *Ledger) committedBalance(participant string) chain.Amount {
	received := chain.Zero
	sent := chain.Zero
	for _, b := range l.blocks {
		for _, tx := range b.Transactions {
			if tx.Recipient == participant {
				received = received.Add(tx.Amount)
			}
			if tx.Sender == participant {
				sent = sent.Add(tx.Amount)
			}
		}
	}
	return received.Sub(sent)
}
