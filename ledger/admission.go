package ledger

import (
	"fmt"

	"github.com/luca-patrignani/hashcash-ledger/domain/chain"
)

// Verify reports whether the sender of tx can cover its amount.
func (l *Ledger) Verify(tx chain.Transaction) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.verify(tx)
}

// VerifyPending replays the pending pool in arrival order and reports whether
// every transaction was covered by its sender's balance at the time it was
// queued, that is the mined balance minus the sender's earlier pending debits.
//
// This is not the same as calling Verify on each pending transaction. Verify
// judges against the balance net of every pending debit, later ones included,
// so it would reject transfers that were covered when they were admitted.
func (l *Ledger) VerifyPending() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	spent := make(map[string]chain.Amount)
	for _, tx := range l.pending {
		available := l.committedBalance(tx.Sender).Sub(spent[tx.Sender])
		if available.LessThan(tx.Amount) {
			return false
		}
		spent[tx.Sender] = spent[tx.Sender].Add(tx.Amount)
	}
	return true
}

func (l *Ledger) verify(tx chain.Transaction) bool {
	return l.balance(tx.Sender).GreaterThanOrEqual(tx.Amount)
}

// Admit queues a transfer of amount from sender to recipient. The transfer is
// appended to the pending pool and both parties become participants. On any
// error the ledger is left untouched; ErrInsufficientBalance is the
// recoverable rejection. Persisting the new state is up to the caller.
func (l *Ledger) Admit(recipient, sender string, amount chain.Amount) error {
	tx := chain.NewTransaction(sender, recipient, amount)
	if err := checkTransfer(tx); err != nil {
		return fmt.Errorf("transaction %s rejected: %w", tx, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.verify(tx) {
		l.logger.Debug("transaction rejected", "sender", sender, "recipient", recipient, "amount", amount.String())
		return fmt.Errorf("transaction %s rejected: %w (balance %s)", tx, ErrInsufficientBalance, l.balance(sender).String())
	}
	l.pending = append(l.pending, tx)
	l.register(sender, recipient)
	l.logger.Debug("transaction admitted", "sender", sender, "recipient", recipient, "amount", amount.String(), "pending", len(l.pending))
	return nil
}

func checkTransfer(tx chain.Transaction) error {
	if tx.Sender == "" || tx.Recipient == "" {
		return ErrInvalidParticipant
	}
	if tx.Sender == chain.MiningSender {
		return ErrReservedSender
	}
	if tx.Sender == tx.Recipient {
		return ErrSelfTransfer
	}
	if !tx.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
