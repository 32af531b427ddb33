package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/luca-patrignani/hashcash-ledger/domain/chain"
)

// Save serializes the ledger as two newline-separated JSON records: the chain
// first, then the pending pool. Participants are not stored; Load rebuilds
// them from the transactions.
func (l *Ledger) Save() ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	blocks, err := json.Marshal(l.blocks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chain: %w", err)
	}
	pending, err := json.Marshal(l.pending)
	if err != nil {
		return nil, fmt.Errorf("failed to encode pending pool: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(blocks) + len(pending) + 1)
	buf.Write(blocks)
	buf.WriteByte('\n')
	buf.Write(pending)
	return buf.Bytes(), nil
}

// Load rebuilds a ledger from the output of Save. Anything other than exactly
// two well-formed records with a non-empty chain is rejected with an error
// wrapping ErrPersistence. Load does not verify the chain.
func Load(raw []byte, opts ...Option) (*Ledger, error) {
	records := bytes.Split(bytes.TrimSuffix(raw, []byte("\n")), []byte("\n"))
	if len(records) != 2 {
		return nil, fmt.Errorf("%w: expected 2 records, got %d", ErrPersistence, len(records))
	}

	var blocks []chain.Block
	if err := decodeStrict(records[0], &blocks); err != nil {
		return nil, fmt.Errorf("%w: chain record: %v", ErrPersistence, err)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: chain record holds no blocks", ErrPersistence)
	}

	var pending chain.Transactions
	if err := decodeStrict(records[1], &pending); err != nil {
		return nil, fmt.Errorf("%w: pending record: %v", ErrPersistence, err)
	}

	l := newLedger(opts...)
	l.blocks = blocks
	for i := range l.blocks {
		if l.blocks[i].Transactions == nil {
			l.blocks[i].Transactions = chain.Transactions{}
		}
	}
	if pending != nil {
		l.pending = pending
	}
	for _, b := range l.blocks {
		for _, tx := range b.Transactions {
			l.register(tx.Sender, tx.Recipient)
		}
	}
	for _, tx := range l.pending {
		l.register(tx.Sender, tx.Recipient)
	}
	l.logger.Debug("ledger loaded", "blocks", len(l.blocks), "pending", len(l.pending), "participants", len(l.participants))
	return l, nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing data after record")
	}
	return nil
}
