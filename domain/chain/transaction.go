package chain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MiningSender is the sender label of every reward transaction.
const MiningSender = "MINING"

// Amount is the unit of value moved by a transaction.
type Amount = decimal.Decimal

// Zero is the empty balance.
var Zero = decimal.Zero

// NewAmount converts a float into an Amount.
func NewAmount(v float64) Amount {
	return decimal.NewFromFloat(v)
}

// ParseAmount parses a decimal string such as "10" or "2.5".
func ParseAmount(s string) (Amount, error) {
	a, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return a, nil
}

// Transaction moves Amount from Sender to Recipient. Field order matters:
// it is the order used by Canonical and by the persisted JSON form.
type Transaction struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    Amount `json:"amount"`
}

// NewTransaction builds a transaction.
func NewTransaction(sender, recipient string, amount Amount) Transaction {
	return Transaction{Sender: sender, Recipient: recipient, Amount: amount}
}

// NewReward builds the transaction crediting a miner.
func NewReward(owner string, amount Amount) Transaction {
	return NewTransaction(MiningSender, owner, amount)
}

// IsReward reports whether tx was minted by the mining coordinator.
func (tx Transaction) IsReward() bool {
	return tx.Sender == MiningSender
}

// Canonical returns the byte layout hashed for tx.
func (tx Transaction) Canonical() string {
	var sb strings.Builder
	tx.writeCanonical(&sb)
	return sb.String()
}

func (tx Transaction) writeCanonical(sb *strings.Builder) {
	sb.WriteString("{sender:")
	sb.WriteString(strconv.Quote(tx.Sender))
	sb.WriteString(",recipient:")
	sb.WriteString(strconv.Quote(tx.Recipient))
	sb.WriteString(",amount:")
	sb.WriteString(tx.Amount.String())
	sb.WriteByte('}')
}

func (tx Transaction) String() string {
	return fmt.Sprintf("%s -> %s: %s", tx.Sender, tx.Recipient, tx.Amount.String())
}

// UnmarshalJSON accepts amounts both as JSON strings and as bare numbers.
// Every field is required, null amounts and unknown keys are rejected.
func (tx *Transaction) UnmarshalJSON(data []byte) error {
	var raw struct {
		Sender    *string         `json:"sender"`
		Recipient *string         `json:"recipient"`
		Amount    json.RawMessage `json:"amount"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("transaction %s: %w", string(data), err)
	}
	if raw.Sender == nil || raw.Recipient == nil || len(raw.Amount) == 0 {
		return fmt.Errorf("transaction %s: missing sender, recipient or amount", string(data))
	}
	if string(bytes.TrimSpace(raw.Amount)) == "null" {
		return fmt.Errorf("transaction %s: null amount", string(data))
	}
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(raw.Amount); err != nil {
		return fmt.Errorf("transaction amount: %w", err)
	}
	tx.Sender = *raw.Sender
	tx.Recipient = *raw.Recipient
	tx.Amount = amount
	return nil
}

// Transactions is an ordered pool or block body.
type Transactions []Transaction

// Canonical returns the byte layout hashed for an ordered list of transactions.
func (txs Transactions) Canonical() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, tx := range txs {
		if i > 0 {
			sb.WriteByte(',')
		}
		tx.writeCanonical(&sb)
	}
	sb.WriteByte(']')
	return sb.String()
}

// Clone returns an independent copy. A nil receiver yields an empty, non-nil slice.
func (txs Transactions) Clone() Transactions {
	out := make(Transactions, len(txs))
	copy(out, txs)
	return out
}
