package chain

import (
	"strconv"
	"strings"
	"time"
)

// GenesisProof is the proof stored in the genesis block.
const GenesisProof = 100

// Block is one entry of the chain. The JSON field order mirrors the
// persisted layout: previous_hash, index, proof, transactions, timestamp.
//
// Timestamp is informational only. It is not part of Canonical, so it is not
// covered by the block hash or the proof and editing it goes undetected.
type Block struct {
	PreviousHash string       `json:"previous_hash"`
	Index        uint64       `json:"index"`
	Proof        uint64       `json:"proof"`
	Transactions Transactions `json:"transactions"`
	Timestamp    time.Time    `json:"timestamp"`
}

// Genesis returns the fixed first block of every chain.
func Genesis() Block {
	return Block{
		PreviousHash: "",
		Index:        0,
		Proof:        GenesisProof,
		Transactions: Transactions{},
	}
}

// GenesisHash is the hash every untampered chain[0] must produce.
var GenesisHash = HashBlock(Genesis())

// Canonical returns the byte layout hashed for b. The timestamp is not part
// of it: a block's identity is its position, link, proof and body.
func (b Block) Canonical() string {
	var sb strings.Builder
	sb.WriteString("{previous_hash:")
	sb.WriteString(strconv.Quote(b.PreviousHash))
	sb.WriteString(",index:")
	sb.WriteString(strconv.FormatUint(b.Index, 10))
	sb.WriteString(",proof:")
	sb.WriteString(strconv.FormatUint(b.Proof, 10))
	sb.WriteString(",transactions:")
	sb.WriteString(b.Transactions.Canonical())
	sb.WriteByte('}')
	return sb.String()
}

// Clone returns a deep copy of b.
func (b Block) Clone() Block {
	b.Transactions = b.Transactions.Clone()
	return b
}

// Body returns the transactions covered by the block's proof of work, that is
// every transaction but the trailing reward.
func (b Block) Body() Transactions {
	if len(b.Transactions) == 0 {
		return Transactions{}
	}
	return b.Transactions[:len(b.Transactions)-1]
}

// Reward returns the trailing reward transaction, if the block has one.
func (b Block) Reward() (Transaction, bool) {
	if len(b.Transactions) == 0 {
		return Transaction{}, false
	}
	last := b.Transactions[len(b.Transactions)-1]
	return last, last.IsReward()
}
