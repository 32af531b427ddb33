// Package consensus implements the hashcash-style proof of work that gates
// every block appended to the ledger.
//
// # Puzzle
//
// Given the ordered pending transactions and the hash of the last block, a
// proof p is valid when
//
//	sha256(canonical(transactions) + previousHash + decimal(p))
//
// starts with Difficulty hex zeros. The difficulty is fixed.
//
// # Search
//
// FindProof tries p = 0, 1, 2, ... and returns the first valid value. The
// search is unbounded and single threaded; it can be interrupted through its
// context, in which case no proof is returned.
//
// The reward transaction is never part of the puzzle: it is appended after
// the proof is found, which is why verifiers check a block's proof against
// every transaction but the last.
package consensus
