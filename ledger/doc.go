// Package ledger implements a single-node proof-of-work ledger: an
// append-only chain of blocks, a pool of pending transactions and the set of
// participants that moved coins.
//
// # Core Components
//
// Ledger: the state object. It is the only place chain, pool and
// participants live, and every operation goes through it.
//
// Admission: Admit checks a transfer against the sender's balance and queues
// it. Balance counts mined credits and debits plus pending debits, so coins
// cannot be spent twice while a transfer waits to be mined.
//
// Mining: Mine finds a proof of work for the pending pool, appends a block
// made of the pool plus a reward transaction and empties the pool.
//
// Verification: VerifyChain replays every block, checking links and proofs.
//
// # Security Properties
//
// The chain provides:
//   - Tamper detection: any change to a mined block breaks the next link or
//     its proof of work
//   - Reproducibility: hashes depend only on the canonical form of a block,
//     so they survive Save and Load unchanged
//   - Atomic mining: a cancelled Mine leaves chain and pool untouched
//
// # Usage
//
// Create a ledger with New, or restore one with Load. Call VerifyChain after
// every command; a non-nil result means the in-memory state must not be
// trusted any further.
package ledger
