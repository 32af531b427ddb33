// Package chain defines the ledger's data model: transactions, blocks and the
// genesis sentinel, together with the canonical byte layout they are hashed
// from.
//
// # Canonical form
//
// Hashes are computed from an explicit encoding rather than from the JSON
// used on disk, so the in-memory representation can change without moving a
// single hash:
//   - Transaction: {sender:"a",recipient:"b",amount:10}
//   - Transactions: [tx,tx,...]
//   - Block: {previous_hash:"..",index:1,proof:42,transactions:[...]}
//
// Identifiers are Go-quoted and amounts use the shortest decimal form, so
// 10, 10.0 and "10.00" all hash the same.
package chain
