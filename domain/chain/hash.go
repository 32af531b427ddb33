package chain

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the lowercase hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashBlock hashes the canonical form of b.
func HashBlock(b Block) string {
	return Hash([]byte(b.Canonical()))
}
