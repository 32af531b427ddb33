package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientBalance is returned when a sender cannot cover a transfer.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAmount is returned for non-positive transfer or reward amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidParticipant is returned for empty identifiers.
	ErrInvalidParticipant = errors.New("participant identifier must not be empty")
	// ErrSelfTransfer is returned when sender and recipient are the same.
	ErrSelfTransfer = errors.New("sender and recipient must differ")
	// ErrReservedSender is returned when a transfer impersonates the mining reward.
	ErrReservedSender = errors.New("sender identifier is reserved for mining rewards")
	// ErrChainCorrupted is matched by every *CorruptionError.
	ErrChainCorrupted = errors.New("chain corrupted")
	// ErrPersistence is returned when persisted state cannot be decoded.
	ErrPersistence = errors.New("invalid persisted state")
)

// CorruptionError describes the first block that failed verification.
type CorruptionError struct {
	Index  int
	Reason string
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("block %d invalid: %s", e.Index, e.Reason)
}

// Is makes errors.Is(err, ErrChainCorrupted) hold for every CorruptionError.
func (e *CorruptionError) Is(target error) bool {
	return target == ErrChainCorrupted
}

func corrupted(index int, format string, args ...any) error {
	return &CorruptionError{Index: index, Reason: fmt.Sprintf(format, args...)}
}
