package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luca-patrignani/hashcash-ledger/domain/chain"
)

var reward = chain.NewAmount(50)

func amount(v float64) chain.Amount {
	return chain.NewAmount(v)
}

// mine is a test helper that mines one block and fails the test on error.
func mine(t *testing.T, l *Ledger, owner string) chain.Block {
	t.Helper()
	b, err := l.Mine(context.Background(), owner, reward)
	require.NoError(t, err)
	return b
}

func assertAmount(t *testing.T, expected float64, got chain.Amount) {
	t.Helper()
	assert.Truef(t, got.Equal(amount(expected)), "expected %v, got %s", expected, got.String())
}

// TestNewLedgerHasOnlyGenesis verifies that a fresh ledger starts from the
// genesis sentinel with an empty pool.
func TestNewLedgerHasOnlyGenesis(t *testing.T) {
	l := New(WithOwner("Jorge"))

	require.Equal(t, 1, l.Height())
	genesis := l.GetLatest()
	assert.Equal(t, uint64(0), genesis.Index)
	assert.Equal(t, "", genesis.PreviousHash)
	assert.Equal(t, uint64(chain.GenesisProof), genesis.Proof)
	assert.Empty(t, genesis.Transactions)
	assert.Empty(t, l.Pending())
	assert.Equal(t, []string{"Jorge"}, l.Participants())
	assert.NoError(t, l.VerifyChain())
}

func TestGetByIndex(t *testing.T) {
	l := New()
	mine(t, l, "Alice")

	b, err := l.GetByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), b.Index)

	_, err = l.GetByIndex(2)
	assert.Error(t, err)
	_, err = l.GetByIndex(-1)
	assert.Error(t, err)
}

// TestFreshlyMinedChainVerifies mines several blocks, with and without
// pending transactions, and checks the chain stays valid throughout.
func TestFreshlyMinedChainVerifies(t *testing.T) {
	l := New(WithOwner("Alice"))
	for i := 0; i < 4; i++ {
		mine(t, l, "Alice")
		require.NoError(t, l.Admit("Bob", "Alice", amount(float64(i+1))))
		require.NoError(t, l.VerifyChain())
	}
	mine(t, l, "Bob")

	assert.Equal(t, 6, l.Height())
	assert.True(t, l.Valid())
}

func TestMineLinksAndClearsPool(t *testing.T) {
	l := New()
	first := mine(t, l, "Alice")
	require.NoError(t, l.Admit("Bob", "Alice", amount(10)))
	pool := l.Pending()

	second := mine(t, l, "Alice")

	assert.Equal(t, uint64(2), second.Index)
	assert.Equal(t, chain.HashBlock(first), second.PreviousHash)
	require.Len(t, second.Transactions, 2)
	assert.Equal(t, pool[0], second.Transactions[0])
	reward, ok := second.Reward()
	require.True(t, ok)
	assert.Equal(t, "Alice", reward.Recipient)
	assertAmount(t, 50, reward.Amount)
	assert.Empty(t, l.Pending())
}

// TestMineTwiceWithEmptyPool checks that consecutive mines without pending
// transactions still produce distinct, valid blocks.
func TestMineTwiceWithEmptyPool(t *testing.T) {
	l := New()
	a := mine(t, l, "Alice")
	b := mine(t, l, "Alice")

	assert.NotEqual(t, chain.HashBlock(a), chain.HashBlock(b))
	assert.Len(t, a.Transactions, 1)
	assert.Len(t, b.Transactions, 1)
	assert.NoError(t, l.VerifyChain())
}

func TestMiningRewardCreditsExactly(t *testing.T) {
	l := New()
	mine(t, l, "Alice")
	require.NoError(t, l.Admit("Bob", "Alice", amount(5)))
	before := l.Balance("Alice")
	bobBefore := l.Balance("Bob")

	mine(t, l, "Alice")

	assert.True(t, l.Balance("Alice").Sub(before).Equal(reward))
	// Bob's transfer is now mined, nothing else changed for him.
	assertAmount(t, 5, l.Balance("Bob").Sub(bobBefore))
}

func TestMineRejectsBadArguments(t *testing.T) {
	l := New()
	_, err := l.Mine(context.Background(), "", reward)
	assert.ErrorIs(t, err, ErrInvalidParticipant)
	_, err = l.Mine(context.Background(), "Alice", chain.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, 1, l.Height())
}

type failingProver struct{}

func (failingProver) FindProof(ctx context.Context, _ chain.Transactions, _ string) (uint64, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

// TestCancelledMiningLeavesStateUntouched checks the all-or-nothing commit of
// Mine when the proof search is interrupted.
func TestCancelledMiningLeavesStateUntouched(t *testing.T) {
	l := New(WithProver(failingProver{}))
	l.blocks = append(l.blocks, minedOnGenesis(t, "Alice"))
	require.NoError(t, l.Admit("Bob", "Alice", amount(10)))
	before := l.Snapshot()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Mine(ctx, "Alice", reward)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, before, l.Snapshot())
	for _, tx := range l.Pending() {
		assert.False(t, tx.IsReward(), "reward leaked into the pending pool")
	}
}

// minedOnGenesis mines block 1 on a scratch ledger.
func minedOnGenesis(t *testing.T, owner string) chain.Block {
	t.Helper()
	return mine(t, New(), owner)
}

func TestErrorsAreDistinguishable(t *testing.T) {
	l := New()
	err := l.Admit("Bob", "Alice", amount(1))
	assert.True(t, errors.Is(err, ErrInsufficientBalance))
	assert.False(t, errors.Is(err, ErrChainCorrupted))
}
