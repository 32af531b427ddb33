package ledger

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luca-patrignani/hashcash-ledger/domain/chain"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	l := minedLedger(t)
	require.NoError(t, l.Admit("Dave", "Alice", amount(2.5)))

	raw, err := l.Save()
	require.NoError(t, err)
	restored, err := Load(raw, WithOwner("Alice"))
	require.NoError(t, err)

	assertSameState(t, l.Snapshot(), restored.Snapshot())
	assert.NoError(t, restored.VerifyChain())
	assert.True(t, l.Balance("Alice").Equal(restored.Balance("Alice")))
	assert.Equal(t, chain.HashBlock(l.GetLatest()), chain.HashBlock(restored.GetLatest()))

	again, err := restored.Save()
	require.NoError(t, err)
	assert.Equal(t, raw, again)
}

func TestSaveLayout(t *testing.T) {
	l := New()
	mine(t, l, "Alice")
	require.NoError(t, l.Admit("Bob", "Alice", amount(10)))

	raw, err := l.Save()
	require.NoError(t, err)
	records := bytes.Split(raw, []byte("\n"))
	require.Len(t, records, 2)

	assert.True(t, strings.HasPrefix(string(records[0]), `[{"previous_hash":"","index":0,"proof":100,"transactions":[]`))
	assert.Contains(t, string(records[0]), `{"sender":"MINING","recipient":"Alice","amount":"50"}`)
	assert.Equal(t, `[{"sender":"Alice","recipient":"Bob","amount":"10"}]`, string(records[1]))
}

// TestLoadLegacyFile reads a state file written with bare numeric amounts and
// no timestamps, with a trailing newline.
func TestLoadLegacyFile(t *testing.T) {
	l := New()
	mine(t, l, "Jorge")
	b := l.GetLatest()

	legacy := `[{"previous_hash": "", "index": 0, "proof": 100, "transactions": []}, ` +
		`{"previous_hash": "` + b.PreviousHash + `", "index": 1, "proof": ` + uintString(b.Proof) +
		`, "transactions": [{"sender": "MINING", "recipient": "Jorge", "amount": 50}]}]` + "\n" +
		`[{"sender": "Jorge", "recipient": "Max", "amount": 5.0}]` + "\n"

	restored, err := Load([]byte(legacy), WithOwner("Jorge"))
	require.NoError(t, err)
	assert.NoError(t, restored.VerifyChain())
	assert.Equal(t, []string{"Jorge", "Max"}, restored.Participants())
	assertAmount(t, 45, restored.Balance("Jorge"))
}

func TestLoadRebuildsParticipants(t *testing.T) {
	l := New(WithOwner("Jorge"))
	mine(t, l, "Alice")
	require.NoError(t, l.Admit("Bob", "Alice", amount(1)))
	mine(t, l, "Alice")
	require.NoError(t, l.Admit("Carol", "Bob", amount(1)))

	raw, err := l.Save()
	require.NoError(t, err)
	restored, err := Load(raw, WithOwner("Jorge"))
	require.NoError(t, err)

	assert.Equal(t, l.Participants(), restored.Participants())
	assert.NotContains(t, restored.Participants(), chain.MiningSender)
}

func TestLoadRejectsMalformedState(t *testing.T) {
	good, err := New().Save()
	require.NoError(t, err)
	chainRecord := string(bytes.Split(good, []byte("\n"))[0])

	tests := map[string]string{
		"empty":             "",
		"single record":     chainRecord,
		"three records":     chainRecord + "\n[]\n[]",
		"bad chain json":    "[{\n[]",
		"bad pending json":  chainRecord + "\n[{]",
		"empty chain":       "[]\n[]",
		"unknown field":     `[{"previous_hash":"","index":0,"proof":100,"transactions":[],"nonce":1}]` + "\n[]",
		"missing tx field":  chainRecord + "\n" + `[{"sender":"a","amount":1}]`,
		"bad amount":        chainRecord + "\n" + `[{"sender":"a","recipient":"b","amount":"lots"}]`,
		"null amount":       chainRecord + "\n" + `[{"sender":"a","recipient":"b","amount":null}]`,
		"unknown tx field":  chainRecord + "\n" + `[{"sender":"a","recipient":"b","amount":1,"memo":"x"}]`,
		"tx field in block": `[{"previous_hash":"","index":0,"proof":100,"transactions":[{"sender":"a","recipient":"b","amount":1,"memo":"x"}]}]` + "\n[]",
		"trailing garbage":  chainRecord + "\n[] []",
		"wrong record type": chainRecord + "\n{}",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			l, err := Load([]byte(raw))
			assert.ErrorIs(t, err, ErrPersistence)
			assert.Nil(t, l)
		})
	}
}

// TestLoadDoesNotRepairCorruption checks that a tampered file loads as-is and
// is left to VerifyChain to reject.
func TestLoadDoesNotRepairCorruption(t *testing.T) {
	l := minedLedger(t)
	l.blocks[1].Proof++
	raw, err := l.Save()
	require.NoError(t, err)

	restored, err := Load(raw)
	require.NoError(t, err)
	assert.ErrorIs(t, restored.VerifyChain(), ErrChainCorrupted)
}

func uintString(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// assertSameState compares two snapshots by canonical form, so that equal
// amounts with different internal decimal scales compare equal.
func assertSameState(t *testing.T, expected, got Snapshot) {
	t.Helper()
	require.Len(t, got.Blocks, len(expected.Blocks))
	for i := range expected.Blocks {
		assert.Equal(t, expected.Blocks[i].Canonical(), got.Blocks[i].Canonical(), "block %d", i)
		assert.True(t, expected.Blocks[i].Timestamp.Equal(got.Blocks[i].Timestamp), "block %d timestamp", i)
	}
	assert.Equal(t, expected.Pending.Canonical(), got.Pending.Canonical())
	assert.Equal(t, expected.Participants, got.Participants)
}
