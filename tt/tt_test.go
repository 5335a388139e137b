/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package tt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/corvidchess/corvid/bitboard"
	"github.com/corvidchess/corvid/zobrist"
)

func TestPutProbeRoundTrip(t *testing.T) {
	table := NewTTable(1)
	move := NewMove(SqE2, SqE4)

	table.Put(0x1234, 57, 60, move, 8, 0, FlagExact, true)

	got, ok := table.Probe(0x1234, 0)
	require.True(t, ok)
	assert.Equal(t, Value(57), got.Score)
	assert.Equal(t, Value(60), got.StaticEval)
	assert.Equal(t, move, got.Move)
	assert.Equal(t, 8, got.Depth)
	assert.Equal(t, FlagExact, got.Flag)
	assert.True(t, got.WasPv)
}

func TestProbeMissReturnsFalse(t *testing.T) {
	table := NewTTable(1)
	_, ok := table.Probe(0xDEADBEEF, 0)
	assert.False(t, ok)
}

func TestPutPreservesMoveWhenNewRecordHasNone(t *testing.T) {
	table := NewTTable(1)
	move := NewMove(SqD2, SqD4)
	table.Put(0x55, 10, 10, move, 4, 0, FlagExact, false)

	// same key, no move supplied this time: the stored move must survive.
	table.Put(0x55, 11, 11, MoveNone, 4, 0, FlagExact, false)

	got, ok := table.Probe(0x55, 0)
	require.True(t, ok)
	assert.Equal(t, move, got.Move)
	assert.Equal(t, Value(11), got.Score)
}

func TestPutPreservesDeeperSameKeyEntry(t *testing.T) {
	table := NewTTable(1)
	move := NewMove(SqG1, SqF3)
	table.Put(0x77, 100, 100, move, 20, 0, FlagLower, false)

	// a much shallower, non-exact record for the same key and generation
	// must not overwrite the deeper one.
	table.Put(0x77, -5, -5, MoveNone, 2, 0, FlagLower, false)

	got, ok := table.Probe(0x77, 0)
	require.True(t, ok)
	assert.Equal(t, 20, got.Depth)
	assert.Equal(t, Value(100), got.Score)
}

func TestPutOverwritesSameKeyExactRegardlessOfDepth(t *testing.T) {
	table := NewTTable(1)
	table.Put(0x99, 100, 100, MoveNone, 20, 0, FlagLower, false)
	// an exact score always overwrites, even from a shallower search.
	table.Put(0x99, -30, -30, MoveNone, 2, 0, FlagExact, false)

	got, ok := table.Probe(0x99, 0)
	require.True(t, ok)
	assert.Equal(t, 2, got.Depth)
	assert.Equal(t, Value(-30), got.Score)
	assert.Equal(t, FlagExact, got.Flag)
}

func TestWinScoreNormalisedByPly(t *testing.T) {
	table := NewTTable(1)
	decisive := Win + 100
	// a score above the Win threshold is rebiased to be ply-independent on
	// the way in (score+ply), then rebiased back out (score-ply) relative
	// to a different ply on a later probe.
	table.Put(0xAB, decisive, None, MoveNone, 10, 5, FlagExact, false)

	got, ok := table.Probe(0xAB, 2)
	require.True(t, ok)
	assert.Equal(t, decisive+Value(5)-Value(2), got.Score)
}

func TestClearResetsAgeAndEntries(t *testing.T) {
	table := NewTTable(1)
	table.Put(0x1, 5, 5, MoveNone, 3, 0, FlagExact, false)
	table.NewSearch()
	table.NewSearch()

	table.Clear()

	_, ok := table.Probe(0x1, 0)
	assert.False(t, ok)
	assert.Equal(t, 0, table.Full())
}

func TestFullCountsOnlyCurrentAgeEntries(t *testing.T) {
	table := NewTTable(1)
	require.Greater(t, table.ClusterCount(), 1000)

	for i := uint64(0); i < 300; i++ {
		// spread the probe keys across the keyspace the way real zobrist
		// keys would, rather than clustering small sequential ints into
		// the same few low-index clusters.
		key := zobrist.Key(i*0x9E3779B97F4A7C15 + 1)
		table.Put(key, 1, 1, MoveNone, 1, 0, FlagExact, false)
	}
	full := table.Full()
	assert.Greater(t, full, 0)

	table.NewSearch()
	// entries written under the old age no longer count toward hashfull.
	assert.Equal(t, 0, table.Full())
}

func TestResizeDeferredUntilFinalize(t *testing.T) {
	table := &TTable{}
	table.Resize(1)
	assert.Equal(t, 0, table.ClusterCount())
	table.Finalize()
	assert.Greater(t, table.ClusterCount(), 0)
}
