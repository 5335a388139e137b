/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

// Package tt implements the cluster-bucketed transposition table shared
// across search workers: a flat array of fixed-arity clusters, a
// depth/age-weighted replacement policy, and lock-free, intentionally racy
// probe/put paths that rely on the stored key tag to catch a torn read
// rather than on any synchronisation.
package tt

import (
	"math"
	"math/bits"
	"runtime"
	"unsafe"

	"golang.org/x/sync/errgroup"

	. "github.com/corvidchess/corvid/bitboard"
	"github.com/corvidchess/corvid/support/memx"
	"github.com/corvidchess/corvid/zobrist"
)

const clusterSize = int(unsafe.Sizeof(cluster{}))

// Probed is the payload Probe hands back on a hit.
type Probed struct {
	Score      Value
	StaticEval Value
	Move       Move
	Depth      int
	Flag       Flag
	WasPv      bool
}

// TTable is the shared transposition table. The zero value is usable only
// after Resize followed by Finalize; NewTTable does both.
type TTable struct {
	clusters      []cluster
	age           uint8
	pendingCount  uint64
	pendingResize bool
}

// NewTTable allocates a table sized to mib mebibytes and makes it ready for
// use.
func NewTTable(mib int) *TTable {
	t := &TTable{}
	t.Resize(mib)
	t.Finalize()
	return t
}

// Resize requests a new table size in mebibytes. The actual allocation is
// deferred until the next Finalize call, matching the engine's
// "setoption"-then-"isready" sequencing: a UCI size change shouldn't pay
// the allocation cost until the driver confirms it's ready to search.
func (t *TTable) Resize(mib int) {
	if mib < 1 {
		mib = 1
	}
	bytes := uint64(mib) * 1024 * 1024
	count := bytes / uint64(clusterSize)
	if count == 0 {
		count = 1
	}
	if count != uint64(len(t.clusters)) {
		t.clusters = nil
	}
	t.pendingCount = count
	t.pendingResize = true
}

// Finalize performs a deferred Resize, if one is pending, returning whether
// it did anything. Allocation failure is fatal: a transposition table that
// silently shrank to zero would corrupt every subsequent probe/put without
// any visible symptom, so the engine aborts instead of limping on.
func (t *TTable) Finalize() bool {
	if !t.pendingResize {
		return false
	}
	t.pendingResize = false

	if t.clusters == nil {
		t.clusters = allocClusters(t.pendingCount)
	}
	t.clear()
	return true
}

func allocClusters(count uint64) (clusters []cluster) {
	defer func() {
		if r := recover(); r != nil {
			panic(OutOfMemoryError{Requested: count * uint64(clusterSize), Cause: r})
		}
	}()
	clusters = make([]cluster, count)
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&clusters[0])), len(clusters)*clusterSize)
	memx.HintHugePages(raw)
	return clusters
}

// OutOfMemoryError is the panic value raised when the table's backing
// allocation cannot be satisfied; callers that want the "abort" behaviour
// described in the engine's resize contract should let it propagate to
// the process boundary rather than recovering it.
type OutOfMemoryError struct {
	Requested uint64
	Cause     any
}

func (e OutOfMemoryError) Error() string {
	return "tt: failed to allocate transposition table (out of memory)"
}

// index maps a 64-bit key onto a cluster slot via multiply-shift range
// reduction (the high word of key*len(clusters)), which works for any
// cluster count rather than requiring it to be a power of two.
func (t *TTable) index(key zobrist.Key) uint64 {
	hi, _ := bits.Mul64(uint64(key), uint64(len(t.clusters)))
	return hi
}

// Probe looks up key and, on a tag match within its cluster, returns the
// stored payload with its score de-normalised for ply.
func (t *TTable) Probe(key zobrist.Key, ply int) (Probed, bool) {
	packed := packKey(key)
	c := &t.clusters[t.index(key)]
	for i := range c.entries {
		e := c.entries[i]
		if e.filled() && e.key == packed {
			return Probed{
				Score:      scoreFromTt(Value(e.score), ply),
				StaticEval: Value(e.eval),
				Move:       e.move,
				Depth:      int(e.depth),
				Flag:       e.flag(),
				WasPv:      e.pv(),
			}, true
		}
	}
	return Probed{}, false
}

// Put records a search result for key, choosing its slot within the
// cluster by: same-key match; else the first empty slot; else the slot
// with the lowest depth-minus-age-decayed weight. An existing entry is
// preserved (the put becomes a no-op) when all of: the key differs, the
// entry's age matches the table's current age, the new record isn't exact,
// and the new depth plus a same-generation/pv bonus still doesn't exceed
// the existing depth.
func (t *TTable) Put(key zobrist.Key, score, staticEval Value, move Move, depth, ply int, flag Flag, wasPv bool) {
	packed := packKey(key)
	c := &t.clusters[t.index(key)]

	entryWeight := func(e entry) int {
		relativeAge := (int(AgeCycle) + int(t.age) - int(e.age())) & (AgeCycle - 1)
		return int(e.depth) - relativeAge*2
	}

	var slot *entry
	minWeight := math.MaxInt
	for i := range c.entries {
		cand := &c.entries[i]
		if cand.key == packed || !cand.filled() {
			slot = cand
			break
		}
		if w := entryWeight(*cand); w < minWeight {
			slot = cand
			minWeight = w
		}
	}

	pvBonus := 0
	if wasPv {
		pvBonus = 2
	}
	if slot.filled() && slot.key == packed && flag != FlagExact &&
		slot.age() == t.age && depth+4+pvBonus <= int(slot.depth) {
		return
	}

	if move != MoveNone || slot.key != packed {
		slot.move = move
	}
	slot.key = packed
	slot.score = int16(scoreToTt(score, ply))
	slot.eval = int16(staticEval)
	slot.depth = uint8(depth)
	slot.genPvFlag = packGenPvFlag(t.age, wasPv, flag)
}

// Clear zeroes every cluster, one goroutine per available CPU, and resets
// the age counter. Callers must not probe/put concurrently with Clear.
func (t *TTable) Clear() {
	t.clear()
}

func (t *TTable) clear() {
	if len(t.clusters) == 0 {
		t.age = 0
		return
	}
	var g errgroup.Group
	workers := numClearWorkers(len(t.clusters))
	chunk := (len(t.clusters) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(t.clusters) {
			end = len(t.clusters)
		}
		if start >= end {
			continue
		}
		g.Go(func() error {
			var zero cluster
			for i := start; i < end; i++ {
				t.clusters[i] = zero
			}
			return nil
		})
	}
	_ = g.Wait()
	t.age = 0
}

func numClearWorkers(clusterCount int) int {
	workers := runtime.NumCPU()
	if clusterCount < workers {
		return 1
	}
	return workers
}

// NewSearch advances the table's age modulo AgeCycle. Existing entries
// aren't touched; their replacement weight simply decays as the age gap
// widens.
func (t *TTable) NewSearch() {
	t.age = (t.age + 1) & ageMask
}

// Full reports how full the table is, in per-mille, counting entries of
// the current age across the first 1000 clusters (the standard UCI
// "hashfull" sampling window).
func (t *TTable) Full() int {
	if len(t.clusters) == 0 {
		return 0
	}
	sample := 1000
	if sample > len(t.clusters) {
		sample = len(t.clusters)
	}
	filled := 0
	for i := 0; i < sample; i++ {
		for _, e := range t.clusters[i].entries {
			if e.filled() && e.age() == t.age {
				filled++
			}
		}
	}
	return filled / entriesPerCluster
}

// ClusterCount returns the number of clusters currently backing the table,
// used by tests and by the driver's startup log.
func (t *TTable) ClusterCount() int { return len(t.clusters) }
