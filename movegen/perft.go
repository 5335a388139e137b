/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package movegen

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	. "github.com/corvidchess/corvid/bitboard"
	"github.com/corvidchess/corvid/position"
)

var out = message.NewPrinter(language.English)

// Perft counts the leaf positions reachable from a starting position at a
// fixed search depth, a standard move-generator correctness/benchmark
// tool: every legal move sequence of that length is replayed and
// classified, so a mismatch against a known-good node count for a given
// FEN/depth pair pinpoints a move-generation bug.
type Perft struct {
	Nodes            uint64
	CaptureCounter   uint64
	EnPassantCounter uint64
	CastleCounter    uint64
	PromotionCounter uint64
	CheckCounter     uint64

	stopFlag bool
}

// NewPerft returns a zeroed Perft counter, ready to run.
func NewPerft() *Perft {
	return &Perft{}
}

// Stop requests a running Run call (typically driven from another
// goroutine) to abandon the remaining tree: subtrees not yet searched count
// as 0, so Run returns only the leaves counted before the stop.
func (pf *Perft) Stop() {
	pf.stopFlag = true
}

// Run performs a perft search to depth from fen, returning the leaf count
// and populating pf's counters.
func (pf *Perft) Run(fen string, depth int) (uint64, error) {
	pf.stopFlag = false
	pf.Nodes, pf.CaptureCounter, pf.EnPassantCounter = 0, 0, 0
	pf.CastleCounter, pf.PromotionCounter, pf.CheckCounter = 0, 0, 0

	if depth < 1 {
		depth = 1
	}
	p, err := position.NewFromFen(fen)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	nodes := pf.search(p, depth)
	elapsed := time.Since(start)

	pf.Nodes = nodes
	_ = elapsed
	return nodes, nil
}

func (pf *Perft) search(p *position.Position, depth int) uint64 {
	if pf.stopFlag {
		return 0
	}
	ml := Generate(p, All)

	if depth == 1 {
		var leaves uint64
		for i := 0; i < ml.Len(); i++ {
			m := ml.At(i).Move
			if !p.Legal(m) {
				continue
			}
			leaves++
			pf.classify(p, m)
		}
		return leaves
	}

	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i).Move
		if !p.Legal(m) {
			continue
		}
		p.ApplyMove(m)
		nodes += pf.search(p, depth-1)
		p.PopMove()
	}
	return nodes
}

func (pf *Perft) classify(p *position.Position, m Move) {
	if p.PieceAt(m.Dst()) != PieceNone {
		pf.CaptureCounter++
	}
	switch m.Type() {
	case EnPassant:
		pf.EnPassantCounter++
		pf.CaptureCounter++
	case Castling:
		pf.CastleCounter++
	case Promotion:
		pf.PromotionCounter++
	}
	p.ApplyMove(m)
	if p.IsCheck() {
		pf.CheckCounter++
	}
	p.PopMove()
}

// Report renders pf's counters as a human-readable perft summary, the way
// a UCI "go perft N" command prints its results to the console.
func (pf *Perft) Report(depth int, elapsed time.Duration) string {
	nps := uint64(0)
	if elapsed > 0 {
		nps = pf.Nodes * uint64(time.Second) / uint64(elapsed)
	}
	return out.Sprintf(
		"perft depth %d: nodes=%d captures=%d ep=%d castles=%d promotions=%d checks=%d time=%s nps=%d",
		depth, pf.Nodes, pf.CaptureCounter, pf.EnPassantCounter, pf.CastleCounter, pf.PromotionCounter,
		pf.CheckCounter, elapsed, nps,
	)
}
