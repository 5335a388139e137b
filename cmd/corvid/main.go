/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

// Command corvid is a thin driver over the engine core: it runs the
// fixed engine-init sequence (attack tables, zobrist keys, cuckoo table,
// transposition table), then either prints version info, runs perft, or
// idles waiting for Ctrl-C, depending on the flags given. It has no search
// or UCI loop of its own; those are out of scope for this core.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/pkg/profile"

	"github.com/corvidchess/corvid/attacks"
	"github.com/corvidchess/corvid/config"
	"github.com/corvidchess/corvid/cuckoo"
	"github.com/corvidchess/corvid/logging"
	"github.com/corvidchess/corvid/movegen"
	"github.com/corvidchess/corvid/position"
	"github.com/corvidchess/corvid/support/ctrlc"
	"github.com/corvidchess/corvid/tt"
	"github.com/corvidchess/corvid/zobrist"
)

func main() {
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	perft := flag.Int("perft", 0, "runs perft on the given fen to the given depth and exits")
	fen := flag.String("fen", position.StartFen, "fen used by -perft")
	cpuProfile := flag.Bool("cpuprofile", false, "write a CPU profile (cpu.pprof in the working directory)")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	config.ConfFile = *configFile
	config.Setup()
	logging.GetLog()

	initEngine()

	if *perft != 0 {
		runPerft(*fen, *perft)
		return
	}

	idle()
}

// initEngine runs the fixed initialisation order: attack tables (which
// also build the ray tables) before zobrist keys, before the cuckoo table,
// before the transposition table is allocated — each later step assumes
// the ones before it are already populated.
func initEngine() {
	attacks.Init()
	zobrist.Init()
	cuckoo.Init()
	table := tt.NewTTable(config.Settings.TT.SizeMiB)
	logging.GetLog().Infof("initialized: %d cuckoo entries, tt clusters=%d", cuckoo.Count(), table.ClusterCount())
}

func runPerft(fen string, depth int) {
	pf := movegen.NewPerft()
	for d := 1; d <= depth; d++ {
		nodes, err := pf.Run(fen, d)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		logging.Out.Printf("depth %d: %d nodes\n", d, nodes)
	}
}

// idle waits for an interrupt. A real driver would hand this off to a
// search/UCI loop; the core alone has nothing further to do once it's
// initialized.
func idle() {
	done := make(chan struct{})
	stop := ctrlc.Notify(func() { close(done) })
	defer stop()
	<-done
}

func printVersionInfo() {
	logging.Out.Println("corvid (engine core)")
	logging.Out.Println("Environment:")
	logging.Out.Printf("  Using GO version %s\n", runtime.Version())
	logging.Out.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	logging.Out.Printf("  Number of CPU: %d\n", runtime.NumCPU())
	cwd, _ := os.Getwd()
	logging.Out.Printf("  Working directory: %s\n", cwd)
}
