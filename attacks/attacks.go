/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package attacks

var initialized bool

// Init builds every table this package serves: knight/king/pawn leapers,
// the black-magic slider tables and the PEXT tables (both are always built;
// lookups use PEXT when BMI2 is available), and the between/intersecting/past
// ray tables. It must run
// before any other function in this package is called, and is idempotent.
func Init() {
	if initialized {
		return
	}
	initLeapers()
	initMagics()
	initPext()
	initRays()
	initialized = true
}
