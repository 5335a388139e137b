/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

package config

// evalConfiguration holds the handful of knobs the evaluator interface
// needs from config: which evaluation path to use and the one classical
// term (tempo) simple enough to belong here rather than in the evaluator's
// own (external) data. NNUE weights and the rest of the classical term set
// live with the evaluator itself, not in this engine core.
type evalConfiguration struct {
	UseClassicalEval bool
	Tempo            int
}

// sets defaults which might be overwritten by the config file
func init() {
	Settings.Eval.UseClassicalEval = false
	Settings.Eval.Tempo = 30
}

// set defaults for configurations here in case a configuration
// is not available from the config file
func setupEval() {
}
