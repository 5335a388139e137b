/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

//go:build !linux

package memx

func hintHugePages(data []byte) {}

func bindCurrentThread(node, nodeCount int) error { return nil }
