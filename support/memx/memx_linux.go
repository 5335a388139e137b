/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

//go:build linux

package memx

import (
	"runtime"

	"golang.org/x/sys/unix"
)

func hintHugePages(data []byte) {
	_ = unix.Madvise(data, unix.MADV_HUGEPAGE)
}

func bindCurrentThread(node, nodeCount int) error {
	cpus := runtime.NumCPU()
	if cpus < nodeCount {
		return nil
	}
	perNode := cpus / nodeCount
	start := node * perNode
	end := start + perNode
	if node == nodeCount-1 {
		end = cpus
	}

	var set unix.CPUSet
	set.Zero()
	for cpu := start; cpu < end; cpu++ {
		set.Set(cpu)
	}
	return unix.SchedSetaffinity(0, &set)
}
