/*
 * Corvid - a UCI chess engine core in Go
 * MIT License - Copyright (c) 2026 Corvid Authors
 */

// Package util holds small filesystem helpers shared by the config loader
// and other packages that accept a user-supplied path that may be relative
// to more than one reasonable base directory.
package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveFile locates file and returns an absolute path to it.
//
// If file is already absolute it is returned unchanged, erroring if it does
// not exist. Otherwise it is tried, in order, relative to the working
// directory, relative to the running executable's directory, and relative
// to the user's home directory; the first match wins.
func ResolveFile(file string) (string, error) {
	file = filepath.Clean(file)

	if filepath.IsAbs(file) {
		if fileExists(file) {
			return file, nil
		}
		return file, notFoundErr("file", file)
	}

	for _, base := range candidateDirs() {
		if candidate := filepath.Join(base, file); fileExists(candidate) {
			return filepath.Clean(candidate), nil
		}
	}
	return file, notFoundErr("file", file)
}

// ResolveFolder locates folder the same way ResolveFile locates a file.
func ResolveFolder(folder string) (string, error) {
	folder = filepath.Clean(folder)

	if filepath.IsAbs(folder) {
		if folderExists(folder) {
			return folder, nil
		}
		return folder, notFoundErr("folder", folder)
	}

	for _, base := range candidateDirs() {
		if candidate := filepath.Join(base, folder); folderExists(candidate) {
			return filepath.Clean(candidate), nil
		}
	}
	return folder, notFoundErr("folder", folder)
}

// ResolveCreateFolder locates folderPath the way ResolveFolder does, and if
// no existing folder is found, creates one named after folderPath's last
// path element in the working directory, falling back to the OS temp
// directory if that isn't writable.
func ResolveCreateFolder(folderPath string) (string, error) {
	folderPath = filepath.Clean(folderPath)

	if filepath.IsAbs(folderPath) {
		if folderExists(folderPath) {
			return folderPath, nil
		}
		return folderPath, os.Mkdir(folderPath, 0755)
	}

	dir, _ := os.Getwd()
	candidate := filepath.Join(dir, filepath.Base(folderPath))
	if folderExists(candidate) {
		return candidate, nil
	}
	if err := os.Mkdir(candidate, 0755); err == nil {
		return candidate, nil
	}

	candidate = filepath.Join(os.TempDir(), filepath.Base(folderPath))
	if folderExists(candidate) {
		return candidate, nil
	}
	return candidate, os.Mkdir(candidate, 0755)
}

// candidateDirs returns the base directories ResolveFile/ResolveFolder try,
// in priority order, skipping any whose lookup itself failed.
func candidateDirs() []string {
	var dirs []string
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return dirs
}

func notFoundErr(kind, path string) error {
	return fmt.Errorf("%s could not be found: %s", kind, path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func folderExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
