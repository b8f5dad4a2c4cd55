// Copyright 2024 The fixturefetch Authors.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/otiai10/copy"
)

// MoveDir moves a directory into a location that must not exist yet
func MoveDir(path, dstPath string) error {
	err := moveOrCopy(path, dstPath)
	if err != nil {
		return fmt.Errorf("Moving directory '%s' to '%s': %s", path, dstPath, err)
	}
	return nil
}

// MoveFile moves a file into a location that must not exist yet.
// Parent directory is created with 0700 when missing.
func MoveFile(path, dstPath string) error {
	parentPath := filepath.Dir(filepath.Clean(dstPath))

	err := os.MkdirAll(parentPath, 0700)
	if err != nil {
		return fmt.Errorf("Creating dir %s: %s", parentPath, err)
	}

	err = moveOrCopy(path, dstPath)
	if err != nil {
		return fmt.Errorf("Moving file '%s' to '%s': %s", path, dstPath, err)
	}
	return nil
}

func moveOrCopy(path, dstPath string) error {
	if _, err := os.Lstat(dstPath); err == nil {
		return fmt.Errorf("Expected '%s' to not exist", dstPath)
	}

	err := os.Rename(path, dstPath)
	if err == nil {
		return nil
	}

	// Staging root may be on a different device than the destination
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	err = copy.Copy(path, dstPath)
	if err != nil {
		os.RemoveAll(dstPath)
		return fmt.Errorf("Copying across devices: %s", err)
	}

	return os.RemoveAll(path)
}

func ScopedPath(path, subPath string) (string, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("Abs path: %s", err)
	}

	newPath, err := filepath.Abs(filepath.Join(path, subPath))
	if err != nil {
		return "", fmt.Errorf("Abs path: %s", err)
	}

	// Check that subPath is contained within path (disallow this scenario):
	//   ScopedPath("/root", "../root-trick/file1")
	//   "/root-trick/file1" == "/root" + "../root-trick/file1"
	if newPath != path && !strings.HasPrefix(newPath, path+string(filepath.Separator)) {
		return "", fmt.Errorf("Invalid path: %s", subPath)
	}

	return newPath, nil
}
