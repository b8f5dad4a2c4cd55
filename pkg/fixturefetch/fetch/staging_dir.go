// Copyright 2024 The fixturefetch Authors.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"fmt"
	"os"
	"path/filepath"
)

const stagingDirPattern = ".fixturefetch-tmp-"

// StagingDir holds in-flight downloads and extractions for a single destination.
// Placed next to the destination, moving into place is a rename; placed
// elsewhere, it may be on another device and moves fall back to copying.
type StagingDir struct {
	rootDir     string
	incomingDir string
}

// StagingParentFor returns the directory containing dstPath
func StagingParentFor(dstPath string) string {
	// Clean to avoid getting 'out/in/' from 'out/in/' instead of just 'out'
	return filepath.Dir(filepath.Clean(dstPath))
}

func NewStagingDir(parentPath string) (StagingDir, error) {
	err := os.MkdirAll(parentPath, 0700)
	if err != nil {
		return StagingDir{}, fmt.Errorf("Creating staging parent dir '%s': %s", parentPath, err)
	}

	rootDir, err := os.MkdirTemp(parentPath, stagingDirPattern)
	if err != nil {
		return StagingDir{}, fmt.Errorf("Creating staging dir in '%s': %s", parentPath, err)
	}

	incomingDir := filepath.Join(rootDir, "incoming")

	err = os.Mkdir(incomingDir, 0700)
	if err != nil {
		os.RemoveAll(rootDir)
		return StagingDir{}, fmt.Errorf("Creating incoming dir '%s': %s", incomingDir, err)
	}

	return StagingDir{rootDir: rootDir, incomingDir: incomingDir}, nil
}

func (d StagingDir) Path() string { return d.rootDir }

func (d StagingDir) TempArea() StagingTempArea {
	return StagingTempArea{d.incomingDir}
}

func (d StagingDir) CleanUp() error {
	err := os.RemoveAll(d.rootDir)
	if err != nil {
		return fmt.Errorf("Deleting tmp dir '%s': %s", d.rootDir, err)
	}
	return nil
}

type StagingTempArea struct {
	path string
}

var _ TempArea = StagingTempArea{}

func (d StagingTempArea) NewTempDir(name string) (string, error) {
	tmpDir := filepath.Join(d.path, name)

	absTmpDir, err := filepath.Abs(tmpDir)
	if err != nil {
		return "", fmt.Errorf("Abs path '%s': %s", tmpDir, err)
	}

	err = os.Mkdir(absTmpDir, 0755)
	if err != nil {
		return "", fmt.Errorf("Creating incoming dir '%s' for %s: %s", absTmpDir, name, err)
	}

	return absTmpDir, nil
}

func (d StagingTempArea) NewTempFile(pattern string) (*os.File, error) {
	return os.CreateTemp(d.path, pattern)
}
