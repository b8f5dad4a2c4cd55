// Copyright 2024 The fixturefetch Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	ctlconf "github.com/hasstest/fixturefetch/pkg/fixturefetch/config"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

type BaseDirFlags struct {
	BaseDir    string
	StagingDir string
}

func (f *BaseDirFlags) Set(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.BaseDir, "base-dir", "", "Set directory fixtures are placed in (default: system temp dir)")
	cmd.PersistentFlags().StringVar(&f.StagingDir, "staging-dir", "", "Set directory in-flight downloads are kept in (default: next to each fixture)")
}

func (f *BaseDirFlags) Resolve() (string, error) {
	if len(f.BaseDir) == 0 {
		return ctlconf.DefaultBaseDir(), nil
	}
	return f.expand(f.BaseDir)
}

// ResolveStagingDir returns empty path when staging should happen next to fixtures
func (f *BaseDirFlags) ResolveStagingDir() (string, error) {
	if len(f.StagingDir) == 0 {
		return "", nil
	}
	return f.expand(f.StagingDir)
}

func (*BaseDirFlags) expand(dir string) (string, error) {
	// TODO does not support ~user convention
	path, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf("Expanding dir '%s': %s", dir, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("Abs path '%s': %s", path, err)
	}

	return absPath, nil
}
