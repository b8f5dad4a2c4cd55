// Copyright 2024 The fixturefetch Authors.
// SPDX-License-Identifier: Apache-2.0

package e2e

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
)

type FixtureFetch struct {
	t          *testing.T
	binaryPath string
	l          Logger
}

type RunOpts struct {
	AllowError   bool
	StderrWriter io.Writer
	StdoutWriter io.Writer
	Dir          string
	Env          []string
}

func (k FixtureFetch) Run(args []string) string {
	out, _ := k.RunWithOpts(args, RunOpts{})
	return out
}

func (k FixtureFetch) RunWithOpts(args []string, opts RunOpts) (string, error) {
	k.l.Debugf("Running '%s'...\n", k.cmdDesc(args))

	cmd := exec.Command(k.binaryPath, args...)
	cmd.Env = append(os.Environ(), opts.Env...)

	if len(opts.Dir) > 0 {
		cmd.Dir = opts.Dir
	}

	var stderr, stdout bytes.Buffer

	if opts.StderrWriter != nil {
		cmd.Stderr = io.MultiWriter(opts.StderrWriter, &stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if opts.StdoutWriter != nil {
		cmd.Stdout = io.MultiWriter(opts.StdoutWriter, &stdout)
	} else {
		cmd.Stdout = &stdout
	}

	err := cmd.Run()
	stdoutStr := stdout.String()

	if err != nil {
		err = fmt.Errorf("Execution error: stdout: '%s' stderr: '%s' error: '%s'", stdoutStr, stderr.String(), err)

		if !opts.AllowError {
			k.t.Fatalf("Failed to successfully execute '%s': %v", k.cmdDesc(args), err)
		}
	}

	return stdoutStr, err
}

func (k FixtureFetch) cmdDesc(args []string) string {
	return fmt.Sprintf("fixturefetch %s", strings.Join(args, " "))
}
