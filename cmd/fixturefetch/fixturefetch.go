// Copyright 2024 The fixturefetch Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"log"
	"os"

	"github.com/cppforlife/go-cli-ui/ui"
	"github.com/hasstest/fixturefetch/pkg/fixturefetch/cmd"
)

func main() {
	log.SetOutput(io.Discard)

	// Plain writer UI keeps stdout to exactly the paths line
	writerUI := ui.NewWriterUI(os.Stdout, os.Stderr, ui.NewNoopLogger())
	defer writerUI.Flush()

	command := cmd.NewDefaultFixtureFetchCmd(writerUI)

	err := command.Execute()
	if err != nil {
		writerUI.ErrorLinef("Error: %v", err)
		os.Exit(1)
	}
}
