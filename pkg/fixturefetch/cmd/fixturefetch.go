// Copyright 2024 The fixturefetch Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"io"
	"net/http"

	"github.com/cppforlife/cobrautil"
	"github.com/cppforlife/go-cli-ui/ui"
	"github.com/hasstest/fixturefetch/pkg/fixturefetch/version"
	"github.com/spf13/cobra"
)

type FixtureFetchOptions struct {
	ui ui.UI

	// HTTPClient is used for downloads; nil means http.DefaultClient
	HTTPClient *http.Client

	BaseDirFlags BaseDirFlags
}

func NewFixtureFetchOptions(ui ui.UI) *FixtureFetchOptions {
	return &FixtureFetchOptions{ui: ui}
}

func NewDefaultFixtureFetchCmd(ui ui.UI) *cobra.Command {
	return NewFixtureFetchCmd(NewFixtureFetchOptions(ui))
}

func NewFixtureFetchCmd(o *FixtureFetchOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "fixturefetch",
		Short:             "fixturefetch downloads scheduler test fixtures unless they are already present",
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		Version:           version.Version,
		RunE: func(_ *cobra.Command, _ []string) error {
			return NewFetchOptions(o.ui, o.HTTPClient, &o.BaseDirFlags).Run()
		},
	}

	cmd.SetOutput(uiBlockWriter{o.ui}) // setting output for cmd.Help()

	o.BaseDirFlags.Set(cmd)

	cmd.AddCommand(NewResourcesCmd(NewResourcesOptions(o.ui, &o.BaseDirFlags)))
	cmd.AddCommand(NewVersionCmd(NewVersionOptions(o.ui)))

	cobrautil.VisitCommands(
		cmd,
		cobrautil.DisallowExtraArgs,
		cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd),
	)

	return cmd
}

type uiBlockWriter struct {
	ui ui.UI
}

var _ io.Writer = uiBlockWriter{}

func (w uiBlockWriter) Write(p []byte) (n int, err error) {
	w.ui.PrintBlock(p)
	return len(p), nil
}
