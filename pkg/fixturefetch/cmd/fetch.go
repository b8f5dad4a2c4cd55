// Copyright 2024 The fixturefetch Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"net/http"
	"strings"

	"github.com/cppforlife/go-cli-ui/ui"
	ctlconf "github.com/hasstest/fixturefetch/pkg/fixturefetch/config"
	ctlfetch "github.com/hasstest/fixturefetch/pkg/fixturefetch/fetch"
	"github.com/hasstest/fixturefetch/pkg/fixturefetch/fetcher"
)

type FetchOptions struct {
	ui           ui.UI
	httpClient   *http.Client
	baseDirFlags *BaseDirFlags
}

func NewFetchOptions(ui ui.UI, httpClient *http.Client, baseDirFlags *BaseDirFlags) *FetchOptions {
	return &FetchOptions{ui, httpClient, baseDirFlags}
}

// Run ensures default resources are present and prints their paths on a single line
func (o *FetchOptions) Run() error {
	baseDir, err := o.baseDirFlags.Resolve()
	if err != nil {
		return err
	}

	stagingRoot, err := o.baseDirFlags.ResolveStagingDir()
	if err != nil {
		return err
	}

	resources := ctlconf.DefaultResources(baseDir)

	f := fetcher.NewFetcher(o.ui, ctlfetch.NewHTTPDownloader(o.httpClient),
		fetcher.FetcherOpts{StagingRoot: stagingRoot})

	err = f.EnsureAll(resources)
	if err != nil {
		return err
	}

	o.ui.PrintLinef("%s", strings.Join(resources.Paths(), " "))

	return nil
}
