// Copyright 2024 The fixturefetch Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/cppforlife/go-cli-ui/ui"
	uitable "github.com/cppforlife/go-cli-ui/ui/table"
	ctlconf "github.com/hasstest/fixturefetch/pkg/fixturefetch/config"
	"github.com/hasstest/fixturefetch/pkg/fixturefetch/fetcher"
	"github.com/spf13/cobra"
)

type ResourcesOptions struct {
	ui           ui.UI
	baseDirFlags *BaseDirFlags
}

func NewResourcesOptions(ui ui.UI, baseDirFlags *BaseDirFlags) *ResourcesOptions {
	return &ResourcesOptions{ui, baseDirFlags}
}

func NewResourcesCmd(o *ResourcesOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resources",
		Aliases: []string{"r", "res"},
		Short:   "List fixtures and whether they are present, without fetching",
		RunE:    func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	return cmd
}

func (o *ResourcesOptions) Run() error {
	baseDir, err := o.baseDirFlags.Resolve()
	if err != nil {
		return err
	}

	table := uitable.Table{
		Title:   "Resources",
		Content: "resources",

		Header: []uitable.Header{
			uitable.NewHeader("Path"),
			uitable.NewHeader("Kind"),
			uitable.NewHeader("State"),
			uitable.NewHeader("URL"),
		},
	}

	for _, res := range ctlconf.DefaultResources(baseDir) {
		state, err := fetcher.State(res)
		if err != nil {
			return err
		}

		table.Rows = append(table.Rows, []uitable.Value{
			uitable.NewValueString(res.Path),
			uitable.NewValueString(string(res.Kind)),
			uitable.NewValueString(string(state)),
			uitable.NewValueString(res.URL),
		})
	}

	o.ui.PrintTable(table)

	return nil
}
