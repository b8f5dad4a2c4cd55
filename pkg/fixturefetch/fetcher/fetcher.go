// Copyright 2024 The fixturefetch Authors.
// SPDX-License-Identifier: Apache-2.0

package fetcher

import (
	"fmt"
	"io"
	"os"

	"github.com/cppforlife/go-cli-ui/ui"
	ctlconf "github.com/hasstest/fixturefetch/pkg/fixturefetch/config"
	ctlfetch "github.com/hasstest/fixturefetch/pkg/fixturefetch/fetch"
)

type Downloader interface {
	Download(url string, dst io.Writer) error
}

var _ Downloader = &ctlfetch.HTTPDownloader{}

type FetcherOpts struct {
	// StagingRoot holds in-flight downloads; empty means next to each destination
	StagingRoot string
}

// Fetcher materializes resources at their destinations. A destination that
// already exists is trusted as is: there is no freshness or integrity check.
type Fetcher struct {
	ui         ui.UI
	downloader Downloader
	opts       FetcherOpts
}

func NewFetcher(ui ui.UI, downloader Downloader, opts FetcherOpts) *Fetcher {
	return &Fetcher{ui, downloader, opts}
}

func (f *Fetcher) EnsureAll(resources ctlconf.Resources) error {
	err := resources.Validate()
	if err != nil {
		return err
	}

	for _, res := range resources {
		err := f.Ensure(res)
		if err != nil {
			return fmt.Errorf("Ensuring %s: %s", res.Description(), err)
		}
	}

	return nil
}

func (f *Fetcher) Ensure(res ctlconf.Resource) error {
	err := res.Validate()
	if err != nil {
		return err
	}

	state, err := State(res)
	if err != nil {
		return err
	}

	switch state {
	case StatePresent:
		return nil
	case StateConflict:
		return fmt.Errorf("Expected '%s' to be %s", res.Path, expectedTypeDesc(res.Kind))
	}

	f.ui.ErrorLinef("Downloading %s", res.URL)

	stagingParent := f.opts.StagingRoot
	if len(stagingParent) == 0 {
		stagingParent = ctlfetch.StagingParentFor(res.Path)
	}

	stagingDir, err := ctlfetch.NewStagingDir(stagingParent)
	if err != nil {
		return err
	}

	defer func() {
		cleanUpErr := stagingDir.CleanUp()
		if cleanUpErr != nil {
			f.ui.ErrorLinef("Warning: %s", cleanUpErr)
		}
	}()

	switch res.Kind {
	case ctlconf.ResourceKindArchive:
		return f.fetchArchive(res, stagingDir.TempArea())
	case ctlconf.ResourceKindPlainFile:
		return f.fetchPlainFile(res, stagingDir.TempArea())
	default:
		panic(fmt.Sprintf("Unknown resource kind '%s'", res.Kind))
	}
}

func (f *Fetcher) fetchArchive(res ctlconf.Resource, tempArea ctlfetch.TempArea) error {
	archivePath, err := f.download(res.URL, tempArea)
	if err != nil {
		return err
	}

	incomingTmpPath, err := tempArea.NewTempDir("archive")
	if err != nil {
		return err
	}

	err = ctlfetch.NewArchive(archivePath).Unpack(incomingTmpPath)
	if err != nil {
		return fmt.Errorf("Unpacking archive: %s", err)
	}

	return ctlfetch.MoveDir(incomingTmpPath, res.Path)
}

func (f *Fetcher) fetchPlainFile(res ctlconf.Resource, tempArea ctlfetch.TempArea) error {
	filePath, err := f.download(res.URL, tempArea)
	if err != nil {
		return err
	}

	// CreateTemp makes files readable only by the owner
	err = os.Chmod(filePath, 0644)
	if err != nil {
		return fmt.Errorf("Changing file mode: %s", err)
	}

	return ctlfetch.MoveFile(filePath, res.Path)
}

func (f *Fetcher) download(url string, tempArea ctlfetch.TempArea) (string, error) {
	tmpFile, err := tempArea.NewTempFile("fixturefetch-http")
	if err != nil {
		return "", err
	}

	err = f.downloader.Download(url, tmpFile)
	if err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("Downloading URL: %s", err)
	}

	err = tmpFile.Close()
	if err != nil {
		return "", fmt.Errorf("Closing downloaded file: %s", err)
	}

	return tmpFile.Name(), nil
}

func expectedTypeDesc(kind ctlconf.ResourceKind) string {
	if kind == ctlconf.ResourceKindArchive {
		return "a directory"
	}
	return "a regular file"
}
