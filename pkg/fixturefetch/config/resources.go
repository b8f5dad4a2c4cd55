// Copyright 2024 The fixturefetch Authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

type ResourceKind string

const (
	// ResourceKindArchive is a zip file extracted into a destination directory
	ResourceKindArchive ResourceKind = "archive"
	// ResourceKindPlainFile is downloaded as is into a destination file
	ResourceKindPlainFile ResourceKind = "plain-file"
)

const (
	SchedulerComponentURL = "https://github.com/nielsfaber/scheduler-component/releases/download/v3.2.15/scheduler.zip"
	SchedulerCardURL      = "https://github.com/nielsfaber/scheduler-card/releases/download/v3.2.10/scheduler-card.js"

	SchedulerComponentDirName = "scheduler-custom-component"
	SchedulerCardFileName     = "scheduler-custom-card.js"
)

var (
	knownKinds = []ResourceKind{ResourceKindArchive, ResourceKindPlainFile}

	disallowedPaths = []string{"/", ".", ".."}
)

type Resource struct {
	URL  string
	Path string
	Kind ResourceKind
}

type Resources []Resource

// DefaultBaseDir is where fixtures end up when no base directory is given
func DefaultBaseDir() string {
	return os.TempDir()
}

// DefaultResources returns scheduler component and card fixtures rooted at baseDir.
// Order matters: it is the order of fetching and of printed paths.
func DefaultResources(baseDir string) Resources {
	return Resources{
		{
			URL:  SchedulerComponentURL,
			Path: filepath.Join(baseDir, SchedulerComponentDirName),
			Kind: ResourceKindArchive,
		},
		{
			URL:  SchedulerCardURL,
			Path: filepath.Join(baseDir, SchedulerCardFileName),
			Kind: ResourceKindPlainFile,
		},
	}
}

func (r Resource) Validate() error {
	if len(r.URL) == 0 {
		return fmt.Errorf("Expected non-empty URL")
	}

	if len(r.Path) == 0 {
		return fmt.Errorf("Expected non-empty path")
	}

	cleanPath := filepath.Clean(r.Path)
	for _, path := range disallowedPaths {
		if cleanPath == path {
			return fmt.Errorf("Expected path to not be one of '%s'", path)
		}
	}

	for _, kind := range knownKinds {
		if r.Kind == kind {
			return nil
		}
	}

	return fmt.Errorf("Unknown kind '%s' (known: %s, %s)", r.Kind, ResourceKindArchive, ResourceKindPlainFile)
}

func (r Resource) Description() string {
	return fmt.Sprintf("%s (%s from %s)", r.Path, r.Kind, r.URL)
}

func (rs Resources) Validate() error {
	seenPaths := map[string]int{}

	for i, res := range rs {
		err := res.Validate()
		if err != nil {
			return fmt.Errorf("Validating resource '%s' (%d): %s", res.Path, i, err)
		}

		cleanPath := filepath.Clean(res.Path)
		if j, found := seenPaths[cleanPath]; found {
			return fmt.Errorf("Expected resources %d and %d to not share destination '%s'", j, i, res.Path)
		}
		seenPaths[cleanPath] = i
	}

	return nil
}

func (rs Resources) Paths() []string {
	var result []string
	for _, res := range rs {
		result = append(result, res.Path)
	}
	return result
}
