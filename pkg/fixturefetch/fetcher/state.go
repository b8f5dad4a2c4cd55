// Copyright 2024 The fixturefetch Authors.
// SPDX-License-Identifier: Apache-2.0

package fetcher

import (
	"fmt"
	"os"

	ctlconf "github.com/hasstest/fixturefetch/pkg/fixturefetch/config"
)

type ResourceState string

const (
	StateMissing ResourceState = "missing"
	StatePresent ResourceState = "present"
	// StateConflict means something of the wrong type occupies the destination
	StateConflict ResourceState = "conflict"
)

func State(res ctlconf.Resource) (ResourceState, error) {
	info, err := os.Stat(res.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return StateMissing, nil
		}
		return "", fmt.Errorf("Checking destination '%s': %s", res.Path, err)
	}

	switch res.Kind {
	case ctlconf.ResourceKindArchive:
		if info.IsDir() {
			return StatePresent, nil
		}
	case ctlconf.ResourceKindPlainFile:
		if info.Mode().IsRegular() {
			return StatePresent, nil
		}
	}

	return StateConflict, nil
}
