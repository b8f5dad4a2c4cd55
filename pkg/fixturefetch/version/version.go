// Copyright 2024 The fixturefetch Authors.
// SPDX-License-Identifier: Apache-2.0

package version

// Version is overridden at build time via ldflags
var Version = "develop"
