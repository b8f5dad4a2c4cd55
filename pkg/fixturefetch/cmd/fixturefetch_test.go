// Copyright 2024 The fixturefetch Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd_test

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/cppforlife/go-cli-ui/ui"
	"github.com/hasstest/fixturefetch/pkg/fixturefetch/cmd"
	"github.com/stretchr/testify/require"
)

// redirectTransport sends every request to the test server keeping the path
type redirectTransport struct {
	target *url.URL
	base   http.RoundTripper
}

func (rt redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	req.Host = rt.target.Host
	return rt.base.RoundTrip(req)
}

type releaseServer struct {
	server   *httptest.Server
	requests int32
}

func newReleaseServer(t *testing.T) *releaseServer {
	var zipBuf bytes.Buffer
	zw := zip.NewWriter(&zipBuf)
	w, err := zw.Create("manifest.json")
	require.NoError(t, err)
	_, err = w.Write([]byte(`{"domain": "scheduler"}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	rs := &releaseServer{}
	rs.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&rs.requests, 1)

		switch path.Base(r.URL.Path) {
		case "scheduler.zip":
			w.Write(zipBuf.Bytes())
		case "scheduler-card.js":
			w.Write([]byte("card"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(rs.server.Close)

	return rs
}

func (rs *releaseServer) Client(t *testing.T) *http.Client {
	target, err := url.Parse(rs.server.URL)
	require.NoError(t, err)
	return &http.Client{Transport: redirectTransport{target, rs.server.Client().Transport}}
}

func (rs *releaseServer) Requests() int {
	return int(atomic.LoadInt32(&rs.requests))
}

func runCmd(t *testing.T, httpClient *http.Client, args ...string) (string, string, error) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	opts := cmd.NewFixtureFetchOptions(ui.NewWriterUI(stdout, stderr, ui.NewNoopLogger()))
	opts.HTTPClient = httpClient

	command := cmd.NewFixtureFetchCmd(opts)
	command.SetArgs(args)

	err := command.Execute()
	return stdout.String(), stderr.String(), err
}

func TestFetchFirstAndSecondRun(t *testing.T) {
	rs := newReleaseServer(t)
	baseDir := t.TempDir()

	componentDir := filepath.Join(baseDir, "scheduler-custom-component")
	cardFile := filepath.Join(baseDir, "scheduler-custom-card.js")
	expectedOut := componentDir + " " + cardFile + "\n"

	stdout, stderr, err := runCmd(t, rs.Client(t), "--base-dir", baseDir)
	require.NoError(t, err)
	require.Equal(t, expectedOut, stdout)
	require.Equal(t,
		"Downloading https://github.com/nielsfaber/scheduler-component/releases/download/v3.2.15/scheduler.zip\n"+
			"Downloading https://github.com/nielsfaber/scheduler-card/releases/download/v3.2.10/scheduler-card.js\n",
		stderr)
	require.Equal(t, 2, rs.Requests())

	require.FileExists(t, filepath.Join(componentDir, "manifest.json"))
	bs, err := os.ReadFile(cardFile)
	require.NoError(t, err)
	require.Equal(t, "card", string(bs))

	stdout, stderr, err = runCmd(t, rs.Client(t), "--base-dir", baseDir)
	require.NoError(t, err)
	require.Equal(t, expectedOut, stdout)
	require.Empty(t, stderr)
	require.Equal(t, 2, rs.Requests())
}

func TestFetchWithExistingDestinationsMakesNoRequests(t *testing.T) {
	baseDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(baseDir, "scheduler-custom-component"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, "scheduler-custom-card.js"), []byte("x"), 0644))

	failingClient := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		t.Fatalf("Unexpected request to %s", req.URL)
		return nil, nil
	})}

	stdout, stderr, err := runCmd(t, failingClient, "--base-dir", baseDir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(baseDir, "scheduler-custom-component")+" "+
		filepath.Join(baseDir, "scheduler-custom-card.js")+"\n", stdout)
	require.Empty(t, stderr)
}

func TestFetchFailurePrintsNoPaths(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	target, err := url.Parse(server.URL)
	require.NoError(t, err)

	baseDir := t.TempDir()
	client := &http.Client{Transport: redirectTransport{target, server.Client().Transport}}

	stdout, _, err := runCmd(t, client, "--base-dir", baseDir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Expected 200 OK")
	require.Empty(t, stdout)
	require.NoDirExists(t, filepath.Join(baseDir, "scheduler-custom-component"))
}

func TestFetchRejectsExtraArgs(t *testing.T) {
	_, _, err := runCmd(t, nil, "unexpected")
	require.Error(t, err)
}

func TestResources(t *testing.T) {
	baseDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, "scheduler-custom-card.js"), []byte("x"), 0644))

	stdout, stderr, err := runCmd(t, nil, "resources", "--base-dir", baseDir)
	require.NoError(t, err)
	require.Empty(t, stderr)

	require.Contains(t, stdout, filepath.Join(baseDir, "scheduler-custom-component"))
	require.Contains(t, stdout, "missing")
	require.Contains(t, stdout, "present")
	require.Contains(t, stdout, "plain-file")
	require.Contains(t, stdout, "scheduler.zip")

	require.NoDirExists(t, filepath.Join(baseDir, "scheduler-custom-component"))
}

func TestVersion(t *testing.T) {
	stdout, _, err := runCmd(t, nil, "version")
	require.NoError(t, err)
	require.Equal(t, "fixturefetch version develop\n", stdout)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func TestFetchWithStagingDir(t *testing.T) {
	rs := newReleaseServer(t)
	baseDir := t.TempDir()
	stagingDir := filepath.Join(t.TempDir(), "staging")

	stdout, _, err := runCmd(t, rs.Client(t), "--base-dir", baseDir, "--staging-dir", stagingDir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(baseDir, "scheduler-custom-component")+" "+
		filepath.Join(baseDir, "scheduler-custom-card.js")+"\n", stdout)

	require.FileExists(t, filepath.Join(baseDir, "scheduler-custom-component", "manifest.json"))

	entries, err := os.ReadDir(stagingDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
