// Copyright 2024 The fixturefetch Authors.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"fmt"
	"io"
	"net/http"
)

type HTTPDownloader struct {
	client *http.Client
}

// NewHTTPDownloader uses http.DefaultClient when client is nil
func NewHTTPDownloader(client *http.Client) *HTTPDownloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPDownloader{client}
}

func (t *HTTPDownloader) Download(url string, dst io.Writer) error {
	if len(url) == 0 {
		return fmt.Errorf("Expected non-empty URL")
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("Building request: %s", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("Initiating URL download: %s", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Expected 200 OK, but was '%s'", resp.Status)
	}

	_, err = io.Copy(dst, resp.Body)
	if err != nil {
		return fmt.Errorf("Writing downloaded content: %s", err)
	}

	return nil
}
