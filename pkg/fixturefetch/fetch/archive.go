// Copyright 2024 The fixturefetch Authors.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Archive struct {
	path string
}

func NewArchive(path string) Archive {
	return Archive{path}
}

// Unpack extracts zip contents into dstPath. Entries that would land
// outside of dstPath are rejected.
func (t Archive) Unpack(dstPath string) error {
	zipArchive, err := zip.OpenReader(t.path)
	if err != nil {
		return fmt.Errorf("Opening zip archive: %s", err)
	}

	defer zipArchive.Close()

	for _, f := range zipArchive.File {
		entryPath, err := ScopedPath(dstPath, f.Name)
		if err != nil {
			return fmt.Errorf("Checking zip entry '%s': %s", f.Name, err)
		}

		if strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir() {
			err := os.MkdirAll(entryPath, 0755)
			if err != nil {
				return fmt.Errorf("Making dir: %s", err)
			}
			continue
		}

		srcZipFile, err := f.Open()
		if err != nil {
			return fmt.Errorf("Opening zip file: %s", err)
		}

		err = t.writeIntoFileAndClose(srcZipFile, entryPath)
		if err != nil {
			return err
		}
	}

	return nil
}

func (t Archive) writeIntoFile(srcFile io.Reader, dstFilePath string) error {
	err := os.MkdirAll(filepath.Dir(dstFilePath), 0755)
	if err != nil {
		return fmt.Errorf("Making intermediate dir: %s", err)
	}

	dstFile, err := os.Create(dstFilePath)
	if err != nil {
		return fmt.Errorf("Creating dst file: %s", err)
	}

	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	if err != nil {
		return fmt.Errorf("Copying into dst file: %s", err)
	}

	return nil
}

func (t Archive) writeIntoFileAndClose(srcFile io.ReadCloser, dstFilePath string) error {
	defer srcFile.Close()
	return t.writeIntoFile(srcFile, dstFilePath)
}
