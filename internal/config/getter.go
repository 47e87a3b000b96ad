// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
)

// ErrGetConfigFile is returned when a remote configuration cannot be fetched.
var ErrGetConfigFile = errors.New("failed to get config file")

// subdirMarker separates a go-getter source from the path inside it.
const subdirMarker = "//"

// fetch downloads the directory holding the configuration into a temporary directory and reads the file from it.
// It returns the content and the file name, which selects the decoder.
func fetch(ctx context.Context, src string) ([]byte, string, error) {
	if src == "" {
		return nil, "", ErrGetConfigFile
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	dir, file, err := locateFile(src, wd)
	if err != nil {
		return nil, "", err
	}

	tmp, err := os.MkdirTemp("", "scriptlauncher-getter-*")
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	defer os.RemoveAll(tmp) //nolint:errcheck

	client := &getter.Client{DisableSymlinks: true}

	res, err := client.Get(ctx, &getter.Request{
		Src:     dir,
		Dst:     filepath.Join(tmp, "src"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	})
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dst, file))
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	return data, file, nil
}

// locateFile returns the go-getter source of the directory holding src and the file name within it.
// Remote sources must name the file after a // marker.
func locateFile(src, wd string) (string, string, error) {
	local, err := getter.Detect(&getter.Request{Src: src, Pwd: wd}, &getter.FileGetter{})
	if err != nil {
		return "", "", errors.Join(ErrGetConfigFile, err)
	}

	if local {
		return filepath.Dir(src), filepath.Base(src), nil
	}

	dir, file := splitSubdir(src)
	if file == "" {
		return "", "", fmt.Errorf("%w: %s does not name a file after %s", ErrGetConfigFile, src, subdirMarker)
	}

	return dir, file, nil
}

// splitSubdir cuts the file name off the subdirectory part of a go-getter source.
// The directory keeps the query string so that refs still apply.
// Both results are empty when src has no subdirectory or it ends in a slash.
func splitSubdir(src string) (string, string) {
	repo, sub := getter.SourceDirSubdir(src)
	if sub == "" {
		return "", ""
	}

	dir, file := path.Split(sub)
	if file == "" {
		return "", ""
	}

	if dir = strings.Trim(dir, "/"); dir == "" {
		return repo, file
	}

	base, query, ok := strings.Cut(repo, "?")
	base += subdirMarker + dir

	if ok {
		base += "?" + query
	}

	return base, file
}
