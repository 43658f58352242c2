// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDirectory - absolute data directory for a configuration file
//
// "." means the directory holding the configuration file; the
// directory must already exist
func DataDirectory(configurationFileName string, directory string) (string, error) {
	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return "", err
	}

	// absolute path to the main directory
	configurationDirectory, _ := filepath.Split(configurationFileName)

	switch directory {
	case "", "~":
		return "", fmt.Errorf("path: %q is not a valid directory", directory)
	case ".":
		directory = configurationDirectory // same directory as the configuration file
	default:
		directory = EnsureAbsolute(configurationDirectory, directory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(directory); nil != err {
		return "", err
	} else if !fileInfo.IsDir() {
		return "", fmt.Errorf("path: %q is not a directory", directory)
	}
	return filepath.Clean(directory), nil
}

// EnsureAbsolute - a relative path is placed in directory
//
// an empty path stays empty
func EnsureAbsolute(directory string, filePath string) string {
	if "" == filePath {
		return ""
	}
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// IsPlainName - a file name with no directory part
func IsPlainName(fileName string) bool {
	switch filepath.Dir(fileName) {
	case "", ".":
		return "" != fileName
	default:
		return false
	}
}
