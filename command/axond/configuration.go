// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/axond/axon"
	"github.com/bitmark-inc/axond/configuration"
	"github.com/bitmark-inc/axond/listeners"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultHotkeyFile      = "axond.hotkey"
	defaultKeyFile         = "axond.key"
	defaultCertificateFile = "axond.crt"
	defaultDatabase        = "axond.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "axond.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

var (
	defaultLogLevels = map[string]string{
		"main":            "info",
		logger.DefaultTag: "critical",
	}
)

// Configuration - the daemon configuration file
type Configuration struct {
	DataDirectory string `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string `gluamapper:"pidfile" json:"pidfile"`
	HotkeyFile    string `gluamapper:"hotkey_file" json:"hotkey_file"`
	BlacklistFile string `gluamapper:"blacklist_file" json:"blacklist_file"`
	Database      string `gluamapper:"database" json:"database"`

	Axon    axon.Configuration      `gluamapper:"axon" json:"axon"`
	HTTPS   listeners.Configuration `gluamapper:"https" json:"https"`
	Logging logger.Configuration    `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	levels := make(map[string]string, len(defaultLogLevels))
	for k, v := range defaultLogLevels {
		levels[k] = v
	}

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		HotkeyFile:    defaultHotkeyFile,
		BlacklistFile: "", // no blacklist by default
		Database:      defaultDatabase,

		Axon: axon.DefaultConfiguration(),

		HTTPS: listeners.Configuration{
			Listen:      nil, // the axon ip and port
			Certificate: "",  // plain HTTP
			PrivateKey:  defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    levels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	dataDirectory, err := configuration.DataDirectory(configurationFileName, options.DataDirectory)
	if nil != err {
		return nil, err
	}
	options.DataDirectory = dataDirectory

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.PidFile,
		&options.HotkeyFile,
		&options.BlacklistFile,
		&options.Database,
		&options.HTTPS.Certificate,
		&options.HTTPS.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = configuration.EnsureAbsolute(options.DataDirectory, *f)
	}

	// the log file is a plain name inside the log directory
	if !configuration.IsPlainName(options.Logging.File) {
		return nil, fmt.Errorf("file: %q is not plain name", options.Logging.File)
	}
	if err := os.MkdirAll(options.Logging.Directory, 0700); nil != err {
		return nil, err
	}

	if 0 == len(options.HTTPS.Listen) {
		options.HTTPS.Listen = []string{options.Axon.SocketAddr()}
	}

	// done
	return options, nil
}
