// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"bytes"
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/axond/hotkey"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// fixed identities so that failures are reproducible
var (
	Caller *hotkey.Keypair
	Callee *hotkey.Keypair
	Other  *hotkey.Keypair
)

func init() {
	Caller = mustKeypair(0x01)
	Callee = mustKeypair(0x02)
	Other = mustKeypair(0x03)
}

func mustKeypair(fill byte) *hotkey.Keypair {
	k, err := hotkey.FromSeed(bytes.Repeat([]byte{fill}, hotkey.SeedSize))
	if nil != err {
		panic(err)
	}
	return k
}

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
