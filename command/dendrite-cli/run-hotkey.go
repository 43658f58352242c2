// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/axond/hotkey"
)

func runHotkey(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	return m.print(map[string]string{
		"hotkey": m.dendrite.Hotkey(),
	})
}

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName := c.String("output")
	if "" == fileName {
		return fmt.Errorf("output file is required")
	}

	keypair, err := hotkey.New()
	if nil != err {
		return err
	}

	password, err := getPassword(c.GlobalString("password"), true)
	if nil != err {
		return err
	}

	if err := hotkey.SaveKeyFile(fileName, keypair, password); nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "saved: %q\n", fileName)
	}
	return m.print(map[string]string{
		"hotkey": keypair.Hotkey(),
		"file":   fileName,
	})
}
