// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/bitmark-inc/axond/fault"
)

const (
	passwordEnvironment = "DENDRITE_PASSWORD"
	minimumPassword     = 8
)

// flag value, then the environment, then the terminal
func getPassword(given string, confirm bool) (string, error) {
	if "" != given {
		return given, nil
	}
	if password := os.Getenv(passwordEnvironment); "" != password {
		return password, nil
	}

	fd := int(os.Stdin.Fd())
	if !terminal.IsTerminal(fd) {
		return "", fmt.Errorf("no terminal: use --password or set %s", passwordEnvironment)
	}

	fmt.Fprint(os.Stderr, "hotkey password: ")
	password, err := terminal.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if nil != err {
		return "", err
	}
	if !confirm {
		return string(password), nil
	}

	if len(password) < minimumPassword {
		return "", fmt.Errorf("password must have at least %d characters", minimumPassword)
	}

	fmt.Fprint(os.Stderr, "verify password: ")
	verify, err := terminal.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if nil != err {
		return "", err
	}
	if string(password) != string(verify) {
		return "", fault.WrongPassword
	}
	return string(password), nil
}
