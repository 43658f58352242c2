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
	passwordEnvironment = "AXOND_PASSWORD"
	minimumPassword     = 8
)

// password from the environment, else from the terminal
func getPassword(prompt string, confirm bool) (string, error) {
	if password := os.Getenv(passwordEnvironment); "" != password {
		return password, nil
	}

	password, err := readPassword(prompt)
	if nil != err {
		return "", err
	}
	if !confirm {
		return password, nil
	}

	if len(password) < minimumPassword {
		return "", fmt.Errorf("password must have at least %d characters", minimumPassword)
	}

	verify, err := readPassword("verify password: ")
	if nil != err {
		return "", err
	}
	if password != verify {
		return "", fault.WrongPassword
	}
	return password, nil
}

func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !terminal.IsTerminal(fd) {
		return "", fmt.Errorf("no terminal: set %s", passwordEnvironment)
	}

	fmt.Fprint(os.Stderr, prompt)
	password, err := terminal.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if nil != err {
		return "", err
	}
	return string(password), nil
}
