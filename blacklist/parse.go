// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blacklist

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/bitmark-inc/axond/hotkey"
)

const commentCharacter = "#"

// List - the entries of one file
type List struct {
	Hotkeys map[string]struct{}
	IPs     map[string]struct{}
}

// LineError - an entry that is neither an address nor a hotkey
type LineError struct {
	Line  int
	Entry string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line: %d  invalid entry: %q", e.Line, e.Entry)
}

func newList() List {
	return List{
		Hotkeys: make(map[string]struct{}),
		IPs:     make(map[string]struct{}),
	}
}

// Parse - read a list
//
// invalid entries are skipped and returned together with the list
func Parse(r io.Reader) (List, []error, error) {
	list := newList()
	invalid := make([]error, 0)

	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n += 1
		line := scanner.Text()
		if i := strings.Index(line, commentCharacter); i >= 0 {
			line = line[:i]
		}
		entry := strings.TrimSpace(line)
		if "" == entry {
			continue
		}

		if ip := net.ParseIP(entry); nil != ip {
			list.IPs[ip.String()] = struct{}{}
		} else if hotkey.IsValid(entry) {
			list.Hotkeys[entry] = struct{}{}
		} else {
			invalid = append(invalid, &LineError{Line: n, Entry: entry})
		}
	}
	if err := scanner.Err(); nil != err {
		return List{}, nil, err
	}
	return list, invalid, nil
}
