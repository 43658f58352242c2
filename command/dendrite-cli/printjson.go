// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
)

// indented JSON result on the command's output
func (m *metadata) print(result interface{}) error {
	encoder := json.NewEncoder(m.w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(result); nil != err {
		if m.verbose {
			fmt.Fprintf(m.e, "encode result error: %s\n", err)
		}
		return ErrUnprintableResult
	}
	return nil
}
