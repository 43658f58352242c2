// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stream

import (
	"fmt"
)

// Kind - class of a stream failure
type Kind int

// stream failure classes
const (
	Network Kind = iota
	Parse
	Timeout
	Cancelled
)

// Error - a failure while reading a stream
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case Network:
		return fmt.Sprintf("network error: %s", e.Err)
	case Parse:
		return fmt.Sprintf("parse error: %s", e.Err)
	case Timeout:
		return "stream timeout"
	case Cancelled:
		return "stream cancelled"
	default:
		return fmt.Sprintf("stream error: %s", e.Err)
	}
}

// Unwrap - the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPError - the callee answered with a non-success status
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: status: %d", e.Status)
}
