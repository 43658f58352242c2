// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/axond/fault"
)

// common errors - keep in alphabetic order
const (
	ErrInvalidCertificateAuthority = fault.InvalidError("no PEM certificates in CA file")
	ErrInvalidFields               = fault.InvalidError("fields must be a JSON object")
	ErrInvalidProcessor            = fault.InvalidError("processor can only be text/json/sse")
	ErrMissingName                 = fault.InvalidError("synapse name is required")
	ErrMissingTarget               = fault.InvalidError("at least one target is required")
	ErrUnprintableResult           = fault.InvalidError("result cannot be printed as JSON")
)
