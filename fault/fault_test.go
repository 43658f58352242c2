// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/axond/fault"
)

var (
	ErrExistsOne       = fault.ExistsError("exists one ")
	ErrInvalidOne      = fault.InvalidError("invalid one")
	ErrLengthOne       = fault.LengthError("length one")
	ErrNotFoundOne     = fault.NotFoundError("not found one")
	ErrProcessOne      = fault.ProcessError("process one")
	ErrUnauthorisedOne = fault.UnauthorisedError("unauthorised one")
)

// test that the error classes do not overlap
func TestClasses(t *testing.T) {
	errorList := []struct {
		err          error
		exists       bool
		invalid      bool
		length       bool
		notFound     bool
		process      bool
		unauthorised bool
	}{
		{ErrExistsOne, true, false, false, false, false, false},
		{ErrInvalidOne, false, true, false, false, false, false},
		{ErrLengthOne, false, false, true, false, false, false},
		{ErrNotFoundOne, false, false, false, true, false, false},
		{ErrProcessOne, false, false, false, false, true, false},
		{ErrUnauthorisedOne, false, false, false, false, false, true},
		{fault.InvalidSignatureLength, false, false, true, false, false, false},
		{fault.SignatureVerificationFailed, false, false, false, false, false, true},
		{fault.InvalidAxon, false, true, false, false, false, false},
	}

	for i, e := range errorList {
		err := e.err
		assert.Equal(t, e.exists, fault.IsErrExists(err), "%d: wrong exists for: %v", i, err)
		assert.Equal(t, e.invalid, fault.IsErrInvalid(err), "%d: wrong invalid for: %v", i, err)
		assert.Equal(t, e.length, fault.IsErrLength(err), "%d: wrong length for: %v", i, err)
		assert.Equal(t, e.notFound, fault.IsErrNotFound(err), "%d: wrong not found for: %v", i, err)
		assert.Equal(t, e.process, fault.IsErrProcess(err), "%d: wrong process for: %v", i, err)
		assert.Equal(t, e.unauthorised, fault.IsErrUnauthorised(err), "%d: wrong unauthorised for: %v", i, err)
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "invalid signature hex", fault.InvalidSignatureHex.Error(), "wrong message")
	assert.Equal(t, "signature verification failed", fault.SignatureVerificationFailed.Error(), "wrong message")
}
