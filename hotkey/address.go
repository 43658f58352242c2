// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hotkey

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/axond/fault"
)

// NetworkPrefix - generic substrate address format
const NetworkPrefix = 42

const (
	prefixLength   = 1
	checksumLength = 2
	addressLength  = prefixLength + ed25519.PublicKeySize + checksumLength
)

var checksumPreamble = []byte("SS58PRE")

// Encode - convert a public key to its address text
func Encode(publicKey ed25519.PublicKey) string {
	data := make([]byte, 0, addressLength)
	data = append(data, NetworkPrefix)
	data = append(data, publicKey...)
	data = append(data, checksum(data)...)
	return base58.Encode(data)
}

// Decode - convert address text back to a public key
func Decode(address string) (ed25519.PublicKey, error) {
	if "" == address {
		return nil, fault.InvalidHotkey
	}
	data, err := base58.Decode(address)
	if nil != err {
		return nil, fault.InvalidHotkey
	}
	if addressLength != len(data) {
		return nil, fault.InvalidHotkey
	}
	if NetworkPrefix != data[0] {
		return nil, fault.WrongNetwork
	}

	checksumStart := addressLength - checksumLength
	if !bytes.Equal(checksum(data[:checksumStart]), data[checksumStart:]) {
		return nil, fault.WrongChecksum
	}

	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, data[prefixLength:checksumStart])
	return publicKey, nil
}

// IsValid - check that the text is a well formed address
func IsValid(address string) bool {
	_, err := Decode(address)
	return nil == err
}

func checksum(data []byte) []byte {
	h, _ := blake2b.New512(nil)
	h.Write(checksumPreamble)
	h.Write(data)
	return h.Sum(nil)[:checksumLength]
}
