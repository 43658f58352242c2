// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package signature - request authentication
//
// A dendrite signs the text "{nonce}.{dendrite}.{axon}.{body hash}"
// and the axon checks it against the dendrite hotkey.  Nonces are
// not remembered, so a replayed request still verifies.
package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/axond/fault"
	"github.com/bitmark-inc/axond/hotkey"
)

const separator = "."

// BodyHash - lowercase hex SHA-256 of a serialised body
func BodyHash(body []byte) string {
	digest := sha256.Sum256(body)
	return hex.EncodeToString(digest[:])
}

// Message - the canonical text that is signed
func Message(nonce uint64, dendriteHotkey string, axonHotkey string, bodyHash string) string {
	return strings.Join([]string{
		strconv.FormatUint(nonce, 10),
		dendriteHotkey,
		axonHotkey,
		bodyHash,
	}, separator)
}

// Sign - sign the canonical message and return it as lowercase hex
func Sign(signer hotkey.Signer, nonce uint64, axonHotkey string, bodyHash string) (string, error) {
	message := Message(nonce, signer.Hotkey(), axonHotkey, bodyHash)
	sig, err := signer.Sign([]byte(message))
	if nil != err {
		return "", err
	}
	return hex.EncodeToString(sig), nil
}

// Verify - check a hex signature from a dendrite
//
// the checks run in a fixed order: hex, length, hotkey, signature
func Verify(keys hotkey.KeySource, dendriteHotkey string, nonce uint64, axonHotkey string, bodyHash string, signatureHex string) error {
	sig, err := hex.DecodeString(signatureHex)
	if nil != err {
		return fault.InvalidSignatureHex
	}

	if hotkey.SignatureSize != len(sig) {
		return fault.InvalidSignatureLength
	}

	if nil == keys {
		keys = hotkey.Decoder
	}
	publicKey, err := keys.PublicKey(dendriteHotkey)
	if nil != err {
		return fault.InvalidHotkey
	}

	message := Message(nonce, dendriteHotkey, axonHotkey, bodyHash)
	if !ed25519.Verify(publicKey, []byte(message), sig) {
		return fault.SignatureVerificationFailed
	}
	return nil
}
