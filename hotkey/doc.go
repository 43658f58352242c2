// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hotkey - network identities
//
// A hotkey is the public address of a participant.  It is the base58
// text of a network prefix byte, a 32 byte ed25519 public key and a
// two byte blake2b checksum.  The signing side is represented by the
// Signer interface so that any key store can be plugged in.
package hotkey
