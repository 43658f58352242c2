// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk administrative state of an axon
//
// This maintains a LevelDB database split into a series of pools.
// Each pool is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available pools.
//
// Notes:
// 1. each separate pool has a single byte prefix
// 2. ++       = concatenation of byte data
// 3. hotkey   = the text form of the caller's public address
// 4. ip       = the text form of an IPv4 or IPv6 address
// 5. priority = IEEE 754 float32 bits as big endian uint32 (4 bytes)
//
// Blacklist:
//
//   B ++ hotkey                - blacklisted caller
//                                data: empty
//   I ++ ip                    - blacklisted address
//                                data: empty
//
// Priority:
//
//   P ++ hotkey                - scheduling priority
//                                data: priority
//
// Version:
//
//   0x00 ++ "VERSION"          - database layout version
//                                data: big endian uint32 (4 bytes)
package storage
