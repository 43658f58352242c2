// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blacklist - keep an axon's lists in step with a text file
//
// The file holds one entry per line; an entry is either an IP address
// or a hotkey. Blank lines and text after '#' are ignored.
//
//   # abusive callers
//   5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY
//   192.0.2.10
//   2001:db8::1
//
// Only entries that came from the file are ever removed again, so
// lists edited by other admin calls are left alone.
package blacklist
