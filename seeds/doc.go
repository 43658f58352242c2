// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package seeds finds axons advertised in DNS TXT records
//
// a domain carries one TXT record per axon:
//
//   axons.example.org. TXT "axon=v1 a=192.0.2.7;2001:db8::7 p=8091 k=5F...hotkey"
package seeds
