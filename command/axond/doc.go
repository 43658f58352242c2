// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// axond - serve synapses over HTTP
//
// setup:
//
//   axond gen-hotkey DIR              create an encrypted hotkey file
//   axond gen-certificate DIR [IPs]   create a self-signed TLS certificate
//
// run:
//
//   axond --config-file=axond.conf
//
// the hotkey password is read from AXOND_PASSWORD or prompted for
package main
