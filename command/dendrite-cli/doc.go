// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command dendrite-cli sends synapses to running axons
//
// targets are [HOTKEY@]HOST:PORT or [HOTKEY@]/ip4/A.B.C.D/tcp/PORT
// (dns4, dns6 and ip6 multiaddrs are accepted)
//
//   dendrite-cli call -t HOTKEY@127.0.0.1:8091 -n Echo -f '{"text": "hi"}'
//   dendrite-cli forward -t A -t B -n Echo
//   dendrite-cli stream -t A -n Count -f '{"n": 5}' --processor text
//   dendrite-cli health -t A
//   dendrite-cli --ca axon.crt call -t A -n Echo
//
// an axon serving https needs --tls, --ca FILE or --insecure
//
// without --hotkey-file an ephemeral hotkey is generated for each run
package main
