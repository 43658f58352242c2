// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dendrite - the calling side of the synapse protocol
//
// A Dendrite builds, signs and sends synapses to one or many axons.
// Transport timeouts and refused connections come back as synapses
// carrying a 408 or 503 status rather than as errors, so fan-out
// callers inspect every result the same way.
package dendrite
