// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package axon - the serving side of the synapse protocol
//
// Every POST to /{name} passes through a fixed sequence of stages:
//
//   count, rate limit, timeout, authenticate, priority, blacklist,
//   extract, dispatch, respond
//
// and any stage may end the request with a protocol status.  The
// /health and /metrics routes bypass the sequence.
package axon
