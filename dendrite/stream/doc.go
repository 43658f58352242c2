// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package stream - forward only reading of a streamed synapse response
//
// A Stream wraps the open response body and yields application chunks
// cut from it by a Processor.  It cannot be restarted; Close releases
// the connection and is safe to call more than once.
package stream
