// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants

import (
	"time"
)

// ProtocolVersion - advertised in every version header
const (
	ProtocolVersion = 100
)

// axon defaults
const (
	DefaultAxonIP                = "0.0.0.0"
	DefaultAxonPort              = 8091
	DefaultMaxWorkers            = 10
	DefaultMaxConcurrentRequests = 256
	DefaultTimeoutSeconds        = 12
)

// DefaultTimeout - applied when a synapse does not declare one
const (
	DefaultTimeout = DefaultTimeoutSeconds * time.Second
)

// bounds applied to a caller-declared timeout
const (
	MinimumTimeout = 1 * time.Second
	MaximumTimeout = 300 * time.Second
)

// dendrite connection pool
const (
	MaxIdleConnectionsPerHost = 10
	IdleConnectionTimeout     = 90 * time.Second
	ConnectTimeout            = 5 * time.Second
)

// network identifiers of an advertised axon
const (
	IPTypeV4     = 4
	IPTypeV6     = 6
	AxonProtocol = 4
)

// NotServingIP - advertised by an axon that is not serving
const (
	NotServingIP = "0.0.0.0"
)
