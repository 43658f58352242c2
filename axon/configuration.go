// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package axon

import (
	"net"
	"strconv"
	"time"

	"github.com/bitmark-inc/axond/constants"
)

// Configuration - server settings
type Configuration struct {
	Port                  uint16  `gluamapper:"port" json:"port"`
	IP                    string  `gluamapper:"ip" json:"ip"`
	ExternalIP            string  `gluamapper:"external_ip" json:"external_ip"`
	ExternalPort          uint16  `gluamapper:"external_port" json:"external_port"`
	MaxWorkers            int     `gluamapper:"max_workers" json:"max_workers"`
	MaxConcurrentRequests int     `gluamapper:"max_concurrent_requests" json:"max_concurrent_requests"`
	DefaultTimeout        uint64  `gluamapper:"default_timeout" json:"default_timeout"`
	VerifySignatures      bool    `gluamapper:"verify_signatures" json:"verify_signatures"`
	TrustProxyHeaders     bool    `gluamapper:"trust_proxy_headers" json:"trust_proxy_headers"`
	RateLimit             float64 `gluamapper:"rate_limit" json:"rate_limit"`
	RateBurst             int     `gluamapper:"rate_burst" json:"rate_burst"`
}

// DefaultConfiguration - settings used when nothing is configured
func DefaultConfiguration() Configuration {
	return Configuration{
		Port:                  constants.DefaultAxonPort,
		IP:                    constants.DefaultAxonIP,
		MaxWorkers:            constants.DefaultMaxWorkers,
		MaxConcurrentRequests: constants.DefaultMaxConcurrentRequests,
		DefaultTimeout:        constants.DefaultTimeoutSeconds,
		VerifySignatures:      true,
		TrustProxyHeaders:     false,
	}
}

// SocketAddr - local listen address
func (c Configuration) SocketAddr() string {
	return net.JoinHostPort(c.IP, strconv.FormatUint(uint64(c.Port), 10))
}

// GetExternalIP - advertised address, the listen address if unset
func (c Configuration) GetExternalIP() string {
	if "" != c.ExternalIP {
		return c.ExternalIP
	}
	return c.IP
}

// GetExternalPort - advertised port, the listen port if unset
func (c Configuration) GetExternalPort() uint16 {
	if 0 != c.ExternalPort {
		return c.ExternalPort
	}
	return c.Port
}

// the timeout for requests that do not declare one
func (c Configuration) defaultTimeout() time.Duration {
	if 0 == c.DefaultTimeout {
		return constants.DefaultTimeout
	}
	return time.Duration(c.DefaultTimeout) * time.Second
}

// fill in zero values with defaults
func (c *Configuration) normalise() {
	if c.MaxWorkers <= 0 {
		c.MaxWorkers = constants.DefaultMaxWorkers
	}
	if c.MaxConcurrentRequests <= 0 {
		c.MaxConcurrentRequests = constants.DefaultMaxConcurrentRequests
	}
	if "" == c.IP {
		c.IP = constants.DefaultAxonIP
	}
}
