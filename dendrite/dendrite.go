// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dendrite

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/axond/constants"
	"github.com/bitmark-inc/axond/hotkey"
	"github.com/bitmark-inc/axond/ratelimit"
	"github.com/bitmark-inc/axond/synapse"
)

const (
	keepAlive = 30 * time.Second
)

// Dendrite - client for axons
//
// the pooled HTTP client is shared by every call and is safe for
// concurrent use; configure with the With methods before calling
type Dendrite struct {
	log       *logger.L
	client    *http.Client
	transport *http.Transport
	scheme    string
	signer    hotkey.Signer
	timeout   time.Duration
	version   uint64
	ip        string
	port      uint16
	limiter   *rate.Limiter
}

// New - create a client, a nil signer sends unsigned requests
func New(log *logger.L, signer hotkey.Signer) *Dendrite {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   constants.ConnectTimeout,
			KeepAlive: keepAlive,
		}).DialContext,
		MaxIdleConnsPerHost: constants.MaxIdleConnectionsPerHost,
		IdleConnTimeout:     constants.IdleConnectionTimeout,
	}

	return &Dendrite{
		log:       log,
		client:    &http.Client{Transport: transport},
		transport: transport,
		scheme:    "http",
		signer:    signer,
		timeout:   constants.DefaultTimeout,
		version:   constants.ProtocolVersion,
	}
}

// WithTimeout - default timeout for calls
func (d *Dendrite) WithTimeout(timeout time.Duration) *Dendrite {
	if timeout > 0 {
		d.timeout = timeout
	}
	return d
}

// WithVersion - advertised version
func (d *Dendrite) WithVersion(version uint64) *Dendrite {
	d.version = version
	return d
}

// WithIP - advertised caller address
func (d *Dendrite) WithIP(ip string) *Dendrite {
	d.ip = ip
	return d
}

// WithPort - advertised caller port
func (d *Dendrite) WithPort(port uint16) *Dendrite {
	d.port = port
	return d
}

// WithRateLimit - bound outbound calls per second, zero disables
func (d *Dendrite) WithRateLimit(perSecond float64, burst int) *Dendrite {
	d.limiter = ratelimit.New(perSecond, burst)
	return d
}

// WithTLS - call axons over https, a nil config uses the system roots
func (d *Dendrite) WithTLS(config *tls.Config) *Dendrite {
	if nil == config {
		config = &tls.Config{}
	}
	d.transport.TLSClientConfig = config
	d.scheme = "https"
	return d
}

// Endpoint - base URL this client uses for an axon
func (d *Dendrite) Endpoint(info synapse.AxonInfo) string {
	return info.URL(d.scheme)
}

// Hotkey - the caller address, empty when unsigned
func (d *Dendrite) Hotkey() string {
	if nil == d.signer {
		return ""
	}
	return d.signer.Hotkey()
}

// Timeout - default timeout for calls
func (d *Dendrite) Timeout() time.Duration {
	return d.timeout
}

// Close - drop idle pooled connections
func (d *Dendrite) Close() {
	d.client.CloseIdleConnections()
}

// throttle outbound calls if a limit is set
func (d *Dendrite) throttle(ctx context.Context) error {
	return ratelimit.Limit(ctx, d.limiter)
}
