// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package axon

import (
	"net/http"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/axond/fault"
	"github.com/bitmark-inc/axond/hotkey"
	"github.com/bitmark-inc/axond/ratelimit"
	"github.com/bitmark-inc/axond/synapse"
)

// Axon - an http.Handler serving registered synapse routes
type Axon struct {
	log           *logger.L
	configuration Configuration
	hotkey        string
	registry      *Registry
	state         *state
	keys          *hotkey.Cache
	limiter       *rate.Limiter
	workers       *workerPool
	metrics       *metrics
	mux           *http.ServeMux
}

// New - create a server
//
// the signer supplies the hotkey callers sign against; the persister
// is optional and its lists are restored before New returns
func New(log *logger.L, configuration Configuration, signer hotkey.Signer, registry *Registry, persister Persister) (*Axon, error) {
	if nil == log || nil == signer {
		return nil, fault.MissingParameters
	}
	if nil == registry {
		registry = NewRegistry()
	}

	configuration.normalise()

	workers := newWorkerPool(configuration.MaxWorkers)
	a := &Axon{
		log:           log,
		configuration: configuration,
		hotkey:        signer.Hotkey(),
		registry:      registry,
		state:         newState(signer.Hotkey(), configuration.VerifySignatures, configuration.TrustProxyHeaders),
		keys:          hotkey.NewCache(),
		limiter:       ratelimit.New(configuration.RateLimit, configuration.RateBurst),
		workers:       workers,
		metrics:       newMetrics(workers),
	}

	a.state.persister = persister
	if err := a.state.restore(); nil != err {
		log.Errorf("restore state error: %s", err)
		return nil, err
	}

	a.mux = http.NewServeMux()
	a.mux.HandleFunc("/health", a.health)
	a.mux.Handle("/metrics", a.metrics.handler())
	a.mux.HandleFunc("/", a.serveSynapse)

	log.Infof("hotkey: %s", a.hotkey)
	log.Infof("routes: %v", registry.Names())
	log.Infof("verify signatures: %t  workers: %d  max in flight: %d", configuration.VerifySignatures, configuration.MaxWorkers, configuration.MaxConcurrentRequests)

	return a, nil
}

// ServeHTTP - http.Handler
func (a *Axon) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// Attach - register a handler on this server's registry
func (a *Axon) Attach(name string, h Handler) error {
	return a.registry.Attach(name, h)
}

// Registry - the route table
func (a *Axon) Registry() *Registry {
	return a.registry
}

// Hotkey - the address callers sign against
func (a *Axon) Hotkey() string {
	return a.hotkey
}

// Configuration - the settings in effect
func (a *Axon) Configuration() Configuration {
	return a.configuration
}

// Info - the advertisement for this server at a block height
func (a *Axon) Info(block uint64) synapse.AxonInfo {
	info := synapse.NewAxonInfo(a.configuration.GetExternalIP(), a.configuration.GetExternalPort(), a.hotkey)
	info.Block = block
	return info
}
