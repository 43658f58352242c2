// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package axon

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/bitmark-inc/axond/fault"
	"github.com/bitmark-inc/axond/synapse"
)

// Handler - application code for one route
//
// a handler always returns a synapse; application errors are carried
// in its fields or in Axon.StatusCode.  The context is cancelled when
// the request times out.
type Handler interface {
	Handle(ctx context.Context, request *synapse.Synapse) *synapse.Synapse
}

// HandlerFunc - adapter for plain functions
type HandlerFunc func(ctx context.Context, request *synapse.Synapse) *synapse.Synapse

// Handle - calls f
func (f HandlerFunc) Handle(ctx context.Context, request *synapse.Synapse) *synapse.Synapse {
	return f(ctx, request)
}

// StreamHandler - application code that writes its response in chunks
//
// each Write is flushed to the caller at once
type StreamHandler interface {
	HandleStream(ctx context.Context, request *synapse.Synapse, w io.Writer) error
}

// StreamHandlerFunc - adapter for plain functions
type StreamHandlerFunc func(ctx context.Context, request *synapse.Synapse, w io.Writer) error

// HandleStream - calls f
func (f StreamHandlerFunc) HandleStream(ctx context.Context, request *synapse.Synapse, w io.Writer) error {
	return f(ctx, request, w)
}

type route struct {
	handler     Handler
	stream      StreamHandler
	contentType string
}

// Registry - route name to handler
//
// normally filled before serving; later additions are visible to
// requests that arrive after them
type Registry struct {
	sync.RWMutex
	routes map[string]route
}

// NewRegistry - empty registry
func NewRegistry() *Registry {
	return &Registry{
		routes: make(map[string]route),
	}
}

// Attach - register a handler, replacing any previous one
func (r *Registry) Attach(name string, h Handler) error {
	if nil == h {
		return fault.HandlerIsNil
	}
	if "" == name {
		return fault.MissingParameters
	}
	r.Lock()
	r.routes[name] = route{handler: h}
	r.Unlock()
	return nil
}

// AttachFunc - register a plain function
func (r *Registry) AttachFunc(name string, f func(context.Context, *synapse.Synapse) *synapse.Synapse) error {
	if nil == f {
		return fault.HandlerIsNil
	}
	return r.Attach(name, HandlerFunc(f))
}

// AttachStream - register a streaming handler
func (r *Registry) AttachStream(name string, contentType string, h StreamHandler) error {
	if nil == h {
		return fault.HandlerIsNil
	}
	if "" == name {
		return fault.MissingParameters
	}
	if "" == contentType {
		contentType = "text/plain; charset=utf-8"
	}
	r.Lock()
	r.routes[name] = route{stream: h, contentType: contentType}
	r.Unlock()
	return nil
}

// Detach - remove a route
func (r *Registry) Detach(name string) {
	r.Lock()
	delete(r.routes, name)
	r.Unlock()
}

// Has - check for a route
func (r *Registry) Has(name string) bool {
	_, ok := r.lookup(name)
	return ok
}

// Names - sorted route names
func (r *Registry) Names() []string {
	r.RLock()
	names := make([]string, 0, len(r.routes))
	for name := range r.routes {
		names = append(names, name)
	}
	r.RUnlock()
	sort.Strings(names)
	return names
}

func (r *Registry) lookup(name string) (route, bool) {
	r.RLock()
	rt, ok := r.routes[name]
	r.RUnlock()
	return rt, ok
}
