// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/axond/constants"
	"github.com/bitmark-inc/axond/fault"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = constants.MaximumTimeout + 10*time.Second
	idleTimeout     = 120 * time.Second
	keepAlivePeriod = 3 * time.Minute
	maxHeaderBytes  = 1 << 20
)

// Configuration - configuration file data for the HTTP(S) setup
//
// without a certificate the listener serves plain HTTP
type Configuration struct {
	Listen      []string `gluamapper:"listen" json:"listen"`
	Certificate string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey  string   `gluamapper:"private_key" json:"private_key"`
}

// Listener - a running set of servers
type Listener interface {
	Serve() error
	Addresses() []net.Addr
	Shutdown(ctx context.Context) error
}

type httpListener struct {
	sync.Mutex
	log       *logger.L
	listen    []string
	tlsConfig *tls.Config
	handler   http.Handler
	servers   []*http.Server
	addresses []net.Addr
}

// New - listener for a handler on every configured address
//
// a nil tlsConfig serves plain HTTP
func New(listen []string, log *logger.L, tlsConfig *tls.Config, handler http.Handler) (Listener, error) {
	if nil == log || nil == handler || 0 == len(listen) {
		return nil, fault.MissingParameters
	}

	if nil != tlsConfig {
		tlsConfig = tlsConfig.Clone()
		tlsConfig.NextProtos = []string{"http/1.1"}
	}

	return &httpListener{
		log:       log,
		listen:    listen,
		tlsConfig: tlsConfig,
		handler:   handler,
	}, nil
}

// Serve - bind every address and serve in the background
//
// a bind failure closes the addresses already bound
func (h *httpListener) Serve() error {
	h.Lock()
	defer h.Unlock()

	listeners := make([]net.Listener, 0, len(h.listen))
	for _, listen := range h.listen {
		listen = normaliseAddress(listen)
		h.log.Infof("starting server on: %q  tls: %t", listen, nil != h.tlsConfig)

		ln, err := net.Listen("tcp", listen)
		if nil != err {
			h.log.Errorf("listen on: %q  error: %s", listen, err)
			for _, l := range listeners {
				l.Close()
			}
			return err
		}
		listeners = append(listeners, ln)
	}

	for _, ln := range listeners {
		s := &http.Server{
			Handler:        h.handler,
			ReadTimeout:    readTimeout,
			WriteTimeout:   writeTimeout,
			IdleTimeout:    idleTimeout,
			MaxHeaderBytes: maxHeaderBytes,
		}
		h.servers = append(h.servers, s)
		h.addresses = append(h.addresses, ln.Addr())

		var l net.Listener = tcpKeepAliveListener{ln.(*net.TCPListener)}
		if nil != h.tlsConfig {
			l = tls.NewListener(l, h.tlsConfig)
		}
		go h.serve(s, l)
	}
	return nil
}

func (h *httpListener) serve(s *http.Server, l net.Listener) {
	err := s.Serve(l)
	if nil != err && http.ErrServerClosed != err {
		h.log.Errorf("server on: %s  error: %s", l.Addr(), err)
	}
}

// Addresses - the bound addresses, useful when a port was 0
func (h *httpListener) Addresses() []net.Addr {
	h.Lock()
	defer h.Unlock()
	return append([]net.Addr{}, h.addresses...)
}

// Shutdown - stop accepting and wait for requests in progress
func (h *httpListener) Shutdown(ctx context.Context) error {
	h.Lock()
	servers := h.servers
	h.servers = nil
	h.addresses = nil
	h.Unlock()

	var firstErr error
	for _, s := range servers {
		if err := s.Shutdown(ctx); nil != err && nil == firstErr {
			firstErr = err
		}
	}
	h.log.Info("stopped")
	return firstErr
}

// change "*:PORT" to "[::]:PORT"
// on the assumption that this will listen on tcp4 and tcp6
func normaliseAddress(listen string) string {
	if strings.HasPrefix(listen, "*:") {
		return "[::]:" + strings.TrimPrefix(listen, "*:")
	}
	return listen
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if nil != err {
		return nil, err
	}
	_ = tc.SetKeepAlive(true)
	_ = tc.SetKeepAlivePeriod(keepAlivePeriod)
	return tc, nil
}
