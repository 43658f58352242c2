// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package axon

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/bitmark-inc/axond/constants"
	"github.com/bitmark-inc/axond/synapse"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain; charset=utf-8"
)

// write a completed outcome
//
// failures carry their message as a plain text body, successes carry
// the handler's fields as JSON
func (a *Axon) finish(w http.ResponseWriter, req *request, o *outcome) {
	processTime := time.Since(req.start).Seconds()
	a.metrics.observe(a.metricRoute(req.name), o.status, processTime)

	h := w.Header()
	h.Set("X-Content-Type-Options", "nosniff")

	if nil != o.response {
		o.response.Axon = a.terminal(o.response.Axon, o.status, o.message, processTime)
		o.response.WriteHeaders(h)
		h.Set("Content-Type", contentTypeJSON)
		w.WriteHeader(o.httpStatus)
		_, _ = w.Write(o.body)
		return
	}

	failure := &synapse.Synapse{
		Axon: a.terminal(nil, o.status, o.message, processTime),
	}
	if "" != o.hotkey {
		failure.Dendrite = synapse.NewTerminalInfo().WithHotkey(o.hotkey)
	}
	failure.WriteHeaders(h)
	h.Set("Content-Type", contentTypeText)
	w.WriteHeader(o.httpStatus)
	_, _ = io.WriteString(w, o.message)
}

// run a streaming handler once a worker is free
func (a *Axon) serveStream(ctx context.Context, w http.ResponseWriter, req *request, o *outcome) {
	sc := o.stream
	s, err := a.workers.take(ctx, sc.priority)
	if nil != err {
		a.finish(w, req, reject(http.StatusRequestTimeout, synapse.StatusTimeout, synapse.MessageTimeout, o.hotkey))
		return
	}
	defer s.release()

	processTime := time.Since(req.start).Seconds()
	head := &synapse.Synapse{
		Name:     sc.request.Name,
		Dendrite: sc.request.Dendrite,
		Axon:     a.terminal(nil, synapse.StatusSuccess, synapse.MessageSuccess, processTime),
	}

	h := w.Header()
	head.WriteHeaders(h)
	h.Set("Content-Type", sc.contentType)
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	if nil != flusher {
		flusher.Flush()
	}

	fw := &flushWriter{
		ctx:     ctx,
		w:       w,
		flusher: flusher,
	}
	done := make(chan int32, 1)
	go func() {
		defer s.release()
		done <- a.stream(ctx, req.name, sc, fw)
	}()

	var status int32
	select {
	case status = <-done:
	case <-ctx.Done():
		a.log.Warnf("stream timeout: %s from: %s", req.name, req.ip)
		s.release()
		status = synapse.StatusTimeout
	}
	fw.close()

	a.metrics.observe(a.metricRoute(req.name), status, time.Since(req.start).Seconds())
}

// a failing or panicking stream handler ends its stream, the protocol
// status it earns only reaches the metrics
func (a *Axon) stream(ctx context.Context, name string, sc *streamCall, fw *flushWriter) (status int32) {
	defer func() {
		if r := recover(); nil != r {
			a.log.Criticalf("stream handler for: %q  panic: %v", name, r)
			status = synapse.StatusInternalError
		}
	}()

	err := sc.handler.HandleStream(ctx, sc.request, fw)
	if nil != err {
		a.log.Warnf("stream: %q  error: %s", name, err)
		return synapse.StatusInternalError
	}
	return synapse.StatusSuccess
}

// axon side terminal info for a response
func (a *Axon) terminal(base *synapse.TerminalInfo, status int32, message string, processTime float64) *synapse.TerminalInfo {
	t := synapse.NewTerminalInfo()
	if nil != base {
		t = base.Clone()
	}
	return t.WithStatus(status, message).
		WithProcessTime(processTime).
		WithHotkey(a.hotkey).
		WithVersion(constants.ProtocolVersion).
		WithNonce(uint64(time.Now().UnixNano()))
}

// bounded label set, unregistered names share one label
func (a *Axon) metricRoute(name string) string {
	if a.registry.Has(name) {
		return name
	}
	return unknownRoute
}

func (a *Axon) health(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method && http.MethodHead != r.Method {
		sendMethodNotAllowed(w)
		return
	}
	w.Header().Set("Content-Type", contentTypeText)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "OK")
}

func sendMethodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

// each chunk reaches the caller as soon as it is written, nothing is
// written once the response has been handed back
type flushWriter struct {
	sync.Mutex
	ctx     context.Context
	w       io.Writer
	flusher http.Flusher
	closed  bool
}

func (fw *flushWriter) Write(p []byte) (int, error) {
	fw.Lock()
	defer fw.Unlock()

	if fw.closed {
		return 0, io.ErrClosedPipe
	}
	if err := fw.ctx.Err(); nil != err {
		return 0, err
	}
	n, err := fw.w.Write(p)
	if nil != fw.flusher {
		fw.flusher.Flush()
	}
	return n, err
}

func (fw *flushWriter) close() {
	fw.Lock()
	fw.closed = true
	fw.Unlock()
}
