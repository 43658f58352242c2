// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package axon

import (
	"context"
	"fmt"
	"io/ioutil"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bitmark-inc/axond/constants"
	"github.com/bitmark-inc/axond/fault"
	"github.com/bitmark-inc/axond/ratelimit"
	"github.com/bitmark-inc/axond/signature"
	"github.com/bitmark-inc/axond/synapse"
)

// authentication failure texts
const (
	missingHotkeyMessage    = "Missing dendrite hotkey header"
	missingNonceMessage     = "Missing dendrite nonce header"
	invalidNonceMessage     = "Invalid nonce format: %s"
	missingSignatureMessage = "Missing dendrite signature header"
)

// one inbound call as seen by the stages
type request struct {
	name   string
	ip     string
	header http.Header
	body   []byte
	start  time.Time
}

// how the stages ended
type outcome struct {
	httpStatus int
	status     int32
	message    string
	hotkey     string
	response   *synapse.Synapse
	body       []byte
	stream     *streamCall
}

// credentials of a call whose signature checked out
type verifiedRequest struct {
	hotkey    string
	nonce     uint64
	signature string
	uuid      string
	bodyHash  string
}

// a streaming route that passed admission
type streamCall struct {
	handler     StreamHandler
	contentType string
	request     *synapse.Synapse
	priority    float32
}

func reject(httpStatus int, status int32, message string, hotkey string) *outcome {
	return &outcome{
		httpStatus: httpStatus,
		status:     status,
		message:    message,
		hotkey:     hotkey,
	}
}

func (a *Axon) serveSynapse(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	// count
	a.state.totalRequests.Increment()
	inFlight := a.state.requestCount.Increment()
	defer a.state.requestCount.Decrement()

	a.metrics.inFlight.Inc()
	defer a.metrics.inFlight.Dec()

	req := &request{
		name:   routeName(r.URL.Path),
		ip:     clientIP(r, a.state.trustProxyHeaders),
		header: r.Header,
		start:  start,
	}
	callerHotkey := r.Header.Get(synapse.HeaderDendriteHotkey)

	if inFlight > uint64(a.configuration.MaxConcurrentRequests) {
		a.log.Warnf("in flight: %d exceeds limit", inFlight)
		a.finish(w, req, reject(http.StatusServiceUnavailable, synapse.StatusServiceUnavailable, synapse.MessageServiceUnavailable, callerHotkey))
		return
	}

	if err := ratelimit.Check(a.limiter); nil != err {
		a.log.Debugf("rate limited: %s from: %s", req.name, req.ip)
		a.finish(w, req, reject(http.StatusTooManyRequests, synapse.StatusTooManyRequests, synapse.MessageTooManyRequests, callerHotkey))
		return
	}

	body, err := ioutil.ReadAll(r.Body)
	if nil != err {
		a.log.Debugf("read body error: %s", err)
		a.finish(w, req, reject(http.StatusBadRequest, synapse.StatusInternalError, err.Error(), callerHotkey))
		return
	}
	req.body = body

	// timeout
	ctx, cancel := context.WithTimeout(r.Context(), a.requestTimeout(r.Header))
	defer cancel()

	result := make(chan *outcome, 1)
	go func() {
		result <- a.process(ctx, req)
	}()

	var o *outcome
	select {
	case o = <-result:
	case <-ctx.Done():
		a.log.Warnf("timeout: %s from: %s", req.name, req.ip)
		o = reject(http.StatusRequestTimeout, synapse.StatusTimeout, synapse.MessageTimeout, callerHotkey)
	}

	if nil != o.stream {
		a.serveStream(ctx, w, req, o)
		return
	}
	a.finish(w, req, o)
}

// authenticate, priority, blacklist, extract, dispatch, respond
func (a *Axon) process(ctx context.Context, req *request) *outcome {
	snap := a.state.snapshot()
	callerHotkey := req.header.Get(synapse.HeaderDendriteHotkey)

	if snap.verifySignatures {
		if nil != snap.verifyFn && !snap.verifyFn(req.name) {
			a.log.Debugf("verify predicate rejected: %s", req.name)
			return reject(http.StatusUnauthorized, synapse.StatusUnauthorized, synapse.MessageUnauthorized, callerHotkey)
		}
		verified, o := a.authenticate(req)
		if nil != o {
			return o
		}
		callerHotkey = verified.hotkey
	}

	priority := float32(0)
	if "" != callerHotkey {
		priority = a.state.priority(callerHotkey, req.name, snap.priorityFn)
	}

	if a.state.isBlacklisted(callerHotkey, req.ip) ||
		("" != callerHotkey && nil != snap.blacklistFn && snap.blacklistFn(callerHotkey, req.name)) {
		a.log.Warnf("blacklisted: hotkey: %q  ip: %q", callerHotkey, req.ip)
		return reject(http.StatusForbidden, synapse.StatusForbidden, synapse.MessageForbidden, callerHotkey)
	}

	// extract
	in, err := synapse.Unmarshal(req.header, req.body)
	if nil != err {
		a.log.Debugf("extract error: %s", err)
		return reject(http.StatusBadRequest, synapse.StatusInternalError, err.Error(), callerHotkey)
	}
	name := in.GetName()
	if nil == in.Name {
		name = req.name
		in.WithName(name)
	}

	// dispatch
	rt, ok := a.registry.lookup(name)
	if !ok {
		a.log.Debugf("no handler for: %q", name)
		return reject(http.StatusNotFound, synapse.StatusNotFound, synapse.MessageNotFound, callerHotkey)
	}

	if nil != rt.stream {
		return &outcome{
			httpStatus: http.StatusOK,
			status:     synapse.StatusSuccess,
			message:    synapse.MessageSuccess,
			hotkey:     callerHotkey,
			stream: &streamCall{
				handler:     rt.stream,
				contentType: rt.contentType,
				request:     in,
				priority:    priority,
			},
		}
	}

	s, err := a.workers.take(ctx, priority)
	if nil != err {
		return reject(http.StatusRequestTimeout, synapse.StatusTimeout, synapse.MessageTimeout, callerHotkey)
	}
	done := make(chan *synapse.Synapse, 1)
	go func() {
		defer s.release()
		done <- a.invoke(ctx, rt.handler, in)
	}()

	var response *synapse.Synapse
	select {
	case response = <-done:
	case <-ctx.Done():
		// a handler ignoring ctx keeps running but not on a slot
		s.release()
		return reject(http.StatusRequestTimeout, synapse.StatusTimeout, synapse.MessageTimeout, callerHotkey)
	}

	// respond
	body, err := response.Body()
	if nil != err {
		a.log.Errorf("serialise response for: %q  error: %s", name, err)
		return reject(http.StatusInternalServerError, synapse.StatusInternalError, synapse.MessageInternalError, callerHotkey)
	}

	status := synapse.StatusSuccess
	message := synapse.MessageSuccess
	if nil != response.Axon && nil != response.Axon.StatusCode {
		status = response.Axon.GetStatusCode()
		message = response.Axon.GetStatusMessage()
		if "" == message {
			message = synapse.StatusText(status)
		}
	}

	return &outcome{
		httpStatus: http.StatusOK,
		status:     status,
		message:    message,
		hotkey:     callerHotkey,
		response:   response,
		body:       body,
	}
}

// a handler returning nil or panicking still yields a response
func (a *Axon) invoke(ctx context.Context, h Handler, in *synapse.Synapse) (response *synapse.Synapse) {
	defer func() {
		if r := recover(); nil != r {
			a.log.Criticalf("handler for: %q  panic: %v", in.GetName(), r)
			response = in.Clone()
			response.Extra = nil
			response.WithAxon(synapse.NewTerminalInfo().WithStatus(synapse.StatusInternalError, synapse.MessageInternalError))
		}
	}()

	response = h.Handle(ctx, in)
	if nil == response {
		response = in
	}
	return response
}

// header extraction and signature verification
func (a *Axon) authenticate(req *request) (*verifiedRequest, *outcome) {
	h := req.header
	uuid := h.Get(synapse.HeaderDendriteUUID)

	fail := func(message string, hotkey string) (*verifiedRequest, *outcome) {
		a.log.Debugf("uuid: %q  hotkey: %q  rejected: %s", uuid, hotkey, message)
		return nil, reject(http.StatusUnauthorized, synapse.StatusUnauthorized, message, hotkey)
	}

	callerHotkey := h.Get(synapse.HeaderDendriteHotkey)
	if "" == callerHotkey {
		return fail(missingHotkeyMessage, "")
	}

	nonceText := h.Get(synapse.HeaderDendriteNonce)
	if "" == nonceText {
		return fail(missingNonceMessage, callerHotkey)
	}
	nonce, err := strconv.ParseUint(nonceText, 10, 64)
	if nil != err {
		return fail(fmt.Sprintf(invalidNonceMessage, nonceText), callerHotkey)
	}

	signatureHex := h.Get(synapse.HeaderDendriteSignature)
	if "" == signatureHex {
		return fail(missingSignatureMessage, callerHotkey)
	}

	bodyHash := signature.BodyHash(req.body)
	err = signature.Verify(a.keys, callerHotkey, nonce, a.hotkey, bodyHash, signatureHex)
	if nil != err {
		message := err.Error()
		if fault.SignatureVerificationFailed == err {
			message = synapse.MessageUnauthorized
		}
		return fail(message, callerHotkey)
	}

	return &verifiedRequest{
		hotkey:    callerHotkey,
		nonce:     nonce,
		signature: signatureHex,
		uuid:      uuid,
		bodyHash:  bodyHash,
	}, nil
}

// declared timeout clamped to the allowed range
func (a *Axon) requestTimeout(h http.Header) time.Duration {
	seconds := a.configuration.defaultTimeout().Seconds()
	if s := h.Get(synapse.HeaderTimeout); "" != s {
		if v, err := strconv.ParseFloat(s, 64); nil == err && !math.IsNaN(v) {
			seconds = v
		}
	}
	return clampTimeout(seconds)
}

func clampTimeout(seconds float64) time.Duration {
	minimum := constants.MinimumTimeout.Seconds()
	maximum := constants.MaximumTimeout.Seconds()
	if seconds < minimum {
		seconds = minimum
	} else if seconds > maximum {
		seconds = maximum
	}
	return time.Duration(seconds * float64(time.Second))
}

// "/Echo" => "Echo"
func routeName(path string) string {
	return strings.Trim(path, "/")
}

// caller address, proxy headers only when trusted
func clientIP(r *http.Request, trustProxyHeaders bool) string {
	if trustProxyHeaders {
		if forwarded := r.Header.Get("X-Forwarded-For"); "" != forwarded {
			return strings.TrimSpace(strings.Split(forwarded, ",")[0])
		}
		if real := r.Header.Get("X-Real-IP"); "" != real {
			return strings.TrimSpace(real)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if nil != err {
		return r.RemoteAddr
	}
	return host
}
