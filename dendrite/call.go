// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dendrite

import (
	"context"
	"errors"
	"io/ioutil"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bitmark-inc/axond/dendrite/stream"
	"github.com/bitmark-inc/axond/fault"
	"github.com/bitmark-inc/axond/synapse"
)

const (
	connectionFailedPrefix = "Connection failed: "
)

// Result - outcome for one callee of a fan-out
type Result struct {
	Synapse *synapse.Synapse
	Err     error
}

// Call - send a synapse with the default timeout
func (d *Dendrite) Call(ctx context.Context, info synapse.AxonInfo, s *synapse.Synapse) (*synapse.Synapse, error) {
	return d.CallWithTimeout(ctx, info, s, d.timeout)
}

// CallWithTimeout - send a synapse and rebuild the reply
//
// a timeout gives a synapse with status 408 and a refused connection
// one with 503; other transport failures are errors
func (d *Dendrite) CallWithTimeout(ctx context.Context, info synapse.AxonInfo, s *synapse.Synapse, timeout time.Duration) (*synapse.Synapse, error) {
	if !info.IsServing() {
		return nil, fault.InvalidAxon
	}
	if timeout <= 0 {
		timeout = d.timeout
	}

	start := time.Now()

	if err := d.throttle(ctx); nil != err {
		return nil, err
	}

	req, err := d.buildRequest(info, s, timeout)
	if nil != err {
		d.log.Errorf("build request for: %s  error: %s", info, err)
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpRequest, err := req.httpRequest(callCtx)
	if nil != err {
		return nil, err
	}

	resp, err := d.client.Do(httpRequest)
	if nil != err {
		return d.failure(ctx, s, req.url, err, start)
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if nil != err {
		return d.failure(ctx, s, req.url, err, start)
	}

	r := &Response{
		Status:      resp.StatusCode,
		Header:      resp.Header,
		Body:        body,
		ProcessTime: time.Since(start).Seconds(),
	}
	d.log.Debugf("url: %s  status: %d  time: %f", req.url, r.Status, r.ProcessTime)
	return r.Synapse()
}

// CallMany - Forward with the default timeout
func (d *Dendrite) CallMany(ctx context.Context, axons []synapse.AxonInfo, s *synapse.Synapse) []Result {
	return d.Forward(ctx, axons, s, 0)
}

// Forward - call every axon at once, results in input order
//
// each callee gets its own copy of the synapse
func (d *Dendrite) Forward(ctx context.Context, axons []synapse.AxonInfo, s *synapse.Synapse, timeout time.Duration) []Result {
	results := make([]Result, len(axons))

	var wg sync.WaitGroup
	for i, info := range axons {
		wg.Add(1)
		go func(i int, info synapse.AxonInfo, request *synapse.Synapse) {
			defer wg.Done()
			out, err := d.CallWithTimeout(ctx, info, request, timeout)
			results[i] = Result{
				Synapse: out,
				Err:     err,
			}
		}(i, info, s.Clone())
	}
	wg.Wait()

	return results
}

// CallStream - CallStreamWithTimeout with the default timeout
func (d *Dendrite) CallStream(ctx context.Context, info synapse.AxonInfo, s *synapse.Synapse, processor stream.Processor) (*stream.Stream, error) {
	return d.CallStreamWithTimeout(ctx, info, s, processor, d.timeout)
}

// CallStreamWithTimeout - send a synapse and read the reply as chunks
//
// the timeout bounds the whole stream; the caller must Close it
func (d *Dendrite) CallStreamWithTimeout(ctx context.Context, info synapse.AxonInfo, s *synapse.Synapse, processor stream.Processor, timeout time.Duration) (*stream.Stream, error) {
	if !info.IsServing() {
		return nil, fault.InvalidAxon
	}
	if timeout <= 0 {
		timeout = d.timeout
	}

	if err := d.throttle(ctx); nil != err {
		return nil, err
	}

	req, err := d.buildRequest(info, s, timeout)
	if nil != err {
		return nil, err
	}

	streamCtx, cancel := context.WithTimeout(ctx, timeout)

	httpRequest, err := req.httpRequest(streamCtx)
	if nil != err {
		cancel()
		return nil, err
	}

	resp, err := d.client.Do(httpRequest)
	if nil != err {
		kind := stream.Network
		switch streamCtx.Err() {
		case context.DeadlineExceeded:
			kind = stream.Timeout
		case context.Canceled:
			kind = stream.Cancelled
		}
		cancel()
		return nil, &stream.Error{Kind: kind, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		cancel()
		return nil, &stream.HTTPError{Status: resp.StatusCode}
	}

	return stream.New(streamCtx, cancel, resp.Body, resp.Header, processor), nil
}

// Health - status of the axon health route
func (d *Dendrite) Health(ctx context.Context, info synapse.AxonInfo) (int, error) {
	if !info.IsServing() {
		return 0, fault.InvalidAxon
	}

	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	url := d.Endpoint(info) + "/health"
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if nil != err {
		return 0, err
	}

	resp, err := d.client.Do(req.WithContext(callCtx))
	if nil != err {
		return 0, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	_, _ = ioutil.ReadAll(resp.Body)

	return resp.StatusCode, nil
}

// turn a transport failure into an error synapse where the protocol
// expects one
func (d *Dendrite) failure(ctx context.Context, original *synapse.Synapse, url string, err error, start time.Time) (*synapse.Synapse, error) {
	processTime := time.Since(start).Seconds()

	if context.Canceled == ctx.Err() {
		return nil, &TransportError{URL: url, Err: err}
	}

	if isTimeout(err) {
		d.log.Debugf("url: %s  timeout after: %f", url, processTime)
		return errorSynapse(original, synapse.StatusTimeout, synapse.MessageTimeout, processTime), nil
	}

	if isConnectFailure(err) {
		d.log.Debugf("url: %s  connection failed: %s", url, err)
		return errorSynapse(original, synapse.StatusServiceUnavailable, connectionFailedPrefix+err.Error(), processTime), nil
	}

	d.log.Warnf("url: %s  error: %s", url, err)
	return nil, &TransportError{URL: url, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isConnectFailure(err error) bool {
	var op *net.OpError
	return errors.As(err, &op) && "dial" == op.Op
}
