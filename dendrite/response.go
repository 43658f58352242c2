// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dendrite

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bitmark-inc/axond/synapse"
)

// Response - one completed HTTP exchange
type Response struct {
	Status      int
	Header      http.Header
	Body        []byte
	ProcessTime float64
}

// IsSuccess - 2xx
func (r *Response) IsSuccess() bool {
	return r.Status >= 200 && r.Status < 300
}

// IsTimeout - request or gateway timeout
func (r *Response) IsTimeout() bool {
	return http.StatusRequestTimeout == r.Status || http.StatusGatewayTimeout == r.Status
}

// IsClientError - 4xx
func (r *Response) IsClientError() bool {
	return r.Status >= 400 && r.Status < 500
}

// IsServerError - 5xx
func (r *Response) IsServerError() bool {
	return r.Status >= 500 && r.Status < 600
}

// AxonStatusCode - protocol status sent by the axon
func (r *Response) AxonStatusCode() (int32, bool) {
	n, err := strconv.ParseInt(r.Header.Get(synapse.HeaderAxonStatusCode), 10, 32)
	if nil != err {
		return 0, false
	}
	return int32(n), true
}

// AxonStatusMessage - protocol message sent by the axon
func (r *Response) AxonStatusMessage() (string, bool) {
	values, ok := r.Header[http.CanonicalHeaderKey(synapse.HeaderAxonStatusMessage)]
	if !ok || 0 == len(values) {
		return "", false
	}
	return values[0], true
}

// AxonProcessTime - seconds the axon spent
func (r *Response) AxonProcessTime() (float64, bool) {
	f, err := strconv.ParseFloat(r.Header.Get(synapse.HeaderAxonProcessTime), 64)
	if nil != err {
		return 0, false
	}
	return f, true
}

// Text - the body as a string
func (r *Response) Text() string {
	return string(r.Body)
}

// JSON - decode the body
func (r *Response) JSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// Synapse - rebuild the synapse and stamp the caller side status
//
// a failure answered with a plain text body still yields a synapse,
// with empty fields
func (r *Response) Synapse() (*synapse.Synapse, error) {
	s, err := synapse.Unmarshal(r.Header, r.Body)
	if nil != err {
		if r.IsSuccess() {
			return nil, err
		}
		s, err = synapse.Unmarshal(r.Header, nil)
		if nil != err {
			return nil, err
		}
	}

	if nil == s.Dendrite {
		s.Dendrite = synapse.NewTerminalInfo()
	}
	message := s.Dendrite.GetStatusMessage()
	if "" == message {
		if m, ok := r.AxonStatusMessage(); ok {
			message = m
		} else {
			message = http.StatusText(r.Status)
		}
	}
	s.Dendrite.WithStatus(int32(r.Status), message).WithProcessTime(r.ProcessTime)
	return s, nil
}

// a copy of the request carrying a caller side failure
func errorSynapse(original *synapse.Synapse, code int32, message string, processTime float64) *synapse.Synapse {
	s := original.Clone()
	if nil == s.Dendrite {
		s.Dendrite = synapse.NewTerminalInfo()
	}
	s.Dendrite.WithStatus(code, message).WithProcessTime(processTime)
	return s
}
