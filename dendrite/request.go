// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dendrite

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bitmark-inc/axond/signature"
	"github.com/bitmark-inc/axond/synapse"
)

// an outbound call ready to send
type request struct {
	url    string
	header http.Header
	body   []byte
}

// caller side terminal info with a fresh nonce and uuid
func (d *Dendrite) terminalInfo() *synapse.TerminalInfo {
	t := synapse.NewTerminalInfo().
		WithVersion(d.version).
		WithNonce(uint64(time.Now().UnixNano())).
		WithUUID(uuid.New().String())
	if "" != d.ip {
		t.WithIP(d.ip)
	}
	if 0 != d.port {
		t.WithPort(d.port)
	}
	if nil != d.signer {
		t.WithHotkey(d.signer.Hotkey())
	}
	return t
}

// headers and body for a synapse, signed against the callee
func (d *Dendrite) buildRequest(info synapse.AxonInfo, s *synapse.Synapse, timeout time.Duration) (*request, error) {
	name := s.RouteName()

	body, err := s.Body()
	if nil != err {
		return nil, err
	}

	seconds := timeout.Seconds()
	out := &synapse.Synapse{
		Name:             &name,
		Timeout:          &seconds,
		TotalSize:        s.TotalSize,
		HeaderSize:       s.HeaderSize,
		ComputedBodyHash: s.ComputedBodyHash,
		Dendrite:         d.terminalInfo(),
	}

	if nil != d.signer {
		bodyHash := signature.BodyHash(body)
		sig, err := signature.Sign(d.signer, out.Dendrite.GetNonce(), info.SigningTarget(), bodyHash)
		if nil != err {
			return nil, err
		}
		out.WithBodyHash(bodyHash)
		out.Dendrite.WithSignature(sig)
	}

	header := out.Headers()
	header.Set("Content-Type", "application/json")

	return &request{
		url:    d.Endpoint(info) + "/" + name,
		header: header,
		body:   body,
	}, nil
}

func (r *request) httpRequest(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequest(http.MethodPost, r.url, bytes.NewReader(r.body))
	if nil != err {
		return nil, err
	}
	req.Header = r.header
	return req.WithContext(ctx), nil
}
