// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package axon_test

import (
	"bytes"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/axond/axon"
	"github.com/bitmark-inc/axond/fixtures"
	"github.com/bitmark-inc/axond/hotkey"
	"github.com/bitmark-inc/axond/signature"
	"github.com/bitmark-inc/axond/synapse"
)

const (
	remoteAddr = "192.0.2.10:40000"
)

func newTestAxon(t *testing.T, configuration axon.Configuration, persister axon.Persister) *axon.Axon {
	a, err := axon.New(logger.New(fixtures.LogCategory), configuration, fixtures.Callee, nil, persister)
	assert.Nil(t, err, "wrong New error")
	return a
}

// a request signed by signer but claiming to come from caller
func forgedRequest(t *testing.T, signer *hotkey.Keypair, caller string, name string, body []byte) *http.Request {
	nonce := uint64(time.Now().UnixNano())
	message := signature.Message(nonce, caller, fixtures.Callee.Hotkey(), signature.BodyHash(body))
	sig, err := signer.Sign([]byte(message))
	assert.Nil(t, err, "wrong sign error")

	r := unsignedRequest(name, body)
	r.Header.Set(synapse.HeaderDendriteHotkey, caller)
	r.Header.Set(synapse.HeaderDendriteNonce, strconv.FormatUint(nonce, 10))
	r.Header.Set(synapse.HeaderDendriteSignature, hex.EncodeToString(sig))
	return r
}

func signedRequest(t *testing.T, caller *hotkey.Keypair, name string, body []byte) *http.Request {
	return forgedRequest(t, caller, caller.Hotkey(), name, body)
}

func unsignedRequest(name string, body []byte) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/"+name, bytes.NewReader(body))
	r.RemoteAddr = remoteAddr
	r.Header.Set(synapse.HeaderName, name)
	return r
}

func serve(a *axon.Axon, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.ServeHTTP(w, r)
	return w
}

func axonStatus(w *httptest.ResponseRecorder) (string, string) {
	return w.Header().Get(synapse.HeaderAxonStatusCode), w.Header().Get(synapse.HeaderAxonStatusMessage)
}
