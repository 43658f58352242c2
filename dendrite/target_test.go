// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dendrite_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/axond/constants"
	"github.com/bitmark-inc/axond/dendrite"
	"github.com/bitmark-inc/axond/fault"
	"github.com/bitmark-inc/axond/fixtures"
	"github.com/bitmark-inc/axond/synapse"
)

func TestParseTarget(t *testing.T) {
	key := fixtures.Callee.Hotkey()

	tests := []struct {
		target string
		ip     string
		port   uint16
		hotkey string
		ipType uint8
	}{
		{"127.0.0.1:8091", "127.0.0.1", 8091, "", constants.IPTypeV4},
		{" 10.1.2.3:1 ", "10.1.2.3", 1, "", constants.IPTypeV4},
		{"[::1]:9000", "::1", 9000, "", constants.IPTypeV6},
		{key + "@192.0.2.1:65535", "192.0.2.1", 65535, key, constants.IPTypeV4},
		{"/ip4/10.0.0.1/tcp/8091", "10.0.0.1", 8091, "", constants.IPTypeV4},
		{key + "@/ip6/::1/tcp/80", "::1", 80, key, constants.IPTypeV6},
	}

	for i, item := range tests {
		info, err := dendrite.ParseTarget(context.Background(), item.target)
		assert.Nil(t, err, "%d: wrong error", i)
		assert.Equal(t, item.ip, info.IP, "%d: wrong ip", i)
		assert.Equal(t, item.port, info.Port, "%d: wrong port", i)
		assert.Equal(t, item.hotkey, info.Hotkey, "%d: wrong hotkey", i)
		assert.Equal(t, item.ipType, info.IPType, "%d: wrong ip type", i)
	}
}

func TestParseTargetInvalid(t *testing.T) {
	tests := []struct {
		target string
		err    error
	}{
		{"nohost", fault.InvalidTarget},
		{"example.com:8091", fault.InvalidIPAddress},
		{"127.0.0.1:0", fault.InvalidPort},
		{"127.0.0.1:70000", fault.InvalidPort},
		{"127.0.0.1:http", fault.InvalidPort},
		{"bad@127.0.0.1:8091", fault.InvalidHotkey},
		{"/ip4/10.0.0.1/udp/8091", fault.InvalidPort},
		{"/ip4/10.0.0.1/tcp/0", fault.InvalidPort},
		{"/ip4/not-an-ip/tcp/1", fault.InvalidTarget},
	}

	for i, item := range tests {
		_, err := dendrite.ParseTarget(context.Background(), item.target)
		assert.Equal(t, item.err, err, "%d: wrong error for: %q", i, item.target)
	}
}

func TestTargetMultiaddr(t *testing.T) {
	addr, err := dendrite.TargetMultiaddr(synapse.NewAxonInfo("10.0.0.1", 8091, ""))
	assert.Nil(t, err, "wrong ip4 error")
	assert.Equal(t, "/ip4/10.0.0.1/tcp/8091", addr.String(), "wrong ip4 multiaddr")

	addr, err = dendrite.TargetMultiaddr(synapse.NewAxonInfo("::1", 80, ""))
	assert.Nil(t, err, "wrong ip6 error")
	assert.Equal(t, "/ip6/::1/tcp/80", addr.String(), "wrong ip6 multiaddr")

	info, err := dendrite.ParseTarget(context.Background(), addr.String())
	assert.Nil(t, err, "wrong parse error")
	assert.Equal(t, "::1", info.IP, "round trip lost address")
}

func TestResponseClassification(t *testing.T) {
	tests := []struct {
		status      int
		success     bool
		timeout     bool
		clientError bool
		serverError bool
	}{
		{200, true, false, false, false},
		{204, true, false, false, false},
		{401, false, false, true, false},
		{408, false, true, true, false},
		{503, false, false, false, true},
		{504, false, true, false, true},
	}

	for i, item := range tests {
		r := &dendrite.Response{Status: item.status}
		assert.Equal(t, item.success, r.IsSuccess(), "%d: wrong success", i)
		assert.Equal(t, item.timeout, r.IsTimeout(), "%d: wrong timeout", i)
		assert.Equal(t, item.clientError, r.IsClientError(), "%d: wrong client error", i)
		assert.Equal(t, item.serverError, r.IsServerError(), "%d: wrong server error", i)
	}
}

func TestResponseAxonHeaders(t *testing.T) {
	header := make(http.Header)
	header.Set(synapse.HeaderAxonStatusCode, "403")
	header.Set(synapse.HeaderAxonStatusMessage, "Blacklisted")
	header.Set(synapse.HeaderAxonProcessTime, "0.012500")

	r := &dendrite.Response{
		Status:      403,
		Header:      header,
		Body:        []byte("Blacklisted"),
		ProcessTime: 0.02,
	}

	code, ok := r.AxonStatusCode()
	assert.True(t, ok, "missing axon status")
	assert.Equal(t, int32(403), code, "wrong axon status")

	message, ok := r.AxonStatusMessage()
	assert.True(t, ok, "missing axon message")
	assert.Equal(t, "Blacklisted", message, "wrong axon message")

	seconds, ok := r.AxonProcessTime()
	assert.True(t, ok, "missing axon process time")
	assert.Equal(t, 0.0125, seconds, "wrong axon process time")

	assert.Equal(t, "Blacklisted", r.Text(), "wrong text")

	s, err := r.Synapse()
	assert.Nil(t, err, "plain text failure body rejected")
	assert.Equal(t, 0, len(s.Extra), "wrong fields")
	assert.Equal(t, int32(403), s.Dendrite.GetStatusCode(), "wrong dendrite status")
	assert.Equal(t, "Blacklisted", s.Dendrite.GetStatusMessage(), "wrong dendrite message")
	assert.Equal(t, 0.02, s.Dendrite.GetProcessTime(), "wrong dendrite process time")
}

func TestResponseSuccessBody(t *testing.T) {
	r := &dendrite.Response{
		Status: 200,
		Header: make(http.Header),
		Body:   []byte(`{"answer":42}`),
	}

	var v struct {
		Answer int `json:"answer"`
	}
	assert.Nil(t, r.JSON(&v), "wrong json error")
	assert.Equal(t, 42, v.Answer, "wrong json value")

	s, err := r.Synapse()
	assert.Nil(t, err, "wrong synapse error")
	assert.Equal(t, float64(42), s.Extra["answer"], "wrong field")
	assert.Equal(t, "OK", s.Dendrite.GetStatusMessage(), "wrong default message")

	bad := &dendrite.Response{Status: 200, Header: make(http.Header), Body: []byte("not json")}
	_, err = bad.Synapse()
	assert.Equal(t, fault.InvalidJSON, err, "wrong error for bad body")
}
