// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package seeds_test

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/axond/fault"
	"github.com/bitmark-inc/axond/fixtures"
	"github.com/bitmark-inc/axond/seeds"
)

const seedDomain = "axons.example.org"

func TestParse(t *testing.T) {
	key := fixtures.Callee.Hotkey()

	type testItem struct {
		txt  string
		ipv4 string
		ipv6 string
		port uint16
		err  error
	}

	testData := []testItem{
		{"axon=v1 a=192.0.2.7;2001:db8::7 p=8091 k=" + key, "192.0.2.7", "2001:db8::7", 8091, nil},
		{"axon=v1 a=[2001:db8::7] p=9000 k=" + key, "", "2001:db8::7", 9000, nil},
		{"axon=v1  p=1  a=10.0.0.1  k=" + key, "10.0.0.1", "", 1, nil},

		{"bitmark=v3 a=10.0.0.1 p=1 k=" + key, "", "", 0, fault.InvalidDnsTxtRecord},
		{"axon=v1 a=", "", "", 0, fault.InvalidDnsTxtRecord},
		{"axon=v1 a=10.0.0.1 p=1", "", "", 0, fault.InvalidDnsTxtRecord},
		{"axon=v1 a=10.0.0.1 a=10.0.0.2 p=1 k=" + key, "", "", 0, fault.InvalidDnsTxtRecord},
		{"axon=v1 a=10.0.0.1 p=1 k=" + key + " x=1", "", "", 0, fault.InvalidDnsTxtRecord},
		{"axon=v1 a=10.0.0.256 p=1 k=" + key, "", "", 0, fault.InvalidIPAddress},
		{"axon=v1 a=10.0.0.1 p=0 k=" + key, "", "", 0, fault.InvalidPort},
		{"axon=v1 a=10.0.0.1 p=65536 k=" + key, "", "", 0, fault.InvalidPort},
		{"axon=v1 a=10.0.0.1 p=1 k=notahotkey", "", "", 0, fault.InvalidHotkey},
	}

	for i, item := range testData {
		r, err := seeds.Parse(item.txt)
		if nil != item.err {
			assert.Equal(t, item.err, err, "%d: wrong error", i)
			assert.Nil(t, r, "%d: unexpected record", i)
			continue
		}
		require.Nil(t, err, "%d: wrong error", i)
		assert.Equal(t, item.port, r.Port, "%d: wrong port", i)
		assert.Equal(t, key, r.Hotkey, "%d: wrong hotkey", i)
		if "" == item.ipv4 {
			assert.Nil(t, r.IPv4, "%d: unexpected IPv4", i)
		} else {
			assert.Equal(t, item.ipv4, r.IPv4.String(), "%d: wrong IPv4", i)
		}
		if "" == item.ipv6 {
			assert.Nil(t, r.IPv6, "%d: unexpected IPv6", i)
		} else {
			assert.Equal(t, item.ipv6, r.IPv6.String(), "%d: wrong IPv6", i)
		}
	}
}

func TestAxonInfos(t *testing.T) {
	r, err := seeds.Parse("axon=v1 a=2001:db8::7;192.0.2.7 p=8091 k=" + fixtures.Callee.Hotkey())
	require.Nil(t, err, "parse")

	axons := r.AxonInfos()
	require.Equal(t, 2, len(axons), "wrong count")
	assert.Equal(t, "192.0.2.7:8091", axons[0].IPString(), "wrong first address")
	assert.Equal(t, uint8(4), axons[0].IPType, "wrong first type")
	assert.Equal(t, "[2001:db8::7]:8091", axons[1].IPString(), "wrong second address")
	assert.Equal(t, uint8(6), axons[1].IPType, "wrong second type")
	assert.Equal(t, fixtures.Callee.Hotkey(), axons[1].Hotkey, "wrong hotkey")
}

func TestLookup(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	f := func(name string) ([]string, error) {
		assert.Equal(t, seedDomain, name, "wrong domain")
		return []string{
			"axon=v1 a=192.0.2.7 p=8091 k=" + fixtures.Callee.Hotkey(),
			"unrelated record",
			" axon=v1 a=192.0.2.8;2001:db8::8 p=8092 k=" + fixtures.Other.Hotkey() + " ",
		}, nil
	}
	l := seeds.NewLookuper(logger.New(fixtures.LogCategory), f)

	records, err := l.Lookup(seedDomain)
	require.Nil(t, err, "wrong error")
	require.Equal(t, 2, len(records), "wrong record count")
	assert.Equal(t, uint16(8091), records[0].Port, "wrong first port")
	assert.Equal(t, fixtures.Other.Hotkey(), records[1].Hotkey, "wrong second hotkey")

	axons, err := seeds.Targets(l, seedDomain)
	require.Nil(t, err, "wrong targets error")
	assert.Equal(t, 3, len(axons), "wrong axon count")
}

func TestLookupErrors(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	failed := errors.New("no such host")
	l := seeds.NewLookuper(logger.New(fixtures.LogCategory), func(string) ([]string, error) {
		return nil, failed
	})

	_, err := l.Lookup("")
	assert.Equal(t, fault.InvalidDomain, err, "wrong empty domain error")

	_, err = l.Lookup(seedDomain)
	assert.Equal(t, failed, err, "wrong lookup error")

	_, err = seeds.Targets(l, seedDomain)
	assert.Equal(t, failed, err, "wrong targets error")
}

// a name server on a loopback UDP port
func startNameServer(t *testing.T, records map[string][]string) (string, func()) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.Nil(t, err, "listen")

	handler := func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(r)
		q := r.Question[0]
		txts, ok := records[q.Name]
		if !ok || dns.TypeTXT != q.Qtype {
			m.SetRcode(r, dns.RcodeNameError)
		}
		for _, txt := range txts {
			m.Answer = append(m.Answer, &dns.TXT{
				Hdr: dns.RR_Header{
					Name:   q.Name,
					Rrtype: dns.TypeTXT,
					Class:  dns.ClassINET,
					Ttl:    60,
				},
				Txt: []string{txt[:10], txt[10:]},
			})
		}
		_ = w.WriteMsg(m)
	}

	started := make(chan struct{})
	server := &dns.Server{
		PacketConn:        pc,
		Handler:           dns.HandlerFunc(handler),
		NotifyStartedFunc: func() { close(started) },
	}
	go func() {
		_ = server.ActivateAndServe()
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("name server did not start")
	}

	return pc.LocalAddr().String(), func() { _ = server.Shutdown() }
}

func TestResolver(t *testing.T) {
	txt := "axon=v1 a=192.0.2.7 p=8091 k=" + fixtures.Callee.Hotkey()
	address, stop := startNameServer(t, map[string][]string{
		seedDomain + ".": {txt},
	})
	defer stop()

	r := &seeds.Resolver{
		Servers: []string{address},
		Timeout: 2 * time.Second,
	}

	txts, err := r.LookupTXT(seedDomain)
	require.Nil(t, err, "wrong error")
	assert.Equal(t, []string{txt}, txts, "wrong TXT records")

	_, err = r.LookupTXT("missing.example.org")
	assert.Equal(t, fault.InvalidDomain, err, "wrong missing domain error")

	_, err = (&seeds.Resolver{}).LookupTXT(seedDomain)
	assert.Equal(t, fault.MissingParameters, err, "wrong no server error")
}

func TestResolverWithLookuper(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	address, stop := startNameServer(t, map[string][]string{
		seedDomain + ".": {
			"axon=v1 a=192.0.2.7 p=8091 k=" + fixtures.Callee.Hotkey(),
			"axon=v1 a=192.0.2.9 p=8093 k=" + fixtures.Other.Hotkey(),
		},
	})
	defer stop()

	r := &seeds.Resolver{Servers: []string{address}}
	axons, err := seeds.Targets(seeds.NewLookuper(logger.New(fixtures.LogCategory), r.LookupTXT), seedDomain)
	require.Nil(t, err, "wrong error")
	require.Equal(t, 2, len(axons), "wrong count")
	assert.Equal(t, "192.0.2.9:8093", axons[1].IPString(), "wrong second axon")
}
