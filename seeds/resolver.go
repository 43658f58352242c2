// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package seeds

import (
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/bitmark-inc/axond/fault"
)

const (
	configFile     = "/etc/resolv.conf"
	maximumServers = 3
	defaultTimeout = 5 * time.Second
)

// Resolver - TXT queries sent directly to a list of name servers
type Resolver struct {
	Servers []string // host:port
	Timeout time.Duration
}

// SystemResolver - name servers from the system configuration
func SystemResolver() (*Resolver, error) {
	conf, err := dns.ClientConfigFromFile(configFile)
	if nil != err {
		return nil, err
	}

	servers := conf.Servers
	// limit the nameservers to lookup
	// https://www.freebsd.org/cgi/man.cgi?resolv.conf
	if len(servers) > maximumServers {
		servers = servers[:maximumServers]
	}

	r := &Resolver{
		Timeout: time.Duration(conf.Timeout) * time.Second,
	}
	for _, s := range servers {
		r.Servers = append(r.Servers, net.JoinHostPort(s, conf.Port))
	}
	return r, nil
}

// LookupTXT - TXT strings of a domain from the first server that answers
//
// the character strings of one record are joined together
func (r *Resolver) LookupTXT(domainName string) ([]string, error) {
	if 0 == len(r.Servers) {
		return nil, fault.MissingParameters
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := dns.Client{
		Timeout: timeout,
	}
	msg := dns.Msg{}
	msg.SetQuestion(dns.Fqdn(domainName), dns.TypeTXT)

	var lastErr error = fault.InvalidDomain
servers:
	for _, server := range r.Servers {
		in, _, err := c.Exchange(&msg, server)
		if nil != err {
			lastErr = err
			continue servers
		}
		if dns.RcodeSuccess != in.Rcode {
			lastErr = fault.InvalidDomain
			continue servers
		}

		txts := []string{}
		for _, rr := range in.Answer {
			if t, ok := rr.(*dns.TXT); ok {
				txts = append(txts, strings.Join(t.Txt, ""))
			}
		}
		return txts, nil
	}
	return nil, lastErr
}
