// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package seeds

import (
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/axond/fault"
	"github.com/bitmark-inc/axond/synapse"
)

// Lookuper - interface to lookup DNS record
type Lookuper interface {
	Lookup(string) ([]Record, error)
}

type lookuper struct {
	log *logger.L
	f   func(string) ([]string, error)
}

// NewLookuper - new Lookuper interface
//
// f returns the TXT strings of a domain, e.g. net.LookupTXT or
// Resolver.LookupTXT
func NewLookuper(log *logger.L, f func(string) ([]string, error)) Lookuper {
	return &lookuper{
		log: log,
		f:   f,
	}
}

// Lookup - query DNS TXT records, records that do not decode are skipped
func (l *lookuper) Lookup(domainName string) ([]Record, error) {
	log := l.log
	var result []Record
	if "" == domainName {
		log.Error("invalid seed domain")
		return result, fault.InvalidDomain
	}

	txts, err := l.f(domainName)
	if nil != err {
		log.Errorf("lookup TXT record error: %s", err)
		return result, err
	}

	for i, t := range txts {
		t = strings.TrimSpace(t)
		r, err := Parse(t)
		if nil != err {
			log.Debugf("ignore TXT[%d]: %q  error: %s", i, t, err)
			continue
		}
		log.Infof("result[%d]: IPv4: %q  IPv6: %q  port: %d  hotkey: %s", i, r.IPv4, r.IPv6, r.Port, r.Hotkey)
		result = append(result, *r)
	}

	return result, nil
}

// Targets - every axon advertised under a domain
func Targets(l Lookuper, domainName string) ([]synapse.AxonInfo, error) {
	records, err := l.Lookup(domainName)
	if nil != err {
		return nil, err
	}
	axons := []synapse.AxonInfo{}
	for _, r := range records {
		axons = append(axons, r.AxonInfos()...)
	}
	return axons, nil
}
