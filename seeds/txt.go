// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package seeds

import (
	"net"
	"strconv"
	"strings"

	"github.com/bitmark-inc/axond/fault"
	"github.com/bitmark-inc/axond/hotkey"
	"github.com/bitmark-inc/axond/synapse"
)

// the tag to detect applicable TXT records
var supportedTags = map[string]struct{}{
	"axon=v1": {},
}

// Record - one decoded TXT record
type Record struct {
	IPv4   net.IP
	IPv6   net.IP
	Port   uint16
	Hotkey string
}

// Parse - decode a DNS TXT record of the form
//
//   axon=v1 a=<IPv4;IPv6> p=<PORT> k=<HOTKEY>
//
// each item must appear exactly once; any other item is an error
func Parse(s string) (*Record, error) {

	r := &Record{}

	countA := 0
	countK := 0
	countP := 0

words:
	for i, w := range strings.Split(strings.TrimSpace(s), " ") {

		if 0 == i {
			if _, ok := supportedTags[w]; ok {
				continue words
			}
			return nil, fault.InvalidDnsTxtRecord
		}

		// ignore empty
		if "" == w {
			continue words
		}

		// require form: <letter>=<word>
		if len(w) < 3 || '=' != w[1] {
			return nil, fault.InvalidDnsTxtRecord
		}

		parameter := w[2:]
		err := error(nil)
		switch w[0] {
		case 'a':
		addresses:
			for _, address := range strings.Split(parameter, ";") {
				if len(address) > 2 && '[' == address[0] && ']' == address[len(address)-1] {
					address = address[1 : len(address)-1]
				}
				ip := net.ParseIP(address)
				if nil == ip {
					err = fault.InvalidIPAddress
					break addresses
				}
				if nil != ip.To4() {
					r.IPv4 = ip
				} else {
					r.IPv6 = ip
				}
			}
			countA += 1

		case 'p':
			r.Port, err = getPort(parameter)
			countP += 1

		case 'k':
			if !hotkey.IsValid(parameter) {
				err = fault.InvalidHotkey
			} else {
				r.Hotkey = parameter
			}
			countK += 1

		default:
			err = fault.InvalidDnsTxtRecord
		}
		if nil != err {
			return nil, err
		}
	}

	// ensure that there is only one each of the required items
	if countA != 1 || countK != 1 || countP != 1 {
		return nil, fault.InvalidDnsTxtRecord
	}

	return r, nil
}

// AxonInfos - one axon per advertised address, IPv4 first
func (r Record) AxonInfos() []synapse.AxonInfo {
	axons := make([]synapse.AxonInfo, 0, 2)
	if nil != r.IPv4 {
		axons = append(axons, synapse.NewAxonInfo(r.IPv4.String(), r.Port, r.Hotkey))
	}
	if nil != r.IPv6 {
		axons = append(axons, synapse.NewAxonInfo(r.IPv6.String(), r.Port, r.Hotkey))
	}
	return axons
}

func getPort(s string) (uint16, error) {

	port, err := strconv.Atoi(s)
	if nil != err {
		return 0, fault.InvalidPort
	}
	if port < 1 || port > 65535 {
		return 0, fault.InvalidPort
	}
	return uint16(port), nil
}
