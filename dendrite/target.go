// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dendrite

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	ma "github.com/multiformats/go-multiaddr"
	madns "github.com/multiformats/go-multiaddr-dns"

	"github.com/bitmark-inc/axond/constants"
	"github.com/bitmark-inc/axond/fault"
	"github.com/bitmark-inc/axond/hotkey"
	"github.com/bitmark-inc/axond/synapse"
)

const (
	hotkeySeparator = "@"
)

// ParseTarget - axon info from "[hotkey@]ip:port" or "[hotkey@]/ip4/1.2.3.4/tcp/8091"
//
// /dns4, /dns6 and /dnsaddr multiaddrs are resolved and the first
// address is used
func ParseTarget(ctx context.Context, target string) (synapse.AxonInfo, error) {
	target = strings.TrimSpace(target)
	key := ""
	if i := strings.Index(target, hotkeySeparator); i >= 0 {
		key = target[:i]
		target = target[i+1:]
		if !hotkey.IsValid(key) {
			return synapse.AxonInfo{}, fault.InvalidHotkey
		}
	}

	var ip string
	var port uint16
	var err error
	if strings.HasPrefix(target, "/") {
		ip, port, err = parseMultiaddr(ctx, target)
	} else {
		ip, port, err = parseHostPort(target)
	}
	if nil != err {
		return synapse.AxonInfo{}, err
	}

	return synapse.NewAxonInfo(ip, port, key), nil
}

// TargetMultiaddr - multiaddr form of an axon address
func TargetMultiaddr(info synapse.AxonInfo) (ma.Multiaddr, error) {
	version := "ip4"
	if constants.IPTypeV6 == synapse.IPType(info.IP) {
		version = "ip6"
	}
	return ma.NewMultiaddr(fmt.Sprintf("/%s/%s/tcp/%d", version, info.IP, info.Port))
}

// host:port with a literal address and a valid port
func parseHostPort(hostPort string) (string, uint16, error) {
	host, portText, err := net.SplitHostPort(hostPort)
	if nil != err {
		return "", 0, fault.InvalidTarget
	}
	ip := net.ParseIP(strings.TrimSpace(host))
	if nil == ip {
		return "", 0, fault.InvalidIPAddress
	}
	port, err := parsePort(portText)
	if nil != err {
		return "", 0, err
	}
	return ip.String(), port, nil
}

func parseMultiaddr(ctx context.Context, text string) (string, uint16, error) {
	addr, err := ma.NewMultiaddr(text)
	if nil != err {
		return "", 0, fault.InvalidTarget
	}

	if madns.Matches(addr) {
		resolved, err := madns.Resolve(ctx, addr)
		if nil != err {
			return "", 0, err
		}
		if 0 == len(resolved) {
			return "", 0, fault.InvalidTarget
		}
		addr = resolved[0]
	}

	ip, err := addr.ValueForProtocol(ma.P_IP4)
	if nil != err {
		ip, err = addr.ValueForProtocol(ma.P_IP6)
		if nil != err {
			return "", 0, fault.UnsupportedAddressType
		}
	}

	portText, err := addr.ValueForProtocol(ma.P_TCP)
	if nil != err {
		return "", 0, fault.InvalidPort
	}
	port, err := parsePort(portText)
	if nil != err {
		return "", 0, err
	}
	return ip, port, nil
}

func parsePort(text string) (uint16, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if nil != err || n < 1 || n > 65535 {
		return 0, fault.InvalidPort
	}
	return uint16(n), nil
}
