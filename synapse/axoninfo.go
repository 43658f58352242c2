// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package synapse

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net"
	"strconv"

	"github.com/bitmark-inc/axond/constants"
	"github.com/bitmark-inc/axond/fault"
)

// AxonInfo - how a callee advertises itself
//
// an empty Hotkey means the callee identity is unknown
type AxonInfo struct {
	Block        uint64 `json:"block"`
	Version      uint32 `json:"version"`
	IP           string `json:"ip"`
	Port         uint16 `json:"port"`
	IPType       uint8  `json:"ip_type"`
	Hotkey       string `json:"hotkey"`
	Coldkey      string `json:"coldkey"`
	Protocol     uint8  `json:"protocol"`
	Placeholder1 uint8  `json:"placeholder1"`
	Placeholder2 uint8  `json:"placeholder2"`
}

// NewAxonInfo - info for an address, the ip type follows the address family
func NewAxonInfo(ip string, port uint16, hotkey string) AxonInfo {
	return AxonInfo{
		Version:  constants.ProtocolVersion,
		IP:       ip,
		Port:     port,
		IPType:   IPType(ip),
		Hotkey:   hotkey,
		Protocol: constants.AxonProtocol,
	}
}

// IPType - 6 for an IPv6 literal, otherwise 4
func IPType(ip string) uint8 {
	parsed := net.ParseIP(ip)
	if nil != parsed && nil == parsed.To4() {
		return constants.IPTypeV6
	}
	return constants.IPTypeV4
}

// IsServing - the advertised address is usable
func (a AxonInfo) IsServing() bool {
	return "" != a.IP && constants.NotServingIP != a.IP
}

// IPString - host and port, IPv6 in brackets
func (a AxonInfo) IPString() string {
	return net.JoinHostPort(a.IP, strconv.FormatUint(uint64(a.Port), 10))
}

// Endpoint - base URL for plain HTTP
func (a AxonInfo) Endpoint() string {
	return a.URL("http")
}

// URL - base URL for the given scheme
func (a AxonInfo) URL(scheme string) string {
	return scheme + "://" + a.IPString()
}

// SigningTarget - hotkey if known, otherwise the address text
func (a AxonInfo) SigningTarget() string {
	if "" != a.Hotkey {
		return a.Hotkey
	}
	return a.IPString()
}

// String - for logging
func (a AxonInfo) String() string {
	return fmt.Sprintf("AxonInfo( %s, %s, %s, %d )", a.IPString(), a.Hotkey, a.Coldkey, a.Version)
}

// JSON - serialised form, empty on failure
func (a AxonInfo) JSON() string {
	data, err := json.Marshal(a)
	if nil != err {
		return ""
	}
	return string(data)
}

// AxonInfoFromJSON - parse the serialised form
func AxonInfoFromJSON(s string) (AxonInfo, error) {
	var a AxonInfo
	if err := json.Unmarshal([]byte(s), &a); nil != err {
		return AxonInfo{}, fault.InvalidJSON
	}
	return a, nil
}

// IPFromInt - text form of an integer address
//
// unknown types give the not serving address
func IPFromInt(value *big.Int, ipType uint8) string {
	b := make([]byte, 16)
	raw := value.Bytes()
	if len(raw) > 16 {
		raw = raw[len(raw)-16:]
	}
	copy(b[16-len(raw):], raw)

	switch ipType {
	case constants.IPTypeV4:
		return net.IPv4(b[12], b[13], b[14], b[15]).String()
	case constants.IPTypeV6:
		return net.IP(b).String()
	default:
		return constants.NotServingIP
	}
}

// IPToInt - integer form of an address
func IPToInt(ip string) (*big.Int, error) {
	parsed := net.ParseIP(ip)
	if nil == parsed {
		return nil, fault.InvalidIPAddress
	}
	if v4 := parsed.To4(); nil != v4 {
		return new(big.Int).SetBytes(v4), nil
	}
	return new(big.Int).SetBytes(parsed.To16()), nil
}
