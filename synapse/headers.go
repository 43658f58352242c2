// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package synapse

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bitmark-inc/axond/fault"
)

// header names shared with independently implemented peers
const (
	HeaderName       = "name"
	HeaderTimeout    = "bt_header_timeout"
	HeaderTotalSize  = "total_size"
	HeaderHeaderSize = "header_size"
	HeaderBodyHash   = "computed_body_hash"

	HeaderDendriteIP            = "bt_header_dendrite_ip"
	HeaderDendritePort          = "bt_header_dendrite_port"
	HeaderDendriteVersion       = "bt_header_dendrite_version"
	HeaderDendriteNonce         = "bt_header_dendrite_nonce"
	HeaderDendriteUUID          = "bt_header_dendrite_uuid"
	HeaderDendriteHotkey        = "bt_header_dendrite_hotkey"
	HeaderDendriteSignature     = "bt_header_dendrite_signature"
	HeaderDendriteStatusCode    = "bt_header_dendrite_status_code"
	HeaderDendriteStatusMessage = "bt_header_dendrite_status_message"
	HeaderDendriteProcessTime   = "bt_header_dendrite_process_time"

	HeaderAxonIP            = "bt_header_axon_ip"
	HeaderAxonPort          = "bt_header_axon_port"
	HeaderAxonVersion       = "bt_header_axon_version"
	HeaderAxonNonce         = "bt_header_axon_nonce"
	HeaderAxonUUID          = "bt_header_axon_uuid"
	HeaderAxonHotkey        = "bt_header_axon_hotkey"
	HeaderAxonSignature     = "bt_header_axon_signature"
	HeaderAxonStatusCode    = "bt_header_axon_status_code"
	HeaderAxonStatusMessage = "bt_header_axon_status_message"
	HeaderAxonProcessTime   = "bt_header_axon_process_time"

	HeaderInputObject  = "bt_header_input_obj"
	HeaderOutputObject = "bt_header_output_obj"
)

// the names used by one side of the exchange
type terminalHeaders struct {
	ip            string
	port          string
	version       string
	nonce         string
	uuid          string
	hotkey        string
	signature     string
	statusCode    string
	statusMessage string
	processTime   string
}

var dendriteHeaders = terminalHeaders{
	ip:            HeaderDendriteIP,
	port:          HeaderDendritePort,
	version:       HeaderDendriteVersion,
	nonce:         HeaderDendriteNonce,
	uuid:          HeaderDendriteUUID,
	hotkey:        HeaderDendriteHotkey,
	signature:     HeaderDendriteSignature,
	statusCode:    HeaderDendriteStatusCode,
	statusMessage: HeaderDendriteStatusMessage,
	processTime:   HeaderDendriteProcessTime,
}

var axonHeaders = terminalHeaders{
	ip:            HeaderAxonIP,
	port:          HeaderAxonPort,
	version:       HeaderAxonVersion,
	nonce:         HeaderAxonNonce,
	uuid:          HeaderAxonUUID,
	hotkey:        HeaderAxonHotkey,
	signature:     HeaderAxonSignature,
	statusCode:    HeaderAxonStatusCode,
	statusMessage: HeaderAxonStatusMessage,
	processTime:   HeaderAxonProcessTime,
}

// FormatProcessTime - six decimal places
func FormatProcessTime(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 6, 64)
}

// FormatTimeout - shortest text that parses back to the same value
func FormatTimeout(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

// Body - JSON of the application fields
func (s *Synapse) Body() ([]byte, error) {
	if nil == s.Extra {
		return []byte("{}"), nil
	}
	return json.Marshal(s.Extra)
}

// Headers - every present field as a header
func (s *Synapse) Headers() http.Header {
	h := make(http.Header)
	s.WriteHeaders(h)
	return h
}

// WriteHeaders - set every present field into an existing header map
func (s *Synapse) WriteHeaders(h http.Header) {
	setString(h, HeaderName, s.Name)
	if nil != s.Timeout {
		h.Set(HeaderTimeout, FormatTimeout(*s.Timeout))
	}
	setUint64(h, HeaderTotalSize, s.TotalSize)
	setUint64(h, HeaderHeaderSize, s.HeaderSize)
	setString(h, HeaderBodyHash, s.ComputedBodyHash)

	writeTerminal(h, dendriteHeaders, s.Dendrite)
	writeTerminal(h, axonHeaders, s.Axon)
}

// Marshal - headers and body for the wire
func (s *Synapse) Marshal() (http.Header, []byte, error) {
	body, err := s.Body()
	if nil != err {
		return nil, nil, err
	}
	return s.Headers(), body, nil
}

// Unmarshal - rebuild a synapse from headers and body
//
// unknown or unparseable headers are ignored; an empty body gives
// empty application fields and a body that is not a JSON object is
// an error
func Unmarshal(h http.Header, body []byte) (*Synapse, error) {
	extra, err := DecodeBody(body)
	if nil != err {
		return nil, err
	}

	s := &Synapse{
		Name:             getString(h, HeaderName),
		Timeout:          getFloat64(h, HeaderTimeout),
		TotalSize:        getUint64(h, HeaderTotalSize),
		HeaderSize:       getUint64(h, HeaderHeaderSize),
		ComputedBodyHash: getString(h, HeaderBodyHash),
		Dendrite:         readTerminal(h, dendriteHeaders),
		Axon:             readTerminal(h, axonHeaders),
		Extra:            extra,
	}
	return s, nil
}

// DecodeBody - parse a body into application fields
func DecodeBody(body []byte) (map[string]interface{}, error) {
	extra := make(map[string]interface{})
	if 0 == len(body) {
		return extra, nil
	}
	if err := json.Unmarshal(body, &extra); nil != err {
		return nil, fault.InvalidJSON
	}
	if nil == extra {
		extra = make(map[string]interface{})
	}
	return extra, nil
}

func writeTerminal(h http.Header, names terminalHeaders, t *TerminalInfo) {
	if nil == t {
		return
	}
	setString(h, names.ip, t.IP)
	if nil != t.Port {
		h.Set(names.port, strconv.FormatUint(uint64(*t.Port), 10))
	}
	setUint64(h, names.version, t.Version)
	setUint64(h, names.nonce, t.Nonce)
	setString(h, names.uuid, t.UUID)
	setString(h, names.hotkey, t.Hotkey)
	setString(h, names.signature, t.Signature)
	if nil != t.StatusCode {
		h.Set(names.statusCode, strconv.FormatInt(int64(*t.StatusCode), 10))
	}
	setString(h, names.statusMessage, t.StatusMessage)
	if nil != t.ProcessTime {
		h.Set(names.processTime, FormatProcessTime(*t.ProcessTime))
	}
}

func readTerminal(h http.Header, names terminalHeaders) *TerminalInfo {
	t := &TerminalInfo{
		StatusMessage: getString(h, names.statusMessage),
		ProcessTime:   getFloat64(h, names.processTime),
		IP:            getString(h, names.ip),
		Version:       getUint64(h, names.version),
		Nonce:         getUint64(h, names.nonce),
		UUID:          getString(h, names.uuid),
		Hotkey:        getString(h, names.hotkey),
		Signature:     getString(h, names.signature),
	}
	if v := h.Get(names.statusCode); "" != v {
		if n, err := strconv.ParseInt(v, 10, 32); nil == err {
			code := int32(n)
			t.StatusCode = &code
		}
	}
	if v := h.Get(names.port); "" != v {
		if n, err := strconv.ParseUint(v, 10, 16); nil == err {
			port := uint16(n)
			t.Port = &port
		}
	}
	return t
}

// absent and empty values produce no header
func setString(h http.Header, name string, value *string) {
	if nil != value && "" != *value {
		h.Set(name, *value)
	}
}

func setUint64(h http.Header, name string, value *uint64) {
	if nil != value {
		h.Set(name, strconv.FormatUint(*value, 10))
	}
}

func getString(h http.Header, name string) *string {
	v := h.Get(name)
	if "" == v {
		return nil
	}
	return &v
}

func getUint64(h http.Header, name string) *uint64 {
	v := h.Get(name)
	if "" == v {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if nil != err {
		return nil
	}
	return &n
}

func getFloat64(h http.Header, name string) *float64 {
	v := h.Get(name)
	if "" == v {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if nil != err {
		return nil
	}
	return &f
}
