// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package synapse

// TerminalInfo - metadata for one side of an exchange
//
// nil fields are absent and never reach the wire
type TerminalInfo struct {
	StatusCode    *int32   `json:"status_code,omitempty"`
	StatusMessage *string  `json:"status_message,omitempty"`
	ProcessTime   *float64 `json:"process_time,omitempty"`
	IP            *string  `json:"ip,omitempty"`
	Port          *uint16  `json:"port,omitempty"`
	Version       *uint64  `json:"version,omitempty"`
	Nonce         *uint64  `json:"nonce,omitempty"`
	UUID          *string  `json:"uuid,omitempty"`
	Hotkey        *string  `json:"hotkey,omitempty"`
	Signature     *string  `json:"signature,omitempty"`
}

// NewTerminalInfo - empty terminal info
func NewTerminalInfo() *TerminalInfo {
	return &TerminalInfo{}
}

// WithStatus - set status code and message
func (t *TerminalInfo) WithStatus(code int32, message string) *TerminalInfo {
	t.StatusCode = &code
	t.StatusMessage = &message
	return t
}

// WithProcessTime - set process time in seconds
func (t *TerminalInfo) WithProcessTime(seconds float64) *TerminalInfo {
	t.ProcessTime = &seconds
	return t
}

// WithIP - set the address
func (t *TerminalInfo) WithIP(ip string) *TerminalInfo {
	t.IP = &ip
	return t
}

// WithPort - set the port
func (t *TerminalInfo) WithPort(port uint16) *TerminalInfo {
	t.Port = &port
	return t
}

// WithVersion - set protocol version
func (t *TerminalInfo) WithVersion(version uint64) *TerminalInfo {
	t.Version = &version
	return t
}

// WithNonce - set the nonce
func (t *TerminalInfo) WithNonce(nonce uint64) *TerminalInfo {
	t.Nonce = &nonce
	return t
}

// WithUUID - set the request id
func (t *TerminalInfo) WithUUID(uuid string) *TerminalInfo {
	t.UUID = &uuid
	return t
}

// WithHotkey - set the hotkey
func (t *TerminalInfo) WithHotkey(hotkey string) *TerminalInfo {
	t.Hotkey = &hotkey
	return t
}

// WithSignature - set the hex signature
func (t *TerminalInfo) WithSignature(signature string) *TerminalInfo {
	t.Signature = &signature
	return t
}

// GetStatusCode - status code or zero
func (t *TerminalInfo) GetStatusCode() int32 {
	if nil == t || nil == t.StatusCode {
		return 0
	}
	return *t.StatusCode
}

// GetStatusMessage - status message or empty
func (t *TerminalInfo) GetStatusMessage() string {
	if nil == t || nil == t.StatusMessage {
		return ""
	}
	return *t.StatusMessage
}

// GetProcessTime - process time or zero
func (t *TerminalInfo) GetProcessTime() float64 {
	if nil == t || nil == t.ProcessTime {
		return 0
	}
	return *t.ProcessTime
}

// GetHotkey - hotkey or empty
func (t *TerminalInfo) GetHotkey() string {
	if nil == t || nil == t.Hotkey {
		return ""
	}
	return *t.Hotkey
}

// GetNonce - nonce or zero
func (t *TerminalInfo) GetNonce() uint64 {
	if nil == t || nil == t.Nonce {
		return 0
	}
	return *t.Nonce
}

// GetUUID - request id or empty
func (t *TerminalInfo) GetUUID() string {
	if nil == t || nil == t.UUID {
		return ""
	}
	return *t.UUID
}

// Clone - independent copy
func (t *TerminalInfo) Clone() *TerminalInfo {
	if nil == t {
		return nil
	}
	c := *t
	if nil != t.StatusCode {
		v := *t.StatusCode
		c.StatusCode = &v
	}
	c.StatusMessage = copyString(t.StatusMessage)
	if nil != t.ProcessTime {
		v := *t.ProcessTime
		c.ProcessTime = &v
	}
	c.IP = copyString(t.IP)
	if nil != t.Port {
		v := *t.Port
		c.Port = &v
	}
	c.Version = copyUint64(t.Version)
	c.Nonce = copyUint64(t.Nonce)
	c.UUID = copyString(t.UUID)
	c.Hotkey = copyString(t.Hotkey)
	c.Signature = copyString(t.Signature)
	return &c
}

func copyString(s *string) *string {
	if nil == s {
		return nil
	}
	v := *s
	return &v
}

func copyUint64(n *uint64) *uint64 {
	if nil == n {
		return nil
	}
	v := *n
	return &v
}
