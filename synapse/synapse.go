// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package synapse

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"

	"github.com/bitmark-inc/axond/constants"
)

// DefaultName - route used when a synapse has no name
const DefaultName = "Synapse"

// Synapse - the message envelope
//
// only Extra is carried in the body, everything else travels in headers
type Synapse struct {
	Name             *string                `json:"name,omitempty"`
	Timeout          *float64               `json:"timeout,omitempty"`
	TotalSize        *uint64                `json:"total_size,omitempty"`
	HeaderSize       *uint64                `json:"header_size,omitempty"`
	ComputedBodyHash *string                `json:"computed_body_hash,omitempty"`
	Dendrite         *TerminalInfo          `json:"dendrite,omitempty"`
	Axon             *TerminalInfo          `json:"axon,omitempty"`
	Extra            map[string]interface{} `json:"extra"`
}

// New - synapse with default timeout and sizes
func New(name string) *Synapse {
	timeout := float64(constants.DefaultTimeoutSeconds)
	totalSize := uint64(0)
	headerSize := uint64(0)
	s := &Synapse{
		Timeout:    &timeout,
		TotalSize:  &totalSize,
		HeaderSize: &headerSize,
		Extra:      make(map[string]interface{}),
	}
	if "" != name {
		s.Name = &name
	}
	return s
}

// WithName - set the route name
func (s *Synapse) WithName(name string) *Synapse {
	s.Name = &name
	return s
}

// WithTimeout - set the declared timeout in seconds
func (s *Synapse) WithTimeout(seconds float64) *Synapse {
	s.Timeout = &seconds
	return s
}

// WithDendrite - attach caller terminal info
func (s *Synapse) WithDendrite(t *TerminalInfo) *Synapse {
	s.Dendrite = t
	return s
}

// WithAxon - attach callee terminal info
func (s *Synapse) WithAxon(t *TerminalInfo) *Synapse {
	s.Axon = t
	return s
}

// WithBodyHash - set the computed body hash
func (s *Synapse) WithBodyHash(hash string) *Synapse {
	s.ComputedBodyHash = &hash
	return s
}

// GetName - name or empty
func (s *Synapse) GetName() string {
	if nil == s.Name {
		return ""
	}
	return *s.Name
}

// RouteName - name used for the URL path
func (s *Synapse) RouteName() string {
	if nil == s.Name || "" == *s.Name {
		return DefaultName
	}
	return *s.Name
}

// IsSuccess - caller side saw status 200
func (s *Synapse) IsSuccess() bool {
	return nil != s.Dendrite && nil != s.Dendrite.StatusCode && StatusSuccess == *s.Dendrite.StatusCode
}

// IsFailure - caller side saw a status other than 200
func (s *Synapse) IsFailure() bool {
	return nil != s.Dendrite && nil != s.Dendrite.StatusCode && StatusSuccess != *s.Dendrite.StatusCode
}

// IsTimeout - caller side saw status 408
func (s *Synapse) IsTimeout() bool {
	return nil != s.Dendrite && nil != s.Dendrite.StatusCode && StatusTimeout == *s.Dendrite.StatusCode
}

// GetTotalSize - total size or zero
func (s *Synapse) GetTotalSize() uint64 {
	if nil == s.TotalSize {
		return 0
	}
	return *s.TotalSize
}

// SetField - store an application field
func (s *Synapse) SetField(key string, value interface{}) {
	if nil == s.Extra {
		s.Extra = make(map[string]interface{})
	}
	s.Extra[key] = value
}

// GetField - fetch an application field
func (s *Synapse) GetField(key string) (interface{}, bool) {
	value, ok := s.Extra[key]
	return value, ok
}

// GetString - fetch an application field that is a string
func (s *Synapse) GetString(key string) (string, bool) {
	value, ok := s.Extra[key]
	if !ok {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

// TimeoutDuration - declared timeout or the default
func (s *Synapse) TimeoutDuration() time.Duration {
	if nil == s.Timeout || *s.Timeout <= 0 {
		return constants.DefaultTimeout
	}
	return time.Duration(*s.Timeout * float64(time.Second))
}

// ComputeBodyHash - SHA-256 over the JSON of the named fields in sorted order
//
// absent fields are skipped
func (s *Synapse) ComputeBodyHash(fields []string) string {
	sorted := append([]string{}, fields...)
	sort.Strings(sorted)

	h := sha256.New()
	for _, field := range sorted {
		value, ok := s.Extra[field]
		if !ok {
			continue
		}
		if data, err := json.Marshal(value); nil == err {
			h.Write(data)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ComputeFullBodyHash - body hash over every application field
func (s *Synapse) ComputeFullBodyHash() string {
	fields := make([]string, 0, len(s.Extra))
	for k := range s.Extra {
		fields = append(fields, k)
	}
	return s.ComputeBodyHash(fields)
}

// VerifyBodyHash - compare the stored hash with a fresh one
//
// a synapse without a stored hash does not verify
func (s *Synapse) VerifyBodyHash(fields []string) bool {
	if nil == s.ComputedBodyHash {
		return false
	}
	computed := s.ComputeBodyHash(fields)
	return 1 == subtle.ConstantTimeCompare([]byte(*s.ComputedBodyHash), []byte(computed))
}

// UpdateBodyHash - store a fresh hash of the named fields
func (s *Synapse) UpdateBodyHash(fields []string) {
	s.WithBodyHash(s.ComputeBodyHash(fields))
}

// Clone - independent copy, application values are shared
func (s *Synapse) Clone() *Synapse {
	c := *s
	c.Name = copyString(s.Name)
	if nil != s.Timeout {
		v := *s.Timeout
		c.Timeout = &v
	}
	c.TotalSize = copyUint64(s.TotalSize)
	c.HeaderSize = copyUint64(s.HeaderSize)
	c.ComputedBodyHash = copyString(s.ComputedBodyHash)
	c.Dendrite = s.Dendrite.Clone()
	c.Axon = s.Axon.Clone()
	c.Extra = make(map[string]interface{}, len(s.Extra))
	for k, v := range s.Extra {
		c.Extra[k] = v
	}
	return &c
}
