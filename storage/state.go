// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"math"
)

// SaveBlacklist - record or remove a blacklisted hotkey
func (s *Storage) SaveBlacklist(hotkey string, listed bool) error {
	return setMember(s.Pool.Blacklist, hotkey, listed)
}

// SaveIPBlacklist - record or remove a blacklisted address
func (s *Storage) SaveIPBlacklist(ip string, listed bool) error {
	return setMember(s.Pool.IPBlacklist, ip, listed)
}

// SavePriority - record or remove a hotkey priority
func (s *Storage) SavePriority(hotkey string, priority float32, present bool) error {
	if !present {
		return s.Pool.Priority.Delete([]byte(hotkey))
	}
	value := make([]byte, 4)
	binary.BigEndian.PutUint32(value, math.Float32bits(priority))
	return s.Pool.Priority.Put([]byte(hotkey), value)
}

// Load - every stored list entry
func (s *Storage) Load() ([]string, []string, map[string]float32, error) {
	hotkeys, err := members(s.Pool.Blacklist)
	if nil != err {
		return nil, nil, nil, err
	}

	ips, err := members(s.Pool.IPBlacklist)
	if nil != err {
		return nil, nil, nil, err
	}

	elements, err := s.Pool.Priority.All()
	if nil != err {
		return nil, nil, nil, err
	}
	priorities := make(map[string]float32, len(elements))
	for _, e := range elements {
		if 4 != len(e.Value) {
			return nil, nil, nil, fmt.Errorf("priority for: %q has length: %d", e.Key, len(e.Value))
		}
		priorities[string(e.Key)] = math.Float32frombits(binary.BigEndian.Uint32(e.Value))
	}

	s.log.Debugf("loaded hotkeys: %d  ips: %d  priorities: %d", len(hotkeys), len(ips), len(priorities))

	return hotkeys, ips, priorities, nil
}

func setMember(p *PoolHandle, key string, present bool) error {
	if present {
		return p.Put([]byte(key), []byte{})
	}
	return p.Delete([]byte(key))
}

func members(p *PoolHandle) ([]string, error) {
	elements, err := p.All()
	if nil != err {
		return nil, err
	}
	keys := make([]string, 0, len(elements))
	for _, e := range elements {
		keys = append(keys, string(e.Key))
	}
	return keys, nil
}
