// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package axon

import (
	"sync"

	"github.com/bitmark-inc/axond/counter"
)

// BlacklistFunc - true rejects a caller for a route
type BlacklistFunc func(hotkey string, name string) bool

// PriorityFunc - scheduling priority of a caller for a route
type PriorityFunc func(hotkey string, name string) float32

// VerifyFunc - false rejects a route before signature checks
type VerifyFunc func(name string) bool

// Persister - durable copy of the administrative lists
type Persister interface {
	SaveBlacklist(hotkey string, listed bool) error
	SaveIPBlacklist(ip string, listed bool) error
	SavePriority(hotkey string, priority float32, present bool) error
	Load() (hotkeys []string, ips []string, priorities map[string]float32, err error)
}

// shared mutable state, read on every request
//
// the lock is only held for membership checks and edits, never while
// a handler runs
type state struct {
	sync.RWMutex

	hotkey            string
	verifySignatures  bool
	trustProxyHeaders bool

	blacklist    map[string]struct{}
	ipBlacklist  map[string]struct{}
	priorityList map[string]float32

	blacklistFn BlacklistFunc
	priorityFn  PriorityFunc
	verifyFn    VerifyFunc

	persister Persister

	requestCount  counter.Counter
	totalRequests counter.Counter
}

func newState(hotkey string, verifySignatures bool, trustProxyHeaders bool) *state {
	return &state{
		hotkey:            hotkey,
		verifySignatures:  verifySignatures,
		trustProxyHeaders: trustProxyHeaders,
		blacklist:         make(map[string]struct{}),
		ipBlacklist:       make(map[string]struct{}),
		priorityList:      make(map[string]float32),
	}
}

// restore lists from the persister
func (s *state) restore() error {
	if nil == s.persister {
		return nil
	}
	hotkeys, ips, priorities, err := s.persister.Load()
	if nil != err {
		return err
	}

	s.Lock()
	defer s.Unlock()
	for _, h := range hotkeys {
		s.blacklist[h] = struct{}{}
	}
	for _, ip := range ips {
		s.ipBlacklist[ip] = struct{}{}
	}
	for h, p := range priorities {
		s.priorityList[h] = p
	}
	return nil
}

// the lists a request needs, taken under one read lock
type snapshot struct {
	verifySignatures bool
	verifyFn         VerifyFunc
	priorityFn       PriorityFunc
	blacklistFn      BlacklistFunc
}

func (s *state) snapshot() snapshot {
	s.RLock()
	defer s.RUnlock()
	return snapshot{
		verifySignatures: s.verifySignatures,
		verifyFn:         s.verifyFn,
		priorityFn:       s.priorityFn,
		blacklistFn:      s.blacklistFn,
	}
}

func (s *state) priority(hotkey string, name string, fn PriorityFunc) float32 {
	if nil != fn {
		return fn(hotkey, name)
	}
	s.RLock()
	p := s.priorityList[hotkey]
	s.RUnlock()
	return p
}

func (s *state) isBlacklisted(hotkey string, ip string) bool {
	s.RLock()
	defer s.RUnlock()
	if "" != hotkey {
		if _, ok := s.blacklist[hotkey]; ok {
			return true
		}
	}
	if "" != ip {
		if _, ok := s.ipBlacklist[ip]; ok {
			return true
		}
	}
	return false
}
