// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package axon

// administrative calls, each takes the write lock only for the edit

// SetBlacklistFunc - install the blacklist predicate
func (a *Axon) SetBlacklistFunc(fn BlacklistFunc) {
	a.state.Lock()
	a.state.blacklistFn = fn
	a.state.Unlock()
}

// SetPriorityFunc - install the priority function
func (a *Axon) SetPriorityFunc(fn PriorityFunc) {
	a.state.Lock()
	a.state.priorityFn = fn
	a.state.Unlock()
}

// SetVerifyFunc - install the route verification predicate
func (a *Axon) SetVerifyFunc(fn VerifyFunc) {
	a.state.Lock()
	a.state.verifyFn = fn
	a.state.Unlock()
}

// Blacklist - reject all requests from a hotkey
func (a *Axon) Blacklist(hotkey string) error {
	a.state.Lock()
	a.state.blacklist[hotkey] = struct{}{}
	a.state.Unlock()
	a.log.Infof("blacklisted hotkey: %s", hotkey)
	return a.persist(func(p Persister) error { return p.SaveBlacklist(hotkey, true) })
}

// Unblacklist - accept a hotkey again
func (a *Axon) Unblacklist(hotkey string) error {
	a.state.Lock()
	delete(a.state.blacklist, hotkey)
	a.state.Unlock()
	a.log.Infof("unblacklisted hotkey: %s", hotkey)
	return a.persist(func(p Persister) error { return p.SaveBlacklist(hotkey, false) })
}

// BlacklistIP - reject all requests from an address
func (a *Axon) BlacklistIP(ip string) error {
	a.state.Lock()
	a.state.ipBlacklist[ip] = struct{}{}
	a.state.Unlock()
	a.log.Infof("blacklisted ip: %s", ip)
	return a.persist(func(p Persister) error { return p.SaveIPBlacklist(ip, true) })
}

// UnblacklistIP - accept an address again
func (a *Axon) UnblacklistIP(ip string) error {
	a.state.Lock()
	delete(a.state.ipBlacklist, ip)
	a.state.Unlock()
	a.log.Infof("unblacklisted ip: %s", ip)
	return a.persist(func(p Persister) error { return p.SaveIPBlacklist(ip, false) })
}

// SetPriority - fixed priority for a hotkey
func (a *Axon) SetPriority(hotkey string, priority float32) error {
	a.state.Lock()
	a.state.priorityList[hotkey] = priority
	a.state.Unlock()
	return a.persist(func(p Persister) error { return p.SavePriority(hotkey, priority, true) })
}

// RemovePriority - back to the default priority
func (a *Axon) RemovePriority(hotkey string) error {
	a.state.Lock()
	delete(a.state.priorityList, hotkey)
	a.state.Unlock()
	return a.persist(func(p Persister) error { return p.SavePriority(hotkey, 0, false) })
}

// IsBlacklisted - check hotkey and address lists
func (a *Axon) IsBlacklisted(hotkey string, ip string) bool {
	return a.state.isBlacklisted(hotkey, ip)
}

// Priority - current priority of a hotkey for a route
func (a *Axon) Priority(hotkey string, name string) float32 {
	a.state.RLock()
	fn := a.state.priorityFn
	a.state.RUnlock()
	return a.state.priority(hotkey, name, fn)
}

// Blacklisted - copy of the hotkey and address lists
func (a *Axon) Blacklisted() (hotkeys []string, ips []string) {
	a.state.RLock()
	defer a.state.RUnlock()
	for h := range a.state.blacklist {
		hotkeys = append(hotkeys, h)
	}
	for ip := range a.state.ipBlacklist {
		ips = append(ips, ip)
	}
	return hotkeys, ips
}

// RequestCount - requests in flight
func (a *Axon) RequestCount() uint64 {
	return a.state.requestCount.Uint64()
}

// TotalRequests - requests since start
func (a *Axon) TotalRequests() uint64 {
	return a.state.totalRequests.Uint64()
}

func (a *Axon) persist(f func(Persister) error) error {
	a.state.RLock()
	p := a.state.persister
	a.state.RUnlock()
	if nil == p {
		return nil
	}
	err := f(p)
	if nil != err {
		a.log.Errorf("persist error: %s", err)
	}
	return err
}
