// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blacklist

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/axond/fault"
)

// Target - the admin calls a file is applied through
type Target interface {
	Blacklist(hotkey string) error
	Unblacklist(hotkey string) error
	BlacklistIP(ip string) error
	UnblacklistIP(ip string) error
}

// Watcher - applies a blacklist file whenever it changes
type Watcher struct {
	sync.Mutex
	log      *logger.L
	filePath string
	target   Target
	applied  List
	watcher  *fsnotify.Watcher
}

// New - watcher for a file
//
// the file is not read until Load or Run
func New(log *logger.L, targetFile string, target Target) (*Watcher, error) {
	if nil == log || nil == target || "" == targetFile {
		return nil, fault.MissingParameters
	}

	filePath, err := filepath.Abs(filepath.Clean(targetFile))
	if nil != err {
		return nil, err
	}

	return &Watcher{
		log:      log,
		filePath: filePath,
		target:   target,
		applied:  newList(),
	}, nil
}

// FilePath - absolute path of the watched file
func (w *Watcher) FilePath() string {
	return w.filePath
}

// Load - read the file and apply the difference to the target
//
// a missing file is an empty list
func (w *Watcher) Load() error {
	w.Lock()
	defer w.Unlock()

	list := newList()
	f, err := os.Open(w.filePath)
	if nil == err {
		var invalid []error
		list, invalid, err = Parse(f)
		f.Close()
		if nil != err {
			w.log.Errorf("read: %s  error: %s", w.filePath, err)
			return err
		}
		for _, e := range invalid {
			w.log.Warnf("file: %s  %s", w.filePath, e)
		}
	} else if !os.IsNotExist(err) {
		w.log.Errorf("open: %s  error: %s", w.filePath, err)
		return err
	}

	var firstErr error
	record := func(err error) {
		if nil != err && nil == firstErr {
			firstErr = err
		}
	}

	for h := range w.applied.Hotkeys {
		if _, ok := list.Hotkeys[h]; !ok {
			record(w.target.Unblacklist(h))
		}
	}
	for ip := range w.applied.IPs {
		if _, ok := list.IPs[ip]; !ok {
			record(w.target.UnblacklistIP(ip))
		}
	}
	for h := range list.Hotkeys {
		if _, ok := w.applied.Hotkeys[h]; !ok {
			record(w.target.Blacklist(h))
		}
	}
	for ip := range list.IPs {
		if _, ok := w.applied.IPs[ip]; !ok {
			record(w.target.BlacklistIP(ip))
		}
	}

	w.applied = list
	w.log.Infof("file: %s  hotkeys: %d  ips: %d", w.filePath, len(list.Hotkeys), len(list.IPs))
	return firstErr
}

// Start - load the file and begin watching its directory
//
// the directory is watched so that editors which replace the file
// are still seen
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		w.log.Errorf("new watcher with error: %s", err)
		return err
	}

	err = watcher.Add(filepath.Dir(w.filePath))
	if nil != err {
		w.log.Errorf("watcher add error: %s, abort", err)
		watcher.Close()
		return err
	}
	w.watcher = watcher

	return w.Load()
}

// Run - background process applying each change until shutdown
func (w *Watcher) Run(args interface{}, shutdown <-chan struct{}) {
	if nil == w.watcher {
		if err := w.Start(); nil != err && nil == w.watcher {
			// nothing to watch, wait to be stopped
			<-shutdown
			return
		}
	}

	w.log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Base(event.Name) != filepath.Base(w.filePath) {
				continue
			}
			w.log.Debugf("file event: %v", event)

			if eventChangesFile(event) {
				_ = w.Load()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			w.log.Errorf("watcher error: %s", err)
		}
	}

	w.watcher.Close()
	w.log.Info("stopped")
}

// removal and rename clear the file entries, writes reload them
func eventChangesFile(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
