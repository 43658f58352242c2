// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/axond/fault"
)

// PoolHandle - one prefixed key range of the database
type PoolHandle struct {
	prefix byte
	limit  []byte
	s      *Storage
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair to the database
func (p *PoolHandle) Put(key []byte, value []byte) error {
	p.s.RLock()
	defer p.s.RUnlock()
	if nil == p.s.db {
		return fault.DatabaseIsNotSet
	}
	return p.s.db.Put(p.prefixKey(key), value, nil)
}

// Delete - remove a key from the database
func (p *PoolHandle) Delete(key []byte) error {
	p.s.RLock()
	defer p.s.RUnlock()
	if nil == p.s.db {
		return fault.DatabaseIsNotSet
	}
	return p.s.db.Delete(p.prefixKey(key), nil)
}

// Get - read a value for a given key
//
// a missing key gives nil and no error
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	p.s.RLock()
	defer p.s.RUnlock()
	if nil == p.s.db {
		return nil, fault.DatabaseIsNotSet
	}
	value, err := p.s.db.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	p.s.RLock()
	defer p.s.RUnlock()
	if nil == p.s.db {
		return false, fault.DatabaseIsNotSet
	}
	return p.s.db.Has(p.prefixKey(key), nil)
}

// All - every element of the pool in key order, prefix stripped
func (p *PoolHandle) All() ([]Element, error) {
	maxRange := ldb_util.Range{
		Start: []byte{p.prefix}, // Start of key range, included in the range
		Limit: p.limit,          // Limit of key range, excluded from the range
	}

	p.s.RLock()
	defer p.s.RUnlock()
	if nil == p.s.db {
		return nil, fault.DatabaseIsNotSet
	}

	iter := p.s.db.NewIterator(&maxRange, nil)
	defer iter.Release()

	elements := make([]Element, 0)
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		elements = append(elements, Element{
			Key:   dataKey,
			Value: dataValue,
		})
	}
	return elements, iter.Error()
}
