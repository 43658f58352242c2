// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hotkey

import (
	"time"

	cache "github.com/patrickmn/go-cache"
	"golang.org/x/crypto/ed25519"
)

const (
	defaultExpiration = 10 * time.Minute
	cleanupInterval   = 15 * time.Minute
)

// KeySource - resolve an address to a public key
type KeySource interface {
	PublicKey(address string) (ed25519.PublicKey, error)
}

type decoder struct{}

// Decoder - key source that decodes every time
var Decoder KeySource = decoder{}

func (decoder) PublicKey(address string) (ed25519.PublicKey, error) {
	return Decode(address)
}

// Cache - key source that remembers decoded addresses
type Cache struct {
	keys *cache.Cache
}

// NewCache - create an empty cache
func NewCache() *Cache {
	return &Cache{
		keys: cache.New(defaultExpiration, cleanupInterval),
	}
}

// PublicKey - decode an address, using a previous result if present
//
// malformed addresses are not remembered
func (c *Cache) PublicKey(address string) (ed25519.PublicKey, error) {
	if obj, found := c.keys.Get(address); found {
		return obj.(ed25519.PublicKey), nil
	}

	publicKey, err := Decode(address)
	if nil != err {
		return nil, err
	}
	c.keys.Set(address, publicKey, cache.DefaultExpiration)
	return publicKey, nil
}

// Count - number of remembered addresses
func (c *Cache) Count() int {
	return c.keys.ItemCount()
}

// Clear - forget all addresses
func (c *Cache) Clear() {
	c.keys.Flush()
}
