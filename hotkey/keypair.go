// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hotkey

import (
	"crypto/rand"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/axond/fault"
)

// SeedSize - bytes of secret material behind a key pair
const SeedSize = ed25519.SeedSize

// SignatureSize - bytes in a detached signature
const SignatureSize = ed25519.SignatureSize

// Signer - the signing capability of a participant
type Signer interface {
	Hotkey() string
	Sign(message []byte) ([]byte, error)
}

// Keypair - ed25519 key pair and its address
type Keypair struct {
	publicKey  ed25519.PublicKey
	privateKey ed25519.PrivateKey
	hotkey     string
}

// New - create a random key pair
func New() (*Keypair, error) {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); nil != err {
		return nil, err
	}
	return FromSeed(seed)
}

// FromSeed - rebuild a key pair from its seed
func FromSeed(seed []byte) (*Keypair, error) {
	if SeedSize != len(seed) {
		return nil, fault.InvalidSeedLength
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	publicKey := privateKey.Public().(ed25519.PublicKey)
	return &Keypair{
		publicKey:  publicKey,
		privateKey: privateKey,
		hotkey:     Encode(publicKey),
	}, nil
}

// Hotkey - the address of this key pair
func (k *Keypair) Hotkey() string {
	return k.hotkey
}

// PublicKey - raw public key
func (k *Keypair) PublicKey() ed25519.PublicKey {
	return k.publicKey
}

// Seed - the secret seed, needed to store the key pair
func (k *Keypair) Seed() []byte {
	return k.privateKey.Seed()
}

// Sign - detached signature over message
func (k *Keypair) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(k.privateKey, message), nil
}
