// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hotkey_test

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/axond/fault"
	"github.com/bitmark-inc/axond/hotkey"
)

var fixedSeed = bytes.Repeat([]byte{0x42}, hotkey.SeedSize)

func TestAddressRoundTrip(t *testing.T) {
	kp, err := hotkey.FromSeed(fixedSeed)
	require.Nil(t, err, "wrong FromSeed")

	address := hotkey.Encode(kp.PublicKey())
	assert.Equal(t, kp.Hotkey(), address, "wrong hotkey")
	assert.True(t, hotkey.IsValid(address), "wrong validity")

	publicKey, err := hotkey.Decode(address)
	assert.Nil(t, err, "wrong Decode")
	assert.Equal(t, kp.PublicKey(), publicKey, "wrong public key")
}

func TestSameSeedSameHotkey(t *testing.T) {
	kp1, _ := hotkey.FromSeed(fixedSeed)
	kp2, _ := hotkey.FromSeed(fixedSeed)
	kp3, _ := hotkey.New()

	assert.Equal(t, kp1.Hotkey(), kp2.Hotkey(), "wrong deterministic hotkey")
	assert.NotEqual(t, kp1.Hotkey(), kp3.Hotkey(), "random key repeated fixed key")
	assert.Equal(t, fixedSeed, kp1.Seed(), "wrong seed")
}

func TestFromSeedWrongLength(t *testing.T) {
	_, err := hotkey.FromSeed([]byte{1, 2, 3})
	assert.Equal(t, fault.InvalidSeedLength, err, "wrong error")
}

func TestDecodeErrors(t *testing.T) {
	kp, _ := hotkey.FromSeed(fixedSeed)
	raw, _ := base58.Decode(kp.Hotkey())

	corrupt := append([]byte{}, raw...)
	corrupt[10] ^= 0xff

	network := append([]byte{}, raw...)
	network[0] = 0

	tests := []struct {
		address string
		err     error
	}{
		{"", fault.InvalidHotkey},
		{"0OIl", fault.InvalidHotkey},
		{"abc", fault.InvalidHotkey},
		{base58.Encode(corrupt), fault.WrongChecksum},
		{base58.Encode(network), fault.WrongNetwork},
	}

	for i, item := range tests {
		_, err := hotkey.Decode(item.address)
		assert.Equal(t, item.err, err, "%d: wrong error for: %q", i, item.address)
		assert.False(t, hotkey.IsValid(item.address), "%d: wrong validity", i)
	}
}

func TestSign(t *testing.T) {
	kp, _ := hotkey.FromSeed(fixedSeed)
	message := []byte("hello")

	signature, err := kp.Sign(message)
	assert.Nil(t, err, "wrong Sign")
	assert.Equal(t, hotkey.SignatureSize, len(signature), "wrong signature size")
	assert.True(t, ed25519.Verify(kp.PublicKey(), message, signature), "signature did not verify")
}

func TestCache(t *testing.T) {
	kp, _ := hotkey.FromSeed(fixedSeed)
	c := hotkey.NewCache()

	publicKey, err := c.PublicKey(kp.Hotkey())
	assert.Nil(t, err, "wrong PublicKey")
	assert.Equal(t, kp.PublicKey(), publicKey, "wrong public key")
	assert.Equal(t, 1, c.Count(), "wrong count")

	_, err = c.PublicKey("not-an-address")
	assert.NotNil(t, err, "invalid address accepted")
	assert.Equal(t, 1, c.Count(), "invalid address was cached")

	publicKey, err = c.PublicKey(kp.Hotkey())
	assert.Nil(t, err, "wrong cached PublicKey")
	assert.Equal(t, kp.PublicKey(), publicKey, "wrong cached public key")

	c.Clear()
	assert.Equal(t, 0, c.Count(), "wrong count after clear")
}

func TestKeyFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "hotkey")
	require.Nil(t, err, "wrong TempDir")
	defer os.RemoveAll(dir)

	fileName := filepath.Join(dir, "hotkey.json")
	kp, _ := hotkey.New()

	err = hotkey.SaveKeyFile(fileName, kp, "secret")
	assert.Nil(t, err, "wrong SaveKeyFile")

	err = hotkey.SaveKeyFile(fileName, kp, "secret")
	assert.Equal(t, fault.KeyFileExists, err, "file was overwritten")

	loaded, err := hotkey.LoadKeyFile(fileName, "secret")
	assert.Nil(t, err, "wrong LoadKeyFile")
	assert.Equal(t, kp.Hotkey(), loaded.Hotkey(), "wrong hotkey")

	_, err = hotkey.LoadKeyFile(fileName, "guess")
	assert.Equal(t, fault.WrongPassword, err, "wrong error for bad password")

	bad := filepath.Join(dir, "bad.json")
	_ = ioutil.WriteFile(bad, []byte("{}"), 0600)
	_, err = hotkey.LoadKeyFile(bad, "secret")
	assert.Equal(t, fault.InvalidKeyFile, err, "wrong error for bad file")
}
