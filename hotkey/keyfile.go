// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hotkey

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"os"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/bitmark-inc/axond/fault"
)

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32

	kdfTime    = 1
	kdfMemory  = 64 * 1024
	kdfThreads = 4
)

// KeyFile - on-disk form of an encrypted key pair
type KeyFile struct {
	Hotkey        string `json:"hotkey"`
	Salt          string `json:"salt"`
	EncryptedSeed string `json:"encrypted_seed"`
}

// SaveKeyFile - encrypt the key pair seed with a password and write it
//
// an existing file is never overwritten
func SaveKeyFile(fileName string, keypair *Keypair, password string) error {
	if _, err := os.Stat(fileName); nil == err {
		return fault.KeyFileExists
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); nil != err {
		return err
	}

	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); nil != err {
		return err
	}

	key := deriveKey(password, salt)
	sealed := secretbox.Seal(nonce[:], keypair.Seed(), &nonce, &key)

	kf := KeyFile{
		Hotkey:        keypair.Hotkey(),
		Salt:          hex.EncodeToString(salt),
		EncryptedSeed: hex.EncodeToString(sealed),
	}
	data, err := json.MarshalIndent(kf, "", "  ")
	if nil != err {
		return err
	}
	return ioutil.WriteFile(fileName, data, 0600)
}

// LoadKeyFile - read and decrypt a key pair
func LoadKeyFile(fileName string, password string) (*Keypair, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}

	var kf KeyFile
	if err := json.Unmarshal(data, &kf); nil != err {
		return nil, fault.InvalidKeyFile
	}

	salt, err := hex.DecodeString(kf.Salt)
	if nil != err || saltSize != len(salt) {
		return nil, fault.InvalidKeyFile
	}
	sealed, err := hex.DecodeString(kf.EncryptedSeed)
	if nil != err || len(sealed) < nonceSize+secretbox.Overhead {
		return nil, fault.InvalidKeyFile
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	key := deriveKey(password, salt)
	seed, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &key)
	if !ok {
		return nil, fault.WrongPassword
	}

	keypair, err := FromSeed(seed)
	if nil != err {
		return nil, err
	}
	if keypair.Hotkey() != kf.Hotkey {
		return nil, fault.InvalidKeyFile
	}
	return keypair, nil
}

func deriveKey(password string, salt []byte) [keySize]byte {
	var key [keySize]byte
	copy(key[:], argon2.IDKey([]byte(password), salt, kdfTime, kdfMemory, kdfThreads, keySize))
	return key
}
