// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:generate mockgen -destination=handler.go -package=mocks github.com/bitmark-inc/axond/axon Handler,StreamHandler,Persister
//go:generate mockgen -destination=signer.go -package=mocks github.com/bitmark-inc/axond/hotkey Signer

package mocks
