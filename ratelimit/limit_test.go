// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/axond/fault"
	"github.com/bitmark-inc/axond/ratelimit"
)

func TestNewDisabled(t *testing.T) {
	assert.Nil(t, ratelimit.New(0, 10), "wrong disabled limiter")
	assert.Nil(t, ratelimit.Check(nil), "nil limiter rejected")
	assert.Nil(t, ratelimit.Limit(context.Background(), nil), "nil limiter rejected")
}

func TestCheck(t *testing.T) {
	limiter := ratelimit.New(0.001, 2)

	assert.Nil(t, ratelimit.Check(limiter), "first request rejected")
	assert.Nil(t, ratelimit.Check(limiter), "second request rejected")
	assert.Equal(t, fault.RateLimiting, ratelimit.Check(limiter), "burst exceeded but not rejected")
}

func TestLimitWaits(t *testing.T) {
	limiter := ratelimit.New(20, 1)

	start := time.Now()
	assert.Nil(t, ratelimit.Limit(context.Background(), limiter), "wrong first Limit")
	assert.Nil(t, ratelimit.Limit(context.Background(), limiter), "wrong second Limit")
	assert.True(t, time.Since(start) >= 40*time.Millisecond, "did not wait for a token")
}

func TestLimitDeadline(t *testing.T) {
	limiter := ratelimit.New(0.001, 1)
	_ = ratelimit.Check(limiter)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.Equal(t, fault.RateLimiting, ratelimit.Limit(ctx, limiter), "wrong error past deadline")
}

func TestLimitN(t *testing.T) {
	limiter := ratelimit.New(1000, 10)

	assert.Nil(t, ratelimit.LimitN(context.Background(), limiter, 5, 10), "wrong LimitN")
	assert.Equal(t, fault.InvalidCount, ratelimit.LimitN(context.Background(), limiter, 0, 10), "wrong zero count")
	assert.Equal(t, fault.InvalidCount, ratelimit.LimitN(context.Background(), limiter, 11, 10), "wrong large count")
}
