// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/axond/fault"
)

// New - limiter for a rate per second, zero disables limiting
func New(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Check - limiting for a single request without waiting
func Check(limiter *rate.Limiter) error {
	if nil == limiter {
		return nil
	}
	if !limiter.Allow() {
		return fault.RateLimiting
	}
	return nil
}

// Limit - limiting for a single request, waits for a token
//
// fails at once if the wait would outlast the context
func Limit(ctx context.Context, limiter *rate.Limiter) error {
	if nil == limiter {
		return nil
	}
	r := limiter.Reserve()
	if !r.OK() {
		return fault.RateLimiting
	}

	delay := r.Delay()
	if 0 == delay {
		return nil
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < delay {
		r.Cancel()
		return fault.RateLimiting
	}

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	}
}

// LimitN - limiting for a multiple request
func LimitN(ctx context.Context, limiter *rate.Limiter, count int, maximumCount int) error {
	// invalid count gets limited as a single request
	if count <= 0 || count > maximumCount {
		if err := Limit(ctx, limiter); nil != err {
			return err
		}
		return fault.InvalidCount
	}
	if nil == limiter {
		return nil
	}

	r := limiter.ReserveN(time.Now(), count)
	if !r.OK() {
		return fault.RateLimiting
	}
	t := time.NewTimer(r.Delay())
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	}
}
