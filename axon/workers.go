// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package axon

import (
	"container/heap"
	"context"
	"sync"
)

// a fixed number of handler slots, waiting requests served highest
// priority first and in arrival order among equals
type workerPool struct {
	sync.Mutex
	free     int
	sequence uint64
	waiting  waitQueue
}

type waiter struct {
	priority float32
	sequence uint64
	ready    chan struct{}
	index    int
}

func newWorkerPool(size int) *workerPool {
	if size <= 0 {
		size = 1
	}
	return &workerPool{
		free: size,
	}
}

// acquire - block until a slot is granted or the context ends
func (p *workerPool) acquire(ctx context.Context, priority float32) error {
	p.Lock()
	if p.free > 0 && 0 == len(p.waiting) {
		p.free -= 1
		p.Unlock()
		return nil
	}
	p.sequence += 1
	w := &waiter{
		priority: priority,
		sequence: p.sequence,
		ready:    make(chan struct{}),
	}
	heap.Push(&p.waiting, w)
	p.Unlock()

	select {
	case <-w.ready:
		return nil
	case <-ctx.Done():
	}

	p.Lock()
	if w.index >= 0 {
		heap.Remove(&p.waiting, w.index)
		p.Unlock()
		return ctx.Err()
	}
	p.Unlock()

	// granted while giving up, pass the slot on
	p.release()
	return ctx.Err()
}

// release - hand the slot to the best waiter or return it
func (p *workerPool) release() {
	p.Lock()
	defer p.Unlock()
	if 0 == len(p.waiting) {
		p.free += 1
		return
	}
	w := heap.Pop(&p.waiting).(*waiter)
	close(w.ready)
}

// a granted slot, returned to its pool at most once
type slot struct {
	once sync.Once
	pool *workerPool
}

// take - acquire a slot that both the handler and the timeout path
// may give back
func (p *workerPool) take(ctx context.Context, priority float32) (*slot, error) {
	if err := p.acquire(ctx, priority); nil != err {
		return nil, err
	}
	return &slot{pool: p}, nil
}

func (s *slot) release() {
	s.once.Do(s.pool.release)
}

// number of requests waiting for a slot
func (p *workerPool) queued() int {
	p.Lock()
	defer p.Unlock()
	return len(p.waiting)
}

type waitQueue []*waiter

func (q waitQueue) Len() int { return len(q) }

func (q waitQueue) Less(i, j int) bool {
	if q[i].priority == q[j].priority {
		return q[i].sequence < q[j].sequence
	}
	return q[i].priority > q[j].priority
}

func (q waitQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *waitQueue) Push(x interface{}) {
	w := x.(*waiter)
	w.index = len(*q)
	*q = append(*q, w)
}

func (q *waitQueue) Pop() interface{} {
	old := *q
	n := len(old)
	w := old[n-1]
	old[n-1] = nil
	w.index = -1
	*q = old[:n-1]
	return w
}
