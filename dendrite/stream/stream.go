// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stream

import (
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/bitmark-inc/axond/synapse"
)

const (
	readSize = 4096
)

// Stream - lazy sequence of chunks from one response
type Stream struct {
	sync.Mutex

	ctx       context.Context
	cancel    context.CancelFunc
	body      io.ReadCloser
	header    http.Header
	processor Processor

	buffer  []byte
	scratch []byte
	ended   bool
	failed  error
	closed  bool
}

// New - wrap an open body
//
// cancel is called by Close and must end the request that produced
// body; ctx reports why the stream stopped
func New(ctx context.Context, cancel context.CancelFunc, body io.ReadCloser, header http.Header, processor Processor) *Stream {
	if nil == processor {
		processor = NewText()
	}
	return &Stream{
		ctx:       ctx,
		cancel:    cancel,
		body:      body,
		header:    header,
		processor: processor,
		buffer:    make([]byte, 0, readSize),
		scratch:   make([]byte, readSize),
	}
}

// Synapse - the response headers as a synapse with no fields
func (s *Stream) Synapse() *synapse.Synapse {
	out, _ := synapse.Unmarshal(s.header, nil)
	return out
}

// Next - the next chunk, io.EOF once the stream is exhausted
func (s *Stream) Next() (interface{}, error) {
	s.Lock()
	defer s.Unlock()

	if nil != s.failed {
		return nil, s.failed
	}
	if s.closed {
		if s.ended {
			return nil, io.EOF
		}
		return nil, &Error{Kind: Cancelled, Err: context.Canceled}
	}

	for {
		if len(s.buffer) > 0 {
			chunk, consumed, err := s.processor.Process(s.buffer)
			if consumed > 0 {
				s.buffer = s.buffer[consumed:]
			}
			if nil != err {
				return nil, &Error{Kind: Parse, Err: err}
			}
			if nil != chunk {
				return chunk, nil
			}
			if consumed > 0 {
				continue
			}
		}

		if s.ended {
			rest := s.buffer
			s.buffer = nil
			s.closeLocked()
			if 0 == len(rest) {
				return nil, io.EOF
			}
			chunk, ok, err := s.processor.End(rest)
			if nil != err {
				return nil, &Error{Kind: Parse, Err: err}
			}
			if !ok {
				return nil, io.EOF
			}
			return chunk, nil
		}

		n, err := s.body.Read(s.scratch)
		s.buffer = append(s.buffer, s.scratch[:n]...)
		if io.EOF == err {
			s.ended = true
			continue
		}
		if nil != err {
			s.failed = s.classify(err)
			s.closeLocked()
			return nil, s.failed
		}
	}
}

// Collect - every remaining chunk
func (s *Stream) Collect() ([]interface{}, error) {
	chunks := []interface{}{}
	for {
		chunk, err := s.Next()
		if io.EOF == err {
			return chunks, nil
		}
		if nil != err {
			return chunks, err
		}
		chunks = append(chunks, chunk)
	}
}

// Close - end the request and release the connection
func (s *Stream) Close() error {
	s.Lock()
	defer s.Unlock()
	return s.closeLocked()
}

func (s *Stream) closeLocked() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if nil != s.cancel {
		s.cancel()
	}
	return s.body.Close()
}

func (s *Stream) classify(err error) error {
	switch s.ctx.Err() {
	case context.DeadlineExceeded:
		return &Error{Kind: Timeout, Err: err}
	case context.Canceled:
		return &Error{Kind: Cancelled, Err: err}
	default:
		return &Error{Kind: Network, Err: err}
	}
}
