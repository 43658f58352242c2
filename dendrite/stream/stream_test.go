// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stream_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/axond/dendrite/stream"
	"github.com/bitmark-inc/axond/synapse"
)

type trackedBody struct {
	io.Reader
	closed bool
}

func (b *trackedBody) Close() error {
	b.closed = true
	return nil
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("connection reset")
}

func newStream(body io.Reader, processor stream.Processor) (*stream.Stream, *trackedBody, *bool) {
	ctx, cancel := context.WithCancel(context.Background())
	cancelled := false
	b := &trackedBody{Reader: body}
	s := stream.New(ctx, func() {
		cancelled = true
		cancel()
	}, b, http.Header{}, processor)
	return s, b, &cancelled
}

func TestTextProcessor(t *testing.T) {
	p := stream.NewText()

	chunk, consumed, err := p.Process([]byte("hello"))
	assert.Nil(t, err, "wrong error")
	assert.Nil(t, chunk, "chunk without delimiter")
	assert.Equal(t, 0, consumed, "wrong consumed")

	chunk, consumed, err = p.Process([]byte("line1\nline2\n"))
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, "line1", chunk, "wrong chunk")
	assert.Equal(t, 6, consumed, "wrong consumed")

	custom := &stream.Text{Delimiter: '|'}
	chunk, _, _ = custom.Process([]byte("a|b"))
	assert.Equal(t, "a", chunk, "wrong custom delimiter chunk")

	chunk, ok, err := p.End([]byte("tail"))
	assert.Nil(t, err, "wrong end error")
	assert.True(t, ok, "tail dropped")
	assert.Equal(t, "tail", chunk, "wrong tail")
}

func TestTextStreamAcrossReads(t *testing.T) {
	s, body, cancelled := newStream(iotest.OneByteReader(strings.NewReader("one\ntwo\nthree")), nil)

	chunks, err := s.Collect()
	assert.Nil(t, err, "wrong collect error")
	assert.Equal(t, []interface{}{"one", "two", "three"}, chunks, "wrong chunks")
	assert.True(t, body.closed, "body not closed at end")
	assert.True(t, *cancelled, "request not cancelled at end")

	_, err = s.Next()
	assert.Equal(t, io.EOF, err, "stream restarted")
}

func TestJSONLinesStream(t *testing.T) {
	s, _, _ := newStream(strings.NewReader("{\"n\":1}\n\n{\"n\":2}\n{\"n\":3}"), stream.NewJSONLines())

	chunks, err := s.Collect()
	assert.Nil(t, err, "wrong collect error")
	assert.Equal(t, 3, len(chunks), "wrong chunk count")

	for i, chunk := range chunks {
		var v struct {
			N int `json:"n"`
		}
		raw, ok := chunk.(json.RawMessage)
		assert.True(t, ok, "%d: wrong chunk type", i)
		assert.Nil(t, json.Unmarshal(raw, &v), "%d: wrong decode error", i)
		assert.Equal(t, i+1, v.N, "%d: wrong value", i)
	}
}

func TestJSONLinesParseError(t *testing.T) {
	s, _, _ := newStream(strings.NewReader("{bad\n{\"n\":2}\n"), stream.NewJSONLines())

	_, err := s.Next()
	var streamErr *stream.Error
	if assert.True(t, errors.As(err, &streamErr), "wrong error type: %v", err) {
		assert.Equal(t, stream.Parse, streamErr.Kind, "wrong kind")
	}

	chunk, err := s.Next()
	assert.Nil(t, err, "stream did not continue after bad line")
	assert.Equal(t, json.RawMessage(`{"n":2}`), chunk, "wrong chunk after bad line")
}

func TestSSEStream(t *testing.T) {
	text := "event: token\ndata: hello\nid: 1\n\n" +
		": comment only\n\n" +
		"data: line one\ndata: line two\n\n" +
		"data: unterminated"
	s, _, _ := newStream(strings.NewReader(text), stream.NewSSE())

	chunks, err := s.Collect()
	assert.Nil(t, err, "wrong collect error")
	expected := []interface{}{
		stream.Event{Event: "token", Data: "hello", ID: "1"},
		stream.Event{Data: "line one\nline two"},
		stream.Event{Data: "unterminated"},
	}
	assert.Equal(t, expected, chunks, "wrong events")
}

func TestNetworkError(t *testing.T) {
	s, body, _ := newStream(failingReader{}, nil)

	_, err := s.Next()
	var streamErr *stream.Error
	if assert.True(t, errors.As(err, &streamErr), "wrong error type: %v", err) {
		assert.Equal(t, stream.Network, streamErr.Kind, "wrong kind")
	}
	assert.True(t, body.closed, "body not closed after failure")

	_, again := s.Next()
	assert.Equal(t, err, again, "failure not sticky")
}

func TestCancelledStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := &trackedBody{Reader: failingReader{}}
	s := stream.New(ctx, cancel, b, http.Header{}, nil)

	cancel()
	_, err := s.Next()
	var streamErr *stream.Error
	if assert.True(t, errors.As(err, &streamErr), "wrong error type: %v", err) {
		assert.Equal(t, stream.Cancelled, streamErr.Kind, "wrong kind")
		assert.Equal(t, "stream cancelled", streamErr.Error(), "wrong message")
	}
}

func TestCloseBeforeEnd(t *testing.T) {
	s, body, cancelled := newStream(strings.NewReader("one\ntwo\n"), nil)

	chunk, err := s.Next()
	assert.Nil(t, err, "wrong first error")
	assert.Equal(t, "one", chunk, "wrong first chunk")

	assert.Nil(t, s.Close(), "wrong close error")
	assert.Nil(t, s.Close(), "second close failed")
	assert.True(t, body.closed, "body not closed")
	assert.True(t, *cancelled, "request not cancelled")

	_, err = s.Next()
	var streamErr *stream.Error
	if assert.True(t, errors.As(err, &streamErr), "wrong error type: %v", err) {
		assert.Equal(t, stream.Cancelled, streamErr.Kind, "wrong kind")
	}
}

func TestStreamSynapse(t *testing.T) {
	h := http.Header{}
	h.Set(synapse.HeaderAxonStatusCode, "200")
	h.Set(synapse.HeaderName, "Count")
	s := stream.New(context.Background(), nil, ioutil.NopCloser(strings.NewReader("")), h, nil)

	out := s.Synapse()
	assert.Equal(t, "Count", out.GetName(), "wrong name")
	assert.Equal(t, int32(200), out.Axon.GetStatusCode(), "wrong axon status")
}

func TestHTTPError(t *testing.T) {
	err := &stream.HTTPError{Status: 403}
	assert.Equal(t, "http error: status: 403", err.Error(), "wrong message")
}
