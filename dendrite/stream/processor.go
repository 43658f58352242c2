// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stream

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Processor - cuts chunks from the front of the buffered bytes
//
// Process returns the number of bytes consumed; zero means more data
// is needed.  Consumed bytes with a nil chunk are skipped.  End sees
// whatever is left once the body is exhausted.
type Processor interface {
	Process(buffer []byte) (chunk interface{}, consumed int, err error)
	End(rest []byte) (chunk interface{}, ok bool, err error)
}

// DefaultDelimiter - separates text chunks
const DefaultDelimiter = '\n'

// Text - delimited UTF-8 text, chunks are strings without the delimiter
type Text struct {
	Delimiter byte
}

// NewText - newline delimited text
func NewText() *Text {
	return &Text{Delimiter: DefaultDelimiter}
}

// Process - one string up to the delimiter
func (t *Text) Process(buffer []byte) (interface{}, int, error) {
	i := bytes.IndexByte(buffer, t.Delimiter)
	if i < 0 {
		return nil, 0, nil
	}
	return string(buffer[:i]), i + 1, nil
}

// End - text after the last delimiter
func (t *Text) End(rest []byte) (interface{}, bool, error) {
	if 0 == len(rest) {
		return nil, false, nil
	}
	return string(rest), true, nil
}

// JSONLines - one JSON value per line, chunks are json.RawMessage
type JSONLines struct{}

// NewJSONLines - newline delimited JSON
func NewJSONLines() *JSONLines {
	return &JSONLines{}
}

// Process - one JSON value, blank lines are skipped
func (j *JSONLines) Process(buffer []byte) (interface{}, int, error) {
	i := bytes.IndexByte(buffer, '\n')
	if i < 0 {
		return nil, 0, nil
	}
	chunk, err := decodeLine(buffer[:i])
	return chunk, i + 1, err
}

// End - a final line without a newline
func (j *JSONLines) End(rest []byte) (interface{}, bool, error) {
	chunk, err := decodeLine(rest)
	if nil != err {
		return nil, false, err
	}
	return chunk, nil != chunk, nil
}

func decodeLine(line []byte) (interface{}, error) {
	line = bytes.TrimSpace(line)
	if 0 == len(line) {
		return nil, nil
	}
	var raw json.RawMessage
	if err := json.Unmarshal(line, &raw); nil != err {
		return nil, err
	}
	return raw, nil
}

// Event - one server-sent event
type Event struct {
	Event string
	Data  string
	ID    string
}

// SSE - server-sent events, chunks are Event values
//
// an event ends at a blank line; events without data are skipped
type SSE struct{}

// NewSSE - server-sent event processor
func NewSSE() *SSE {
	return &SSE{}
}

// Process - one event up to its blank line
func (s *SSE) Process(buffer []byte) (interface{}, int, error) {
	i := bytes.Index(buffer, []byte("\n\n"))
	if i < 0 {
		return nil, 0, nil
	}
	event, ok := parseEvent(string(buffer[:i]))
	if !ok {
		return nil, i + 2, nil
	}
	return event, i + 2, nil
}

// End - an event the server did not terminate
func (s *SSE) End(rest []byte) (interface{}, bool, error) {
	event, ok := parseEvent(string(rest))
	if !ok {
		return nil, false, nil
	}
	return event, true, nil
}

func parseEvent(text string) (Event, bool) {
	event := Event{}
	data := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		switch {
		case strings.HasPrefix(line, "event:"):
			event.Event = strings.TrimSpace(line[len("event:"):])
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimSpace(line[len("data:"):]))
		case strings.HasPrefix(line, "id:"):
			event.ID = strings.TrimSpace(line[len("id:"):])
		}
	}
	event.Data = strings.Join(data, "\n")
	if "" == event.Data {
		return event, false
	}
	return event, true
}
