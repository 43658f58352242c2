// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/bitmark-inc/axond/axon"
	"github.com/bitmark-inc/axond/synapse"
)

const (
	echoRoute  = "Echo"
	countRoute = "Count"

	defaultCount = 10
	maximumCount = 1000
)

// the demonstration routes served by the daemon
func registerHandlers(registry *axon.Registry) error {
	if err := registry.AttachFunc(echoRoute, echo); nil != err {
		return err
	}
	if err := registry.AttachFunc(synapse.TextPromptName, textPrompt); nil != err {
		return err
	}
	return registry.AttachStream(countRoute, "text/plain; charset=utf-8", axon.StreamHandlerFunc(count))
}

// every field comes back with "echo" added
func echo(ctx context.Context, request *synapse.Synapse) *synapse.Synapse {
	request.SetField("echo", true)
	return request
}

// answer the last user message with itself
func textPrompt(ctx context.Context, request *synapse.Synapse) *synapse.Synapse {
	messages, err := synapse.Messages(request)
	if nil != err {
		request.Axon = synapse.NewTerminalInfo().WithStatus(synapse.StatusBadRequest, err.Error())
		return request
	}

	last := ""
	for _, m := range messages {
		if synapse.RoleUser == m.Role {
			last = m.Content
		}
	}
	if "" == last {
		request.Axon = synapse.NewTerminalInfo().WithStatus(synapse.StatusBadRequest, "no user message")
		return request
	}

	response := "you said: " + last
	synapse.SetResponse(request, response)
	if err := synapse.AddMessage(request, synapse.AssistantMessage(response)); nil != err {
		request.Axon = synapse.NewTerminalInfo().WithStatus(synapse.StatusInternalError, err.Error())
	}
	return request
}

// one line per number from 1 to the "n" field
func count(ctx context.Context, request *synapse.Synapse, w io.Writer) error {
	n := defaultCount
	if value, ok := request.GetField("n"); ok {
		if f, ok := value.(float64); ok && f >= 1 {
			n = int(f)
		}
	}
	if n > maximumCount {
		n = maximumCount
	}

	for i := 1; i <= n; i += 1 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := fmt.Fprintf(w, "%d\n", i); nil != err {
			return err
		}
	}
	return nil
}
