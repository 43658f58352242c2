// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package synapse

import (
	"encoding/json"

	"github.com/bitmark-inc/axond/fault"
)

// TextPromptName - route for chat style prompts
const TextPromptName = "TextPromptSynapse"

// extra fields of a text prompt
const (
	fieldMessages = "messages"
	fieldResponse = "response"
)

// message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message - one entry in a conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func UserMessage(content string) Message      { return Message{Role: RoleUser, Content: content} }
func AssistantMessage(content string) Message { return Message{Role: RoleAssistant, Content: content} }
func SystemMessage(content string) Message    { return Message{Role: RoleSystem, Content: content} }

// NewTextPrompt - synapse carrying a conversation
func NewTextPrompt(messages ...Message) *Synapse {
	s := New(TextPromptName)
	setMessages(s, messages)
	return s
}

// NewTextPromptWithSystem - system prompt followed by a user prompt
func NewTextPromptWithSystem(system string, user string) *Synapse {
	return NewTextPrompt(SystemMessage(system), UserMessage(user))
}

// Messages - the conversation carried by a synapse
//
// values decoded from the wire are generic JSON, so convert through JSON
func Messages(s *Synapse) ([]Message, error) {
	value, ok := s.Extra[fieldMessages]
	if !ok {
		return nil, nil
	}
	if messages, ok := value.([]Message); ok {
		return messages, nil
	}
	data, err := json.Marshal(value)
	if nil != err {
		return nil, fault.InvalidJSON
	}
	var messages []Message
	if err := json.Unmarshal(data, &messages); nil != err {
		return nil, fault.InvalidJSON
	}
	return messages, nil
}

// AddMessage - append to the conversation
func AddMessage(s *Synapse, message Message) error {
	messages, err := Messages(s)
	if nil != err {
		return err
	}
	setMessages(s, append(messages, message))
	return nil
}

// SetResponse - store the completion
func SetResponse(s *Synapse, response string) {
	s.SetField(fieldResponse, response)
}

// Response - the completion, if any
func Response(s *Synapse) (string, bool) {
	return s.GetString(fieldResponse)
}

// UpdatePromptHash - body hash over the conversation only
func UpdatePromptHash(s *Synapse) {
	s.UpdateBodyHash([]string{fieldMessages})
}

func setMessages(s *Synapse, messages []Message) {
	if nil == messages {
		messages = []Message{}
	}
	s.SetField(fieldMessages, messages)
}
