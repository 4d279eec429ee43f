// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm defines the chat-completion contract the assistant depends
// on, and the Groq implementation of it.
package llm

import "context"

// Message is a single chat message in provider wire order.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is the chat-completion contract. A non-empty system prompt is
// prepended to messages as the first message. Implementations return the
// assistant's reply text verbatim.
type Client interface {
	Chat(ctx context.Context, messages []Message, system string) (string, error)
}
