// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns a conversation into structured search
// parameters, preferring the chat model and falling back to
// deterministic text heuristics when it fails.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/scholar-assistant/internal/dates"
	"github.com/pdiddy/scholar-assistant/internal/llm"
	"github.com/pdiddy/scholar-assistant/pkg/types"
)

// nowFunc returns the current time; tests substitute it for determinism.
var nowFunc = time.Now

// Extractor pulls search parameters out of a conversation.
type Extractor struct {
	client llm.Client
	log    zerolog.Logger
}

// NewExtractor builds an extractor around a chat client.
func NewExtractor(client llm.Client, log zerolog.Logger) *Extractor {
	return &Extractor{
		client: client,
		log:    log.With().Str("component", "extract").Logger(),
	}
}

// Extract produces search parameters from the conversation. The chat
// model is asked first; any transport or parse failure routes to the
// heuristic fallback, so Extract never fails and every field carries at
// least its default.
func (e *Extractor) Extract(ctx context.Context, turns []types.Turn) types.SearchParams {
	transcript := Transcript(turns)

	res := e.llmExtract(ctx, transcript)
	if !res.ok {
		e.log.Warn().Str("reason", res.reason).Msg("falling back to heuristic extraction")
		return fallbackExtract(turns)
	}

	params := res.params
	if params.Limit <= 0 {
		params.Limit = types.DefaultLimit
	}
	params.Limit = clampLimit(params.Limit)

	// The model's dates win; only when it returned none do we scan the
	// transcript ourselves.
	if params.DateFrom == "" && params.DateTo == "" {
		params.DateFrom, params.DateTo = dates.ExtractRange(transcript)
	}

	e.log.Debug().
		Str("query", params.Query).
		Int("limit", params.Limit).
		Str("resource_type", string(params.ResourceType)).
		Bool("peer_reviewed", params.PeerReviewed).
		Msg("extracted parameters")
	return params
}

// Transcript renders turns as "role: content" lines.
func Transcript(turns []types.Turn) string {
	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(string(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Content)
	}
	return b.String()
}

// parseResult is a tagged outcome of the chat-model path. The fallback
// runs only when ok is false; reason says what went wrong.
type parseResult struct {
	params types.SearchParams
	ok     bool
	reason string
}

func parseFailure(format string, args ...any) parseResult {
	return parseResult{reason: fmt.Sprintf(format, args...)}
}

// flexString accepts a JSON string, number, or null. The extraction
// prompt asks for strings but models sometimes return bare numbers for
// dates.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*f = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// llmReply is the JSON shape the extraction prompt requests.
type llmReply struct {
	Query        string     `json:"query"`
	Limit        int        `json:"limit"`
	ResourceType flexString `json:"resource_type"`
	PeerReviewed bool       `json:"peer_reviewed"`
	DateFrom     flexString `json:"date_from"`
	DateTo       flexString `json:"date_to"`
	Authors      []string   `json:"authors"`
}

// llmExtract asks the chat model for parameters and parses its reply
// strictly. Anything short of valid JSON is a parse failure.
func (e *Extractor) llmExtract(ctx context.Context, transcript string) parseResult {
	now := nowFunc().UTC()
	prompt, err := renderExtractionPrompt(promptData{
		Conversation:  transcript,
		CurrentYear:   now.Year(),
		ThreeYearsAgo: now.Year() - 2,
		Today:         now.Format("20060102"),
	})
	if err != nil {
		return parseFailure("rendering prompt: %v", err)
	}

	reply, err := e.client.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, "")
	if err != nil {
		return parseFailure("chat: %v", err)
	}

	var parsed llmReply
	if err := json.Unmarshal([]byte(strings.TrimSpace(reply)), &parsed); err != nil {
		return parseFailure("parsing reply: %v", err)
	}

	params := types.SearchParams{
		Query:        strings.TrimSpace(parsed.Query),
		Limit:        parsed.Limit,
		ResourceType: types.ResourceType(parsed.ResourceType),
		PeerReviewed: parsed.PeerReviewed,
		DateFrom:     string(parsed.DateFrom),
		DateTo:       string(parsed.DateTo),
	}
	for _, a := range parsed.Authors {
		if a = strings.TrimSpace(a); a != "" {
			params.Authors = append(params.Authors, a)
		}
	}
	return parseResult{params: params, ok: true}
}
