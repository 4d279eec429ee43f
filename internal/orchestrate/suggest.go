// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrate

import (
	"bytes"
	"context"
	"strings"
	"text/template"

	"github.com/pdiddy/scholar-assistant/internal/llm"
	"github.com/pdiddy/scholar-assistant/pkg/types"
)

// defaultSuggestions are shown when the chat model cannot be reached.
const defaultSuggestions = "- Try using broader search terms\n- Check spelling and try synonyms"

var suggestionPromptTmpl = template.Must(template.New("suggestions").Parse(`A library search returned zero results.

Search terms: {{.Query}}
{{- if .ResourceType}}
Resource type: {{.ResourceType}}
{{- end}}

Suggest 2-3 short, concrete ways the user could rephrase or broaden the search.
Respond with ONLY a markdown bullet list (lines starting with "- "), nothing else.`))

// suggestions asks the chat model for zero-result advice. Any failure or
// off-format reply degrades to the fixed defaults.
func suggestions(ctx context.Context, client llm.Client, params types.SearchParams) string {
	var buf bytes.Buffer
	err := suggestionPromptTmpl.Execute(&buf, map[string]string{
		"Query":        params.Query,
		"ResourceType": string(params.ResourceType),
	})
	if err != nil {
		return defaultSuggestions
	}

	reply, err := client.Chat(ctx, []llm.Message{{Role: "user", Content: buf.String()}}, "")
	if err != nil {
		return defaultSuggestions
	}

	reply = strings.TrimSpace(reply)
	if !strings.HasPrefix(reply, "- ") {
		return defaultSuggestions
	}
	return reply
}
