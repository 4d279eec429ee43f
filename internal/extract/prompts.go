// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"text/template"
)

// extractionPromptTmpl is the prompt sent to the chat model to pull
// structured search parameters out of a conversation. It enumerates the
// JSON schema, the resource-type disambiguation rules, and date
// arithmetic anchored to the current date.
var extractionPromptTmpl = template.Must(template.New("extraction").Parse(`Extract search parameters from this conversation as JSON.

Conversation:
{{.Conversation}}

Required fields:
- "query": Main search terms (no Boolean operators) - INCLUDE publisher/source names (IEEE, ACM, etc.) in the query
- "limit": Number of results (default: 10)
- "resource_type": "article", "book", "journal", "thesis", or null
- "peer_reviewed": true or false
- "date_from": YYYYMMDD string or null (e.g., "20220101")
- "date_to": YYYYMMDD string or null (e.g., "{{.Today}}")
- "authors": list of author names mentioned as creators, or []

QUERY CONSTRUCTION RULES:
- Include the main topic/subject
- If publisher/source is mentioned (IEEE, ACM, Springer, etc.), append it to the query
- Example: "nursing students IEEE" or "machine learning ACM"

RESOURCE TYPE RULES (identify the NOUN, ignore adjectives):
- "articles" / "journal articles" / "peer reviewed articles" / "journals" / "peer reviewed journals" / "research journals" → "article"
- "books" / "ebooks" → "book"
- "thesis" / "theses" / "dissertation" / "dissertations" → "thesis"

DATE CALCULATION RULES (Current Year = {{.CurrentYear}}):
- "last N years" → Current Year - N + 1 to Current Year (e.g., "last 3 years" = "{{.ThreeYearsAgo}}0101" to "{{.Today}}")
- "since YYYY" → "YYYY0101" to "{{.Today}}"
- "YYYY to YYYY" → "YYYY0101" to "YYYY1231"

Examples:

User: "I need 5 articles about machine learning"
{"query": "machine learning", "limit": 5, "resource_type": "article", "peer_reviewed": false, "authors": []}

User: "Find peer reviewed journals on nursing education"
{"query": "nursing education", "limit": 10, "resource_type": "article", "peer_reviewed": true, "authors": []}

User: "Find dissertations on machine learning by Andrew Ng"
{"query": "machine learning", "limit": 10, "resource_type": "thesis", "peer_reviewed": false, "authors": ["Andrew Ng"]}

User: "Show me research on diabetes"
{"query": "diabetes", "limit": 10, "resource_type": null, "peer_reviewed": false, "authors": []}

Respond with ONLY valid JSON, nothing else.`))

type promptData struct {
	Conversation  string
	CurrentYear   int
	ThreeYearsAgo int
	Today         string
}

func renderExtractionPrompt(d promptData) (string, error) {
	var buf bytes.Buffer
	if err := extractionPromptTmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
