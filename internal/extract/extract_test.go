// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/scholar-assistant/internal/llm"
	"github.com/pdiddy/scholar-assistant/pkg/types"
)

// stubClient returns a fixed reply or error and records invocations.
type stubClient struct {
	reply string
	err   error
	calls int
}

func (s *stubClient) Chat(_ context.Context, _ []llm.Message, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func userTurn(content string) types.Turn {
	return types.Turn{Role: types.RoleUser, Content: content}
}

func assistantTurn(content string) types.Turn {
	return types.Turn{Role: types.RoleAssistant, Content: content}
}

func TestExtractLLMPath(t *testing.T) {
	client := &stubClient{reply: `{
		"query": "nursing education",
		"limit": 5,
		"resource_type": "article",
		"peer_reviewed": true,
		"date_from": "20200101",
		"date_to": "20221231",
		"authors": ["Jane Doe"]
	}`}
	e := NewExtractor(client, zerolog.Nop())

	params := e.Extract(context.Background(), []types.Turn{
		userTurn("find peer reviewed articles on nursing education since 2018"),
	})

	assert.Equal(t, "nursing education", params.Query)
	assert.Equal(t, 5, params.Limit)
	assert.Equal(t, types.ResourceArticle, params.ResourceType)
	assert.True(t, params.PeerReviewed)
	// Model-provided dates win over the "since 2018" in the transcript.
	assert.Equal(t, "20200101", params.DateFrom)
	assert.Equal(t, "20221231", params.DateTo)
	assert.Equal(t, []string{"Jane Doe"}, params.Authors)
	assert.Equal(t, 1, client.calls)
}

func TestExtractLLMOmittedDatesFallBackToText(t *testing.T) {
	client := &stubClient{reply: `{"query": "machine learning", "limit": 10, "resource_type": null}`}
	e := NewExtractor(client, zerolog.Nop())

	params := e.Extract(context.Background(), []types.Turn{
		userTurn("machine learning papers since 2019"),
	})

	assert.Equal(t, "machine learning", params.Query)
	assert.Equal(t, "2019", params.DateFrom)
	assert.Empty(t, params.DateTo)
}

func TestExtractLLMNumericDates(t *testing.T) {
	client := &stubClient{reply: `{"query": "ai", "limit": 10, "date_from": 20200101, "date_to": 20211231}`}
	e := NewExtractor(client, zerolog.Nop())

	params := e.Extract(context.Background(), []types.Turn{userTurn("ai from 2020 to 2021")})

	assert.Equal(t, "20200101", params.DateFrom)
	assert.Equal(t, "20211231", params.DateTo)
}

func TestExtractLLMDefaultsAndClamping(t *testing.T) {
	tests := []struct {
		name      string
		reply     string
		wantLimit int
	}{
		{"missing limit defaults", `{"query": "x"}`, 10},
		{"limit above max clamps", `{"query": "x", "limit": 200}`, 50},
		{"negative limit defaults", `{"query": "x", "limit": -3}`, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(&stubClient{reply: tt.reply}, zerolog.Nop())
			params := e.Extract(context.Background(), []types.Turn{userTurn("anything about x")})
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

func TestExtractFallsBackOnChatError(t *testing.T) {
	client := &stubClient{err: errors.New("connection refused")}
	e := NewExtractor(client, zerolog.Nop())

	params := e.Extract(context.Background(), []types.Turn{
		userTurn("I need 5 articles about climate change impacts on agriculture"),
	})

	assert.Equal(t, types.ResourceArticle, params.ResourceType)
	assert.Equal(t, 5, params.Limit)
	assert.Contains(t, params.Query, "climate change")
	assert.False(t, params.PeerReviewed)
}

func TestExtractFallsBackOnMalformedJSON(t *testing.T) {
	client := &stubClient{reply: "Sure! Here are your parameters: query=ai"}
	e := NewExtractor(client, zerolog.Nop())

	params := e.Extract(context.Background(), []types.Turn{
		userTurn("find books about renaissance art"),
	})

	assert.Equal(t, types.ResourceBook, params.ResourceType)
	assert.Contains(t, params.Query, "renaissance art")
}

func TestDetectResourceType(t *testing.T) {
	tests := []struct {
		text string
		want types.ResourceType
	}{
		{"I want 3 journal articles about AI", types.ResourceArticle},
		{"I need 5 journals about machine learning", types.ResourceJournal},
		{"find research papers on biology", types.ResourceArticle},
		{"show me books about history", types.ResourceBook},
		{"thesis about NLP", types.ResourceThesis},
		{"doctoral dissertations on AI", types.ResourceThesis},
		{"conference proceedings on HCI", types.ResourceConferenceProceeding},
		{"book chapters on memory", types.ResourceBookChapter},
		{"newspaper articles about the election", types.ResourceNewspaperArticle},
		{"encyclopedia entries on birds", types.ResourceReferenceEntry},
		{"government documents on policy", types.ResourceGovernmentDocument},
		{"datasets about weather", types.ResourceDataset},
		{"patents on batteries", types.ResourcePatent},
		{"white papers on cloud security", types.ResourceReport},
		{"videos about chemistry", types.ResourceVideo},
		{"sheet music by Bach", types.ResourceScore},
		{"podcasts about startups", types.ResourceAudio},
		{"maps of medieval europe", types.ResourceMap},
		{"just a topic with no type", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectResourceType(tt.text))
		})
	}
}

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{"strips command verbs and nouns", "Show top 10 machine learning articles", "machine learning"},
		{"strips politeness", "please find me papers about deep learning", "deep learning"},
		{"strips peer review phrases", "peer-reviewed articles on nursing education", "nursing education"},
		{"keeps hyphenated terms", "articles about state-of-the-art NLP", "state-of-the-art nlp"},
		{"type-only reply strips to nothing", "articles", ""},
		{"strips author phrase but keeps topic", "papers by Andrew Ng about deep learning", "deep learning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeQuery(tt.msg))
		})
	}
}

func TestFallbackQuerySkipsTypeOnlyReply(t *testing.T) {
	params := fallbackExtract([]types.Turn{
		userTurn("I need research about ADHD in children"),
		assistantTurn("What type of resources would you like? Articles, books, thesis, or any type?"),
		userTurn("articles"),
	})

	assert.Equal(t, types.ResourceArticle, params.ResourceType)
	assert.Contains(t, params.Query, "adhd")
}

func TestDetectPeerReviewed(t *testing.T) {
	tests := []struct {
		name  string
		turns []types.Turn
		want  bool
	}{
		{
			name:  "plain keyword",
			turns: []types.Turn{userTurn("peer reviewed articles on AI")},
			want:  true,
		},
		{
			name:  "hyphenated keyword",
			turns: []types.Turn{userTurn("peer-reviewed papers please")},
			want:  true,
		},
		{
			name:  "fused keyword",
			turns: []types.Turn{userTurn("peerreviewed research on ML")},
			want:  true,
		},
		{
			name:  "negated in same message",
			turns: []types.Turn{userTurn("find articles that are not peer reviewed")},
			want:  false,
		},
		{
			name:  "without negation marker",
			turns: []types.Turn{userTurn("articles without peer review")},
			want:  false,
		},
		{
			name: "yes after the question",
			turns: []types.Turn{
				userTurn("articles about AI"),
				assistantTurn("Would you like only peer-reviewed articles? (yes/no)"),
				userTurn("yes"),
			},
			want: true,
		},
		{
			name: "no after the question",
			turns: []types.Turn{
				userTurn("articles about AI"),
				assistantTurn("Would you like only peer-reviewed articles? (yes/no)"),
				userTurn("no"),
			},
			want: false,
		},
		{
			name:  "no keyword at all",
			turns: []types.Turn{userTurn("books about history")},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectPeerReviewed(tt.turns))
		})
	}
}

func TestDetectLimit(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"Show top 5 articles", 5},
		{"List top 1 paper", 1},
		{"Get top 100 results", 50},
		{"I need 5 articles about climate change", 5},
		{"research from the last 3 years", 0},
		{"papers from the last 2 months", 0},
		{"articles between 2018 and 2022", 0},
		{"no numbers here", 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, detectLimit(tt.text))
		})
	}
}

func TestDetectAuthors(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Papers by Alan Turing", []string{"Alan Turing"}},
		{"author: Jane Doe on AI", []string{"Jane Doe"}},
		{"authors: Smith, Jones on quantum", []string{"Smith", "Jones"}},
		{"Find works by Andrew Ng and Yann LeCun", []string{"Andrew Ng", "Yann LeCun"}},
		{"papers by José García on español", []string{"José García"}},
		{"articles by 2020 and 2021", nil},
		{"nothing to see here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, detectAuthors(tt.text))
		})
	}
}

func TestFallbackExtractComplexRequest(t *testing.T) {
	params := fallbackExtract([]types.Turn{
		userTurn("Show top 15 peer-reviewed journal articles by Andrew Ng and Geoffrey Hinton about deep learning between 2015 and 2023"),
	})

	assert.Contains(t, params.Query, "deep learning")
	assert.Equal(t, 15, params.Limit)
	assert.Equal(t, types.ResourceArticle, params.ResourceType)
	assert.True(t, params.PeerReviewed)
	assert.Equal(t, []string{"Andrew Ng", "Geoffrey Hinton"}, params.Authors)
	assert.Equal(t, "2015", params.DateFrom)
	assert.Equal(t, "2023", params.DateTo)
}

func TestFallbackExtractDefaults(t *testing.T) {
	params := fallbackExtract(nil)

	assert.Equal(t, "research", params.Query)
	assert.Equal(t, types.DefaultLimit, params.Limit)
	assert.Empty(t, params.ResourceType)
	assert.False(t, params.PeerReviewed)
	assert.Empty(t, params.Authors)
	assert.Empty(t, params.DateFrom)
	assert.Empty(t, params.DateTo)
}

func TestTranscript(t *testing.T) {
	got := Transcript([]types.Turn{
		userTurn("hello"),
		assistantTurn("hi, what topic?"),
	})
	assert.Equal(t, "user: hello\nassistant: hi, what topic?", got)
}
