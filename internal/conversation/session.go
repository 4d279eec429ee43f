// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package conversation drives the turn-by-turn readiness state machine:
// it decides when a conversation carries enough information to search,
// and otherwise asks exactly one clarifying question at a time.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/scholar-assistant/internal/extract"
	"github.com/pdiddy/scholar-assistant/internal/llm"
	"github.com/pdiddy/scholar-assistant/pkg/types"
)

// State is the readiness of one search cycle.
type State int

const (
	// Gathering means more information is needed before searching.
	Gathering State = iota

	// Ready means the orchestrator may issue a search.
	Ready
)

// Session holds one conversation's state. It is a value owned by the
// caller (one per conversation) and is never shared across sessions.
type Session struct {
	Turns []types.Turn
	State State

	peerReviewQuestionAsked bool
}

// Reset starts a new search cycle after results were shown. History is
// kept so follow-up requests can refer back to it.
func (s *Session) Reset() {
	s.State = Gathering
}

// Reply is the assistant's reaction to one user turn.
type Reply struct {
	// Message is the clarifying question or notice to show the user.
	// Empty when Ready is true.
	Message string

	// Ready reports that the session transitioned to Ready and the
	// orchestrator should run the search.
	Ready bool
}

const (
	// readySentinel is the exact reply the follow-up prompt uses to
	// signal that the model considers the conversation complete.
	readySentinel = "READY_TO_SEARCH"

	noTermsMessage     = "Please provide search terms, e.g., 'List top 10 machine learning articles'."
	fallbackQuestion   = "What research topic would you like to explore today?"
	peerReviewQuestion = "Would you like only peer-reviewed results? (yes/no)"
)

// triggerPhrases short-circuit straight to Ready when present anywhere
// in the user turn.
var triggerPhrases = []string{
	"search now", "find articles", "show me", "search for",
	"look for", "get articles", "retrieve", "fetch", "topic about",
}

// reIntentTrigger matches intent verbs combined with a concrete
// resource noun ("I want thesis about nursing", "give me 5 books").
// A bare topic ("articles about AI") or an intent without a resource
// noun ("I want to learn about AI") must not match.
var reIntentTrigger = regexp.MustCompile(
	`\b(?:i\s+)?(?:need|want)\b.*\b(?:articles?|books?|journals?|thesis|theses|dissertations?)\b` +
		`|\b(?:find|get|give)\s+me\b.*\b(?:articles?|books?|journals?|thesis|theses|dissertations?)\b`)

// reResearchNoun marks messages that talk about scholarly material at
// all, used to decide when the peer-review question is worth asking.
var reResearchNoun = regexp.MustCompile(`\b(?:research|articles?|papers?|journals?)\b`)

// cannedQuestions are fixed clarifying questions for broad single-word
// or short-phrase openers; they are answered without the chat model.
var cannedQuestions = map[string]string{
	"research":         "What type of resources would you like? Articles, books, thesis, or any type?",
	"articles":         "What topic would you like articles about?",
	"papers":           "What topic would you like papers about?",
	"publications":     "What type of resources would you like? Articles, books, thesis, or any type?",
	"biology":          "Biology is a broad field! What specific aspect are you interested in?",
	"chemistry":        "Chemistry is a broad field! What specific aspect are you interested in?",
	"physics":          "Physics is a broad field! What specific aspect are you interested in?",
	"computer science": "Computer science is a broad field! What specific aspect are you interested in?",
	"psychology":       "Psychology is a broad field! What specific aspect are you interested in?",
	"history":          "History is a broad field! What specific aspect are you interested in?",
	"mathematics":      "Mathematics is a broad field! What specific aspect are you interested in?",
}

// Analyzer evaluates conversation turns against the readiness rules.
type Analyzer struct {
	client llm.Client
	log    zerolog.Logger
}

// NewAnalyzer builds an analyzer around a chat client.
func NewAnalyzer(client llm.Client, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		client: client,
		log:    log.With().Str("component", "conversation").Logger(),
	}
}

// Advance processes one user turn. The turn is appended to the session;
// when the reply is a question it is appended as an assistant turn too.
// Failures never escape: a chat error degrades to a generic clarifying
// question and the session stays in Gathering.
func (a *Analyzer) Advance(ctx context.Context, s *Session, input string) Reply {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Reply{Message: noTermsMessage}
	}

	s.Turns = append(s.Turns, types.Turn{Role: types.RoleUser, Content: trimmed})

	// A one-word resource reply answers a pending clarifying question.
	if a.isResourceReplyToQuestion(s, trimmed) {
		return a.ready(s)
	}

	if isExplicitTrigger(trimmed) {
		if !hasSearchTerms(s) {
			return a.ask(s, noTermsMessage)
		}
		a.log.Debug().Str("input", trimmed).Msg("explicit search trigger")
		return a.ready(s)
	}

	if q, ok := cannedQuestions[normalizeTopic(trimmed)]; ok {
		return a.ask(s, q)
	}

	if !hasSearchTerms(s) {
		return a.ask(s, noTermsMessage)
	}

	if a.shouldAskPeerReview(s, trimmed) {
		s.peerReviewQuestionAsked = true
		return a.ask(s, peerReviewQuestion)
	}

	return a.followUp(ctx, s)
}

// followUp delegates the next question to the chat model. The model's
// reply is used verbatim unless it is exactly the ready sentinel.
func (a *Analyzer) followUp(ctx context.Context, s *Session) Reply {
	messages := make([]llm.Message, 0, len(s.Turns))
	for _, turn := range s.Turns {
		messages = append(messages, llm.Message{Role: string(turn.Role), Content: turn.Content})
	}

	reply, err := a.client.Chat(ctx, messages, followUpSystemPrompt)
	if err != nil {
		a.log.Warn().Err(err).Msg("follow-up chat failed")
		return a.ask(s, fallbackQuestion)
	}

	if strings.TrimSpace(reply) == readySentinel {
		return a.ready(s)
	}
	return a.ask(s, reply)
}

func (a *Analyzer) ready(s *Session) Reply {
	s.State = Ready
	return Reply{Ready: true}
}

func (a *Analyzer) ask(s *Session, question string) Reply {
	s.Turns = append(s.Turns, types.Turn{Role: types.RoleAssistant, Content: question})
	return Reply{Message: question}
}

// isResourceReplyToQuestion reports whether the input is a bare
// resource-type answer ("articles") to a question the assistant just
// asked. Without a pending question a bare type is an opener, not an
// answer.
func (a *Analyzer) isResourceReplyToQuestion(s *Session, input string) bool {
	if len(strings.Fields(input)) > 2 {
		return false
	}
	if extract.DetectResourceType(input) == "" {
		return false
	}
	// The current user turn is already appended; look before it.
	for i := len(s.Turns) - 2; i >= 0; i-- {
		if s.Turns[i].Role == types.RoleAssistant {
			return strings.Contains(s.Turns[i].Content, "?")
		}
	}
	return false
}

func isExplicitTrigger(input string) bool {
	lower := strings.ToLower(input)
	for _, phrase := range triggerPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return reIntentTrigger.MatchString(lower)
}

// hasSearchTerms reports whether any user turn in the session carries
// actual search terms once boilerplate is stripped.
func hasSearchTerms(s *Session) bool {
	for _, turn := range s.Turns {
		if turn.Role == types.RoleUser && extract.SearchTerms(turn.Content) != "" {
			return true
		}
	}
	return false
}

// shouldAskPeerReview gates the fixed peer-review question: the message
// must talk about scholarly material, no peer-review indicator may have
// appeared anywhere in the conversation, and the question is asked at
// most once per session.
func (a *Analyzer) shouldAskPeerReview(s *Session, input string) bool {
	if s.peerReviewQuestionAsked {
		return false
	}
	if !reResearchNoun.MatchString(strings.ToLower(input)) {
		return false
	}
	for _, turn := range s.Turns {
		if extract.MentionsPeerReview(turn.Content) {
			return false
		}
	}
	return true
}

var reTopicPunct = regexp.MustCompile(`[^\p{L}\s]`)

func normalizeTopic(input string) string {
	t := strings.ToLower(strings.TrimSpace(input))
	t = reTopicPunct.ReplaceAllString(t, "")
	return strings.Join(strings.Fields(t), " ")
}
