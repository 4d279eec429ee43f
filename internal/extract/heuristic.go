// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-assistant/internal/dates"
	"github.com/pdiddy/scholar-assistant/pkg/types"
)

// typeRule pairs a detection pattern with the resource type it implies.
type typeRule struct {
	re *regexp.Regexp
	rt types.ResourceType
}

// typeRules is evaluated first-match-wins. Order matters: compound
// phrases come before the bare nouns they contain, so "journal articles"
// resolves to article while a plain "journals" resolves to journal, and
// "newspaper articles" wins over "articles".
var typeRules = []typeRule{
	{regexp.MustCompile(`\bconference\s+proceedings?\b|\bproceedings?\b`), types.ResourceConferenceProceeding},
	{regexp.MustCompile(`\bbook\s+chapters?\b|\bchapters?\b`), types.ResourceBookChapter},
	{regexp.MustCompile(`\bdissertations?\b|\btheses\b|\bthesis\b`), types.ResourceThesis},
	{regexp.MustCompile(`\bnewspaper\s+articles?\b|\bnews\s+articles?\b`), types.ResourceNewspaperArticle},
	{regexp.MustCompile(`\b(reference|encyclopedia|encyclopaedia|dictionary)\s+(entries?|articles?)\b`), types.ResourceReferenceEntry},
	{regexp.MustCompile(`\bgovernment\s+(documents?|publications?)\b`), types.ResourceGovernmentDocument},
	{regexp.MustCompile(`\bpatents?\b`), types.ResourcePatent},
	{regexp.MustCompile(`\breports?\b|\bwhite\s+papers?\b|\btech(nical)?\s+reports?\b`), types.ResourceReport},
	{regexp.MustCompile(`\breviews?\b`), types.ResourceReview},
	{regexp.MustCompile(`\bdatasets?\b|\bdata\s+sets?\b`), types.ResourceDataset},
	{regexp.MustCompile(`\bsoftware\b|\bcode\b|\bpackages?\b`), types.ResourceSoftware},
	{regexp.MustCompile(`\bweb\s*sites?\b|\bwebpages?\b|\bweb\s*pages?\b|\bweb\s*resources?\b`), types.ResourceWebsite},
	{regexp.MustCompile(`\bimages?\b|\bphotographs?\b|\bpictures?\b|\billustrations?\b`), types.ResourceImage},
	{regexp.MustCompile(`\bmaps?\b|\batlases?\b`), types.ResourceMap},
	{regexp.MustCompile(`\baudio\b|\bpodcasts?\b|\bsound\s+recordings?\b`), types.ResourceAudio},
	{regexp.MustCompile(`\barticles?\b|\bpapers?\b`), types.ResourceArticle},
	{regexp.MustCompile(`\bbooks?\b`), types.ResourceBook},
	{regexp.MustCompile(`\bvideos?\b|\bfilms?\b|\bmovies?\b`), types.ResourceVideo},
	{regexp.MustCompile(`\bjournals?\b|\bmagazines?\b`), types.ResourceJournal},
	{regexp.MustCompile(`\bscores?\b|\bsheet\s+music\b`), types.ResourceScore},
}

// DetectResourceType scans text for a resource-type hint. Empty when no
// rule matches.
func DetectResourceType(text string) types.ResourceType {
	s := strings.ToLower(text)
	for _, r := range typeRules {
		if r.re.MatchString(s) {
			return r.rt
		}
	}
	return ""
}

// boilerplateRes lists phrases stripped from a message before it is used
// as the search query: command verbs, politeness, count requests,
// resource-type nouns, and filter vocabulary that belongs in facets
// rather than in the term clause.
var boilerplateRes = []*regexp.Regexp{
	regexp.MustCompile(`\bi\s+need\b|\bi\s+want\b|\bi\s+am\s+looking\s+for\b|\bi'm\s+looking\s+for\b`),
	regexp.MustCompile(`\bplease\b|\bcould\s+you\b|\bcan\s+you\b`),
	regexp.MustCompile(`\b(list|show|find|search|look|retrieve|fetch|get|give)\b`),
	regexp.MustCompile(`\btop\s+\d+\b`),
	regexp.MustCompile(`\bpeer[\s-]*reviewed?\b|\bpeerreviewed\b|\brefereed\b`),
	regexp.MustCompile(`\b(journal\s+articles?|research\s+papers?|articles?|papers?|books?|journals?|theses|thesis|dissertations?|literature|references?|publications?|resources?)\b`),
	regexp.MustCompile(`\b(about|on|me|some)\b`),
}

// rePunctuation matches punctuation to drop from queries; hyphens stay
// so hyphenated terms survive.
var rePunctuation = regexp.MustCompile(`[^\p{L}\p{N}\s-]`)

var reSpaces = regexp.MustCompile(`\s+`)

// sanitizeQuery strips boilerplate and punctuation from one message and
// collapses whitespace. The result may be empty for type-only replies
// like "articles".
func sanitizeQuery(msg string) string {
	t := strings.ToLower(msg)
	t = stripAuthorPhrase(t)
	for _, re := range boilerplateRes {
		t = re.ReplaceAllString(t, " ")
	}
	t = rePunctuation.ReplaceAllString(t, " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(t, " "))
}

// stripAuthorPhrase removes a detected author phrase ("by X and Y",
// "authors: X, Y") from the message so the names do not leak into the
// term clause. Only the names up to the stopword are removed; the rest
// of the sentence stays.
func stripAuthorPhrase(t string) string {
	for _, re := range []*regexp.Regexp{reAuthorsLabel, reByAuthors} {
		loc := re.FindStringSubmatchIndex(t)
		if loc == nil {
			continue
		}
		phrase := t[loc[2]:loc[3]]
		cut := stopwordOffset(phrase)
		return t[:loc[0]] + " " + phrase[cut:] + t[loc[1]:]
	}
	return t
}

// SearchTerms returns what is left of a message once boilerplate is
// stripped: the actual search terms, or "" for a content-free message.
func SearchTerms(msg string) string {
	return sanitizeQuery(msg)
}

// MentionsPeerReview reports whether the text carries any peer-review
// vocabulary, negated or not.
func MentionsPeerReview(text string) bool {
	return rePeerReviewed.MatchString(strings.ToLower(text))
}

var (
	rePeerReviewed = regexp.MustCompile(`\bpeer[\s-]*review\w*\b|\bpeerreviewed\b|\brefereed\b`)
	reNegation     = regexp.MustCompile(`\bnot\b|\bno\b|\bwithout\b|\bnon-\w*|\bexclude\b|\bexcluding\b`)
	reYesReply     = regexp.MustCompile(`^\s*(yes|yeah|yep|sure|definitely|y)\b`)
	reNoReply      = regexp.MustCompile(`^\s*(no|nope|nah|n)\b`)
)

// isPeerReviewQuestion reports whether an assistant turn is asking the
// peer-review clarifying question.
func isPeerReviewQuestion(content string) bool {
	s := strings.ToLower(content)
	return strings.Contains(s, "peer") && strings.Contains(s, "review") && strings.Contains(s, "?")
}

// detectPeerReviewed scans the conversation for peer-review intent.
// A peer-review keyword turns the filter on unless a negation marker
// appears in the same message. A bare yes/no user reply directly after
// the assistant's peer-review question is honored positionally.
func detectPeerReviewed(turns []types.Turn) bool {
	result := false
	for i, turn := range turns {
		if turn.Role == types.RoleUser {
			s := strings.ToLower(turn.Content)
			if rePeerReviewed.MatchString(s) {
				result = !reNegation.MatchString(s)
				continue
			}
			if i > 0 && turns[i-1].Role == types.RoleAssistant && isPeerReviewQuestion(turns[i-1].Content) {
				if reYesReply.MatchString(s) {
					result = true
				} else if reNoReply.MatchString(s) {
					result = false
				}
			}
		}
	}
	return result
}

var (
	reTopN       = regexp.MustCompile(`\btop\s+(\d{1,3})\b`)
	reSmallInt   = regexp.MustCompile(`\b\d{1,2}\b`)
	reUnitAfter  = regexp.MustCompile(`^\s*(years?|months?|weeks?|days?)\b`)
	reLastBefore = regexp.MustCompile(`\b(last|past)\s*$`)
)

// detectLimit finds a requested result count: "top N" first, then a
// small standalone integer that is not part of a date phrase. Values are
// clamped to [1, 50]; 0 means nothing was found.
func detectLimit(text string) int {
	s := strings.ToLower(text)
	if m := reTopN.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return clampLimit(n)
	}
	for _, loc := range reSmallInt.FindAllStringIndex(s, -1) {
		if reUnitAfter.MatchString(s[loc[1]:]) {
			continue
		}
		if reLastBefore.MatchString(s[:loc[0]]) {
			continue
		}
		n, _ := strconv.Atoi(s[loc[0]:loc[1]])
		if n == 0 {
			continue
		}
		return clampLimit(n)
	}
	return 0
}

func clampLimit(n int) int {
	if n < 1 {
		return 1
	}
	if n > types.MaxLimit {
		return types.MaxLimit
	}
	return n
}

var (
	reAuthorsLabel = regexp.MustCompile(`(?i)\bauthors?\s*:\s*([^.;\n]+)`)
	reByAuthors    = regexp.MustCompile(`(?i)\bby\s+([^.;,\n]+(?:,\s*[^.;,\n]+)*)`)
)

// authorStopwords end the author phrase in a "by X and Y" construction;
// anything from the stopword on belongs to the rest of the sentence.
var authorStopwords = map[string]bool{
	"on": true, "about": true, "from": true, "since": true, "in": true,
	"for": true, "between": true, "before": true, "after": true,
	"during": true, "published": true, "regarding": true,
}

var reHasDigit = regexp.MustCompile(`\d`)

// detectAuthors extracts creator names from "author: X", "authors: X, Y"
// and "by X and Y" phrasings. The author phrase is cut at the first
// stopword, split on "and" and commas, and candidates containing digits
// are rejected ("by 2020 and 2021" names no one).
func detectAuthors(text string) []string {
	if m := reAuthorsLabel.FindStringSubmatch(text); m != nil {
		return splitAuthors(m[1][:stopwordOffset(m[1])])
	}
	if m := reByAuthors.FindStringSubmatch(text); m != nil {
		return splitAuthors(m[1][:stopwordOffset(m[1])])
	}
	return nil
}

// stopwordOffset returns the byte offset where the author phrase ends:
// the position of the first stopword, or len(phrase) when none appears.
func stopwordOffset(phrase string) int {
	lower := strings.ToLower(phrase)
	offset := 0
	for offset < len(lower) {
		for offset < len(lower) && lower[offset] == ' ' {
			offset++
		}
		end := strings.IndexByte(lower[offset:], ' ')
		if end < 0 {
			end = len(lower) - offset
		}
		word := strings.Trim(lower[offset:offset+end], ",.;:")
		if authorStopwords[word] {
			return offset
		}
		offset += end
	}
	return len(phrase)
}

func splitAuthors(phrase string) []string {
	parts := regexp.MustCompile(`(?i)\s*,\s*|\s+and\s+`).Split(phrase, -1)
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || reHasDigit.MatchString(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// fallbackExtract reconstructs search parameters deterministically when
// the chat model is unavailable or returns something unparsable. It
// never fails: every field gets a documented default.
func fallbackExtract(turns []types.Turn) types.SearchParams {
	var userMsgs []string
	allText := &strings.Builder{}
	for _, turn := range turns {
		allText.WriteString(turn.Content)
		allText.WriteString("\n")
		if turn.Role == types.RoleUser {
			userMsgs = append(userMsgs, turn.Content)
		}
	}

	params := types.SearchParams{Limit: types.DefaultLimit}
	params.ResourceType = DetectResourceType(allText.String())
	params.PeerReviewed = detectPeerReviewed(turns)

	// The query comes from the most recent user message that still says
	// something after boilerplate stripping; bare type-only replies like
	// "articles" are skipped.
	for i := len(userMsgs) - 1; i >= 0; i-- {
		if q := sanitizeQuery(userMsgs[i]); q != "" {
			params.Query = q
			break
		}
	}
	if params.Query == "" {
		params.Query = "research"
	}

	userText := strings.Join(userMsgs, "\n")
	if n := detectLimit(userText); n > 0 {
		params.Limit = n
	}
	params.Authors = detectAuthors(userText)
	params.DateFrom, params.DateTo = dates.ExtractRange(userText)

	return params
}
