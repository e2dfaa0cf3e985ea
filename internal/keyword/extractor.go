package keyword

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"unicode/utf8"

	"TrendSentinel/internal/llm"
)

// ErrNoKeyword is returned when every extraction strategy has been
// exhausted. Callers must treat it as "cannot proceed", not as an
// empty-string keyword.
var ErrNoKeyword = errors.New("no keyword could be extracted")

// quotedPatterns match substrings wrapped in common quote glyph pairs.
var quotedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"([^"]{2,})"`),
	regexp.MustCompile(`'([^']{2,})'`),
	regexp.MustCompile(`“([^”]{2,})”`),
	regexp.MustCompile(`‘([^’]{2,})’`),
	regexp.MustCompile(`「([^」]{2,})」`),
	regexp.MustCompile(`『([^』]{2,})』`),
}

var hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

// templatePatterns capture the candidate preceding trend/market request
// vocabulary. Candidate capture is non-greedy so only the nearest phrase
// before the vocabulary is taken.
var templatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(.+?)\s*(?:의\s*)?(?:트렌드|트랜드|trend)`),
	regexp.MustCompile(`(?i)(.+?)\s*(?:시장|수요)\s*(?:전망|분석|동향|규모)`),
	regexp.MustCompile(`(?i)(.+?)\s*(?:에\s*대한|관련)\s*(?:트렌드|분석|동향)`),
}

// stopwords never qualify as keywords on their own (lowercase-matched).
var stopwords = map[string]bool{
	"트렌드": true, "트랜드": true, "trend": true, "분석": true,
	"알려줘": true, "보여줘": true, "해줘": true, "봐줘": true, "궁금해": true,
	"요즘": true, "최근": true, "인기": true, "유행": true,
	"검색량": true, "관심도": true, "소비": true,
	"이거": true, "그거": true, "저거": true, "이것": true, "그것": true,
	"뭐": true, "뭐가": true, "어때": true, "좀": true, "제발": true,
	"관련": true, "대한": true, "대해": true,
	"please": true, "the": true, "this": true, "that": true, "analysis": true,
}

// requestVocab are trend/analysis request words excluded during token
// fallback even when they are not stopwords.
var requestVocab = map[string]bool{
	"트렌드": true, "트랜드": true, "trend": true,
	"분석": true, "분석해줘": true, "알려줘": true, "보여줘": true,
	"해줘": true, "봐줘": true, "조회": true, "확인": true,
	"시장": true, "수요": true, "전망": true, "동향": true, "데이터": true,
}

// suffixes stripped from the end of a candidate.
var trailingSuffixes = []string{
	"트렌드", "트랜드", "trend", "분석", "시장", "수요", "전망", "동향", "관련",
}

// prefixes stripped from the front of a candidate (whole leading words).
var leadingPrefixes = []string{
	"이", "그", "저", "이거", "그거", "저거", "요즘", "최근", "관련", "대한", "우리",
}

const wrappingGlyphs = `"'“”‘’「」『』()[]{}<>`

// Extractor derives a search keyword from free-form request text using
// layered heuristics with an optional generative fallback.
type Extractor struct {
	LLM llm.Client
}

func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{LLM: client}
}

// Extract runs the strategies in priority order and returns the first
// candidate that survives cleaning. When every heuristic fails and
// allowGenerative is set, one generative call is attempted before
// giving up with ErrNoKeyword.
func (e *Extractor) Extract(ctx context.Context, text string, allowGenerative bool) (string, error) {
	if kw, ok := extractQuoted(text); ok {
		return kw, nil
	}
	if kw, ok := extractHashtag(text); ok {
		return kw, nil
	}
	if kw, ok := extractTemplate(text); ok {
		return kw, nil
	}
	if kw, ok := extractTokens(text); ok {
		return kw, nil
	}
	if allowGenerative && e.LLM != nil {
		if kw, ok := e.extractGenerative(ctx, text); ok {
			return kw, nil
		}
	}
	return "", ErrNoKeyword
}

func extractQuoted(text string) (string, bool) {
	for _, p := range quotedPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if kw, ok := clean(m[1]); ok {
				return kw, true
			}
		}
	}
	return "", false
}

func extractHashtag(text string) (string, bool) {
	if m := hashtagPattern.FindStringSubmatch(text); m != nil {
		if kw, ok := clean(m[1]); ok {
			return kw, true
		}
	}
	return "", false
}

func extractTemplate(text string) (string, bool) {
	for _, p := range templatePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if kw, ok := clean(m[1]); ok {
				return kw, true
			}
		}
	}
	return "", false
}

func extractTokens(text string) (string, bool) {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ','
	})

	var survivors []string
	for _, tok := range tokens {
		tok = strings.Trim(tok, wrappingGlyphs)
		lower := strings.ToLower(tok)
		if tok == "" || stopwords[lower] || requestVocab[lower] {
			continue
		}
		survivors = append(survivors, tok)
		if len(survivors) == 2 {
			break
		}
	}
	if len(survivors) == 0 {
		return "", false
	}
	return clean(strings.Join(survivors, " "))
}

func (e *Extractor) extractGenerative(ctx context.Context, text string) (string, bool) {
	res := e.LLM.Chat(ctx, []llm.Message{
		{Role: "system", Content: "사용자의 마케팅 분석 요청에서 검색 키워드를 하나만 추출한다. 설명 없이 키워드만 한 줄로 답하라."},
		{Role: "user", Content: text},
	})
	if !res.Success {
		log.Printf("[WARN] generative keyword extraction failed: %s", res.Err)
		return "", false
	}
	firstLine := res.ReplyText
	if idx := strings.IndexByte(firstLine, '\n'); idx >= 0 {
		firstLine = firstLine[:idx]
	}
	return clean(firstLine)
}

// clean normalizes a candidate and reports whether it is usable:
// wrapping glyphs and whitespace are trimmed, trailing trend/market
// vocabulary and leading demonstrative words are stripped, and the
// result must be at least two runes long and not a stopword.
func clean(candidate string) (string, bool) {
	c := strings.TrimSpace(candidate)
	c = strings.Trim(c, wrappingGlyphs)
	c = strings.TrimSpace(c)

	for changed := true; changed; {
		changed = false
		for _, suffix := range trailingSuffixes {
			if strings.HasSuffix(c, suffix) && c != suffix {
				c = strings.TrimSpace(strings.TrimSuffix(c, suffix))
				changed = true
			}
		}
	}

	for changed := true; changed; {
		changed = false
		for _, prefix := range leadingPrefixes {
			if strings.HasPrefix(c, prefix+" ") {
				c = strings.TrimSpace(strings.TrimPrefix(c, prefix+" "))
				changed = true
			}
		}
	}

	if utf8.RuneCountInString(c) < 2 {
		return "", false
	}
	if stopwords[strings.ToLower(c)] {
		return "", false
	}
	return c, true
}
