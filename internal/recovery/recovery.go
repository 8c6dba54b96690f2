// Package recovery implements the layered fallback parsing applied to raw LLM
// output. The LLM is asked for pure JSON but may prepend prose, wrap the JSON
// in fenced code blocks, or answer in free text; this package extracts a JSON
// object from such responses whenever one is present.
package recovery

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Attempt is a single parsing strategy. It returns the extracted JSON object
// and true on success. An attempt must not panic on any input.
type Attempt func(text string) (map[string]any, bool)

// Chain is the ordered list of attempts tried by Recover. First success wins.
var Chain = []Attempt{
	ParseDirect,
	ParseFencedBlock,
	ParseBraceSpan,
	ParseConversational,
}

// Recover runs the chain over raw LLM output. It returns the first
// successfully extracted JSON object, or false when no attempt succeeds.
// Callers that need a guaranteed result apply their own schema-specific
// last-resort wrapping (see optimizer.SynthesizeFromText).
func Recover(text string) (map[string]any, bool) {
	for _, attempt := range Chain {
		if obj, ok := attempt(text); ok {
			return obj, true
		}
	}
	return nil, false
}

// ParseDirect parses the entire response as JSON. The root must be an object;
// a scalar or array root counts as failure so later attempts can run.
func ParseDirect(text string) (map[string]any, bool) {
	return parseObject(strings.TrimSpace(text))
}

var fencedBlockRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// ParseFencedBlock extracts the first fenced code block (``` or ```json) and
// parses its inner content.
func ParseFencedBlock(text string) (map[string]any, bool) {
	m := fencedBlockRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return parseObject(m[1])
}

// ParseBraceSpan finds the first top-level brace-balanced {...} span anywhere
// in the text and parses it. Braces inside JSON strings are ignored.
func ParseBraceSpan(text string) (map[string]any, bool) {
	span, ok := braceSpan(text)
	if !ok {
		return nil, false
	}
	return parseObject(span)
}

// conversationalRes match lead-ins LLMs use when they ignore the
// JSON-only instruction and chat instead.
var conversationalRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)here(?:'s| is) the (?:json|optimized resume)[:\s]`),
	regexp.MustCompile(`(?i)i(?:'ve| have) (?:created|generated)`),
	regexp.MustCompile(`(?i)please find`),
	regexp.MustCompile(`(?i)here is`),
}

// ParseConversational looks for a conversational lead-in followed by a
// brace-balanced span and parses that span.
func ParseConversational(text string) (map[string]any, bool) {
	for _, re := range conversationalRes {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		span, ok := braceSpan(text[loc[1]:])
		if !ok {
			continue
		}
		if obj, ok := parseObject(span); ok {
			return obj, true
		}
	}
	return nil, false
}

// parseObject unmarshals text and requires an object root.
func parseObject(text string) (map[string]any, bool) {
	if text == "" {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, false
	}
	if obj == nil {
		return nil, false
	}
	return obj, true
}

// braceSpan returns the first balanced {...} span in text, tracking string
// literals and escapes so braces inside strings do not affect the depth.
func braceSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
	}
	return "", false
}
