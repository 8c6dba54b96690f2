package recovery

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResume = `{
	"user_information": {"name": "Jane Doe", "skills": {"hard_skills": ["Go"], "soft_skills": []}},
	"projects": []
}`

func TestParseDirect_ValidObject(t *testing.T) {
	obj, ok := ParseDirect(validResume)
	require.True(t, ok)
	assert.Contains(t, obj, "user_information")
}

func TestParseDirect_LeadingWhitespace(t *testing.T) {
	obj, ok := ParseDirect("\n\n  " + validResume + "  \n")
	require.True(t, ok)
	assert.Contains(t, obj, "user_information")
}

func TestParseDirect_ArrayRootFails(t *testing.T) {
	_, ok := ParseDirect(`[1, 2, 3]`)
	assert.False(t, ok)
}

func TestParseDirect_ScalarRootFails(t *testing.T) {
	_, ok := ParseDirect(`"just a string"`)
	assert.False(t, ok)
}

func TestParseFencedBlock_JSONTag(t *testing.T) {
	text := "```json\n" + validResume + "\n```"
	obj, ok := ParseFencedBlock(text)
	require.True(t, ok)
	assert.Contains(t, obj, "user_information")
}

func TestParseFencedBlock_NoTag(t *testing.T) {
	obj, ok := ParseFencedBlock("```\n" + validResume + "\n```")
	require.True(t, ok)
	assert.Contains(t, obj, "projects")
}

func TestParseFencedBlock_NoBlock(t *testing.T) {
	_, ok := ParseFencedBlock(validResume)
	assert.False(t, ok)
}

func TestParseBraceSpan_ProseAroundObject(t *testing.T) {
	text := "Sure thing. " + validResume + " Hope that helps!"
	obj, ok := ParseBraceSpan(text)
	require.True(t, ok)
	assert.Contains(t, obj, "user_information")
}

func TestParseBraceSpan_BracesInsideStrings(t *testing.T) {
	text := `prefix {"note": "a { tricky } value", "n": 1} suffix`
	obj, ok := ParseBraceSpan(text)
	require.True(t, ok)
	assert.Equal(t, "a { tricky } value", obj["note"])
}

func TestParseBraceSpan_UnbalancedFails(t *testing.T) {
	_, ok := ParseBraceSpan(`{"open": true`)
	assert.False(t, ok)
}

func TestParseConversational_HeresTheJSON(t *testing.T) {
	text := "Here's the JSON: " + validResume
	obj, ok := ParseConversational(text)
	require.True(t, ok)
	assert.Contains(t, obj, "user_information")
}

func TestParseConversational_IveGenerated(t *testing.T) {
	text := "I've generated the resume you asked for.\n" + validResume
	obj, ok := ParseConversational(text)
	require.True(t, ok)
	assert.Contains(t, obj, "projects")
}

func TestParseConversational_NoLeadIn(t *testing.T) {
	_, ok := ParseConversational("no json here at all")
	assert.False(t, ok)
}

func TestRecover_IdempotentOnValidInput(t *testing.T) {
	obj, ok := Recover(validResume)
	require.True(t, ok)

	var want map[string]any
	require.NoError(t, json.Unmarshal([]byte(validResume), &want))
	assert.Equal(t, want, obj)
}

func TestRecover_FencedEqualsUnwrapped(t *testing.T) {
	bare, ok := Recover(validResume)
	require.True(t, ok)
	fenced, ok := Recover("```json\n" + validResume + "\n```")
	require.True(t, ok)
	assert.Equal(t, bare, fenced)
}

func TestRecover_ConversationalEqualsBare(t *testing.T) {
	bare, ok := Recover(validResume)
	require.True(t, ok)
	chatty, ok := Recover("Here's the optimized resume: " + validResume)
	require.True(t, ok)
	assert.Equal(t, bare, chatty)
}

func TestRecover_FreeTextFails(t *testing.T) {
	_, ok := Recover("I am sorry, I cannot produce a resume for this input.")
	assert.False(t, ok)
}

func TestRecover_NeverPanics(t *testing.T) {
	inputs := []string{
		"", "{", "}", "```", "```json", `{"a":`, strings.Repeat("{", 1000),
		"Here is {{{", "\x00\xff", `{"s": "\"}`,
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Recover(in) })
	}
}
