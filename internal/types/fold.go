package types

import "strings"

// FoldSkill normalizes a skill string for comparison: lower-cased and
// whitespace-trimmed. Display forms keep their original casing.
func FoldSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
