package types

// MatchResult is the outcome of scoring a resume against a job description.
// MatchingSkills and MissingSkills partition the extracted requirement set;
// FinalScore is in [0, 100].
type MatchResult struct {
	FinalScore     int      `json:"final_score"`
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
	Recommendation string   `json:"recommendation"`
}

// ExtractedProfile is the ordered, deduplicated set of skill or requirement
// strings pulled out of free text by the structured extractor. Original casing
// is preserved; deduplication compares lower-cased, trimmed forms.
type ExtractedProfile struct {
	Items []string `json:"items"`
}

// Contains reports whether the profile holds an item whose normalized form
// equals the normalized needle.
func (p *ExtractedProfile) Contains(needle string) bool {
	n := FoldSkill(needle)
	for _, item := range p.Items {
		if FoldSkill(item) == n {
			return true
		}
	}
	return false
}
