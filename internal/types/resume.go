// Package types provides type definitions for structured data used throughout the ATS optimizer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// OptimizedResume is the fixed-shape JSON object produced by the resume
// optimization pipeline. Field names mirror the schema the LLM is instructed
// to emit.
type OptimizedResume struct {
	UserInformation           UserInformation       `json:"user_information"`
	Projects                  []Project             `json:"projects"`
	Certificates              []Certificate         `json:"certificate"`
	ExtraCurricularActivities []Activity            `json:"extra_curricular_activities"`
	OptimizationSummary       *OptimizationSummary  `json:"optimization_summary,omitempty"`
	ATSMetrics                *ATSMetrics           `json:"ats_metrics,omitempty"`

	// RawTextResponse is set only when the LLM answered in free text and the
	// recovery chain fell back to wrapping the raw output. Callers should
	// treat such results as degraded and prompt the user to review them.
	RawTextResponse string `json:"raw_text_response,omitempty"`
}

// UserInformation holds the candidate's identity, contact links, and the main
// resume sections.
type UserInformation struct {
	Name               string       `json:"name"`
	MainJobTitle       string       `json:"main_job_title"`
	ProfileDescription string       `json:"profile_description"`
	Email              string       `json:"email"`
	LinkedIn           string       `json:"linkedin"`
	GitHub             string       `json:"github"`
	Experiences        []Experience `json:"experiences"`
	Education          []Education  `json:"education"`
	Skills             Skills       `json:"skills"`
	Hobbies            []string     `json:"hobbies"`
}

// Experience represents one work experience entry. FourTasks is expected to
// contain exactly four items; see validation.CheckStructure.
type Experience struct {
	JobTitle  string   `json:"job_title"`
	Company   string   `json:"company"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Location  string   `json:"location"`
	FourTasks []string `json:"four_tasks"`
}

// Education represents one education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Location    string `json:"location"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// Skills separates hard (technical) and soft (interpersonal) skills.
type Skills struct {
	HardSkills []string `json:"hard_skills"`
	SoftSkills []string `json:"soft_skills"`
}

// Project represents one project entry. TwoGoals is expected to contain
// exactly two items.
type Project struct {
	ProjectName      string   `json:"project_name"`
	ProjectLink      string   `json:"project_link"`
	TwoGoals         []string `json:"two_goals_of_the_project"`
	ProjectEndResult string   `json:"project_end_result"`
	TechStack        []string `json:"tech_stack"`
}

// Certificate represents one certification entry.
type Certificate struct {
	Name        string `json:"name"`
	Link        string `json:"link"`
	Institution string `json:"institution"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// Activity represents one extra-curricular activity entry.
type Activity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// OptimizationSummary documents the changes the optimizer made, shown to the
// user alongside the optimized resume.
type OptimizationSummary struct {
	ChangesMade            []string `json:"changes_made"`
	KeywordsAdded          []string `json:"keywords_added"`
	SkillsEmphasized       []string `json:"skills_emphasized"`
	ContentReorganized     []string `json:"content_reorganized"`
	AchievementsQuantified []string `json:"achievements_quantified"`
	OverallStrategy        string   `json:"overall_strategy"`
}

// ATSMetrics is the pre-optimization scoring side channel merged into the
// optimizer output. It is additive and not part of the strict schema.
type ATSMetrics struct {
	InitialScore   int      `json:"initial_score"`
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
	Recommendation string   `json:"recommendation"`
}

// IsDegraded reports whether the resume was synthesized from an unparseable
// text response rather than structured LLM output.
func (r *OptimizedResume) IsDegraded() bool {
	return r.RawTextResponse != ""
}
