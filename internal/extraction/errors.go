package extraction

import "fmt"

// Stage names used in ExtractionError to identify which pipeline call failed.
const (
	StageResumeSkills    = "resume_skills"
	StageJobRequirements = "job_requirements"
)

// ExtractionError represents a failed LLM extraction call: transport failure,
// or a response unrecoverable even via the recovery chain. Callers may retry
// the stage once, then surface it as a scoring failure.
type ExtractionError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed at stage %s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed at stage %s: %s", e.Stage, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
