package models

// Case is one counseling segment cut out of a dated session transcript.
// StartTime and EndTime are source strings (MM:SS or HH:MM:SS). The last case
// of a date has an empty EndTime and runs to the end of the recording; any
// other case with an empty EndTime has an unknown boundary.
type Case struct {
	Date          string `json:"date"`
	SequenceIndex int    `json:"sequence_index"`
	CaseID        string `json:"case_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	LastOfDate    bool   `json:"last_of_date"`
	RawText       string `json:"raw_text"`
}

// OpenEnded reports whether the case runs through the end of the recording.
func (c Case) OpenEnded() bool {
	return c.EndTime == "" && c.LastOfDate
}

// Metadata is the structured answer of the metadata generation call.
type Metadata struct {
	Title               string   `json:"title"`
	PrimaryCategory     string   `json:"primary_category"`
	SecondaryCategory   string   `json:"secondary_category"`
	Tags                []string `json:"tags"`
	TargetAudience      string   `json:"target_audience"`
	ApplicableScenarios string   `json:"applicable_scenarios"`
}

// EnrichedCase is a Case after both generation calls and clip extraction
// succeeded.
type EnrichedCase struct {
	Case
	Metadata
	CleanedText string `json:"cleaned_text"`
	ClipPath    string `json:"clip_path"`
}
