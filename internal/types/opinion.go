package types

// AnalyzeAssessmentInput is the input to the AI analysis capability.
type AnalyzeAssessmentInput struct {
	JobDescription string        `json:"jobDescription"`
	VoiceProfile   *VoiceProfile `json:"voiceProfile,omitempty"`
}

// OpinionScores carries the AI-judged scores. A nil pointer means the model
// offered no opinion for that category and the rule-based or default value
// applies instead.
type OpinionScores struct {
	Inclusivity *float64 `json:"inclusivity,omitempty"`
	Clarity     *float64 `json:"clarity,omitempty"`
	VoiceMatch  *float64 `json:"voiceMatch,omitempty"`
}

// EvidenceOpinion is the AI-provided evidence for one category.
type EvidenceOpinion struct {
	SupportingExcerpts []string `json:"supportingExcerpts"`
	MissingElements    []string `json:"missingElements"`
	Opportunity        string   `json:"opportunity"`
	ImpactPrediction   string   `json:"impactPrediction,omitempty"`
}

// IssueOpinion is an issue as reported by the AI, before normalization.
// Severity and category are raw strings; unknown values fall back to
// info/clarity during merging.
type IssueOpinion struct {
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Found       string `json:"found,omitempty"`
	Suggestion  string `json:"suggestion,omitempty"`
	Impact      string `json:"impact,omitempty"`
}

// AnalysisOpinion is the full AI analysis response. Any subset of keys may be
// absent; consumers apply defaults.
type AnalysisOpinion struct {
	Scores           OpinionScores              `json:"scores"`
	CategoryEvidence map[string]EvidenceOpinion `json:"categoryEvidence"`
	Issues           []IssueOpinion             `json:"issues"`
	Positives        []string                   `json:"positives"`
}

// ImprovementIssue is the flattened issue shape handed to the improvement
// pass. Impact rationale is deliberately dropped; the rewrite only needs the
// finding and the fix.
type ImprovementIssue struct {
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Found       string `json:"found,omitempty"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// GenerateImprovementInput is the input to the AI improvement capability,
// assembled after the first pass so the rewrite knows the full scoring
// context.
type GenerateImprovementInput struct {
	OriginalText string             `json:"originalText"`
	Scores       map[string]float64 `json:"scores"`
	Issues       []ImprovementIssue `json:"issues"`
	VoiceProfile *VoiceProfile      `json:"voiceProfile,omitempty"`
}
