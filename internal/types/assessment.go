package types

import (
	"encoding/json"
	"fmt"
	"math"
)

// Category is one of the six fixed assessment dimensions. The set and its
// weights are a process-wide constant registry, not user-editable.
type Category string

const (
	CategoryInclusivity  Category = "inclusivity"
	CategoryReadability  Category = "readability"
	CategoryStructure    Category = "structure"
	CategoryCompleteness Category = "completeness"
	CategoryClarity      Category = "clarity"
	CategoryVoiceMatch   Category = "voice_match"
)

// categoryWeights are percentages and must always sum to 100.
var categoryWeights = map[Category]int{
	CategoryInclusivity:  25,
	CategoryReadability:  20,
	CategoryStructure:    15,
	CategoryCompleteness: 15,
	CategoryClarity:      10,
	CategoryVoiceMatch:   15,
}

var categoryLabels = map[Category]string{
	CategoryInclusivity:  "Inclusivity",
	CategoryReadability:  "Readability",
	CategoryStructure:    "Structure",
	CategoryCompleteness: "Completeness",
	CategoryClarity:      "Clarity",
	CategoryVoiceMatch:   "Voice Match",
}

// AllCategories returns the six categories in their canonical order.
func AllCategories() []Category {
	return []Category{
		CategoryInclusivity,
		CategoryReadability,
		CategoryStructure,
		CategoryCompleteness,
		CategoryClarity,
		CategoryVoiceMatch,
	}
}

// Weight returns the category's percentage weight in the overall score.
func (c Category) Weight() int {
	return categoryWeights[c]
}

// Label returns the human-readable label for the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// CategoryFromString maps a raw string to a Category. The second return value
// is false for unknown strings.
func CategoryFromString(s string) (Category, bool) {
	c := Category(s)
	_, ok := categoryWeights[c]
	return c, ok
}

// Severity orders issues from least to most serious.
type Severity int

const (
	SeverityInfo Severity = iota + 1
	SeverityWarning
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityInfo:     "info",
	SeverityWarning:  "warning",
	SeverityCritical: "critical",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// SeverityFromString maps a raw string to a Severity. The second return value
// is false for unknown strings.
func SeverityFromString(s string) (Severity, bool) {
	switch s {
	case "info":
		return SeverityInfo, true
	case "warning":
		return SeverityWarning, true
	case "critical":
		return SeverityCritical, true
	}
	return SeverityInfo, false
}

// MarshalJSON serializes the severity as its lowercase name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the lowercase severity names.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	sev, ok := SeverityFromString(name)
	if !ok {
		return fmt.Errorf("unknown severity: %q", name)
	}
	*s = sev
	return nil
}

// Interpretation is the banded reading of an overall score.
type Interpretation string

const (
	InterpretationExcellent Interpretation = "excellent"
	InterpretationGood      Interpretation = "good"
	InterpretationNeedsWork Interpretation = "needs_work"
	InterpretationPoor      Interpretation = "poor"
	InterpretationCritical  Interpretation = "critical"
)

// InterpretationForScore maps an overall score to its band.
func InterpretationForScore(score float64) Interpretation {
	switch {
	case score >= 90:
		return InterpretationExcellent
	case score >= 75:
		return InterpretationGood
	case score >= 60:
		return InterpretationNeedsWork
	case score >= 40:
		return InterpretationPoor
	default:
		return InterpretationCritical
	}
}

// EvidenceStatus classifies a single category score.
type EvidenceStatus string

const (
	EvidenceStatusGood     EvidenceStatus = "good"
	EvidenceStatusWarning  EvidenceStatus = "warning"
	EvidenceStatusCritical EvidenceStatus = "critical"
)

// EvidenceStatusForScore applies the 80/50 thresholds.
func EvidenceStatusForScore(score float64) EvidenceStatus {
	switch {
	case score >= 80:
		return EvidenceStatusGood
	case score >= 50:
		return EvidenceStatusWarning
	default:
		return EvidenceStatusCritical
	}
}

// Issue is a single piece of actionable feedback. Both the rule-based path
// and the AI path normalize into this shape.
type Issue struct {
	Severity    Severity `json:"severity"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Found       string   `json:"found,omitempty"`
	Suggestion  string   `json:"suggestion,omitempty"`
	Impact      string   `json:"impact,omitempty"`
}

// CategoryEvidence backs a category score with excerpts and one actionable
// opportunity. Excerpt and missing-element lists are capped at three entries.
type CategoryEvidence struct {
	Score              float64        `json:"score"`
	Status             EvidenceStatus `json:"status"`
	SupportingExcerpts []string       `json:"supportingExcerpts"`
	MissingElements    []string       `json:"missingElements"`
	Opportunity        string         `json:"opportunity"`
	ImpactPrediction   string         `json:"impactPrediction,omitempty"`
}

// QuestionCoverageItem reports whether one candidate question is answered.
type QuestionCoverageItem struct {
	QuestionID   string `json:"questionId"`
	QuestionText string `json:"questionText"`
	IsAnswered   bool   `json:"isAnswered"`
	Importance   string `json:"importance"`
	Evidence     string `json:"evidence,omitempty"`
	Suggestion   string `json:"suggestion,omitempty"`
	ImpactStat   string `json:"impactStat"`
}

// AssessmentResult is the aggregate output of one analysis call. It is
// constructed fresh per request and owns all nested collections.
type AssessmentResult struct {
	CategoryScores          map[Category]float64          `json:"categoryScores"`
	OverallScore            float64                       `json:"overallScore"`
	Interpretation          Interpretation                `json:"interpretation"`
	Issues                  []Issue                       `json:"issues"`
	Positives               []string                      `json:"positives"`
	ImprovedText            string                        `json:"improvedText"`
	ImprovementApplied      bool                          `json:"improvementApplied"`
	CategoryEvidence        map[Category]CategoryEvidence `json:"categoryEvidence"`
	QuestionCoverage        []QuestionCoverageItem        `json:"questionCoverage"`
	QuestionsAnswered       int                           `json:"questionsAnswered"`
	QuestionsTotal          int                           `json:"questionsTotal"`
	QuestionCoveragePercent int                           `json:"questionCoveragePercent"`
	EstimatedBoost          *int                          `json:"estimatedApplicationBoost,omitempty"`
}

// OverallScore computes the weighted overall score over the given category
// scores, rounded to two decimals.
func OverallScore(scores map[Category]float64) float64 {
	total := 0.0
	for category, score := range scores {
		total += score * float64(category.Weight()) / 100
	}
	return math.Round(total*100) / 100
}

// CoveragePercent computes the answered percentage, rounded half to even;
// zero total yields zero.
func CoveragePercent(answered, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.RoundToEven(float64(answered) / float64(total) * 100))
}
