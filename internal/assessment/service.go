package assessment

import (
	"context"
	"sort"
	"strings"

	"github.com/ktsarnakliyski/JobSpresso/internal/errors"
	"github.com/ktsarnakliyski/JobSpresso/internal/types"
)

// Analyzer is the AI collaborator contract. The first pass renders a
// qualitative opinion on the text, the second pass rewrites it with full
// scoring context.
type Analyzer interface {
	AnalyzeAssessment(ctx context.Context, input types.AnalyzeAssessmentInput) (*types.AnalysisOpinion, error)
	GenerateImprovement(ctx context.Context, input types.GenerateImprovementInput) (string, error)
}

// Service combines deterministic scoring with AI-powered analysis.
//
// Deterministic: readability, structure, completeness, bias word detection,
// question coverage. AI-powered: inclusivity nuance, clarity, voice match,
// the improved rewrite.
type Service struct {
	ai        Analyzer
	questions *QuestionAnalyzer
	detector  *IssueDetector
	logger    *errors.Logger
}

func NewService(ai Analyzer, logger *errors.Logger) *Service {
	return &Service{
		ai:        ai,
		questions: NewQuestionAnalyzer(),
		detector:  NewIssueDetector(),
		logger:    logger,
	}
}

// ruleScores computes the deterministic category scores.
func (s *Service) ruleScores(text string, excluded map[string]bool) map[types.Category]float64 {
	completeness, _ := CompletenessScore(text, excluded)

	return map[types.Category]float64{
		types.CategoryReadability:  ReadabilityScore(text),
		types.CategoryStructure:    StructureScore(text),
		types.CategoryCompleteness: completeness,
	}
}

// mergeScores prefers deterministic scores, falls back to AI scores, and
// defaults to a neutral 75 for anything neither side produced.
func mergeScores(rule, ai map[types.Category]float64) map[types.Category]float64 {
	merged := make(map[types.Category]float64, len(types.AllCategories()))

	for _, category := range types.AllCategories() {
		switch {
		case hasScore(rule, category):
			merged[category] = rule[category]
		case hasScore(ai, category):
			merged[category] = ai[category]
		default:
			merged[category] = 75
		}
	}

	return merged
}

func hasScore(m map[types.Category]float64, c types.Category) bool {
	_, ok := m[c]
	return ok
}

// convertOpinionIssues maps raw AI issue records onto typed issues. Unknown
// severities become info, unknown categories clarity.
func convertOpinionIssues(raw []types.IssueOpinion) []types.Issue {
	issues := make([]types.Issue, 0, len(raw))
	for _, r := range raw {
		severity, _ := types.SeverityFromString(r.Severity)
		category, ok := types.CategoryFromString(r.Category)
		if !ok {
			category = types.CategoryClarity
		}
		issues = append(issues, types.Issue{
			Severity:    severity,
			Category:    category,
			Description: r.Description,
			Found:       r.Found,
			Suggestion:  r.Suggestion,
			Impact:      r.Impact,
		})
	}
	return issues
}

// fallbackOpportunities cover the deterministic categories when the AI
// returns no opportunity text for them.
var fallbackOpportunities = map[types.Category]string{
	types.CategoryCompleteness: "Add missing information like salary, location, or benefits",
	types.CategoryReadability:  "Simplify language to 8th grade reading level",
	types.CategoryStructure:    "Add clear sections with headers and bullet points",
}

// buildCategoryEvidence assembles the per-category evidence breakdown from
// the AI opinion, capping excerpt lists at three entries.
func buildCategoryEvidence(
	finalScores map[types.Category]float64,
	aiEvidence map[string]types.EvidenceOpinion,
) map[types.Category]types.CategoryEvidence {
	evidence := make(map[types.Category]types.CategoryEvidence, len(types.AllCategories()))

	for _, category := range types.AllCategories() {
		score, ok := finalScores[category]
		if !ok {
			score = 75
		}

		catEvidence := aiEvidence[string(category)]

		opportunity := catEvidence.Opportunity
		if opportunity == "" {
			opportunity = fallbackOpportunities[category]
		}
		if opportunity == "" {
			opportunity = "Improve " + strings.ToLower(category.Label())
		}

		evidence[category] = types.CategoryEvidence{
			Score:              score,
			Status:             types.EvidenceStatusForScore(score),
			SupportingExcerpts: capStrings(catEvidence.SupportingExcerpts, 3),
			MissingElements:    capStrings(catEvidence.MissingElements, 3),
			Opportunity:        opportunity,
			ImpactPrediction:   catEvidence.ImpactPrediction,
		}
	}

	return evidence
}

func capStrings(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Analyze runs the full assessment: deterministic scoring and issue
// detection, question coverage, the AI analysis pass, and the AI improvement
// pass. A failed analysis pass is a hard error; a failed improvement pass
// falls back to the original text.
func (s *Service) Analyze(ctx context.Context, text string, profile *types.VoiceProfile) (*types.AssessmentResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewValidationError(
			errors.ErrCodeEmptyInput,
			"job description text is empty",
			nil,
		)
	}

	excluded := ExcludedFields(profile)

	ruleScores := s.ruleScores(text, excluded)
	ruleIssues := s.detector.DetectAll(text, profile)

	coverage := s.questions.Analyze(text, excluded)
	answered := 0
	for _, q := range coverage {
		if q.IsAnswered {
			answered++
		}
	}

	opinion, err := s.ai.AnalyzeAssessment(ctx, types.AnalyzeAssessmentInput{
		JobDescription: text,
		VoiceProfile:   profile,
	})
	if err != nil {
		return nil, err
	}

	aiScores := make(map[types.Category]float64)
	if opinion.Scores.Inclusivity != nil {
		aiScores[types.CategoryInclusivity] = *opinion.Scores.Inclusivity
	}
	if opinion.Scores.Clarity != nil {
		aiScores[types.CategoryClarity] = *opinion.Scores.Clarity
	}
	if opinion.Scores.VoiceMatch != nil && profile != nil {
		aiScores[types.CategoryVoiceMatch] = *opinion.Scores.VoiceMatch
	}

	finalScores := mergeScores(ruleScores, aiScores)
	categoryEvidence := buildCategoryEvidence(finalScores, opinion.CategoryEvidence)

	// Deduplicate AI issues against rule issues by exact description, and
	// drop AI issues pushing toward topics the profile excludes.
	seen := make(map[string]bool, len(ruleIssues))
	for _, i := range ruleIssues {
		seen[i.Description] = true
	}

	allIssues := append([]types.Issue(nil), ruleIssues...)
	for _, issue := range convertOpinionIssues(opinion.Issues) {
		if seen[issue.Description] {
			continue
		}
		if s.detector.ConflictsWithExclusions(issue, excluded) {
			continue
		}
		allIssues = append(allIssues, issue)
	}

	sort.SliceStable(allIssues, func(i, j int) bool {
		return allIssues[i].Severity > allIssues[j].Severity
	})

	biasIssueCount := 0
	for _, i := range allIssues {
		if i.Category == types.CategoryInclusivity {
			biasIssueCount++
		}
	}
	boost := s.questions.EstimateApplicationBoost(coverage, biasIssueCount)

	improvedText, applied := s.generateImprovement(ctx, text, finalScores, allIssues, profile)

	result := &types.AssessmentResult{
		CategoryScores:          finalScores,
		OverallScore:            types.OverallScore(finalScores),
		Issues:                  allIssues,
		Positives:               opinion.Positives,
		ImprovedText:            improvedText,
		ImprovementApplied:      applied,
		CategoryEvidence:        categoryEvidence,
		QuestionCoverage:        coverage,
		QuestionsAnswered:       answered,
		QuestionsTotal:          len(coverage),
		QuestionCoveragePercent: types.CoveragePercent(answered, len(coverage)),
	}
	result.Interpretation = types.InterpretationForScore(result.OverallScore)
	if boost > 0 {
		result.EstimatedBoost = &boost
	}

	return result, nil
}

// generateImprovement runs the second AI pass with full scoring context. The
// rewrite gets the merged scores and combined issues so it can target what
// actually drags the score down. On failure the original text is returned
// unmodified so the analysis results are not lost.
func (s *Service) generateImprovement(
	ctx context.Context,
	text string,
	finalScores map[types.Category]float64,
	issues []types.Issue,
	profile *types.VoiceProfile,
) (string, bool) {
	scores := make(map[string]float64, len(types.AllCategories()))
	for _, category := range types.AllCategories() {
		score, ok := finalScores[category]
		if !ok {
			score = 75
		}
		scores[string(category)] = score
	}

	improvementIssues := make([]types.ImprovementIssue, 0, len(issues))
	for _, issue := range issues {
		improvementIssues = append(improvementIssues, types.ImprovementIssue{
			Severity:    issue.Severity.String(),
			Category:    string(issue.Category),
			Description: issue.Description,
			Found:       issue.Found,
			Suggestion:  issue.Suggestion,
		})
	}

	improved, err := s.ai.GenerateImprovement(ctx, types.GenerateImprovementInput{
		OriginalText: text,
		Scores:       scores,
		Issues:       improvementIssues,
		VoiceProfile: profile,
	})
	if err != nil {
		s.logger.LogError(err, "improvement generation failed, using original text",
			"text_length", len(text))
		return text, false
	}

	return improved, true
}
