package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ktsarnakliyski/JobSpresso/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AssessmentResult", &AssessmentTextFormatter{})
	registry.RegisterFormatter("markdown", "AssessmentResult", &AssessmentMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AssessmentResult, *types.AssessmentResult:
		return "AssessmentResult"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func toAssessmentResult(data any) (*types.AssessmentResult, error) {
	switch v := data.(type) {
	case *types.AssessmentResult:
		return v, nil
	case types.AssessmentResult:
		return &v, nil
	default:
		return nil, fmt.Errorf("expected AssessmentResult, got %T", data)
	}
}

// AssessmentTextFormatter handles text formatting for assessment results
type AssessmentTextFormatter struct{}

func (atf *AssessmentTextFormatter) Format(data any) (string, error) {
	result, err := toAssessmentResult(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("=== JOB DESCRIPTION ASSESSMENT ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %.0f/100 (%s)\n\n", result.OverallScore, result.Interpretation))

	output.WriteString("=== CATEGORY SCORES ===\n")
	for _, category := range types.AllCategories() {
		score, ok := result.CategoryScores[category]
		if !ok {
			continue
		}
		output.WriteString(fmt.Sprintf("%-14s %.0f/100 (weight %d%%)\n", category.Label()+":", score, category.Weight()))
	}
	output.WriteString("\n")

	if len(result.Issues) > 0 {
		output.WriteString("=== ISSUES ===\n\n")
		for i, issue := range result.Issues {
			output.WriteString(fmt.Sprintf("%d. [%s] %s: %s\n", i+1, strings.ToUpper(issue.Severity.String()), issue.Category.Label(), issue.Description))
			if issue.Found != "" {
				output.WriteString(fmt.Sprintf("   Found: %q\n", issue.Found))
			}
			if issue.Suggestion != "" {
				output.WriteString(fmt.Sprintf("   Fix: %s\n", issue.Suggestion))
			}
			output.WriteString("\n")
		}
	} else {
		output.WriteString("No issues found.\n\n")
	}

	if len(result.Positives) > 0 {
		output.WriteString("=== WHAT WORKS WELL ===\n")
		for _, positive := range result.Positives {
			output.WriteString(fmt.Sprintf("- %s\n", positive))
		}
		output.WriteString("\n")
	}

	output.WriteString("=== QUESTION COVERAGE ===\n")
	output.WriteString(fmt.Sprintf("Answered %d of %d candidate questions (%d%%)\n\n",
		result.QuestionsAnswered, result.QuestionsTotal, result.QuestionCoveragePercent))
	for _, item := range result.QuestionCoverage {
		marker := "[ ]"
		if item.IsAnswered {
			marker = "[x]"
		}
		output.WriteString(fmt.Sprintf("%s %s\n", marker, item.QuestionText))
		if !item.IsAnswered && item.Suggestion != "" {
			output.WriteString(fmt.Sprintf("    Suggestion: %s\n", item.Suggestion))
		}
	}
	output.WriteString("\n")

	if result.EstimatedBoost != nil {
		output.WriteString(fmt.Sprintf("Estimated application boost: +%d%%\n\n", *result.EstimatedBoost))
	}

	if result.ImprovementApplied {
		output.WriteString("=== IMPROVED JOB DESCRIPTION ===\n\n")
		output.WriteString(result.ImprovedText)
		output.WriteString("\n")
	} else {
		output.WriteString("Improved version unavailable; original text retained.\n")
	}

	return output.String(), nil
}

func (atf *AssessmentTextFormatter) SupportedType() string {
	return "AssessmentResult"
}

// AssessmentMarkdownFormatter handles markdown formatting for assessment results
type AssessmentMarkdownFormatter struct{}

func (amf *AssessmentMarkdownFormatter) Format(data any) (string, error) {
	result, err := toAssessmentResult(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("# Job Description Assessment\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %.0f/100 (%s)\n\n", result.OverallScore, result.Interpretation))

	output.WriteString("## Category Scores\n\n")
	output.WriteString("| Category | Score | Weight | Status |\n")
	output.WriteString("|----------|-------|--------|--------|\n")
	for _, category := range types.AllCategories() {
		score, ok := result.CategoryScores[category]
		if !ok {
			continue
		}
		status := ""
		if evidence, ok := result.CategoryEvidence[category]; ok {
			status = string(evidence.Status)
		}
		output.WriteString(fmt.Sprintf("| %s | %.0f/100 | %d%% | %s |\n", category.Label(), score, category.Weight(), status))
	}
	output.WriteString("\n")

	if len(result.Issues) > 0 {
		output.WriteString("## Issues\n\n")
		for i, issue := range result.Issues {
			output.WriteString(fmt.Sprintf("### %d. [%s] %s\n\n", i+1, strings.ToUpper(issue.Severity.String()), issue.Category.Label()))
			output.WriteString(issue.Description)
			output.WriteString("\n\n")
			if issue.Found != "" {
				output.WriteString(fmt.Sprintf("**Found:** %q\n\n", issue.Found))
			}
			if issue.Suggestion != "" {
				output.WriteString(fmt.Sprintf("**Fix:** %s\n\n", issue.Suggestion))
			}
		}
	} else {
		output.WriteString("## No Issues Found\n\n")
	}

	if len(result.Positives) > 0 {
		output.WriteString("## What Works Well\n\n")
		for _, positive := range result.Positives {
			output.WriteString(fmt.Sprintf("- %s\n", positive))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Question Coverage\n\n")
	output.WriteString(fmt.Sprintf("Answered **%d of %d** candidate questions (%d%%)\n\n",
		result.QuestionsAnswered, result.QuestionsTotal, result.QuestionCoveragePercent))
	for _, item := range result.QuestionCoverage {
		marker := "[ ]"
		if item.IsAnswered {
			marker = "[x]"
		}
		output.WriteString(fmt.Sprintf("- %s %s\n", marker, item.QuestionText))
	}
	output.WriteString("\n")

	if result.EstimatedBoost != nil {
		output.WriteString(fmt.Sprintf("**Estimated application boost:** +%d%%\n\n", *result.EstimatedBoost))
	}

	if result.ImprovementApplied {
		output.WriteString("## Improved Job Description\n\n")
		output.WriteString(result.ImprovedText)
		output.WriteString("\n")
	} else {
		output.WriteString("_Improved version unavailable; original text retained._\n")
	}

	return output.String(), nil
}

func (amf *AssessmentMarkdownFormatter) SupportedType() string {
	return "AssessmentResult"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
