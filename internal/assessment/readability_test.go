package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreForGrade(t *testing.T) {
	tests := []struct {
		name  string
		grade float64
		want  float64
	}{
		{"target band lower edge", 6, 100},
		{"target band middle", 7, 100},
		{"target band upper edge", 8, 100},
		{"slightly too simple", 5, 97},
		{"very simple floors at 80", 0, 82},
		{"negative grade floors at 80", -10, 80},
		{"grade 10", 10, 84},
		{"grade 12", 12, 68},
		{"very complex floors at 0", 25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, scoreForGrade(tt.grade), 0.001)
		})
	}
}

func TestReadabilityScoreEmptyText(t *testing.T) {
	assert.Equal(t, 0.0, ReadabilityScore(""))
	assert.Equal(t, 0.0, ReadabilityScore("   \n\t  "))
}

func TestReadabilityScoreBounds(t *testing.T) {
	texts := []string{
		"Go. Run. Win.",
		"We build software for people who like software.",
		"Notwithstanding heterogeneous organizational interdependencies, multidisciplinary stakeholders should operationalize comprehensive transformational methodologies.",
	}
	for _, text := range texts {
		score := ReadabilityScore(text)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}

func TestNormalizeBullets(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "dash bullets get periods",
			in:   "- Write code\n- Review pull requests",
			want: "- Write code.\n- Review pull requests.",
		},
		{
			name: "punctuated bullets untouched",
			in:   "- Write code.\n* Ship it!",
			want: "- Write code.\n* Ship it!",
		},
		{
			name: "numbered and lettered lists",
			in:   "1. First thing\na) Second thing",
			want: "1. First thing.\na) Second thing.",
		},
		{
			name: "plain prose untouched",
			in:   "We are hiring an engineer",
			want: "We are hiring an engineer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeBullets(tt.in))
		})
	}
}

func TestNormalizeBulletsKeepsGradeSane(t *testing.T) {
	// Without terminal periods consecutive bullets read as one run-on
	// sentence and the grade estimate climbs.
	bullets := "- Build and ship features for our platform\n" +
		"- Review code from other engineers on the team\n" +
		"- Work with product managers on plans\n" +
		"- Help teammates grow their skills\n" +
		"- Keep our systems fast and stable"

	raw := fleschKincaidGrade(bullets)
	normalized := fleschKincaidGrade(normalizeBullets(bullets))
	assert.Less(t, normalized, raw)
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"hello", 2},
		{"engineer", 3},
		{"the", 1},
		{"table", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, countSyllables(tt.word), "word %q", tt.word)
	}
}
