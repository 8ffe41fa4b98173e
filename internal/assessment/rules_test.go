package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ktsarnakliyski/JobSpresso/internal/types"
)

func TestExcludedFieldsNilProfile(t *testing.T) {
	assert.Empty(t, ExcludedFields(nil))
}

func TestExcludedFields(t *testing.T) {
	tests := []struct {
		name    string
		rules   []types.Rule
		want    []string
		notWant []string
	}{
		{
			name: "explicit exclude rule with target",
			rules: []types.Rule{
				{Text: "Leave this out", RuleType: types.RuleTypeExclude, Target: "salary", Active: true},
			},
			want: []string{"salary"},
		},
		{
			name: "explicit exclude rule via text",
			rules: []types.Rule{
				{Text: "Exclude benefits and perks", RuleType: types.RuleTypeExclude, Active: true},
			},
			want: []string{"benefits"},
		},
		{
			name: "custom rule with exclusion intent",
			rules: []types.Rule{
				{Text: "Never include salary information", RuleType: types.RuleTypeCustom, Active: true},
			},
			want: []string{"salary"},
		},
		{
			name: "custom rule without exclusion intent",
			rules: []types.Rule{
				{Text: "Mention our salary philosophy proudly", RuleType: types.RuleTypeCustom, Active: true},
			},
			notWant: []string{"salary"},
		},
		{
			name: "inactive rules ignored",
			rules: []types.Rule{
				{Text: "Never include salary information", RuleType: types.RuleTypeCustom, Active: false},
				{Text: "skip benefits", RuleType: types.RuleTypeExclude, Active: false},
			},
			notWant: []string{"salary", "benefits"},
		},
		{
			name: "include and format rules never contribute",
			rules: []types.Rule{
				{Text: "Always include salary", RuleType: types.RuleTypeInclude, Active: true},
				{Text: "Format benefits as a list", RuleType: types.RuleTypeFormat, Active: true},
			},
			notWant: []string{"salary", "benefits"},
		},
		{
			name: "multiple exclusions accumulate",
			rules: []types.Rule{
				{Text: "no salary details", RuleType: types.RuleTypeCustom, Active: true},
				{Text: "omit team size", RuleType: types.RuleTypeCustom, Active: true},
			},
			want: []string{"salary", "team_size"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExcludedFields(&types.VoiceProfile{Rules: tt.rules})
			for _, field := range tt.want {
				assert.True(t, got[field], "expected %s excluded", field)
			}
			for _, field := range tt.notWant {
				assert.False(t, got[field], "did not expect %s excluded", field)
			}
		})
	}
}
