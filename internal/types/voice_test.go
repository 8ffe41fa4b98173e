package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptContextNilProfile(t *testing.T) {
	var p *VoiceProfile
	assert.Empty(t, p.PromptContext())
}

func TestPromptContextFullProfile(t *testing.T) {
	p := &VoiceProfile{
		ID:              "startup",
		Name:            "Startup Casual",
		ToneFormality:   4,
		ToneDescription: "Energetic and warm",
		AddressStyle:    "direct_you",
		SentenceStyle:   "short_punchy",
		WordsToAvoid:    []string{"rockstar", "ninja"},
		WordsToPrefer:   []string{"collaborate", "grow"},
		BrandValues:     []string{"transparency", "ownership"},
		Rules: []Rule{
			{Text: "Never list salary as DOE", RuleType: RuleTypeExclude, Active: true},
			{Text: "Inactive rule", RuleType: RuleTypeCustom, Active: false},
		},
	}

	ctx := p.PromptContext()
	assert.Contains(t, ctx, "VOICE PROFILE: Startup Casual")
	assert.Contains(t, ctx, "Tone: Energetic and warm (Friendly and conversational)")
	assert.Contains(t, ctx, `Address Style: Address candidates directly using "you" and "your".`)
	assert.Contains(t, ctx, "Sentence Style: Use short, punchy sentences. Maximum 2-3 sentences per paragraph.")
	assert.Contains(t, ctx, "Words to AVOID: rockstar, ninja")
	assert.Contains(t, ctx, "Words to PREFER: collaborate, grow")
	assert.Contains(t, ctx, "Brand Values to Reflect: transparency, ownership")
	assert.Contains(t, ctx, "- Never list salary as DOE")
	assert.NotContains(t, ctx, "Inactive rule")
}

func TestPromptContextAddressAndSentenceVariants(t *testing.T) {
	tests := []struct {
		address  string
		sentence string
		want     []string
	}{
		{"third_person", "balanced", []string{
			`Use third person like "the candidate" or "the ideal person".`,
			"Use balanced sentence length. Mix of short and medium sentences.",
		}},
		{"we_looking", "detailed", []string{
			`Frame from company perspective: "We're looking for someone who..."`,
			"Use detailed, thorough sentences. Complete explanations.",
		}},
	}
	for _, tt := range tests {
		p := &VoiceProfile{Name: "P", AddressStyle: tt.address, SentenceStyle: tt.sentence}
		ctx := p.PromptContext()
		for _, want := range tt.want {
			assert.Contains(t, ctx, want, "address %s sentence %s", tt.address, tt.sentence)
		}
	}
}

func TestPromptContextSkipsUnknownStyles(t *testing.T) {
	p := &VoiceProfile{Name: "Minimal", AddressStyle: "telepathy", SentenceStyle: ""}
	ctx := p.PromptContext()
	assert.NotContains(t, ctx, "Address Style:")
	assert.NotContains(t, ctx, "Sentence Style:")
	assert.Contains(t, ctx, "Tone: Professional")
	assert.Equal(t, 2, len(strings.Split(ctx, "\n")))
}

func TestActiveRulesPreservesOrder(t *testing.T) {
	p := &VoiceProfile{Rules: []Rule{
		{Text: "first", Active: true},
		{Text: "skipped", Active: false},
		{Text: "second", Active: true},
	}}
	active := p.ActiveRules()
	assert.Len(t, active, 2)
	assert.Equal(t, "first", active[0].Text)
	assert.Equal(t, "second", active[1].Text)
}
