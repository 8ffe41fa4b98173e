package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoiceExtractionNormalizeDefaults(t *testing.T) {
	var v VoiceExtraction
	v.Normalize()

	assert.Equal(t, "professional", v.Tone)
	assert.Equal(t, 3, v.ToneFormality)
	assert.Equal(t, "direct_you", v.AddressStyle)
	assert.Equal(t, "balanced", v.SentenceStyle)
	assert.Equal(t, "mixed", v.StructurePreference)
}

func TestVoiceExtractionNormalizeKeepsValidValues(t *testing.T) {
	v := VoiceExtraction{
		Tone:                "startup_casual",
		ToneFormality:       5,
		AddressStyle:        "we_looking",
		SentenceStyle:       "short_punchy",
		StructurePreference: "benefits first",
	}
	v.Normalize()

	assert.Equal(t, "startup_casual", v.Tone)
	assert.Equal(t, 5, v.ToneFormality)
	assert.Equal(t, "we_looking", v.AddressStyle)
	assert.Equal(t, "short_punchy", v.SentenceStyle)
	assert.Equal(t, "benefits first", v.StructurePreference)
}

func TestVoiceExtractionNormalizeClampsFormality(t *testing.T) {
	v := VoiceExtraction{ToneFormality: 9}
	v.Normalize()
	assert.Equal(t, 3, v.ToneFormality)
}

func TestVoiceExtractionToProfile(t *testing.T) {
	v := VoiceExtraction{
		ToneFormality:   4,
		ToneDescription: "Energetic and direct",
		AddressStyle:    "direct_you",
		SentenceStyle:   "short_punchy",
		WordsAvoided:    []string{"synergy"},
		WordsCommonlyUsed: []string{
			"build", "ship",
		},
		BrandValues: []string{"craft"},
		SuggestedRules: []SuggestedRule{
			{Text: "Never include salary information", RuleType: RuleTypeExclude, Target: "salary", Confidence: 0.9},
		},
	}

	profile := v.ToProfile("Acme Voice")
	assert.Equal(t, "Acme Voice", profile.Name)
	assert.Equal(t, 4, profile.ToneFormality)
	assert.Equal(t, "Energetic and direct", profile.ToneDescription)
	assert.Equal(t, "direct_you", profile.AddressStyle)
	assert.Equal(t, "short_punchy", profile.SentenceStyle)
	assert.Equal(t, []string{"synergy"}, profile.WordsToAvoid)
	assert.Equal(t, []string{"build", "ship"}, profile.WordsToPrefer)
	assert.Equal(t, []string{"craft"}, profile.BrandValues)

	require.Len(t, profile.Rules, 1)
	assert.Equal(t, "Never include salary information", profile.Rules[0].Text)
	assert.Equal(t, RuleTypeExclude, profile.Rules[0].RuleType)
	assert.False(t, profile.Rules[0].Active, "suggested rules need confirmation before taking effect")
}

func TestVoiceExtractionToProfileDefaultName(t *testing.T) {
	var v VoiceExtraction
	profile := v.ToProfile("")
	assert.Equal(t, "Extracted Voice", profile.Name)
	assert.NotNil(t, profile.Rules)
	assert.Empty(t, profile.Rules)
}
