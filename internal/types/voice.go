package types

import (
	"fmt"
	"strings"
)

// RuleType classifies a voice profile rule. Only exclude and custom rules can
// contribute to field exclusions; the rest shape generation output only.
type RuleType string

const (
	RuleTypeExclude RuleType = "exclude"
	RuleTypeInclude RuleType = "include"
	RuleTypeFormat  RuleType = "format"
	RuleTypeOrder   RuleType = "order"
	RuleTypeLimit   RuleType = "limit"
	RuleTypeCustom  RuleType = "custom"
)

// Rule is a single voice profile rule.
type Rule struct {
	Text     string   `json:"text"`
	RuleType RuleType `json:"ruleType"`
	Target   string   `json:"target,omitempty"`
	Active   bool     `json:"active"`
}

// VoiceProfile is a user-defined brand voice configuration. The assessment
// core consumes it read-only: rules drive field exclusions, the rest feeds
// prompt context for the AI calls.
type VoiceProfile struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	ToneFormality   int      `json:"toneFormality,omitempty"` // 1=very formal .. 5=very casual
	ToneDescription string   `json:"toneDescription,omitempty"`
	AddressStyle    string   `json:"addressStyle,omitempty"`  // direct_you, third_person, we_looking
	SentenceStyle   string   `json:"sentenceStyle,omitempty"` // short_punchy, balanced, detailed
	WordsToAvoid    []string `json:"wordsToAvoid,omitempty"`
	WordsToPrefer   []string `json:"wordsToPrefer,omitempty"`
	BrandValues     []string `json:"brandValues,omitempty"`
	Rules           []Rule   `json:"rules"`
	IsDefault       bool     `json:"isDefault,omitempty"`
}

var formalityDescriptions = map[int]string{
	1: "Very formal and corporate",
	2: "Professional and polished",
	3: "Professional but approachable",
	4: "Friendly and conversational",
	5: "Casual and energetic",
}

var addressDescriptions = map[string]string{
	"direct_you":   `Address candidates directly using "you" and "your".`,
	"third_person": `Use third person like "the candidate" or "the ideal person".`,
	"we_looking":   `Frame from company perspective: "We're looking for someone who..."`,
}

var sentenceDescriptions = map[string]string{
	"short_punchy": "Use short, punchy sentences. Maximum 2-3 sentences per paragraph.",
	"balanced":     "Use balanced sentence length. Mix of short and medium sentences.",
	"detailed":     "Use detailed, thorough sentences. Complete explanations.",
}

// PromptContext renders the profile into plain-text guidance for the AI
// prompts.
func (p *VoiceProfile) PromptContext() string {
	if p == nil {
		return ""
	}

	parts := []string{fmt.Sprintf("VOICE PROFILE: %s", p.Name)}

	tone := p.ToneDescription
	if tone == "" {
		tone = "Professional"
	}
	if desc, ok := formalityDescriptions[p.ToneFormality]; ok {
		parts = append(parts, fmt.Sprintf("Tone: %s (%s)", tone, desc))
	} else {
		parts = append(parts, fmt.Sprintf("Tone: %s", tone))
	}

	if desc, ok := addressDescriptions[p.AddressStyle]; ok {
		parts = append(parts, "Address Style: "+desc)
	}
	if desc, ok := sentenceDescriptions[p.SentenceStyle]; ok {
		parts = append(parts, "Sentence Style: "+desc)
	}

	if len(p.WordsToAvoid) > 0 {
		parts = append(parts, "Words to AVOID: "+strings.Join(p.WordsToAvoid, ", "))
	}
	if len(p.WordsToPrefer) > 0 {
		parts = append(parts, "Words to PREFER: "+strings.Join(p.WordsToPrefer, ", "))
	}
	if len(p.BrandValues) > 0 {
		parts = append(parts, "Brand Values to Reflect: "+strings.Join(p.BrandValues, ", "))
	}

	var ruleLines []string
	for _, rule := range p.Rules {
		if rule.Active && rule.Text != "" {
			ruleLines = append(ruleLines, "- "+rule.Text)
		}
	}
	if len(ruleLines) > 0 {
		parts = append(parts, "Rules:\n"+strings.Join(ruleLines, "\n"))
	}

	return strings.Join(parts, "\n")
}

// ActiveRules returns only the active rules, preserving order.
func (p *VoiceProfile) ActiveRules() []Rule {
	if p == nil {
		return nil
	}
	var active []Rule
	for _, rule := range p.Rules {
		if rule.Active {
			active = append(active, rule)
		}
	}
	return active
}
