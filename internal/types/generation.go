package types

// GenerateJobInput is the input to the from-scratch generation capability.
// Role title, responsibilities, and requirements are required; everything
// else enriches the output when present.
type GenerateJobInput struct {
	RoleTitle          string        `json:"roleTitle"`
	Responsibilities   []string      `json:"responsibilities"`
	Requirements       []string      `json:"requirements"`
	CompanyDescription string        `json:"companyDescription,omitempty"`
	TeamSize           string        `json:"teamSize,omitempty"`
	SalaryRange        string        `json:"salaryRange,omitempty"`
	Location           string        `json:"location,omitempty"`
	Benefits           []string      `json:"benefits,omitempty"`
	NiceToHave         []string      `json:"niceToHave,omitempty"`
	VoiceProfile       *VoiceProfile `json:"voiceProfile,omitempty"`
}

// GeneratedJobDescription is the generation output. Notes carry the model's
// suggestions for information the caller left out.
type GeneratedJobDescription struct {
	GeneratedJD string   `json:"generatedJd"`
	WordCount   int      `json:"wordCount"`
	Notes       []string `json:"notes"`
}

// ExtractVoiceInput is the input to voice extraction: one or more example job
// descriptions written in the voice to capture.
type ExtractVoiceInput struct {
	ExampleJDs    []string `json:"exampleJds"`
	SuggestedName string   `json:"suggestedName,omitempty"`
}

// SuggestedRule is a rule the extractor inferred from consistent patterns
// across the examples, with its confidence and supporting observation.
type SuggestedRule struct {
	Text       string   `json:"text"`
	RuleType   RuleType `json:"ruleType"`
	Target     string   `json:"target,omitempty"`
	Value      string   `json:"value,omitempty"`
	Confidence float64  `json:"confidence"`
	Evidence   string   `json:"evidence,omitempty"`
}

// VoiceExtraction is the extracted voice characteristics of a set of example
// job descriptions. Any field may come back empty; Normalize supplies the
// defaults.
type VoiceExtraction struct {
	Tone                string          `json:"tone"`
	ToneFormality       int             `json:"toneFormality"`
	ToneDescription     string          `json:"toneDescription"`
	AddressStyle        string          `json:"addressStyle"`
	SentenceStyle       string          `json:"sentenceStyle"`
	WordsCommonlyUsed   []string        `json:"wordsCommonlyUsed"`
	WordsAvoided        []string        `json:"wordsAvoided"`
	BrandValues         []string        `json:"brandValues,omitempty"`
	StructurePreference string          `json:"structurePreference"`
	SuggestedRules      []SuggestedRule `json:"suggestedRules,omitempty"`
	Summary             string          `json:"summary"`
}

// Normalize fills defaults for fields the model left empty or out of range.
func (v *VoiceExtraction) Normalize() {
	if v.Tone == "" {
		v.Tone = "professional"
	}
	if v.ToneFormality < 1 || v.ToneFormality > 5 {
		v.ToneFormality = 3
	}
	if v.AddressStyle == "" {
		v.AddressStyle = "direct_you"
	}
	if v.SentenceStyle == "" {
		v.SentenceStyle = "balanced"
	}
	if v.StructurePreference == "" {
		v.StructurePreference = "mixed"
	}
}

// ToProfile builds a voice profile draft from the extraction. Suggested rules
// become inactive rules so a human confirms them before they take effect.
func (v *VoiceExtraction) ToProfile(name string) VoiceProfile {
	if name == "" {
		name = "Extracted Voice"
	}

	profile := VoiceProfile{
		Name:            name,
		ToneFormality:   v.ToneFormality,
		ToneDescription: v.ToneDescription,
		AddressStyle:    v.AddressStyle,
		SentenceStyle:   v.SentenceStyle,
		WordsToAvoid:    v.WordsAvoided,
		WordsToPrefer:   v.WordsCommonlyUsed,
		BrandValues:     v.BrandValues,
		Rules:           []Rule{},
	}

	for _, suggested := range v.SuggestedRules {
		profile.Rules = append(profile.Rules, Rule{
			Text:     suggested.Text,
			RuleType: suggested.RuleType,
			Target:   suggested.Target,
			Active:   false,
		})
	}

	return profile
}
