package assessment

import (
	"strings"

	"github.com/ktsarnakliyski/JobSpresso/internal/types"
)

// ExcludedFields extracts the completeness fields a voice profile rules out.
// Two signals count: an active rule with the explicit exclude type, matched
// via its target and its text, and an active custom rule whose text carries
// exclusion intent ("never include", "omit", "no salary", ...). Inactive
// rules are ignored.
func ExcludedFields(profile *types.VoiceProfile) map[string]bool {
	excluded := make(map[string]bool)
	if profile == nil {
		return excluded
	}

	for _, rule := range profile.ActiveRules() {
		ruleLower := strings.ToLower(rule.Text)

		switch rule.RuleType {
		case types.RuleTypeExclude:
			if rule.Target != "" {
				for f := range FieldsFor(rule.Target) {
					excluded[f] = true
				}
			}
			for f := range FieldsFor(ruleLower) {
				excluded[f] = true
			}

		case types.RuleTypeCustom:
			for _, pattern := range exclusionPatterns {
				if strings.Contains(ruleLower, pattern) {
					for f := range FieldsFor(ruleLower) {
						excluded[f] = true
					}
					break
				}
			}
		}
	}

	return excluded
}
