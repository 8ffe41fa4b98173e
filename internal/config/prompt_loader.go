package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// loadPromptsFromFiles loads custom system prompts from external files when
// file paths are configured. File content takes priority over the inline
// systemPrompt value for the same scope.
func (c *Config) loadPromptsFromFiles() error {
	if c.AI.SystemPromptFile != "" {
		content, err := loadPromptFromFile(c.AI.SystemPromptFile, "global")
		if err != nil {
			return err
		}
		c.AI.SystemPrompt = content
	}

	if c.AI.Analyze.SystemPromptFile != "" {
		content, err := loadPromptFromFile(c.AI.Analyze.SystemPromptFile, "analyze")
		if err != nil {
			return err
		}
		c.AI.Analyze.SystemPrompt = content
	}

	if c.AI.Improve.SystemPromptFile != "" {
		content, err := loadPromptFromFile(c.AI.Improve.SystemPromptFile, "improve")
		if err != nil {
			return err
		}
		c.AI.Improve.SystemPrompt = content
	}

	return nil
}

// loadPromptFromFile reads a prompt file and validates it is non-empty
func loadPromptFromFile(filePath, scope string) (string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path for %s prompt file '%s': %w", scope, filePath, err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s prompt file not found: %s", scope, absPath)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s prompt file '%s': %w", scope, absPath, err)
	}

	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return "", fmt.Errorf("%s prompt file '%s' is empty", scope, absPath)
	}

	return trimmed, nil
}
