package chat

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

// The qualification script is copy, not logic: the default ships embedded and
// an operator can point CHAT_PROMPT_PATH at a replacement without rebuilding.
//
//go:embed prompt.txt
var defaultPrompt string

// LoadPrompt returns the lead-qualification system prompt. With an empty path
// it returns the embedded default; otherwise it reads the named file.
func LoadPrompt(path string) (string, error) {
	if path == "" {
		return strings.TrimSpace(defaultPrompt), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("chat: read prompt file: %w", err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("chat: prompt file %s is empty", path)
	}
	return prompt, nil
}
