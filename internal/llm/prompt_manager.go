// Package llm holds the prompt templates sent to the review provider.
package llm

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"strings"
	"text/template"
)

//go:embed prompts/*.prompt
var promptFiles embed.FS

type ModelProvider string
type PromptKey string

const (
	DefaultProvider ModelProvider = "default"
	GeminiProvider  ModelProvider = "gemini"

	CodeReviewPrompt PromptKey = "code_review"
)

type promptID struct {
	key      PromptKey
	provider ModelProvider
}

// PromptManager renders embedded prompt templates. Files are named
// "<key>_<provider>.prompt"; a "default" provider template is the fallback for
// any provider without its own variant.
type PromptManager struct {
	templates map[promptID]*template.Template
}

func NewPromptManager() (*PromptManager, error) {
	entries, err := promptFiles.ReadDir("prompts")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded prompts directory: %w", err)
	}

	pm := &PromptManager{templates: make(map[promptID]*template.Template)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		id, err := parsePromptFilename(entry.Name())
		if err != nil {
			return nil, err
		}

		content, err := promptFiles.ReadFile(path.Join("prompts", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded prompt file %s: %w", entry.Name(), err)
		}

		tmpl, err := template.New(entry.Name()).Option("missingkey=error").Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse prompt %s: %w", entry.Name(), err)
		}
		pm.templates[id] = tmpl
	}

	if _, err := pm.lookup(CodeReviewPrompt, DefaultProvider); err != nil {
		return nil, err
	}
	return pm, nil
}

func parsePromptFilename(name string) (promptID, error) {
	base := strings.TrimSuffix(name, path.Ext(name))
	sep := strings.LastIndex(base, "_")
	if sep <= 0 || sep == len(base)-1 {
		return promptID{}, fmt.Errorf("invalid prompt filename format: %s (expected 'key_provider.prompt')", name)
	}
	return promptID{key: PromptKey(base[:sep]), provider: ModelProvider(base[sep+1:])}, nil
}

func (pm *PromptManager) lookup(key PromptKey, provider ModelProvider) (*template.Template, error) {
	if tmpl, ok := pm.templates[promptID{key, provider}]; ok {
		return tmpl, nil
	}
	if tmpl, ok := pm.templates[promptID{key, DefaultProvider}]; ok {
		return tmpl, nil
	}
	return nil, fmt.Errorf("no template found for key '%s' and provider '%s', and no default was available", key, provider)
}

// Render executes the template for key and provider with data.
func (pm *PromptManager) Render(key PromptKey, provider ModelProvider, data any) (string, error) {
	tmpl, err := pm.lookup(key, provider)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", key, err)
	}
	return buf.String(), nil
}
