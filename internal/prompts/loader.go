// Package prompts holds the LLM prompt templates, embedded at compile time.
// Each JSON file maps prompt keys to template text with {{.Key}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// Parsed prompt files, keyed by filename.
var (
	loaded   = make(map[string]map[string]string)
	loadedMu sync.RWMutex
)

// Get returns the template stored under key in the named prompt file,
// for example Get("classify.json", "classify-document").
func Get(filename, key string) (string, error) {
	templates, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	template, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return template, nil
}

// MustGet is Get for templates the program cannot run without; a missing
// file or key panics.
func MustGet(filename, key string) string {
	template, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return template
}

// Format substitutes {{.Key}} placeholders with the given values. Unknown
// placeholders are left in place.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{.%s}}", key), value)
	}
	return result
}

// loadFile parses a prompt file once and serves it from memory afterwards.
func loadFile(filename string) (map[string]string, error) {
	loadedMu.RLock()
	templates, ok := loaded[filename]
	loadedMu.RUnlock()
	if ok {
		return templates, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	loadedMu.Lock()
	loaded[filename] = templates
	loadedMu.Unlock()
	return templates, nil
}

// ClearCache drops all parsed files. Test hook.
func ClearCache() {
	loadedMu.Lock()
	loaded = make(map[string]map[string]string)
	loadedMu.Unlock()
}
