package faq

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrCorpusNotFound is returned when the FAQ file does not exist.
var ErrCorpusNotFound = errors.New("faq corpus not found")

// Entry is one question/answer pair.
type Entry struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// LoadCorpus reads a JSON array of entries, or YAML when the extension is
// .yaml or .yml.
func LoadCorpus(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, path)
		}
		return nil, fmt.Errorf("read faq corpus %s: %w", path, err)
	}
	return ParseCorpus(raw, filepath.Ext(path))
}

// ParseCorpus decodes raw by extension. Entries with an empty question are
// skipped.
func ParseCorpus(raw []byte, ext string) ([]Entry, error) {
	var entries []Entry
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("decode faq yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("decode faq json: %w", err)
		}
	}
	out := entries[:0]
	for _, e := range entries {
		if strings.TrimSpace(e.Question) == "" {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
