package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformed is returned by Load when the file cannot be decoded into a
// valid question list.
var ErrMalformed = errors.New("malformed question bank")

// Format is the on-disk encoding of a bank file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from the file extension. Anything that is
// not .yaml or .yml is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Save writes qs to path, replacing any existing content. The parent
// directory is created if needed.
func Save(path string, qs []Question) error {
	data, err := Encode(FormatFor(path), qs)
	if err != nil {
		return err
	}
	if err := EnsureDir(path); err != nil {
		return fmt.Errorf("create bank dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write bank: %w", err)
	}
	return nil
}

// Load reads the bank at path. A missing file yields an error wrapping
// fs.ErrNotExist; undecodable or invalid content yields ErrMalformed.
func Load(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	return Decode(FormatFor(path), data)
}

// Encode renders qs in the given format. JSON output is indented with two
// spaces and ends with a newline.
func Encode(format Format, qs []Question) ([]byte, error) {
	if qs == nil {
		qs = []Question{}
	}
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(qs)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(qs, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// Decode parses and validates a bank document.
func Decode(format Format, data []byte) ([]Question, error) {
	raw, err := toJSON(format, data)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var qs []Question
	if err := json.Unmarshal(raw, &qs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	seen := make(map[string]bool, len(qs))
	for i := range qs {
		if seen[qs[i].ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformed, qs[i].ID)
		}
		seen[qs[i].ID] = true
		if qs[i].Category == "" {
			qs[i].Category = DefaultCategory
		}
	}
	if qs == nil {
		qs = []Question{}
	}
	return qs, nil
}

// toJSON normalises a YAML document into JSON so both formats share one
// validation path.
func toJSON(format Format, data []byte) ([]byte, error) {
	if format != FormatYAML {
		return data, nil
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return raw, nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
