package valuation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// DecodeFacts decodes a JSON fact document.
func DecodeFacts(r io.Reader) (RawFacts, error) {
	var raw RawFacts
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return RawFacts{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return raw, nil
}

// LoadInput reads a JSON fact document from path and normalizes it.
func LoadInput(path string) (Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return Input{}, fmt.Errorf("%w: failed to read %s: %v", ErrMalformedInput, path, err)
	}
	defer f.Close()

	raw, err := DecodeFacts(f)
	if err != nil {
		return Input{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return Normalize(raw)
}

// FormatOutput renders v as indented JSON with non-ASCII text preserved.
func FormatOutput(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode output: %w", err)
	}
	return buf.String(), nil
}
