package commits

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads an ordered list of commit records from a JSON or YAML file.
// The format is chosen by extension; anything other than .json is read as YAML.
func LoadFile(path string) ([]RawCommit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening commits file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return DecodeJSON(f)
	}
	return DecodeYAML(f)
}

// DecodeYAML decodes a YAML sequence of commit records.
func DecodeYAML(r io.Reader) ([]RawCommit, error) {
	var out []RawCommit
	if err := yaml.NewDecoder(r).Decode(&out); err != nil {
		if err == io.EOF {
			return []RawCommit{}, nil
		}
		return nil, fmt.Errorf("parsing commits YAML: %w", err)
	}
	if out == nil {
		out = []RawCommit{}
	}
	return out, nil
}

// DecodeJSON decodes a JSON array of commit records.
func DecodeJSON(r io.Reader) ([]RawCommit, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading commits JSON: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []RawCommit{}, nil
	}

	var out []RawCommit
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing commits JSON: %w", err)
	}
	if out == nil {
		out = []RawCommit{}
	}
	return out, nil
}
