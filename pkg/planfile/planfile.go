// Package planfile reads plans from YAML or JSON files.
package planfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/cobreuse/core/model"
)

// FormatOf returns the decoding format implied by the extension of path.
func FormatOf(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".json":
		return "json", nil
	default:
		return "", fmt.Errorf("unsupported plan format: %s", ext)
	}
}

// Load reads a plan from a JSON or YAML file. A plan without a name is
// named after its file.
func Load(path string) (model.Plan, error) {
	format, err := FormatOf(path)
	if err != nil {
		return model.Plan{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return model.Plan{}, err
	}
	defer func() { _ = f.Close() }()
	plan, err := Decode(f, format)
	if err != nil {
		return model.Plan{}, fmt.Errorf("%s: %w", path, err)
	}
	if plan.Name == "" {
		plan.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return plan, nil
}

// Decode reads from r to decode a Plan. Unknown fields are rejected.
func Decode(r io.Reader, format string) (model.Plan, error) {
	var plan model.Plan
	switch strings.ToLower(format) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&plan); err != nil {
			return plan, err
		}
	case "json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&plan); err != nil {
			return plan, err
		}
	default:
		return plan, fmt.Errorf("unsupported format: %s", format)
	}
	return plan, nil
}
