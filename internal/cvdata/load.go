package cvdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/cv-builder/internal/types"
)

// Format is the serialization of a CV record file
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension. Anything that is
// not .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadCV loads a CV record from a JSON or YAML file
func LoadCV(path string) (*types.CVData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	return Decode(content, FormatFromPath(path))
}

// Decode parses a CV record. Unknown fields are rejected in both formats.
func Decode(content []byte, format Format) (*types.CVData, error) {
	var cv types.CVData

	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cv); err != nil {
			return nil, &LoadError{
				Message: "failed to unmarshal YAML",
				Cause:   err,
			}
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(content))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cv); err != nil {
			return nil, &LoadError{
				Message: "failed to unmarshal JSON",
				Cause:   err,
			}
		}
	default:
		return nil, &LoadError{Message: fmt.Sprintf("unsupported format %q", format)}
	}

	return &cv, nil
}
