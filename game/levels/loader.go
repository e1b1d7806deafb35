package levels

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/sokoban/game/engine"
)

var (
	ErrLevelSetNotFound = errors.New("level set not found")
	ErrInvalidLevelSet  = errors.New("invalid level set")
)

// Format identifies the encoding of a level set file
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// SchemaURL identifies the embedded schema in validation errors
const SchemaURL = "https://github.com/wricardo/sokoban/levelset.schema.json"

//go:embed levelset.schema.json
var schemaSource string

var levelSetSchema = jsonschema.MustCompileString(SchemaURL, schemaSource)

// Schema returns the raw JSON schema every level set must satisfy
func Schema() string {
	return schemaSource
}

// FormatFor picks the decoder from the file extension; anything that is not
// YAML is treated as JSON
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads, validates and decodes a level set file
func LoadFile(path string) ([]engine.Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrLevelSetNotFound, path)
		}
		return nil, fmt.Errorf("failed to read level set %s: %w", path, err)
	}

	levelSet, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return levelSet, nil
}

// Parse validates and decodes level set data in the given format
func Parse(data []byte, format Format) ([]engine.Level, error) {
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLevelSet, err)
		}
		data = converted
	}

	if err := ValidateSchema(data); err != nil {
		return nil, err
	}

	var levelSet []engine.Level
	if err := json.Unmarshal(data, &levelSet); err != nil {
		return nil, fmt.Errorf("%w: failed to decode levels: %v", ErrInvalidLevelSet, err)
	}

	if err := engine.ValidateLevels(levelSet); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevelSet, err)
	}

	return levelSet, nil
}

// ValidateSchema checks JSON level set data against the level set schema
func ValidateSchema(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: failed to parse JSON: %v", ErrInvalidLevelSet, err)
	}
	if err := levelSetSchema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLevelSet, err)
	}
	return nil
}

// yamlToJSON re-encodes a YAML document as JSON so one schema covers both formats
func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML to JSON: %w", err)
	}
	return out, nil
}
