package manifest

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/file-mapping-v1.yaml
var fileMappingSchemaYAML []byte

// ValidationError represents a single schema violation
type ValidationError struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// ValidationResult holds the outcome of a strict schema check
type ValidationResult struct {
	Source string            `json:"source,omitempty"`
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

func fileMappingSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// gojsonschema wants JSON
		var schemaData interface{}
		if err := yaml.Unmarshal(fileMappingSchemaYAML, &schemaData); err != nil {
			schemaErr = fmt.Errorf("failed to parse embedded schema: %w", err)
			return
		}
		jsonBytes, err := json.Marshal(schemaData)
		if err != nil {
			schemaErr = fmt.Errorf("failed to convert embedded schema: %w", err)
			return
		}
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jsonBytes))
	})
	return compiledSchema, schemaErr
}

// Validate checks a mapping document against the file mapping schema. Unlike
// Parse, malformed categories and entries are reported instead of ignored.
func Validate(data []byte, format Format) (*ValidationResult, error) {
	schema, err := fileMappingSchema()
	if err != nil {
		return nil, err
	}
	tree, err := decodeOrdered(data, format)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(plain(tree)))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	res := &ValidationResult{Valid: result.Valid()}
	if !result.Valid() {
		for _, verr := range result.Errors() {
			field := verr.Field()
			if field == "" || field == "(root)" {
				field = "root"
			}
			res.Errors = append(res.Errors, ValidationError{
				Path:    field,
				Message: verr.Description(),
			})
		}
	}
	return res, nil
}

// ValidateFile reads path and validates it
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	res, err := Validate(data, DetectFormat(path))
	if err != nil {
		return nil, err
	}
	res.Source = path
	return res, nil
}
