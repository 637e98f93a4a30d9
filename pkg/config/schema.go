package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/goinject-config-v1.yaml
var configSchemaYAML []byte

var (
	configSchemaOnce sync.Once
	configSchema     *gojsonschema.Schema
	configSchemaErr  error
)

func loadConfigSchema() (*gojsonschema.Schema, error) {
	configSchemaOnce.Do(func() {
		var doc interface{}
		if err := yaml.Unmarshal(configSchemaYAML, &doc); err != nil {
			configSchemaErr = fmt.Errorf("failed to parse config schema: %w", err)
			return
		}
		data, err := json.Marshal(doc)
		if err != nil {
			configSchemaErr = fmt.Errorf("failed to convert config schema: %w", err)
			return
		}
		configSchema, configSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	})
	return configSchema, configSchemaErr
}

// ValidateConfig validates raw YAML or JSON configuration against the config schema
func ValidateConfig(configData []byte) error {
	schema, err := loadConfigSchema()
	if err != nil {
		return err
	}

	var doc interface{}
	if err := yaml.Unmarshal(configData, &doc); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if doc == nil {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		var errors []string
		for _, desc := range result.Errors() {
			errors = append(errors, desc.String())
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
