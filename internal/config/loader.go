package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// configSchema rejects unknown keys and wrong shapes before the semantic
// validator runs, so a typo'd field name fails loudly instead of silently
// keeping its default.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "bucket":        { "type": "string" },
    "region":        { "type": "string" },
    "endpoint":      { "type": "string" },
    "payloadSize":   { "type": "integer", "minimum": 1 },
    "iterations":    { "type": "integer", "minimum": 1 },
    "downloads":     { "type": "boolean" },
    "keyPrefix":     { "type": "string" },
    "sseAlgorithm":  { "type": "string", "enum": ["AES256", "aws:kms"] },
    "maxRetries":    { "type": "integer", "minimum": 0 },
    "baseDelay":     { "type": "string" },
    "maxDelay":      { "type": "string" },
    "pause":         { "type": "string" },
    "warmup":        { "type": "boolean" },
    "strictCleanup": { "type": "boolean" }
  }
}`

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// validateSchema checks the raw document against the embedded schema. The
// YAML tree is round-tripped through JSON so the schema library sees the
// value types it expects.
func validateSchema(data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalizing config: %w", err)
	}
	var jsonDoc interface{}
	if err := json.Unmarshal(jsonBytes, &jsonDoc); err != nil {
		return fmt.Errorf("normalizing config: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.json", strings.NewReader(configSchema)); err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}
	schema, err := compiler.Compile("config.json")
	if err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}

	if err := schema.Validate(jsonDoc); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}
