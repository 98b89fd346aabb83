package config

import (
	"bytes"
	"io"
	"os"

	"goverdict/internal/errors"
	"goverdict/internal/viability"

	"gopkg.in/yaml.v3"
)

// LoadEngineConfig reads a YAML threshold file over the production defaults.
// Keys missing from the file keep their default value. An empty path returns
// the defaults.
func LoadEngineConfig(path string) (viability.Config, error) {
	cfg := viability.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "read %s", path))
	}
	return ParseEngineConfig(data)
}

// ParseEngineConfig decodes YAML thresholds over the defaults and validates
// the result. Unknown keys are rejected so typos do not silently fall back
// to defaults.
func ParseEngineConfig(data []byte) (viability.Config, error) {
	cfg := viability.DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return viability.DefaultConfig(), errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "decode engine thresholds"))
	}

	if err := cfg.Validate(); err != nil {
		return viability.DefaultConfig(), err
	}
	return cfg, nil
}

// MarshalEngineConfig renders a threshold set in the same YAML layout
// LoadEngineConfig reads
func MarshalEngineConfig(cfg viability.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
