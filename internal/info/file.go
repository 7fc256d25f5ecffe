package info

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML profile. When the file omits a name, the file's base
// name without extension is used.
//
//	name: api3
//	port: 3000
//	schema: flat
//	instance:
//	  Instancia: Maquina 3 - API 3
//	  Curso: Seminario de sistemas 1 A
//	  Grupo: Grupo 11
func LoadFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile file: %w", err)
	}

	profile, err := Parse(data)
	if err != nil {
		return Profile{}, fmt.Errorf("profile file %s: %w", path, err)
	}

	if profile.Name == "" {
		base := filepath.Base(path)
		profile.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return profile, nil
}

// Parse decodes a YAML profile, rejecting unknown keys
func Parse(data []byte) (Profile, error) {
	var profile Profile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&profile); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile: %w", err)
	}

	return profile, nil
}
