package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/match-intel/internal/schemas"
	"github.com/jonathan/match-intel/internal/types"
)

var validate = validator.New()

// LoadPreferences reads, schema-checks, decodes, and normalizes the
// preferences document. A missing file yields the defaults rather than an
// error: the engine must score with an empty configuration the same way it
// does before the user has saved anything.
func LoadPreferences(path string) (*types.Preferences, error) {
	if path == "" {
		return types.DefaultPreferences(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.DefaultPreferences(), nil
		}
		return nil, fmt.Errorf("failed to read preferences file %s: %w", path, err)
	}

	return ParsePreferences(data)
}

// ParsePreferences decodes a raw preferences document. Scalar fields are
// schema- and range-validated; list fields are coerced, never rejected.
func ParsePreferences(data []byte) (*types.Preferences, error) {
	if err := schemas.ValidatePreferences(data); err != nil {
		return nil, fmt.Errorf("preferences schema: %w", err)
	}

	prefs := types.DefaultPreferences()
	if err := json.Unmarshal(data, prefs); err != nil {
		return nil, fmt.Errorf("failed to parse preferences JSON: %w", err)
	}
	prefs.Normalize()

	if err := validate.Struct(prefs); err != nil {
		return nil, fmt.Errorf("preferences validation: %w", err)
	}

	return prefs, nil
}

// SavePreferences writes the normalized preferences document.
func SavePreferences(path string, prefs *types.Preferences) error {
	prefs.Normalize()
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences file: %w", err)
	}
	return nil
}
