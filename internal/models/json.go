package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/nutriplan/nutriplan-backend/internal/nutrition"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}
	bytes, ok := jsonBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// JSONBMap stores an arbitrary string-keyed map in JSONB. Micronutrient
// values are kept exactly as entered (including numeric strings); coercion to
// numbers happens in the nutrition engine, not at the storage layer.
type JSONBMap map[string]any

// Value implements the driver.Valuer interface
func (m JSONBMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface
func (m *JSONBMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONBMap{}
		return nil
	}
	bytes, ok := jsonBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// JSONBIngredientLines stores a food's ingredient list in JSONB.
type JSONBIngredientLines []nutrition.IngredientLine

// Value implements the driver.Valuer interface
func (l JSONBIngredientLines) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *JSONBIngredientLines) Scan(value interface{}) error {
	if value == nil {
		*l = JSONBIngredientLines{}
		return nil
	}
	bytes, ok := jsonBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// JSONBOverrides stores the per-field manual override flags in JSONB.
type JSONBOverrides nutrition.Overrides

// Value implements the driver.Valuer interface
func (o JSONBOverrides) Value() (driver.Value, error) {
	return json.Marshal(nutrition.Overrides(o))
}

// Scan implements the sql.Scanner interface
func (o *JSONBOverrides) Scan(value interface{}) error {
	if value == nil {
		*o = JSONBOverrides{}
		return nil
	}
	bytes, ok := jsonBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, (*nutrition.Overrides)(o))
}

func jsonBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}
