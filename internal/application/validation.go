package application

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"
)

// MaxMinutes bounds pomodoro durations to one day
const MaxMinutes = 24 * 60

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "parentID" -> "parent ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"id":           "ID",
		"parentID":     "parent ID",
		"workMinutes":  "work minutes",
		"breakMinutes": "break minutes",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateID checks that id has the shape of an entry id: a relative,
// slash-separated path that stays inside the notes root.
// An empty id passes; callers combine with ValidateRequired when needed.
func ValidateID(fieldName, id string) error {
	if id == "" {
		return nil
	}

	invalid := func(reason string) error {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("invalid %s %q: %s", formatFieldName(fieldName), id, reason),
		}
	}

	if strings.HasPrefix(id, "/") {
		return invalid("must be relative to the notes root")
	}
	if strings.Contains(id, "\\") {
		return invalid(`use "/" as separator`)
	}
	clean := path.Clean(id)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return invalid("escapes the notes root")
	}
	return nil
}

// ValidateContent checks that content is a JSON document
func ValidateContent(content json.RawMessage) error {
	if len(content) == 0 {
		return nil
	}
	if !json.Valid(content) {
		return &ValidationError{Field: "content", Message: "content must be valid JSON"}
	}
	return nil
}

// ValidateMinutes checks a pomodoro duration
func ValidateMinutes(fieldName string, minutes int) error {
	if minutes < 1 || minutes > MaxMinutes {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be between 1 and %d", formatFieldName(fieldName), MaxMinutes),
		}
	}
	return nil
}
