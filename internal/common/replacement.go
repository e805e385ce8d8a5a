// Package common provides shared configuration, logging and version helpers.
//
// The {KEY} syntax lets configuration values reference secrets kept out of
// the TOML file, typically in .env:
//
//	Input:  api_key = "{EDINET_API_KEY}"
//	Env:    EDINET_API_KEY=abc123
//	Output: api_key = "abc123"
//
// Replacement is case-sensitive. Unresolved references are logged as warnings
// and left in place.
package common

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/ternarybob/arbor"
)

// keyRefPattern matches {KEY} references in strings
var keyRefPattern = regexp.MustCompile(`\{([a-zA-Z0-9_-]+)\}`)

// ReplaceKeyReferences replaces all {KEY} references in input with values from kvMap.
func ReplaceKeyReferences(input string, kvMap map[string]string, logger arbor.ILogger) string {
	if input == "" {
		return input
	}

	return keyRefPattern.ReplaceAllStringFunc(input, func(match string) string {
		keyName := match[1 : len(match)-1]
		if value, exists := kvMap[keyName]; exists {
			return value
		}
		logger.Warn().
			Str("reference", match).
			Msg("Unresolved key reference - not found in .env or environment")
		return match
	})
}

// ReplaceInStruct replaces {KEY} references in the string and []string fields
// of a struct, recursing into nested structs. v must be a struct pointer.
func ReplaceInStruct(v interface{}, kvMap map[string]string, logger arbor.ILogger) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr {
		return fmt.Errorf("ReplaceInStruct requires a pointer, got %T", v)
	}

	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("ReplaceInStruct requires a struct pointer, got pointer to %v", val.Kind())
	}

	replaceInStructValue(val, kvMap, logger)
	return nil
}

func replaceInStructValue(val reflect.Value, kvMap map[string]string, logger arbor.ILogger) {
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanSet() {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if newValue := ReplaceKeyReferences(field.String(), kvMap, logger); newValue != field.String() {
				field.SetString(newValue)
				// Values are secrets; log the field only
				logger.Debug().Str("field", typ.Field(i).Name).Msg("Resolved key reference in config")
			}

		case reflect.Struct:
			replaceInStructValue(field, kvMap, logger)

		case reflect.Slice:
			if field.Type().Elem().Kind() != reflect.String {
				continue
			}
			for j := 0; j < field.Len(); j++ {
				elem := field.Index(j)
				elem.SetString(ReplaceKeyReferences(elem.String(), kvMap, logger))
			}
		}
	}
}
