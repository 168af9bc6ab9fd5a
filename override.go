// FILE: lixenwraith/translog/override.go
package translog

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ApplyOverride applies string key-value overrides to the configuration.
// Each override should be in the format "key=value", keys are the toml names.
// All overrides are attempted and their errors reported together; the
// configuration is left unchanged when any of them fails.
//
// Example:
//
//	cfg := translog.DefaultConfig()
//	err := cfg.ApplyOverride(
//	    "level=debug",
//	    "format=json",
//	    "enable_file=true",
//	)
func (c *Config) ApplyOverride(overrides ...string) error {
	updated := c.Clone()

	var errs []error
	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := applyConfigField(updated, key, value); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return combineConfigErrors(errs)
	}

	*c = *updated
	return nil
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	var sb strings.Builder
	sb.WriteString(errorPrefix + "multiple configuration errors:")
	for i, err := range errs {
		// Remove prefix from individual errors to avoid duplication
		errMsg := strings.TrimPrefix(err.Error(), errorPrefix)
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// configFields maps toml keys to struct field indexes
var configFields = func() map[string]int {
	fields := make(map[string]int)
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("toml"); tag != "" {
			fields[tag] = i
		}
	}
	return fields
}()

// applyConfigField applies a single key-value override to a Config
func applyConfigField(cfg *Config, key, value string) error {
	idx, ok := configFields[key]
	if !ok {
		return fmtErrorf("unknown configuration key '%s'", key)
	}
	field := reflect.ValueOf(cfg).Elem().Field(idx)

	switch field.Kind() {
	case reflect.String:
		// Special handling: level names are checked early
		if key == "level" && !IsValidLevel(value) {
			_, err := ParseLevel(value)
			return fmtErrorf("invalid level value '%s': %w", value, err)
		}
		field.SetString(value)

	case reflect.Int64:
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for %s '%s': %w", key, value, err)
		}
		field.SetInt(intVal)

	case reflect.Bool:
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for %s '%s': %w", key, value, err)
		}
		field.SetBool(boolVal)

	default:
		return fmtErrorf("unsupported type for configuration key '%s'", key)
	}

	return nil
}
