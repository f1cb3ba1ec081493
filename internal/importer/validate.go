package importer

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/rota/internal/timeutil"
)

// requiredKeys are the top-level fields an import file must carry; the listed
// array keys must additionally be JSON arrays. staffOverrides is optional for
// compatibility with exports predating global overrides.
var requiredKeys = []string{"staff", "roles", "sessions", "assignments", "days", "gridStartTime", "gridEndTime"}
var arrayKeys = map[string]bool{"staff": true, "roles": true, "sessions": true, "assignments": true, "days": true}

// Decode parses and validates a project file. It returns either a schema
// ready for Convert, or the complete list of validation errors. The caller
// commits separately, so a failed decode never leaves a half-imported state.
func Decode(data []byte) (*Schema, []error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, []error{fmt.Errorf("parsing project file: %w", err)}
	}

	var errs []error
	for _, key := range requiredKeys {
		raw, ok := top[key]
		if !ok {
			errs = append(errs, fmt.Errorf("missing required field %q", key))
			continue
		}
		if arrayKeys[key] && !isJSONArray(raw) {
			errs = append(errs, fmt.Errorf("field %q must be an array", key))
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	var schema Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, []error{fmt.Errorf("parsing project file: %w", err)}
	}

	if errs := validateSchema(&schema); len(errs) > 0 {
		return nil, errs
	}
	return &schema, nil
}

// validateSchema checks the clock-time fields Convert depends on. Deeper
// entity integrity (dangling role or staff references) is deliberately left
// to the resolver, which renders such cells as unassigned instead of
// rejecting the file.
func validateSchema(s *Schema) []error {
	var errs []error

	errs = append(errs, validateClock("gridStartTime", s.GridStartTime)...)
	errs = append(errs, validateClock("gridEndTime", s.GridEndTime)...)

	for i, d := range s.Days {
		errs = append(errs, validateClock(fmt.Sprintf("days[%d].dayStartTime", i), d.DayStartTime)...)
	}
	for i, sess := range s.Sessions {
		prefix := fmt.Sprintf("sessions[%d]", i)
		if sess.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		}
		errs = append(errs, validateClock(prefix+".startTime", sess.StartTime)...)
		errs = append(errs, validateClock(prefix+".endTime", sess.EndTime)...)
	}
	for i, so := range s.StaffOverrides {
		prefix := fmt.Sprintf("staffOverrides[%d]", i)
		errs = append(errs, validateClock(prefix+".startTime", so.StartTime)...)
		errs = append(errs, validateClock(prefix+".endTime", so.EndTime)...)
	}

	return errs
}

func validateClock(field, value string) []error {
	if _, err := timeutil.ParseClock(value); err != nil {
		return []error{fmt.Errorf("%s: %w", field, err)}
	}
	return nil
}

func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == '['
		}
	}
	return false
}
