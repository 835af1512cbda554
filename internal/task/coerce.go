package task

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kayz/questgen/internal/schema"
)

// coerce converts raw to the Go representation of field's type.
// A nil result with a nil error means "absent" for OptionalInteger and TriState.
func coerce(kind string, field schema.Field, raw any) (any, error) {
	fail := func(reason string) error {
		return &FieldTypeError{Kind: kind, Field: field.Name, Want: field.Type.String(), Value: raw, Reason: reason}
	}

	switch field.Type {
	case schema.Integer:
		n, ok, reason := toInt(raw)
		if !ok {
			return nil, fail(reason)
		}
		return n, nil

	case schema.OptionalInteger:
		if raw == nil {
			return nil, nil
		}
		if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
			return nil, nil
		}
		n, ok, reason := toInt(raw)
		if !ok {
			return nil, fail(reason)
		}
		return n, nil

	case schema.Boolean:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fail("not a boolean")
			}
			return b, nil
		}
		return nil, fail("")

	case schema.String:
		switch v := raw.(type) {
		case string:
			return v, nil
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return fmt.Sprintf("%d", v), nil
		}
		return nil, fail("")

	case schema.StringList:
		switch v := raw.(type) {
		case []string:
			out := make([]string, len(v))
			copy(out, v)
			return out, nil
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, fail(fmt.Sprintf("list element %v is not a string", item))
				}
				out = append(out, s)
			}
			return out, nil
		case string:
			return splitLines(v), nil
		}
		return nil, fail("")

	case schema.TriState:
		switch v := raw.(type) {
		case nil:
			return nil, nil
		case bool:
			return v, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "":
				return nil, nil
			case "true":
				return true, nil
			case "false":
				return false, nil
			}
			return nil, fail(`expected "", "true" or "false"`)
		}
		return nil, fail("")
	}

	return nil, fail("unsupported field type")
}

// toInt accepts only values that represent an integer exactly.
func toInt(raw any) (int, bool, string) {
	switch v := raw.(type) {
	case int:
		return v, true, ""
	case int8:
		return int(v), true, ""
	case int16:
		return int(v), true, ""
	case int32:
		return int(v), true, ""
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return 0, false, "out of range"
		}
		return int(v), true, ""
	case uint8:
		return int(v), true, ""
	case uint16:
		return int(v), true, ""
	case uint32:
		return int(v), true, ""
	case uint:
		if uint64(v) > math.MaxInt {
			return 0, false, "out of range"
		}
		return int(v), true, ""
	case uint64:
		if v > math.MaxInt {
			return 0, false, "out of range"
		}
		return int(v), true, ""
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case json.Number:
		if n, err := strconv.Atoi(v.String()); err == nil {
			return n, true, ""
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false, "not a number"
		}
		return floatToInt(f)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false, "not an integer"
		}
		return n, true, ""
	case nil:
		return 0, false, "missing value"
	}
	return 0, false, ""
}

func floatToInt(f float64) (int, bool, string) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false, "not an integer"
	}
	// float64(math.MaxInt) rounds up to 2^63, which int cannot hold
	if f >= -float64(math.MinInt) || f < float64(math.MinInt) {
		return 0, false, "out of range"
	}
	return int(f), true, ""
}

// splitLines turns a multi-line string into one value per line, dropping
// trailing blank lines.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
