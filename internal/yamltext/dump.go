// Package yamltext renders in-memory value trees as YAML-compatible text.
//
// It is a writer only: there is no parser, no anchors or aliases, and the
// scalar set is limited to strings, integers, booleans and null. Output is
// byte-stable for equal input because maps are ordered (see Map).
package yamltext

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const indentUnit = "  "

const quoteSpecials = ":{}[]#&*!|>%@`"

// NeedsQuoting reports whether s must be double-quoted to survive a YAML
// reader as the same string.
func NeedsQuoting(s string) bool {
	if s == "" {
		return true
	}
	if strings.ContainsAny(s, quoteSpecials) {
		return true
	}
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	if unicode.IsSpace(first) || unicode.IsSpace(last) {
		return true
	}
	switch strings.ToLower(s) {
	case "true", "false", "null", "~":
		return true
	}
	return false
}

// Quote wraps s in double quotes, escaping embedded double quotes.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// Dump renders v at the given indentation level. Lines are joined with "\n"
// and no trailing newline is added.
func Dump(v any, indent int) string {
	var lines []string
	lines = appendValue(lines, v, indent)
	return strings.Join(lines, "\n")
}

func appendValue(lines []string, v any, indent int) []string {
	sp := strings.Repeat(indentUnit, indent)
	switch val := v.(type) {
	case *Map:
		if val.Len() == 0 {
			return append(lines, sp+"{}")
		}
		for _, k := range val.keys {
			child := val.values[k]
			if isBlock(child) {
				lines = append(lines, sp+k+":")
				lines = appendValue(lines, child, indent+1)
				continue
			}
			lines = append(lines, sp+k+": "+scalar(child))
		}
		return lines
	default:
		if items, ok := asList(v); ok {
			if len(items) == 0 {
				return append(lines, sp+"[]")
			}
			for _, item := range items {
				if isBlock(item) {
					lines = append(lines, sp+"-")
					lines = appendValue(lines, item, indent+1)
					continue
				}
				lines = append(lines, sp+"- "+scalar(item))
			}
			return lines
		}
		return append(lines, sp+scalar(v))
	}
}

// isBlock reports whether v renders as a nested block rather than inline.
func isBlock(v any) bool {
	if m, ok := v.(*Map); ok {
		return m.Len() > 0
	}
	if items, ok := asList(v); ok {
		return len(items) > 0
	}
	return false
}

func asList(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out, true
	case []int:
		out := make([]any, len(val))
		for i, n := range val {
			out[i] = n
		}
		return out, true
	case []*Map:
		out := make([]any, len(val))
		for i, m := range val {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

func scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case string:
		if NeedsQuoting(val) {
			return Quote(val)
		}
		return val
	case *Map:
		return "{}"
	}
	if items, ok := asList(v); ok && len(items) == 0 {
		return "[]"
	}
	return Quote(fmt.Sprint(v))
}
