package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kayz/questgen/internal/batch"
	"github.com/kayz/questgen/internal/output"
	"github.com/kayz/questgen/internal/quest"
	"github.com/kayz/questgen/internal/roman"
	"github.com/kayz/questgen/internal/schema"
	"github.com/kayz/questgen/internal/task"
	"github.com/kayz/questgen/internal/yamltext"
)

type fieldInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Default  any    `json:"default,omitempty"`
}

type kindInfo struct {
	Name   string      `json:"name"`
	Title  string      `json:"title"`
	Fields []fieldInfo `json:"fields,omitempty"`
	Mutex  [][2]string `json:"mutex,omitempty"`
}

func describeKind(k *schema.Kind, withFields bool) kindInfo {
	info := kindInfo{Name: k.Name, Title: k.Title}
	if !withFields {
		return info
	}
	for _, f := range k.Required {
		info.Fields = append(info.Fields, fieldInfo{Name: f.Name, Type: f.Type.String(), Required: true})
	}
	for _, f := range k.Optional {
		info.Fields = append(info.Fields, fieldInfo{Name: f.Name, Type: f.Type.String(), Default: f.Default})
	}
	for _, m := range k.Mutex {
		info.Mutex = append(info.Mutex, [2]string{m.A, m.B})
	}
	return info
}

// ListKinds lists the task kinds, or describes one kind with its fields
func ListKinds(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, _ := req.Params.Arguments["kind"].(string)
	name = strings.TrimSpace(name)

	var payload any
	if name != "" {
		k, err := schema.Lookup(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		payload = describeKind(k, true)
	} else {
		var kinds []kindInfo
		for _, name := range schema.Kinds() {
			k, _ := schema.Lookup(name)
			kinds = append(kinds, describeKind(k, false))
		}
		payload = kinds
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode kinds: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// NormalizeTask validates task fields and returns them as they would be written
func NormalizeTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, ok := req.Params.Arguments["kind"].(string)
	if !ok || strings.TrimSpace(kind) == "" {
		return mcp.NewToolResultError("kind is required"), nil
	}
	kind = strings.TrimSpace(kind)

	raw := map[string]any{}
	if v, present := req.Params.Arguments["fields"]; present && v != nil {
		m, ok := v.(map[string]any)
		if !ok {
			return mcp.NewToolResultError("fields must be an object"), nil
		}
		raw = m
	}

	fields, err := task.Normalize(kind, raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	k, _ := schema.Lookup(kind)
	out := yamltext.NewMap().Set("type", kind)
	ordered := fields.Ordered(k)
	for _, key := range ordered.Keys() {
		v, _ := ordered.Get(key)
		out.Set(key, v)
	}
	return mcp.NewToolResultText(yamltext.Dump(out, 0) + "\n"), nil
}

// RomanNumeral converts a sort order to its display numeral
func RomanNumeral(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, ok := req.Params.Arguments["number"]
	if !ok {
		return mcp.NewToolResultError("number is required"), nil
	}
	var n int
	switch num := v.(type) {
	case float64:
		if num != float64(int(num)) {
			return mcp.NewToolResultError("number must be an integer"), nil
		}
		n = int(num)
	case int:
		n = num
	default:
		return mcp.NewToolResultError("number must be an integer"), nil
	}
	return mcp.NewToolResultText(roman.ToRoman(n)), nil
}

// Renderer renders batches with the same placeholder format and file
// extension that `questgen generate` uses.
type Renderer struct {
	Placeholders quest.PlaceholderFormat
	FileExt      string
}

// NewRenderer returns a Renderer, defaulting the extension to ".yml".
func NewRenderer(format quest.PlaceholderFormat, ext string) *Renderer {
	if strings.TrimSpace(ext) == "" {
		ext = output.DefaultExt
	}
	return &Renderer{Placeholders: format, FileExt: ext}
}

// RenderBatch renders a YAML batch document without writing any file. The
// optional placeholders argument overrides the configured format per call.
func (r *Renderer) RenderBatch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, ok := req.Params.Arguments["batch"].(string)
	if !ok || strings.TrimSpace(doc) == "" {
		return mcp.NewToolResultError("batch is required"), nil
	}

	format := r.Placeholders
	if v, present := req.Params.Arguments["placeholders"]; present && v != nil {
		m, ok := v.(map[string]any)
		if !ok {
			return mcp.NewToolResultError("placeholders must be an object"), nil
		}
		var override quest.PlaceholderFormat
		override.Key, _ = m["key"].(string)
		override.Value, _ = m["value"].(string)
		override.Progress, _ = m["progress"].(string)
		format = batch.MergeFormat(format, override)
	}

	spec, err := batch.Parse([]byte(doc))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid batch: %v", err)), nil
	}
	quests, texts, err := batch.Render(spec, format)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build batch: %v", err)), nil
	}

	ext := r.FileExt
	if strings.TrimSpace(ext) == "" {
		ext = output.DefaultExt
	}
	var sb strings.Builder
	for i, q := range quests {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "# %s/%s%s\n", q.Category, q.ID, ext)
		sb.WriteString(texts[i])
	}
	return mcp.NewToolResultText(sb.String()), nil
}
