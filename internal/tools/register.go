package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Register adds the quest tools to s. Batches are rendered through r.
func Register(s *server.MCPServer, r *Renderer) {
	s.AddTool(mcp.NewTool("list_task_kinds",
		mcp.WithDescription("List quest task kinds, or describe the fields of one kind"),
		mcp.WithString("kind", mcp.Description("Kind to describe, e.g. blockbreak")),
	), ListKinds)

	s.AddTool(mcp.NewTool("normalize_task",
		mcp.WithDescription("Validate task fields for a kind and return the normalized YAML entry"),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Task kind, e.g. blockbreak")),
		mcp.WithObject("fields", mcp.Description("Raw field values, e.g. {\"amount\": 64, \"block\": \"STONE\"}")),
	), NormalizeTask)

	s.AddTool(mcp.NewTool("roman_numeral",
		mcp.WithDescription("Convert a sort order to the Roman numeral used in display names"),
		mcp.WithNumber("number", mcp.Required(), mcp.Description("Positive integer")),
	), RomanNumeral)

	s.AddTool(mcp.NewTool("render_batch",
		mcp.WithDescription("Render every quest file of a YAML batch document without writing to disk"),
		mcp.WithString("batch", mcp.Required(), mcp.Description("Batch document (version 1)")),
		mcp.WithObject("placeholders", mcp.Description("Optional placeholder templates {key, value, progress} overriding the configured ones")),
	), r.RenderBatch)
}
