package cmd

import (
	"fmt"

	"github.com/kayz/questgen/internal/logger"
	"github.com/kayz/questgen/internal/tools"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the quest tools over MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			s := server.NewMCPServer(
				"questgen",
				Version,
				server.WithToolCapabilities(true),
				server.WithRecovery(),
			)
			tools.Register(s, tools.NewRenderer(cfg.Placeholders, cfg.FileExt))

			logger.Info("[MCP] serving on stdio")
			return server.ServeStdio(s)
		},
	}
}
