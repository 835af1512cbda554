package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/kayz/questgen/internal/config"
	"github.com/kayz/questgen/internal/logger"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
)

var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "questgen",
		Short: "Generate quest configuration files for the Quests plugin",
		Long: `questgen turns YAML batch files into per-quest configuration files.

Commands:
  questgen generate -f batch.yaml   Render and write a batch
  questgen validate -f batch.yaml   Check a batch without writing
  questgen kinds [kind]             List task kinds and their fields
  questgen history [run-id]         Show past generation runs
  questgen watch -f batch.yaml      Regenerate on a schedule
  questgen mcp                      Serve the quest tools over MCP stdio
  questgen service install -f ...   Run watch as a background service`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Flag wins over the config file
			level := logLevel
			explicit := cmd.Flags().Changed("log")
			if !explicit {
				if cfg, err := loadConfig(); err == nil && strings.TrimSpace(cfg.Logging.Level) != "" {
					level = cfg.Logging.Level
				}
			}
			parsed, err := logger.ParseLevel(level)
			if err != nil {
				return err
			}
			// QUESTGEN_DEBUG lowers the level to debug unless --log was given
			if !explicit && logger.DebugForced() && parsed > logger.DebugLevel {
				parsed = logger.DebugLevel
			}
			logger.SetLevel(parsed)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: trace, debug, info, warn, error, fatal, panic")
	root.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: .questgen.yaml next to the executable)")

	root.AddCommand(
		newGenerateCommand(),
		newValidateCommand(),
		newKindsCommand(),
		newHistoryCommand(),
		newWatchCommand(),
		newMCPCommand(),
		newServiceCommand(),
		newVersionCommand(),
	)
	return root
}

// loadConfig reads --config when given, the default location otherwise.
func loadConfig() (*config.Config, error) {
	if strings.TrimSpace(configPath) != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
