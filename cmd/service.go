package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/kayz/questgen/internal/batch"
	"github.com/kayz/questgen/internal/service"
	"github.com/spf13/cobra"
)

func newServiceCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "service",
		Short: "Install questgen watch as a background service",
	}

	var batchPath, schedule, name string
	install := &cobra.Command{
		Use:   "install",
		Short: "Install and enable a watch service for a batch file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(batchPath) == "" {
				return fmt.Errorf("--file is required")
			}
			if name == "" {
				spec, err := batch.Load(batchPath)
				if err != nil {
					return err
				}
				name = spec.Category
			}
			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("locate executable: %w", err)
			}
			u, err := service.NewWatchUnit(name, exe, batchPath, schedule, configPath)
			if err != nil {
				return err
			}
			if err := service.Install(runtime.GOOS, u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "installed service %s\n", u.Name)
			return nil
		},
	}
	install.Flags().StringVarP(&batchPath, "file", "f", "", "Path to the batch YAML file")
	install.Flags().StringVar(&schedule, "schedule", "", "Cron expression or descriptor")
	install.Flags().StringVar(&name, "name", "", "Service name (default: batch category)")

	control := func(use, short string, fn func(goos, name string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <name>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return fn(runtime.GOOS, service.SanitizeName(args[0]))
			},
		}
	}

	status := &cobra.Command{
		Use:   "status <name>",
		Short: "Show whether a watch service is installed and running",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			n := service.SanitizeName(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s: installed=%v running=%v\n", n,
				service.IsInstalled(runtime.GOOS, n), service.IsRunning(runtime.GOOS, n))
		},
	}

	c.AddCommand(
		install,
		control("uninstall", "Stop and remove a watch service", service.Uninstall),
		control("start", "Start a watch service", service.Start),
		control("stop", "Stop a watch service", service.Stop),
		status,
	)
	return c
}
