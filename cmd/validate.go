package cmd

import (
	"fmt"
	"strings"

	"github.com/kayz/questgen/internal/batch"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	var batchPath string
	c := &cobra.Command{
		Use:   "validate",
		Short: "Build a batch file without writing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(batchPath) == "" {
				return fmt.Errorf("--file is required")
			}
			spec, err := batch.Load(batchPath)
			if err != nil {
				return err
			}
			quests, err := batch.Build(spec)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ok: %d quests in category %s\n", len(quests), spec.Category)
			for _, q := range quests {
				fmt.Fprintf(out, "  %s\n", batch.Summary(q))
			}
			return nil
		},
	}
	c.Flags().StringVarP(&batchPath, "file", "f", "", "Path to the batch YAML file")
	return c
}
