package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/kayz/questgen/internal/persist"
	"github.com/kayz/questgen/internal/security"
	"github.com/spf13/cobra"
)

func newHistoryCommand() *cobra.Command {
	var limit int
	var showContent bool
	c := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List generation runs, or the files written by one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			store, err := persist.NewStore(security.ExpandHome(cfg.History.Path))
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

			if len(args) == 0 {
				runs, err := store.ListRuns(limit)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, "ID\tSTARTED\tCATEGORY\tQUESTS\tSTATUS\tHOST")
				for _, r := range runs {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
						r.ID, r.StartedAt.Format(time.DateTime), r.Category, r.QuestCount, r.Status, r.Host)
				}
				return w.Flush()
			}

			run, err := store.GetRun(args[0])
			if err != nil {
				return err
			}
			outputs, err := store.GetOutputs(run.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "run %s (%s) from %s: %s\n", run.ID, run.Status, run.Source, run.Error)
			fmt.Fprintln(w, "QUEST\tSHA256\tPATH")
			for _, o := range outputs {
				fmt.Fprintf(w, "%s\t%.12s\t%s\n", o.QuestID, o.SHA256, o.Path)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if showContent {
				for _, o := range outputs {
					fmt.Fprintf(out, "\n# %s\n%s", o.Path, o.Content)
				}
			}
			return nil
		},
	}
	c.Flags().IntVar(&limit, "limit", 20, "Number of runs to list")
	c.Flags().BoolVar(&showContent, "show", false, "Print the stored file contents of the run")
	return c
}
