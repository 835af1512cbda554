package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/kayz/questgen/internal/batch"
	"github.com/kayz/questgen/internal/config"
	"github.com/kayz/questgen/internal/logger"
	"github.com/kayz/questgen/internal/output"
	"github.com/kayz/questgen/internal/persist"
	"github.com/kayz/questgen/internal/security"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	batchPath string
	outDir    string
	dryRun    bool
	noHistory bool
}

type generateResult struct {
	runID string
	files []output.File
}

func newGenerateCommand() *cobra.Command {
	var opts generateOptions
	c := &cobra.Command{
		Use:   "generate",
		Short: "Render a batch file and write one file per quest",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(opts.batchPath) == "" {
				return fmt.Errorf("--file is required")
			}
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			res, err := generate(cfg, opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if !opts.dryRun {
				for _, f := range res.files {
					fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", f.Path)
				}
				if res.runID != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "run %s\n", res.runID)
				}
			}
			return nil
		},
	}
	c.Flags().StringVarP(&opts.batchPath, "file", "f", "", "Path to the batch YAML file")
	c.Flags().StringVar(&opts.outDir, "out", "", "Output directory (default: output_dir from config)")
	c.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the rendered files instead of writing them")
	c.Flags().BoolVar(&opts.noHistory, "no-history", false, "Do not record this run in the history database")
	return c
}

// generate loads, builds, renders and writes a batch. In dry-run mode the
// rendered files are printed to out and nothing is written or recorded.
func generate(cfg *config.Config, opts generateOptions, out io.Writer) (res *generateResult, err error) {
	res = &generateResult{}

	var store *persist.Store
	var run *persist.Run
	if !opts.dryRun && !opts.noHistory && cfg.History.Enabled {
		store, run = beginRun(cfg, opts.batchPath)
	}
	if store != nil {
		defer store.Close()
		res.runID = run.ID
		defer func() {
			if ferr := store.FinishRun(run.ID, len(res.files), err); ferr != nil {
				logger.Warn("[GENERATE] finish run %s: %v", run.ID, ferr)
			}
		}()
	}

	spec, err := batch.Load(opts.batchPath)
	if err != nil {
		return res, err
	}
	quests, texts, err := batch.Render(spec, cfg.Placeholders)
	if err != nil {
		return res, err
	}
	logger.Debug("[GENERATE] built %d quests for category %s", len(quests), spec.Category)

	if opts.dryRun {
		for i, q := range quests {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "# %s/%s%s\n%s", q.Category, q.ID, cfg.FileExt, texts[i])
		}
		return res, nil
	}

	root := strings.TrimSpace(opts.outDir)
	if root == "" {
		root = cfg.OutputDir
	}
	root = security.ExpandHome(root)
	if len(cfg.Security.AllowedPaths) > 0 {
		// The configured output dir is always a write root; only --out is restricted.
		roots := append([]string{security.ExpandHome(cfg.OutputDir)}, cfg.Security.AllowedPaths...)
		if err := security.NewPathChecker(roots...).CheckPath(root); err != nil {
			return res, fmt.Errorf("output directory: %w", err)
		}
	}

	w := &output.Writer{Root: root, Ext: cfg.FileExt}
	for i, q := range quests {
		f, err := w.Write(q, texts[i])
		if err != nil {
			return res, err
		}
		res.files = append(res.files, f)
		if store != nil {
			rec := persist.Output{RunID: run.ID, QuestID: f.QuestID, Path: f.Path, SHA256: f.SHA256}
			if cfg.History.StoreContent {
				rec.Content = f.Content
			}
			if err := store.AddOutput(rec); err != nil {
				logger.Warn("[GENERATE] record output %s: %v", f.QuestID, err)
			}
		}
	}

	logger.Info("[GENERATE] wrote %d quests to %s", len(res.files), root)
	return res, nil
}

// beginRun opens the history store and starts a run. History problems are
// logged and never fail the generation.
func beginRun(cfg *config.Config, source string) (*persist.Store, *persist.Run) {
	store, err := persist.NewStore(security.ExpandHome(cfg.History.Path))
	if err != nil {
		logger.Warn("[GENERATE] history disabled: %v", err)
		return nil, nil
	}
	category := ""
	if spec, err := batch.Load(source); err == nil {
		category = spec.Category
	}
	run, err := store.BeginRun(source, category)
	if err != nil {
		logger.Warn("[GENERATE] history disabled: %v", err)
		store.Close()
		return nil, nil
	}
	return store, run
}
