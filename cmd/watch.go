package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kayz/questgen/internal/logger"
	"github.com/kayz/questgen/internal/output"
	"github.com/kayz/questgen/internal/scheduler"
	"github.com/spf13/cobra"
)

func newWatchCommand() *cobra.Command {
	var opts generateOptions
	var schedule string
	var always bool
	c := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate a batch on a cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(opts.batchPath) == "" {
				return fmt.Errorf("--file is required")
			}
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if strings.TrimSpace(schedule) == "" {
				schedule = cfg.Watch.Schedule
			}

			s := scheduler.New()
			if d, err := time.ParseDuration(strings.TrimSpace(cfg.Watch.Timeout)); err == nil {
				s.SetTimeout(d)
			}

			w := &batchWatcher{path: opts.batchPath, always: always}
			job, err := s.Add("generate "+opts.batchPath, schedule, func(ctx context.Context) error {
				return w.tick(func() error {
					_, err := generate(cfg, opts, cmd.OutOrStdout())
					return err
				})
			})
			if err != nil {
				return err
			}

			if err := s.RunNow(job.ID); err != nil {
				logger.Warn("[WATCH] initial generation failed: %v", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s.Start()
			logger.Info("[WATCH] watching %s (%s), press Ctrl+C to stop", opts.batchPath, job.Schedule)
			<-ctx.Done()
			s.Stop()
			return nil
		},
	}
	c.Flags().StringVarP(&opts.batchPath, "file", "f", "", "Path to the batch YAML file")
	c.Flags().StringVar(&opts.outDir, "out", "", "Output directory (default: output_dir from config)")
	c.Flags().BoolVar(&opts.noHistory, "no-history", false, "Do not record runs in the history database")
	c.Flags().StringVar(&schedule, "schedule", "", "Cron expression or descriptor (default: watch.schedule from config)")
	c.Flags().BoolVar(&always, "always", false, "Regenerate on every tick even if the batch file is unchanged")
	return c
}

// batchWatcher runs regeneration only when the batch file changed since the
// last successful run.
type batchWatcher struct {
	path   string
	always bool
	last   string
}

// tick calls regenerate unless the batch file is unchanged. The file digest
// is remembered only when regenerate succeeds, so a failed run is retried on
// the next tick.
func (b *batchWatcher) tick(regenerate func() error) error {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return fmt.Errorf("read batch file: %w", err)
	}
	sum := output.Digest(string(data))
	if !b.always && sum == b.last {
		logger.Debug("[WATCH] %s unchanged, skipping", b.path)
		return nil
	}
	if err := regenerate(); err != nil {
		return err
	}
	b.last = sum
	return nil
}
