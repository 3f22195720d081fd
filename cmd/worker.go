package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Abraxas-365/peoplehub/internal/config"
	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/Abraxas-365/peoplehub/recruitment/resume/worker"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Process queued resume ingestion jobs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		workers, _ := cmd.Flags().GetInt("workers")
		return runWorker(cmd.Context(), workers)
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)

	workerCmd.Flags().Int("workers", 2, "number of concurrent workers")
}

func runWorker(ctx context.Context, workers int) error {
	cfg, err := loadConfig(config.RequireDatabase)
	if err != nil {
		return err
	}

	container, err := NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if container.Queue == nil {
		return errx.New("redis is required to run workers", errx.TypeExternal).
			WithDetail("addr", cfg.Redis.Addr)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := worker.NewResumeWorker(container.ResumeService, container.Queue, worker.Options{Workers: workers})
	pool.Start(ctx)

	<-ctx.Done()
	logx.Info("Stopping workers...")
	pool.Wait()
	logx.Info("Workers stopped")
	return nil
}
