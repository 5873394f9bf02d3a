package app

import (
	"context"
	"time"

	"github.com/pagesage/core/internal/config"
	"github.com/pagesage/core/internal/modules/content"
	pkgcron "github.com/pagesage/core/internal/pkg/cron"
	"go.uber.org/zap"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, contentSvc *content.Service, cfg *config.AppConfig, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        "cleanup_content",
		Description: "delete stored content past its retention window",
		Interval:    cfg.Content.SweepInterval,
		Fn: func(ctx context.Context) error {
			cutoff := time.Now().UTC().Add(-cfg.Content.Retention)
			deleted, err := contentSvc.PurgeOlderThan(ctx, cutoff)
			if err != nil {
				cronLogger.Warn("content cleanup failed", zap.Error(err))
				return err
			}
			cronLogger.Info("content cleanup finished", zap.Int64("deleted", deleted))
			return nil
		},
	})
}
