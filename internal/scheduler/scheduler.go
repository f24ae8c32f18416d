// Package scheduler runs the server's background maintenance jobs on a
// gocron scheduler. Today that is the purge of expired idempotency records
// written by POST /assistance.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tbourn/krishi-mitra/internal/repo"
)

const purgeJobName = "idempotency-purge"

var purgedTotal = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "idempotency_records_purged_total",
	Help: "Expired idempotency records deleted by the purge job.",
})

func init() {
	prometheus.MustRegister(purgedTotal)
}

// Scheduler owns a gocron scheduler and the jobs registered on it.
type Scheduler struct {
	s   gocron.Scheduler
	db  *gorm.DB
	log zerolog.Logger
	now func() time.Time
}

// New creates a scheduler in UTC and registers the idempotency purge job on
// the given cron expression (five fields, no seconds). Jobs do not run until
// Start is called.
func New(db *gorm.DB, purgeCron string, log zerolog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithLogger(gocronLogger{log: log}),
	)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	sch := &Scheduler{s: s, db: db, log: log, now: time.Now}
	_, err = s.NewJob(
		gocron.CronJob(purgeCron, false),
		gocron.NewTask(func() { _, _ = sch.PurgeIdempotency(context.Background()) }),
		gocron.WithName(purgeJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("schedule %s (%q): %w", purgeJobName, purgeCron, err)
	}
	log.Info().Str("job", purgeJobName).Str("cron", purgeCron).Msg("job scheduled")
	return sch, nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() { s.s.Start() }

// Shutdown stops the scheduler and waits for running jobs.
func (s *Scheduler) Shutdown() error {
	if err := s.s.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	return nil
}

// PurgeIdempotency deletes idempotency records that expired before now.
func (s *Scheduler) PurgeIdempotency(ctx context.Context) (int64, error) {
	n, err := repo.PurgeExpiredIdempotency(ctx, s.db, s.now().UTC())
	if err != nil {
		s.log.Error().Err(err).Str("job", purgeJobName).Msg("purge failed")
		return 0, err
	}
	purgedTotal.Add(float64(n))
	if n > 0 {
		s.log.Info().Int64("deleted", n).Str("job", purgeJobName).Msg("expired idempotency keys purged")
	}
	return n, nil
}

// gocronLogger routes gocron's key/value logs into zerolog.
type gocronLogger struct{ log zerolog.Logger }

func (l gocronLogger) Debug(msg string, args ...any) { l.log.Debug().Fields(args).Msg(msg) }
func (l gocronLogger) Info(msg string, args ...any)  { l.log.Info().Fields(args).Msg(msg) }
func (l gocronLogger) Warn(msg string, args ...any)  { l.log.Warn().Fields(args).Msg(msg) }
func (l gocronLogger) Error(msg string, args ...any) { l.log.Error().Fields(args).Msg(msg) }
