package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"btc-signal-bot/config"
	"btc-signal-bot/internal/service"
	"btc-signal-bot/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Task is one check-and-notify cycle.
type Task interface {
	CheckAndNotify(ctx context.Context) error
}

// Entry is a single recurring trigger together with its next due time.
type Entry struct {
	schedule cron.Schedule
	next     time.Time
}

// Scheduler owns the recurring trigger list and drives the evaluator. One
// cycle runs to completion before the next due trigger is considered; the
// poll interval bounds the slack between a trigger's due time and the
// actual run.
type Scheduler struct {
	cfg  *config.Scheduler
	log  *logger.Logger
	task Task

	entries []*Entry
	now     func() time.Time
}

func New(cfg *config.Scheduler, log *logger.Logger, task Task) (*Scheduler, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(cfg.DailyCron)
	if err != nil {
		return nil, fmt.Errorf("invalid daily cron %q: %w", cfg.DailyCron, err)
	}

	return &Scheduler{
		cfg:     cfg,
		log:     log,
		task:    task,
		entries: []*Entry{{schedule: schedule}},
		now:     time.Now,
	}, nil
}

// Run executes one evaluation synchronously, arms the daily trigger, then
// polls until ctx is cancelled. It never returns early on task failures;
// once disabled it keeps ticking without doing anything so the process can
// be restarted externally with fixed credentials.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Info("Scheduler starting, running startup check",
		logger.StringField("daily_cron", s.cfg.DailyCron),
		logger.StringField("poll_interval", s.cfg.PollInterval.String()))

	s.runCycle(ctx)
	s.armAll(s.now())

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Scheduler stopped")
			return nil
		case <-ticker.C:
			s.runDue(ctx, s.now())
		}
	}
}

// Disabled reports whether the trigger list has been cleared.
func (s *Scheduler) Disabled() bool {
	return len(s.entries) == 0
}

func (s *Scheduler) armAll(now time.Time) {
	for _, e := range s.entries {
		e.next = e.schedule.Next(now)
	}
}

// runDue executes every entry whose due time has passed, strictly in
// due-time order, and re-arms each for its next occurrence. Returns the
// number of cycles run.
func (s *Scheduler) runDue(ctx context.Context, now time.Time) int {
	var due []*Entry
	for _, e := range s.entries {
		if !e.next.IsZero() && !e.next.After(now) {
			due = append(due, e)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].next.Before(due[j].next) })

	ran := 0
	for _, e := range due {
		s.runCycle(ctx)
		ran++
		e.next = e.schedule.Next(now)
		if s.Disabled() {
			break
		}
	}
	return ran
}

func (s *Scheduler) runCycle(ctx context.Context) {
	err := s.task.CheckAndNotify(ctx)
	if err == nil {
		return
	}

	if errors.Is(err, service.ErrMissingCredentials) {
		// Keep the process alive but stop scheduling anything; an operator
		// has to restart it with credentials in place.
		s.log.Error("Notification credentials are missing, disabling scheduled checks", logger.ErrorField(err))
		s.entries = nil
		return
	}

	s.log.Warn("Check cycle abandoned, will retry on next trigger", logger.ErrorField(err))
}
