// Package schedule implements the `retentions schedule` command: a
// long-running mode that re-runs the validated pipeline on a cron
// expression instead of relying on an external cron invoking
// `retentions` once per trigger.
//
// This promotes the teacher's RetentionRule.Cron field — parsed by the
// teacher's config loader but never consulted by its retention engine
// — into an actually wired scheduling loop, using the same
// github.com/robfig/cron/v3 dependency the teacher already carries.
// The queue/consumer shape is adapted from the teacher's
// internal/worker Queue/RunLoop: robfig/cron runs each matching entry
// in its own goroutine, which would let two targets' pipeline passes
// overlap; funneling every trigger through one FIFO queue and a single
// consumer keeps runs serialized, matching the core's single-threaded
// cooperative model even when `--config` configures several targets.
package schedule

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/raoulx24/retentions/internal/logging"
)

// RunFunc executes one full pipeline run (discovery through lock
// release) for a single configured target.
type RunFunc func(ctx context.Context) error

// job is one queued trigger: a target's label (for log attribution)
// plus the run it should execute.
type job struct {
	target string
	run    RunFunc
}

// queueSize bounds how many pending triggers can back up before a
// slow-running target starts shedding new ones; a single retentions
// pass over direct children normally completes in well under a
// second, so a backlog this deep means something is stuck.
const queueSize = 32

// Scheduler drives one or more RunFuncs on cron expressions, executing
// them one at a time regardless of how many targets are registered.
type Scheduler struct {
	cron  *cron.Cron
	log   logging.Logger
	queue chan job
}

// New builds a Scheduler.
func New(log logging.Logger) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithChain(cron.Recover(cronLogger{log}))),
		log:   log,
		queue: make(chan job, queueSize),
	}
}

// AddJob registers run to fire on spec (standard five-field cron
// syntax). Firing enqueues a job rather than running it inline, so a
// trigger that lands while an earlier target is still running waits
// its turn instead of racing it.
func (s *Scheduler) AddJob(spec, target string, run RunFunc) (cron.EntryID, error) {
	return s.cron.AddFunc(spec, func() {
		select {
		case s.queue <- job{target: target, run: run}:
		default:
			s.log.Warn("schedule: trigger for %s dropped, queue full", target)
		}
	})
}

// Run starts the scheduler and the consumer loop, blocking until ctx
// is canceled, then waits for any in-flight job to finish before
// returning.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.consume(ctx)
	}()

	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	close(s.queue)
	<-done
}

// consume is the adapted worker.RunLoop: pull one job at a time and
// run it to completion before pulling the next.
func (s *Scheduler) consume(ctx context.Context) {
	for {
		select {
		case j, ok := <-s.queue:
			if !ok {
				return
			}
			s.log.Info("schedule: starting run for %s", j.target)
			if err := j.run(ctx); err != nil {
				s.log.Error("schedule: run for %s failed: %v", j.target, err)
				continue
			}
			s.log.Info("schedule: run for %s complete", j.target)
		case <-ctx.Done():
			return
		}
	}
}

// cronLogger adapts logging.Logger to cron.Logger so a panicking job
// (cron.Recover) is reported through the same log stream as everything
// else instead of crashing the process.
type cronLogger struct {
	log logging.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.log.Debug("%s %v", msg, keysAndValues)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.log.Error("%s: %v %v", msg, err, keysAndValues)
}
