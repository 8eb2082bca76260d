package automation

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"realty_leads_backend/platform/logger"
)

// Task cadences. Interval tasks fire on a ticker; scheduled tasks fire at
// fixed wall-clock moments in UTC.
const (
	nurturingInterval    = 5 * time.Minute
	highPriorityInterval = 1 * time.Minute
)

type task struct {
	name     string
	schedule string
	every    time.Duration             // > 0 for interval tasks
	next     func(time.Time) time.Time // set for scheduled tasks
	run      func(context.Context) error

	running atomic.Bool
	lastRun atomic.Pointer[time.Time]
}

// Engine owns the automation tasks. Start launches one goroutine per task;
// Stop cancels them all and waits for in-flight runs to return.
type Engine struct {
	store    Store
	notifier Notifier
	social   SocialPoster
	log      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
	tasks  []*task
}

func NewEngine(store Store, notifier Notifier, social SocialPoster, log *logger.Logger) *Engine {
	e := &Engine{
		store:    store,
		notifier: notifier,
		social:   social,
		log:      log.WithComponent("automation"),
	}
	e.tasks = []*task{
		{
			name:     "nurturing",
			schedule: fmt.Sprintf("every %s", nurturingInterval),
			every:    nurturingInterval,
			run:      e.processNewLeads,
		},
		{
			name:     "high-priority",
			schedule: fmt.Sprintf("every %s", highPriorityInterval),
			every:    highPriorityInterval,
			run:      e.processHighPriorityLeads,
		},
		{
			name:     "daily-analytics",
			schedule: "daily at 00:00 UTC",
			next:     nextDailyAt(0, 0),
			run:      e.aggregateDailyAnalytics,
		},
		{
			name:     "social-market-update",
			schedule: "Mon/Wed/Fri at 09:00 UTC",
			next:     nextWeekdaysAt([]time.Weekday{time.Monday, time.Wednesday, time.Friday}, 9, 0),
			run:      e.postSocialMarketUpdate,
		},
		{
			name:     "sms-market-update",
			schedule: "Fri at 10:00 UTC",
			next:     nextWeekdaysAt([]time.Weekday{time.Friday}, 10, 0),
			run:      e.sendMarketUpdateBlast,
		},
	}
	return e
}

// Start launches all task loops. Calling Start on a running engine is a no-op.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	for _, t := range e.tasks {
		e.wg.Add(1)
		go e.loop(runCtx, t)
	}
	e.log.Info("automation engine started", "tasks", len(e.tasks))
}

// Stop cancels all task loops and blocks until in-flight runs return.
// A stopped engine can be started again.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel := e.cancel
	e.cancel = nil
	e.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	e.wg.Wait()
	e.log.Info("automation engine stopped")
}

// Started reports whether the engine is currently running.
func (e *Engine) Started() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancel != nil
}

// TaskStatus is one task's entry in the status endpoint.
type TaskStatus struct {
	Name     string     `json:"name"`
	Schedule string     `json:"schedule"`
	Running  bool       `json:"running"`
	LastRun  *time.Time `json:"lastRun,omitempty"`
}

// Status reports every task's cadence and most recent run.
func (e *Engine) Status() []TaskStatus {
	out := make([]TaskStatus, 0, len(e.tasks))
	for _, t := range e.tasks {
		out = append(out, TaskStatus{
			Name:     t.name,
			Schedule: t.schedule,
			Running:  t.running.Load(),
			LastRun:  t.lastRun.Load(),
		})
	}
	return out
}

func (e *Engine) loop(ctx context.Context, t *task) {
	defer e.wg.Done()

	if t.every > 0 {
		ticker := time.NewTicker(t.every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.runTask(ctx, t)
			}
		}
	}

	for {
		timer := time.NewTimer(time.Until(t.next(time.Now().UTC())))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			e.runTask(ctx, t)
		}
	}
}

// runTask executes one tick. If the previous tick of the same task is still
// in flight the tick is skipped, never queued.
func (e *Engine) runTask(ctx context.Context, t *task) {
	if !t.running.CompareAndSwap(false, true) {
		e.log.Warn("previous run still in flight, skipping tick", "task", t.name)
		return
	}
	defer t.running.Store(false)

	started := time.Now()
	if err := t.run(ctx); err != nil {
		e.log.Error("task run failed", "task", t.name, "error", err)
	}
	t.lastRun.Store(&started)
}

func nextDailyAt(hour, minute int) func(time.Time) time.Time {
	return func(now time.Time) time.Time {
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
		return next
	}
}

func nextWeekdaysAt(days []time.Weekday, hour, minute int) func(time.Time) time.Time {
	set := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return func(now time.Time) time.Time {
		for offset := 0; offset <= 7; offset++ {
			day := now.AddDate(0, 0, offset)
			candidate := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
			if set[candidate.Weekday()] && candidate.After(now) {
				return candidate
			}
		}
		// unreachable for a non-empty weekday set
		return now.AddDate(0, 0, 1)
	}
}
