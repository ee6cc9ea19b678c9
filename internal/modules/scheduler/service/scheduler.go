package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"bittrader/internal/metrics"
	"bittrader/pkg/tracing"
)

// Task — периодическая задача. Run выполняется не чаще одного экземпляра за раз.
type Task struct {
	Name       string
	Interval   time.Duration
	RunAtStart bool
	Run        func(ctx context.Context) error
}

// Observer получает итог каждого тика (health).
type Observer interface {
	TickDone(task string, at time.Time, err error)
}

type entry struct {
	task    Task
	running atomic.Bool
}

// Scheduler — по тикеру на задачу. Тик, пришедший во время работы предыдущего, пропускается.
type Scheduler struct {
	entries []*entry
	obs     Observer
	log     *zap.Logger
	now     func() time.Time

	cancel context.CancelFunc
	loops  sync.WaitGroup
	ticks  sync.WaitGroup
}

func New(log *zap.Logger, obs Observer, tasks ...Task) *Scheduler {
	s := &Scheduler{obs: obs, log: log.Named("scheduler"), now: time.Now}
	for _, t := range tasks {
		s.entries = append(s.entries, &entry{task: t})
	}
	return s
}

func (s *Scheduler) Start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel

	for _, e := range s.entries {
		s.loops.Add(1)
		go s.loop(ctx, e)
	}
	s.log.Info("[BOOT] scheduler started", zap.Int("tasks", len(s.entries)))
}

// Stop останавливает тикеры и ждёт текущие тики, не отменяя их.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.loops.Wait()
	s.ticks.Wait()
}

func (s *Scheduler) loop(ctx context.Context, e *entry) {
	defer s.loops.Done()

	ticker := time.NewTicker(e.task.Interval)
	defer ticker.Stop()

	if e.task.RunAtStart {
		s.spawn(ctx, e)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.spawn(ctx, e)
		}
	}
}

// spawn запускает тик в отдельной горутине, чтобы занятая задача не копила тики в цикле.
// Отмена ctx останавливает только цикл: начатый тик доходит до конца.
func (s *Scheduler) spawn(ctx context.Context, e *entry) {
	if !e.running.CompareAndSwap(false, true) {
		metrics.TicksSkippedTotal.WithLabelValues(e.task.Name).Inc()
		s.log.Warn("previous tick still running, skipped", zap.String("task", e.task.Name))
		return
	}
	tickCtx := context.WithoutCancel(ctx)
	s.ticks.Add(1)
	go func() {
		defer s.ticks.Done()
		defer e.running.Store(false)
		_ = s.tick(tickCtx, e.task)
	}()
}

// Trigger синхронно выполняет тик задачи вне расписания (команды телеграма).
// ran=false — задача не найдена или уже выполняется; err — итог тика.
func (s *Scheduler) Trigger(ctx context.Context, name string) (ran bool, err error) {
	for _, e := range s.entries {
		if e.task.Name != name {
			continue
		}
		if !e.running.CompareAndSwap(false, true) {
			metrics.TicksSkippedTotal.WithLabelValues(name).Inc()
			return false, nil
		}
		defer e.running.Store(false)
		s.ticks.Add(1)
		defer s.ticks.Done()
		return true, s.tick(ctx, e.task)
	}
	return false, nil
}

func (s *Scheduler) tick(ctx context.Context, t Task) error {
	span, ctx := tracing.StartSpan(ctx, "scheduler.tick", map[string]any{"task": t.Name})
	defer span.Finish()

	start := s.now()
	err := s.safeRun(ctx, t)
	metrics.TickDuration.WithLabelValues(t.Name).Observe(time.Since(start).Seconds())

	if err != nil {
		tracing.Fail(span, err)
		metrics.TickFailuresTotal.WithLabelValues(t.Name).Inc()
		s.log.Error("tick failed", zap.String("task", t.Name), zap.Error(err))
	} else {
		s.log.Debug("tick done", zap.String("task", t.Name), zap.Duration("took", time.Since(start)))
	}
	if s.obs != nil {
		s.obs.TickDone(t.Name, s.now(), err)
	}
	return err
}

func (s *Scheduler) safeRun(ctx context.Context, t Task) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic in task %s: %v", t.Name, p)
		}
	}()
	return t.Run(ctx)
}
