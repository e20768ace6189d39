package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher is implemented by every service backed by a collection.
type Refresher interface {
	Refresh(ctx context.Context) (bool, error)
}

type watchTarget struct {
	name string
	r    Refresher
}

// StoreWatcher polls the store on a fixed interval so that writes made by
// another process show up here within one interval. The last full write wins.
type StoreWatcher struct {
	interval time.Duration
	log      *zap.Logger
	cron     *cron.Cron

	mu      sync.Mutex
	targets []watchTarget
}

func NewStoreWatcher(interval time.Duration, logger *zap.Logger) *StoreWatcher {
	log := logger.Named("store_watcher")
	return &StoreWatcher{
		interval: interval,
		log:      log,
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{log.Sugar()}),
			cron.SkipIfStillRunning(cronLogger{log.Sugar()}),
		)),
	}
}

// Register adds a service to every tick.
func (w *StoreWatcher) Register(name string, r Refresher) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.targets = append(w.targets, watchTarget{name: name, r: r})
}

// Poll runs one tick synchronously.
func (w *StoreWatcher) Poll(ctx context.Context) {
	w.mu.Lock()
	targets := append([]watchTarget(nil), w.targets...)
	w.mu.Unlock()

	for _, t := range targets {
		changed, err := t.r.Refresh(ctx)
		if err != nil {
			w.log.Warn("Refresh failed", zap.String("service", t.name), zap.Error(err))
			continue
		}
		if changed {
			w.log.Debug("Service picked up external changes", zap.String("service", t.name))
		}
	}
}

// Start schedules Poll every interval until Stop.
func (w *StoreWatcher) Start() error {
	schedule := fmt.Sprintf("@every %s", w.interval)
	if _, err := w.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), w.interval)
		defer cancel()
		w.Poll(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule store polling: %w", err)
	}
	w.cron.Start()
	w.log.Info("Store polling started", zap.Duration("interval", w.interval))
	return nil
}

// Stop waits for a running tick to finish.
func (w *StoreWatcher) Stop() {
	<-w.cron.Stop().Done()
	w.log.Info("Store polling stopped")
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
