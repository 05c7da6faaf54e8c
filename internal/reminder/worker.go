package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Worker runs the dispatcher on a fixed interval.
type Worker struct {
	dispatcher *Dispatcher
	interval   time.Duration
	log        *zap.Logger
}

func NewWorker(dispatcher *Dispatcher, interval time.Duration, log *zap.Logger) *Worker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Worker{dispatcher: dispatcher, interval: interval, log: log}
}

// Run dispatches once per tick until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	w.log.Info("reminder worker started", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("reminder worker stopped")
			return
		case <-ticker.C:
			res, err := w.dispatcher.Dispatch(ctx)
			if err != nil {
				w.log.Warn("reminder dispatch error", zap.Error(err))
				continue
			}
			if res.ProcessedReminders > 0 {
				w.log.Info("reminders processed", zap.Int("count", res.ProcessedReminders))
			}
		}
	}
}
