package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionCleaner apaga sessões vencidas e devolve quantas removeu.
type SessionCleaner interface {
	CleanupSessions(ctx context.Context) (int64, error)
}

type SessionCleanupWorker struct {
	cleaner      SessionCleaner
	tickInterval time.Duration
	logger       *zap.Logger
}

func NewSessionCleanupWorker(cleaner SessionCleaner, every time.Duration, logger *zap.Logger) *SessionCleanupWorker {
	if every <= 0 {
		every = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionCleanupWorker{cleaner: cleaner, tickInterval: every, logger: logger}
}

// Start roda uma limpeza imediata e depois uma por tick, até ctx acabar.
func (w *SessionCleanupWorker) Start(ctx context.Context) {
	w.logger.Info("session cleanup worker started", zap.Duration("interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("session cleanup worker stopped")
			return
		case <-ticker.C:
			w.cleanup(ctx)
		}
	}
}

func (w *SessionCleanupWorker) cleanup(ctx context.Context) {
	n, err := w.cleaner.CleanupSessions(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("expired session cleanup failed", zap.Error(err))
		}
		return
	}
	if n > 0 {
		w.logger.Info("expired sessions removed", zap.Int64("count", n))
	}
}
