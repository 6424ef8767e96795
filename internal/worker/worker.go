package worker

import (
	"context"
	"log/slog"
	"time"
)

// FeedRefresher определяет интерфейс пересборки ленты для воркера.
// Пересборка происходит только если окно свежести кэша истекло;
// возвращает размер пачки и признак фактической пересборки.
type FeedRefresher interface {
	Refresh(ctx context.Context) (int, bool)
}

// Worker реализует фонового воркера прогрева кэша ленты.
// Периодически проверяет свежесть текущей кэш-записи и пересобирает её,
// когда окно свежести истекло, чтобы простаивающая сессия держала
// теплый кэш.
type Worker struct {
	refresher FeedRefresher
	interval  time.Duration
	log       *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
}

// New создает нового воркера прогрева кэша.
// Принимает сервис пересборки, интервал проверки и логгер.
func New(refresher FeedRefresher, interval time.Duration, log *slog.Logger) *Worker {
	return &Worker{
		refresher: refresher,
		interval:  interval,
		log:       log,
	}
}

// Start запускает воркер в отдельной горутине.
// Инициализирует контекст с возможностью отмены и начинает цикл прогрева.
func (w *Worker) Start() {
	w.ctx, w.cancel = context.WithCancel(context.Background())
	go w.run()
}

// Stop останавливает воркер путем отмены контекста.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
}

// run выполняет основной цикл работы воркера.
// Первый прогрев происходит сразу, далее по расписанию до отмены контекста.
func (w *Worker) run() {
	w.log.Info("Feed warm-up worker started",
		slog.String("component", "worker"),
		slog.String("interval", w.interval.String()),
	)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	w.refreshOnce()
	for {
		select {
		case <-ticker.C:
			w.refreshOnce()
		case <-w.ctx.Done():
			w.log.Info("Worker stopping", slog.String("component", "worker"))
			return
		}
	}
}

// refreshOnce выполняет одну проверку свежести с таймаутом на операцию.
func (w *Worker) refreshOnce() {
	start := time.Now()
	opCtx, opCancel := context.WithTimeout(w.ctx, 30*time.Second)
	defer opCancel()
	count, refreshed := w.refresher.Refresh(opCtx)
	if !refreshed {
		w.log.Debug("Feed cache still fresh, skipping warm-up",
			slog.String("component", "worker"),
		)
		return
	}
	w.log.Info("Feed cache warmed",
		slog.String("component", "worker"),
		slog.Int("count", count),
		slog.Duration("duration", time.Since(start)),
	)
}

// GetInterval возвращает интервал прогрева кэша.
func (w *Worker) GetInterval() time.Duration { return w.interval }
