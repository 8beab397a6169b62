package research

import (
	"log/slog"
	"sync"
	"time"
)

// progress counts completed queries and logs a line every reportInterval
// completions. Safe for concurrent use by pool workers.
type progress struct {
	mu        sync.Mutex
	total     int
	done      int
	failed    int
	interval  int
	startTime time.Time
	logger    *slog.Logger
}

func newProgress(total, interval int, logger *slog.Logger) *progress {
	if interval < 1 {
		interval = 1
	}
	return &progress{
		total:     total,
		interval:  interval,
		startTime: time.Now(),
		logger:    logger,
	}
}

func (p *progress) completed(failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	if failed {
		p.failed++
	}
	if p.done%p.interval == 0 || p.done == p.total {
		p.logger.Info("research progress",
			slog.Int("done", p.done),
			slog.Int("total", p.total),
			slog.Int("failed", p.failed),
			slog.Duration("elapsed", time.Since(p.startTime).Round(time.Millisecond)))
	}
}
