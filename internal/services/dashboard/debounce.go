package dashboard

import (
	"sync"
	"time"

	"github.com/mfletcher/nestegg/internal/models"
)

// debouncer commits the most recent queued portfolio after a period of
// inactivity. A later queue call supersedes the pending record and restarts
// the delay, so at most one write is ever pending.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending *models.Portfolio
	commit  func(*models.Portfolio)
	closed  bool
}

func newDebouncer(delay time.Duration, commit func(*models.Portfolio)) *debouncer {
	return &debouncer{delay: delay, commit: commit}
}

func (d *debouncer) queue(p *models.Portfolio) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	d.pending = p
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *debouncer) fire() {
	d.mu.Lock()
	p := d.pending
	d.pending = nil
	d.mu.Unlock()

	if p != nil {
		d.commit(p)
	}
}

// close stops the timer and flushes any pending record synchronously.
func (d *debouncer) close() {
	d.mu.Lock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	p := d.pending
	d.pending = nil
	d.mu.Unlock()

	if p != nil {
		d.commit(p)
	}
}
