package sync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"catalog-manager/feature/library"

	"go.uber.org/zap"
)

// Phase is the coordinator's push state.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseDebouncing Phase = "debouncing"
	PhasePushing    Phase = "pushing"
)

// Status is a point-in-time view of the coordinator for the status endpoint.
type Status struct {
	Enabled       bool      `json:"enabled"`
	Phase         Phase     `json:"phase"`
	LastRunAt     time.Time `json:"lastRunAt"`
	CooldownUntil time.Time `json:"cooldownUntil"`
}

// PullOptions control how a pull applies.
type PullOptions struct {
	// Silent marks an automatic pull: errors are logged rather than
	// surfaced, and the protect-empty rule skips silently.
	Silent bool
	// Confirmed accepts a pull that would empty a non-empty local catalog.
	// Only consulted for interactive pulls.
	Confirmed bool
}

// Coordinator orchestrates push and pull against the remote endpoint. Local
// edits call SchedulePush, which coalesces bursts through a debounce timer;
// the firing timer is further gated by the failure cooldown and the minimum
// interval since the last successful push. The coordinator holds exactly one
// timer handle at a time, and a push in flight defers the next firing rather
// than running a second push in parallel.
//
// An empty remote URL disables the coordinator: every operation becomes a
// no-op or returns ErrDisabled.
type Coordinator struct {
	cfg      Config
	state    *library.State
	client   *Client
	clock    Clock
	logger   *zap.Logger
	archiver *Archiver

	mu            sync.Mutex
	timer         Timer
	timerGen      uint64 // bumped on every arm or cancel; stale firings bail
	phase         Phase
	lastRunAt     time.Time
	cooldownUntil time.Time
	extra         map[string]any // boyouBooks from the last pull, echoed on push
}

// NewCoordinator creates a coordinator. archiver may be nil; clock defaults
// to the system clock when nil.
func NewCoordinator(cfg Config, state *library.State, clock Clock, logger *zap.Logger, archiver *Archiver) *Coordinator {
	if clock == nil {
		clock = SystemClock()
	}
	c := &Coordinator{
		cfg:      cfg,
		state:    state,
		clock:    clock,
		logger:   logger,
		archiver: archiver,
		phase:    PhaseIdle,
	}
	if cfg.Enabled() {
		c.client = NewClient(cfg.RemoteURL, cfg.Timeout())
	}
	return c
}

// Enabled reports whether a remote URL is configured.
func (c *Coordinator) Enabled() bool {
	return c.client != nil
}

// Watch is the library change subscription target. Changes applied by a pull
// carry the sync origin and are ignored, so the coordinator never pushes
// back its own writes.
func (c *Coordinator) Watch(change library.Change) {
	if change.Origin == library.OriginSync {
		return
	}
	c.SchedulePush()
}

// SchedulePush (re-)arms the debounce timer. Repeated calls within the
// debounce window cancel and restart the timer, so only the last call in a
// burst fires.
func (c *Coordinator) SchedulePush() {
	if !c.Enabled() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
	if c.phase != PhasePushing {
		c.phase = PhaseDebouncing
	}
	c.armTimerLocked()
}

// armTimerLocked arms a fresh debounce timer under c.mu. The generation it
// captures lets a firing that lost the race to a re-arm recognize it has
// been superseded instead of clobbering the newer handle.
func (c *Coordinator) armTimerLocked() {
	c.timerGen++
	gen := c.timerGen
	c.timer = c.clock.AfterFunc(c.cfg.Debounce(), func() { c.debounceFired(gen) })
}

// debounceFired runs when the debounce timer elapses. Skips are silent: the
// push is simply not sent when the cooldown or the minimum interval says so.
func (c *Coordinator) debounceFired(gen uint64) {
	c.mu.Lock()
	if gen != c.timerGen {
		// A newer timer or a cancel superseded this firing.
		c.mu.Unlock()
		return
	}
	c.timer = nil
	now := c.clock.Now()

	if c.phase == PhasePushing {
		// One push at a time: defer this firing for another debounce window.
		c.armTimerLocked()
		c.mu.Unlock()
		return
	}
	if now.Before(c.cooldownUntil) {
		c.phase = PhaseIdle
		c.mu.Unlock()
		c.logger.Debug("push skipped: cooldown active")
		return
	}
	if !c.lastRunAt.IsZero() && now.Sub(c.lastRunAt) < c.cfg.MinInterval() {
		c.phase = PhaseIdle
		c.mu.Unlock()
		c.logger.Debug("push skipped: minimum interval not elapsed")
		return
	}
	c.phase = PhasePushing
	c.mu.Unlock()

	if err := c.push(context.Background()); err != nil {
		c.logger.Warn("automatic push failed", zap.Error(err))
	}
}

// PushNow performs an immediate interactive push. It bypasses the debounce,
// cooldown and minimum-interval gates but still refuses to overlap a push in
// flight.
func (c *Coordinator) PushNow(ctx context.Context) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	c.mu.Lock()
	if c.phase == PhasePushing {
		c.mu.Unlock()
		return ErrPushInFlight
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
		c.timerGen++
	}
	c.phase = PhasePushing
	c.mu.Unlock()

	return c.push(ctx)
}

// push sends the payload and updates the state machine. The payload is
// snapshotted before the request so the state lock is never held across
// network I/O.
func (c *Coordinator) push(ctx context.Context) error {
	payload := c.buildPayload()

	err := c.client.Push(ctx, payload)

	c.mu.Lock()
	now := c.clock.Now()
	c.phase = PhaseIdle
	if err != nil {
		c.cooldownUntil = now.Add(c.cfg.Cooldown())
		c.mu.Unlock()
		return err
	}
	c.lastRunAt = now
	c.mu.Unlock()

	c.logger.Info("push completed",
		zap.Int("books", len(payload.Books)),
		zap.Int("loans", len(payload.BorrowedBooks)))

	if c.archiver != nil {
		if err := c.archiver.Archive(ctx, payload, now); err != nil {
			// Archiving is best-effort; the push itself succeeded.
			c.logger.Warn("snapshot archive failed", zap.Error(err))
		} else if err := c.archiver.Prune(ctx, c.cfg.SnapshotRetention); err != nil {
			c.logger.Warn("snapshot prune failed", zap.Error(err))
		}
	}
	return nil
}

// Pull fetches the remote payload and, when accepted, fully replaces the
// catalog and the ledger. The protect-empty rule guards a transient empty
// remote response: silent pulls skip, interactive pulls require opts.
// Confirmed and fail with ErrConfirmationRequired otherwise.
func (c *Coordinator) Pull(ctx context.Context, opts PullOptions) error {
	if !c.Enabled() {
		return ErrDisabled
	}

	payload, err := c.client.Pull(ctx)
	if err != nil {
		if opts.Silent {
			c.logger.Warn("automatic pull failed", zap.Error(err))
			return nil
		}
		return err
	}

	if len(payload.Books) == 0 && c.state.BookCount() > 0 {
		if opts.Silent {
			c.logger.Warn("automatic pull skipped: remote returned an empty catalog while local is non-empty")
			return nil
		}
		if !opts.Confirmed {
			return fmt.Errorf("%w: remote has 0 books, local has %d", ErrConfirmationRequired, c.state.BookCount())
		}
	}

	c.mu.Lock()
	c.extra = payload.BoyouBooks
	c.mu.Unlock()

	c.state.ReplaceAll(payload.Books, payload.BorrowedBooks, library.OriginSync)
	c.logger.Info("pull applied",
		zap.Int("books", len(payload.Books)),
		zap.Int("loans", len(payload.BorrowedBooks)))
	return nil
}

// StartAutoPull launches the automatic silent-pull loop with the configured
// interval. It returns immediately; the loop stops when ctx is cancelled.
func (c *Coordinator) StartAutoPull(ctx context.Context) {
	interval := c.cfg.AutoUpdateInterval()
	if !c.Enabled() || interval <= 0 {
		return
	}
	var tick func()
	tick = func() {
		if ctx.Err() != nil {
			return
		}
		_ = c.Pull(ctx, PullOptions{Silent: true})
		c.clock.AfterFunc(interval, tick)
	}
	c.clock.AfterFunc(interval, tick)
}

// Stop cancels any pending debounce timer.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
		c.timerGen++
	}
	if c.phase == PhaseDebouncing {
		c.phase = PhaseIdle
	}
}

// Status reports the coordinator state for the status endpoint.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		Enabled:       c.client != nil,
		Phase:         c.phase,
		LastRunAt:     c.lastRunAt,
		CooldownUntil: c.cooldownUntil,
	}
}

func (c *Coordinator) buildPayload() Payload {
	snap := c.state.TakeSnapshot()
	c.mu.Lock()
	extra := c.extra
	c.mu.Unlock()
	if extra == nil {
		extra = map[string]any{}
	}
	return Payload{
		Books:         snap.Books,
		BorrowedBooks: snap.Loans,
		BoyouBooks:    extra,
	}
}
