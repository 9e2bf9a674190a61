package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dherreraa1/puzzle-decoder-race/pkg/puzzle"
)

// Options configures the progress reporter.
type Options struct {
	// Output is where to write human-readable status lines.
	// Default: os.Stderr (stdout is reserved for the solved message).
	Output io.Writer

	// Events is where to write structured JSON events.
	// nil disables the event stream.
	Events io.Writer

	// UpdateInterval is how often to refresh the status line.
	// Default: 500ms
	UpdateInterval time.Duration

	// SourceURL is the service being solved against (for display).
	SourceURL string

	// MaxConcurrent is the probe concurrency (for display).
	MaxConcurrent int

	// Timeout is the per-probe timeout (for display).
	Timeout time.Duration
}

// Reporter tracks solve progress and emits both console output and
// structured events. Counter updates are safe from any goroutine.
type Reporter struct {
	opts   Options
	logger *zap.Logger

	probes    atomic.Int64
	fragments atomic.Int32

	mu        sync.Mutex
	phase     string
	startTime time.Time
	stopCh    chan struct{}
	stopped   bool
}

// NewReporter creates a new progress reporter.
func NewReporter(opts Options) *Reporter {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.UpdateInterval == 0 {
		opts.UpdateInterval = 500 * time.Millisecond
	}

	return &Reporter{
		opts:   opts,
		logger: newEventLogger(opts.Events),
		stopCh: make(chan struct{}),
	}
}

// newEventLogger builds a JSON event logger writing to w, or a no-op logger
// when w is nil.
func newEventLogger(w io.Writer) *zap.Logger {
	if w == nil {
		return zap.NewNop()
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "event",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)

	return zap.New(core)
}

// Start begins outputting progress information.
func (r *Reporter) Start() {
	r.mu.Lock()
	r.startTime = time.Now()
	r.mu.Unlock()

	fmt.Fprintf(r.opts.Output, "[decoder] Solving: %s\n", r.opts.SourceURL)
	fmt.Fprintf(r.opts.Output, "[decoder] Max concurrent: %d | Timeout: %s\n",
		r.opts.MaxConcurrent, r.opts.Timeout)

	go r.updateLoop()
}

// Stop stops the progress reporter and flushes the event stream.
func (r *Reporter) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	close(r.stopCh)
	r.logger.Sync()
}

// PhaseChanged records a transition of the search strategy.
func (r *Reporter) PhaseChanged(phase string) {
	r.mu.Lock()
	r.phase = phase
	r.mu.Unlock()

	r.logger.Info("phase_changed", zap.String("phase", phase))
	fmt.Fprintf(r.opts.Output, "\r[decoder] Phase: %s\n", phase)
}

// FragmentFound records a newly discovered fragment.
func (r *Reporter) FragmentFound(f puzzle.Fragment) {
	r.fragments.Add(1)

	r.logger.Info("fragment_found",
		zap.Int("id", f.ID),
		zap.Int("index", f.Index),
		zap.String("text", f.Text),
	)
	fmt.Fprintf(r.opts.Output, "\r[decoder] Found fragment %d: %q\n", f.Index, f.Text)
}

// ProbesCompleted adds n settled probes to the running total.
func (r *Reporter) ProbesCompleted(n int) {
	r.probes.Add(int64(n))
}

// Probes returns the number of probes settled so far.
func (r *Reporter) Probes() int64 {
	return r.probes.Load()
}

// Solved records a successful solve and prints the final summary.
func (r *Reporter) Solved(message string, fragments int) {
	r.mu.Lock()
	duration := time.Since(r.startTime)
	r.mu.Unlock()

	probes := r.probes.Load()
	r.logger.Info("solved",
		zap.Int("fragments", fragments),
		zap.Int64("probes", probes),
		zap.Duration("duration", duration),
		zap.Int("message_len", len(message)),
	)

	fmt.Fprintf(r.opts.Output, "\r[decoder] Puzzle complete!                                        \n")
	fmt.Fprintf(r.opts.Output, "[decoder] Fragments: %d | Probes: %d | Time: %s\n",
		fragments, probes, formatDuration(duration))
}

// GaveUp records an unsuccessful solve.
func (r *Reporter) GaveUp() {
	r.mu.Lock()
	duration := time.Since(r.startTime)
	r.mu.Unlock()

	probes := r.probes.Load()
	r.logger.Warn("gave_up",
		zap.Int64("probes", probes),
		zap.Duration("duration", duration),
	)

	fmt.Fprintf(r.opts.Output, "\r[decoder] Could not complete the puzzle (probes: %d, time: %s)\n",
		probes, formatDuration(duration))
}

// updateLoop periodically refreshes the status line.
func (r *Reporter) updateLoop() {
	ticker := time.NewTicker(r.opts.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.printStatus()
		}
	}
}

// printStatus outputs the current status line.
func (r *Reporter) printStatus() {
	r.mu.Lock()
	phase := r.phase
	elapsed := time.Since(r.startTime)
	r.mu.Unlock()

	fmt.Fprintf(r.opts.Output, "\r[decoder] Phase: %s | Probes: %d | Fragments: %d | Elapsed: %s    ",
		phase,
		r.probes.Load(),
		r.fragments.Load(),
		formatDuration(elapsed),
	)
}

// formatDuration formats a duration as a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", m, s)
}
