package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/glasscan/glasscan/internal/detectors"
	"github.com/glasscan/glasscan/internal/patterns"
	"github.com/glasscan/glasscan/internal/progress"
	"github.com/glasscan/glasscan/internal/scoring"
	"github.com/glasscan/glasscan/internal/signals"
	"github.com/glasscan/glasscan/internal/types"
)

// ErrScanInProgress is returned when Scan is called while another scan on
// the same orchestrator has not finished.
var ErrScanInProgress = errors.New("scan already in progress")

// DefaultDetectorTimeout bounds a single detector's run. A detector that
// overruns is abandoned and recorded as failed; the scan continues.
const DefaultDetectorTimeout = 10 * time.Second

// Options configures an Orchestrator. The zero value is usable: built-in
// patterns, default timeouts, no progress, no logging.
type Options struct {
	DetectorTimeout  time.Duration
	ScanTimeout      time.Duration
	MinConfidence    float64
	EnableDetectors  string
	DisableDetectors string
	IncludeGlobs     string
	ExcludeGlobs     string
	Patterns         []patterns.Pattern
	Progress         progress.Sink
	Logger           *zap.Logger
}

// Request describes one scan invocation.
type Request struct {
	Target  string
	Depth   signals.Depth
	Capture signals.PageCapture

	// Environment overrides URL-based environment detection when set to a
	// recognized name (development, staging, production).
	Environment string

	// Timeout overrides Options.ScanTimeout for this scan only.
	Timeout time.Duration
}

// Orchestrator runs scans one at a time and retains a snapshot of the most
// recent result. It is safe for concurrent use; concurrent Scan calls beyond
// the first fail fast with ErrScanInProgress.
type Orchestrator struct {
	opts Options

	// selectDetectors is swapped out in tests to inject misbehaving detectors.
	selectDetectors func(signals.Depth, []patterns.Pattern) []detectors.Detector

	mu      sync.Mutex
	running bool
	status  types.ScanStatus
	last    *types.ScanResult
}

func New(opts Options) *Orchestrator {
	if opts.DetectorTimeout <= 0 {
		opts.DetectorTimeout = DefaultDetectorTimeout
	}
	if opts.Patterns == nil {
		opts.Patterns = patterns.Builtin()
	}
	if opts.Progress == nil {
		opts.Progress = progress.NoopSink{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Orchestrator{opts: opts, status: types.StatusIdle, selectDetectors: detectors.ForDepth}
}

// Status returns the current state machine value.
func (o *Orchestrator) Status() types.ScanStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Last returns a copy of the most recent scan result, if any.
func (o *Orchestrator) Last() (types.ScanResult, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.last == nil {
		return types.ScanResult{}, false
	}
	return *o.last, true
}

// Scan runs all detectors for the requested depth against the capture and
// returns the assembled result. Detector failures (timeouts, panics) are
// recorded per detector and do not fail the scan; only context cancellation
// or deadline expiry ends it early.
func (o *Orchestrator) Scan(ctx context.Context, req Request) (types.ScanResult, error) {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return types.ScanResult{}, ErrScanInProgress
	}
	o.running = true
	o.status = types.StatusRunning
	o.mu.Unlock()

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = o.opts.ScanTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	res := types.ScanResult{
		ID:        uuid.NewString(),
		Target:    req.Target,
		Status:    types.StatusRunning,
		StartedAt: time.Now().UTC(),
	}
	log := o.opts.Logger.With(
		zap.String("component", "engine"),
		zap.String("scan_id", res.ID),
		zap.String("target", req.Target),
	)

	capture := filterScripts(req.Capture, o.opts.IncludeGlobs, o.opts.ExcludeGlobs)
	sc := signals.NewContext(req.Target, req.Depth, capture)
	if env, ok := signals.ParseEnvironment(req.Environment); ok {
		sc.Environment = env
	}
	dets := filterDetectors(o.selectDetectors(req.Depth, o.opts.Patterns), o.opts.EnableDetectors, o.opts.DisableDetectors)

	log.Info("scan started",
		zap.String("depth", string(req.Depth)),
		zap.String("environment", string(sc.Environment)),
		zap.Int("detectors", len(dets)),
	)
	o.opts.Progress.Emit(progress.Event{Type: progress.EventScanStarted, ScanID: res.ID})

	var all []types.Finding
	var scanErr error
	for i, det := range dets {
		if err := ctx.Err(); err != nil {
			scanErr = err
			break
		}
		o.opts.Progress.Emit(progress.Event{
			Type:     progress.EventDetectorStarted,
			ScanID:   res.ID,
			Detector: det.ID,
		})

		dr := runDetector(ctx, det, sc, o.opts.DetectorTimeout)
		res.Detectors = append(res.Detectors, dr)
		all = append(all, dr.Findings...)

		if dr.Error != "" {
			log.Warn("detector failed",
				zap.String("detector", det.ID),
				zap.String("error", dr.Error),
				zap.Duration("duration", dr.Duration),
			)
		} else {
			log.Debug("detector finished",
				zap.String("detector", det.ID),
				zap.Int("findings", len(dr.Findings)),
				zap.Duration("duration", dr.Duration),
			)
		}
		// FindingCount is the running total across the scan so far, not the
		// per-detector count; that one lives in DetectorResult.
		o.opts.Progress.Emit(progress.Event{
			Type:         progress.EventDetectorFinished,
			ScanID:       res.ID,
			Detector:     det.ID,
			Percent:      float64(i+1) / float64(len(dets)) * 100,
			FindingCount: len(all),
			DurationMS:   dr.Duration.Milliseconds(),
			Error:        dr.Error,
		})
	}

	all = filterByConfidence(all, o.opts.MinConfidence)
	all = detectors.Dedupe(all)
	scoring.SortFindings(all)
	res.Findings = all
	res.Summary = scoring.Aggregate(all)
	res.CompletedAt = time.Now().UTC()

	switch {
	case scanErr == nil:
		res.Status = types.StatusCompleted
	case errors.Is(scanErr, context.Canceled):
		res.Status = types.StatusCancelled
	default:
		res.Status = types.StatusFailed
	}

	o.opts.Progress.Emit(progress.Event{
		Type:         progress.EventScanFinished,
		ScanID:       res.ID,
		Status:       string(res.Status),
		FindingCount: len(res.Findings),
		DurationMS:   res.CompletedAt.Sub(res.StartedAt).Milliseconds(),
		Error:        errString(scanErr),
	})
	log.Info("scan finished",
		zap.String("status", string(res.Status)),
		zap.Int("findings", len(res.Findings)),
		zap.Float64("risk_score", res.Summary.RiskScore),
		zap.String("grade", res.Summary.Grade),
	)

	o.mu.Lock()
	o.running = false
	o.status = res.Status
	snapshot := res
	o.last = &snapshot
	o.mu.Unlock()

	if scanErr != nil {
		return res, fmt.Errorf("scan %s: %w", res.Status, scanErr)
	}
	return res, nil
}

// runDetector executes one detector with a hard time budget. The detector
// function itself cannot be interrupted, so an overrunning goroutine is
// abandoned; its channel send still succeeds because the channel is buffered.
func runDetector(ctx context.Context, det detectors.Detector, sc signals.ScanContext, timeout time.Duration) types.DetectorResult {
	started := time.Now()
	done := make(chan []types.Finding, 1)
	panicked := make(chan string, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				panicked <- fmt.Sprintf("panic: %v", r)
			}
		}()
		done <- det.Run(sc)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	dr := types.DetectorResult{Detector: det.ID}
	select {
	case fs := <-done:
		dr.Findings = fs
	case msg := <-panicked:
		dr.Error = msg
	case <-timer.C:
		dr.Error = "timed out after " + timeout.String()
	case <-ctx.Done():
		dr.Error = ctx.Err().Error()
	}
	dr.Duration = time.Since(started)
	return dr
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
