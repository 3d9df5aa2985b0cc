package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"campusdelivery/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

const (
	DefaultPollInterval   = 5 * time.Second
	DefaultRequestTimeout = 4 * time.Second
)

// OrderFetcher reads the current state of one order.
type OrderFetcher interface {
	FetchOrder(ctx context.Context, orderID int64) (*order.Order, error)
}

// TrackingSnapshot is what the tracking view renders after a successful fetch.
type TrackingSnapshot struct {
	Order    *order.Order
	Progress []order.ProgressStage
}

// RenderFunc receives snapshots in fetch order. It must not call Stop on the job
// that invoked it.
type RenderFunc func(TrackingSnapshot)

// TrackingConfig tunes polling. Zero values fall back to the defaults.
type TrackingConfig struct {
	Interval       time.Duration
	RequestTimeout time.Duration
}

func (c TrackingConfig) withDefaults() TrackingConfig {
	if c.Interval <= 0 {
		c.Interval = DefaultPollInterval
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	return c
}

// OrderTrackingJob polls one order on a fixed interval and renders its progress.
// Each fetch takes a sequence number; a response that arrives after a newer one has
// been rendered is dropped, so the view never moves backwards. Results arriving after
// Stop are discarded.
type OrderTrackingJob struct {
	orderID int64
	fetcher OrderFetcher
	render  RenderFunc
	config  TrackingConfig
	cron    *cron.Cron
	logger  *slog.Logger

	seq atomic.Uint64

	mu           sync.Mutex
	lastRendered uint64
	started      bool
	stopped      bool
}

// NewOrderTrackingJob creates a job for orderID. Nothing is fetched until Start.
func NewOrderTrackingJob(
	orderID int64,
	fetcher OrderFetcher,
	render RenderFunc,
	config TrackingConfig,
	logger *slog.Logger,
) *OrderTrackingJob {
	return &OrderTrackingJob{
		orderID: orderID,
		fetcher: fetcher,
		render:  render,
		config:  config.withDefaults(),
		cron:    cron.New(),
		logger:  logger.With("component", "order_tracking_job", "order_id", orderID),
	}
}

// Start fetches immediately and then on every interval until Stop.
func (j *OrderTrackingJob) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.started {
		return fmt.Errorf("tracking job for order %d already started", j.orderID)
	}

	if _, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.config.Interval), j.poll); err != nil {
		return err
	}

	j.started = true
	j.cron.Start()
	go j.poll()

	j.logger.InfoContext(context.Background(), "Order tracking job started", "interval", j.config.Interval)
	return nil
}

// Stop cancels the schedule. Requests already in flight finish on their own
// timeout and their results are ignored.
func (j *OrderTrackingJob) Stop() {
	j.mu.Lock()
	if j.stopped {
		j.mu.Unlock()
		return
	}
	j.stopped = true
	j.mu.Unlock()

	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order tracking job stopped")
}

func (j *OrderTrackingJob) poll() {
	seq := j.seq.Add(1)

	ctx, cancel := context.WithTimeout(context.Background(), j.config.RequestTimeout)
	defer cancel()

	o, err := j.fetcher.FetchOrder(ctx, j.orderID)

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.stopped {
		return
	}

	if err != nil {
		j.logger.WarnContext(ctx, "Order tracking fetch failed", "seq", seq, "error", err)
		return
	}

	if seq < j.lastRendered {
		j.logger.DebugContext(ctx, "Dropping stale tracking response", "seq", seq, "last_rendered", j.lastRendered)
		return
	}
	j.lastRendered = seq

	j.render(TrackingSnapshot{Order: o, Progress: o.Status().Progress()})
}
