package jobs

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// JobManager owns the tracking jobs of every order being watched.
type JobManager struct {
	fetcher OrderFetcher
	config  TrackingConfig
	logger  *slog.Logger

	mu   sync.Mutex
	jobs map[int64]*OrderTrackingJob
}

// NewJobManager creates a manager whose jobs share fetcher and config.
func NewJobManager(fetcher OrderFetcher, config TrackingConfig, logger *slog.Logger) *JobManager {
	return &JobManager{
		fetcher: fetcher,
		config:  config,
		logger:  logger,
		jobs:    make(map[int64]*OrderTrackingJob),
	}
}

// Track starts polling orderID. Tracking an order twice is an error.
func (jm *JobManager) Track(orderID int64, render RenderFunc) error {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	if _, ok := jm.jobs[orderID]; ok {
		return fmt.Errorf("order %d is already tracked", orderID)
	}

	job := NewOrderTrackingJob(orderID, jm.fetcher, render, jm.config, jm.logger)
	if err := job.Start(); err != nil {
		return fmt.Errorf("failed to start tracking order %d: %w", orderID, err)
	}

	jm.jobs[orderID] = job
	return nil
}

// Untrack stops polling orderID and reports whether it was tracked.
func (jm *JobManager) Untrack(orderID int64) bool {
	jm.mu.Lock()
	job, ok := jm.jobs[orderID]
	delete(jm.jobs, orderID)
	jm.mu.Unlock()

	if ok {
		job.Stop()
	}
	return ok
}

// Tracked returns the ids of the orders being polled in ascending order.
func (jm *JobManager) Tracked() []int64 {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	ids := make([]int64, 0, len(jm.jobs))
	for id := range jm.jobs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, k int) bool { return ids[i] < ids[k] })
	return ids
}

// StopAll stops all tracking jobs.
func (jm *JobManager) StopAll() {
	jm.mu.Lock()
	jobs := jm.jobs
	jm.jobs = make(map[int64]*OrderTrackingJob)
	jm.mu.Unlock()

	for _, job := range jobs {
		job.Stop()
	}
}
