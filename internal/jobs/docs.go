// Package jobs provides scheduled background tasks for order tracking.
//
// Jobs are cron based, using github.com/robfig/cron/v3 "@every" schedules.
//
// # Available Jobs
//
// OrderTrackingJob polls a single order (every 5 seconds by default) and hands a
// TrackingSnapshot with the five stage progress indicator to a render callback.
//
// # Usage
//
// JobManager keeps one job per tracked order:
//
//	jobManager := jobs.NewJobManager(orderAPIClient, jobs.TrackingConfig{}, logger)
//
//	if err := jobManager.Track(42, func(s jobs.TrackingSnapshot) {
//		fmt.Println(s.Order.Status().DisplayName())
//	}); err != nil {
//		log.Fatal("Failed to track order:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Ordering
//
// Fetches may overlap when the API is slow. Every fetch is numbered and a response
// older than the last rendered one is dropped. Each fetch is bounded by
// TrackingConfig.RequestTimeout.
//
// # Error Handling
//
// Failed fetches are logged and leave the last rendered snapshot in place; the next
// tick tries again.
package jobs
