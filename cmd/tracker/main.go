// Command tracker polls orders from the order API and prints their delivery progress
// until every order is delivered or cancelled.
//
//	tracker [-base-url http://localhost:8080] [-interval 5s] ORDER_ID...
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"campusdelivery/cmd"
	"campusdelivery/internal/adapters/out/orderapi"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	configs, err := cmd.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	flag.StringVar(&configs.TrackerBaseURL, "base-url", configs.TrackerBaseURL, "order API base url")
	flag.DurationVar(&configs.TrackerInterval, "interval", configs.TrackerInterval, "poll interval")
	flag.Parse()

	if err = configs.ValidateForTracker(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	orderIDs, err := parseOrderIDs(flag.Args())
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	client, err := orderapi.NewClient(configs.TrackerBaseURL, http.DefaultClient)
	if err != nil {
		log.Fatalf("Invalid order API address: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobManager := jobs.NewJobManager(client, jobs.TrackingConfig{Interval: configs.TrackerInterval}, logger)
	defer jobManager.StopAll()

	finished := make(chan int64, len(orderIDs))
	for _, id := range orderIDs {
		if err = jobManager.Track(id, newPrinter(id, finished, logger)); err != nil {
			log.Fatalf("%v", err)
		}
	}

	for len(jobManager.Tracked()) > 0 {
		select {
		case id := <-finished:
			jobManager.Untrack(id)
		case <-ctx.Done():
			logger.Warn("Stopped before every order finished", "order_ids", jobManager.Tracked())
			return
		}
	}
}

func parseOrderIDs(args []string) ([]int64, error) {
	if len(args) == 0 {
		return nil, errors.New("usage: tracker [flags] ORDER_ID...")
	}

	ids := make([]int64, 0, len(args))
	seen := make(map[int64]bool, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%q is not an order id", arg)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// newPrinter prints a line whenever the order's status changes and reports the
// order on finished once it reaches a final status. A status going backwards is
// still printed, with a warning.
func newPrinter(orderID int64, finished chan<- int64, logger *slog.Logger) jobs.RenderFunc {
	var (
		once sync.Once
		last = order.Unknown
	)

	return func(s jobs.TrackingSnapshot) {
		status := s.Order.Status()
		if status == last {
			return
		}
		if last != order.Unknown {
			if err := last.CanAdvanceTo(status); err != nil {
				logger.Warn("Unexpected status change", "order_id", orderID, "error", err)
			}
		}
		last = status

		fmt.Printf("order %d: %s  %s\n", orderID, status.DisplayName(), progressBar(s))

		if status.IsTerminal() {
			once.Do(func() { finished <- orderID })
		}
	}
}

func progressBar(s jobs.TrackingSnapshot) string {
	parts := make([]string, len(s.Progress))
	for i, stage := range s.Progress {
		mark := "[ ]"
		if stage.Completed {
			mark = "[x]"
		}
		parts[i] = mark + " " + stage.Name
	}
	return strings.Join(parts, "  ")
}
