package main

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/jobs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(t *testing.T, status order.Status) jobs.TrackingSnapshot {
	t.Helper()

	item, err := order.NewLineItem(1, "Sub", 1, decimal.RequireFromString("5"))
	require.NoError(t, err)
	o, err := order.RestoreOrder(7, "user-1", 2, 4, []order.LineItem{item}, status,
		time.Date(2026, 10, 15, 18, 30, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	return jobs.TrackingSnapshot{Order: o, Progress: status.Progress()}
}

func TestParseOrderIDs(t *testing.T) {
	ids, err := parseOrderIDs([]string{"3", "9", "3"})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 9}, ids)

	_, err = parseOrderIDs(nil)
	require.Error(t, err)

	_, err = parseOrderIDs([]string{"0"})
	require.Error(t, err)

	_, err = parseOrderIDs([]string{"abc"})
	require.Error(t, err)
}

func TestPrinter_ReportsFinalStatusOnce(t *testing.T) {
	finished := make(chan int64, 2)
	render := newPrinter(7, finished, slog.New(slog.DiscardHandler))

	render(snapshot(t, order.Pending))
	render(snapshot(t, order.InTransit))
	render(snapshot(t, order.Delivered))
	render(snapshot(t, order.Delivered))

	require.Len(t, finished, 1)
	assert.Equal(t, int64(7), <-finished)
}

func TestPrinter_WarnsWhenStatusMovesBackwards(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	render := newPrinter(7, make(chan int64, 1), logger)

	render(snapshot(t, order.Pending))
	render(snapshot(t, order.Ready))
	assert.Empty(t, logs.String())

	render(snapshot(t, order.Preparing))
	assert.Contains(t, logs.String(), "Unexpected status change")
	assert.Contains(t, logs.String(), "order_id=7")
}
