package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
)

// Metric names recorded by the web layer.
const (
	MetricHTTPRequest   = "campusmarket_http_request"
	MetricOrderPlaced   = "campusmarket_order_placed"
	MetricUserLogin     = "campusmarket_user_login"
	MetricUserRegister  = "campusmarket_user_register"
	MetricCartCheckouts = "campusmarket_checkout_attempt"
)

var (
	storage tstorage.Storage
	mu      sync.Mutex
)

// InitMetrics opens the embedded time-series store under the workdir.
func InitMetrics(workdir string) error {
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "data", "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(30*24*time.Hour),
	)
	if err != nil {
		return err
	}
	mu.Lock()
	storage = s
	mu.Unlock()
	return nil
}

// Inc records one occurrence of the named metric.
func Inc(name string) {
	Add(name, 1)
}

// Add records value occurrences of the named metric.
func Add(name string, value float64) {
	mu.Lock()
	s := storage
	mu.Unlock()
	if s == nil {
		return
	}
	_ = s.InsertRows([]tstorage.Row{
		{
			Metric:    name,
			DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: value},
		},
	})
}

// SumSince sums the metric values recorded between start and now.
func SumSince(name string, start time.Time) float64 {
	mu.Lock()
	s := storage
	mu.Unlock()
	if s == nil {
		return 0
	}
	points, err := s.Select(name, nil, start.Unix(), time.Now().Unix())
	if err != nil {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	return sum
}

// Close flushes and closes the metrics store.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}
