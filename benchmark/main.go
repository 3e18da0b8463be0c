// Package main provides a throughput benchmark for the presetter HTTP API.
// It starts the API in-process once per history backend, posts a fixed mix of
// survey bodies from several concurrent clients, and records latency figures
// to a timestamped CSV file for performance tracking.
//
// Usage: go run benchmark/main.go [requests-per-backend]
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/huangsam/presetter/core"
	"github.com/huangsam/presetter/internal/api"
	"github.com/huangsam/presetter/internal/contract"
	"github.com/huangsam/presetter/internal/history"
	"github.com/huangsam/presetter/schema"
)

// BenchmarkResult holds the latency summary of one backend run.
type BenchmarkResult struct {
	Backend  string
	Requests int
	Failures int
	Total    time.Duration
	P50      time.Duration
	P95      time.Duration
	Max      time.Duration
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Requests int
	Clients  int
	Timeout  time.Duration
	Backends []schema.DatabaseBackend
	Bodies   []string
}

func main() {
	requests := 2000
	if len(os.Args) == 2 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n <= 0 {
			fmt.Printf("Usage: %s [requests-per-backend]\n", os.Args[0])
			os.Exit(1)
		}
		requests = n
	}

	config := BenchmarkConfig{
		Requests: requests,
		Clients:  8,
		Timeout:  5 * time.Second,
		Backends: []schema.DatabaseBackend{schema.NoneBackend, schema.SQLiteBackend},
		Bodies: []string{
			`{"metric_a": 85, "metric_b": 40, "metric_c": 30}`,
			`{"metric_a": 10, "metric_b": 90, "metric_c": 10, "metric_d": 65}`,
			`{"metric_a": 0, "metric_b": 0, "metric_c": 0}`,
			`{"metric_a": 150, "metric_b": 40, "metric_c": 30}`,
		},
	}

	var results []BenchmarkResult
	for _, backend := range config.Backends {
		fmt.Printf("Benchmarking %s backend (%d requests, %d clients)\n", backend, config.Requests, config.Clients)
		result, err := runBackend(config, backend)
		if err != nil {
			fmt.Printf("Benchmark failed for %s: %v\n", backend, err)
			os.Exit(1)
		}
		results = append(results, result)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}
	printSummary(results)
}

// runBackend serves the API with the given history backend and drives load at it.
func runBackend(config BenchmarkConfig, backend schema.DatabaseBackend) (BenchmarkResult, error) {
	mgr, cleanup, err := historyFor(backend)
	if err != nil {
		return BenchmarkResult{}, err
	}
	defer cleanup()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return BenchmarkResult{}, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	srv := api.NewServer(core.DefaultCatalog(), core.DefaultRequiredMetrics, mgr)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + api.ProcessSurveyPath
	client := &http.Client{Timeout: config.Timeout}

	latencies := make([]time.Duration, config.Requests)
	failures := make([]bool, config.Requests)
	jobs := make(chan int)
	var wg sync.WaitGroup

	start := time.Now()
	for range config.Clients {
		wg.Go(func() {
			for i := range jobs {
				body := config.Bodies[i%len(config.Bodies)]
				t0 := time.Now()
				resp, err := client.Post(url, "application/json", bytes.NewBufferString(body))
				latencies[i] = time.Since(t0)
				if err != nil {
					failures[i] = true
					continue
				}
				_ = resp.Body.Close()
				// Out-of-range bodies are expected to be rejected
				failures[i] = resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusBadRequest
			}
		})
	}
	for i := range config.Requests {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	total := time.Since(start)

	cancel()
	if err := <-done; err != nil {
		return BenchmarkResult{}, err
	}

	failed := 0
	for _, f := range failures {
		if f {
			failed++
		}
	}
	slices.Sort(latencies)
	return BenchmarkResult{
		Backend:  string(backend),
		Requests: config.Requests,
		Failures: failed,
		Total:    total,
		P50:      percentile(latencies, 50),
		P95:      percentile(latencies, 95),
		Max:      latencies[len(latencies)-1],
	}, nil
}

// historyFor opens a throwaway store for the backend.
func historyFor(backend schema.DatabaseBackend) (contract.HistoryManager, func(), error) {
	if backend == schema.NoneBackend {
		return history.StaticHistoryManager{}, func() {}, nil
	}
	dir, err := os.MkdirTemp("", "presetter-benchmark-*")
	if err != nil {
		return nil, nil, err
	}
	store, err := history.NewHistoryStore(backend, filepath.Join(dir, "history.db"))
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, nil, err
	}
	cleanup := func() {
		_ = store.Close()
		_ = os.RemoveAll(dir)
	}
	return history.StaticHistoryManager{Store: store}, cleanup, nil
}

// percentile expects sorted input.
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := (len(sorted) - 1) * p / 100
	return sorted[idx]
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("presetter_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"backend", "requests", "failures", "total", "p50", "p95", "max"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		row := []string{r.Backend, strconv.Itoa(r.Requests), strconv.Itoa(r.Failures), r.Total.String(), r.P50.String(), r.P95.String(), r.Max.String()}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, r := range results {
		rps := float64(r.Requests) / r.Total.Seconds()
		fmt.Printf("  %-8s: %.0f req/s, p50: %s, p95: %s, max: %s, failures: %d\n", r.Backend, rps, r.P50, r.P95, r.Max, r.Failures)
	}
}
