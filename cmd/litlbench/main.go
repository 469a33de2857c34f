// Command litlbench drives the probe hot path across a configurable
// number of goroutines for a fixed duration and reports per-probe
// latency and throughput, the same shape of benchmark as the teacher's
// disk-throughput benchmarking tool adapted from writing raw buffers to
// measuring LiTL's Bind+Probe3+Finalize path end to end.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sthibaul/litl/litl"
)

type metrics struct {
	iterations int64
	errors     int64

	mu        sync.Mutex
	durations []time.Duration
}

func (m *metrics) record(d time.Duration) {
	atomic.AddInt64(&m.iterations, 1)
	m.mu.Lock()
	m.durations = append(m.durations, d)
	m.mu.Unlock()
}

type stats struct {
	iterations, errors int64
	min, max, avg      time.Duration
	p50, p95, p99      time.Duration
}

func (m *metrics) summarize() stats {
	m.mu.Lock()
	sorted := append([]time.Duration(nil), m.durations...)
	m.mu.Unlock()
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	s := stats{
		iterations: atomic.LoadInt64(&m.iterations),
		errors:     atomic.LoadInt64(&m.errors),
	}
	if len(sorted) == 0 {
		return s
	}
	s.min, s.max = sorted[0], sorted[len(sorted)-1]
	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	s.avg = total / time.Duration(len(sorted))
	s.p50 = percentile(sorted, 50)
	s.p95 = percentile(sorted, 95)
	s.p99 = percentile(sorted, 99)
	return s
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	i := int(float64(len(sorted)) * p / 100.0)
	if i >= len(sorted) {
		i = len(sorted) - 1
	}
	return sorted[i]
}

func main() {
	var (
		tracePath  = flag.String("trace-path", "trace.litl", "output trace file path")
		bufferKB   = flag.Int("buffer-kb", 256, "per-thread buffer size in KB")
		duration   = flag.Duration("duration", 5*time.Second, "benchmark duration")
		numThreads = flag.Int("threads", 4, "number of concurrent writer goroutines")
	)
	flag.Parse()

	cfg := litl.NewConfig(*tracePath)
	cfg.BufferSize = *bufferKB * 1024
	cfg.MaxThreads = *numThreads

	trace, err := litl.NewTrace(cfg)
	if err != nil {
		log.Fatalf("litl: cannot create trace: %v", err)
	}

	m := &metrics{durations: make([]time.Duration, 0, 1<<16)}
	deadline := time.Now().Add(*duration)

	var wg sync.WaitGroup
	for w := 0; w < *numThreads; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			h, err := trace.Bind()
			if err != nil {
				atomic.AddInt64(&m.errors, 1)
				return
			}
			var i uint64
			for time.Now().Before(deadline) {
				start := time.Now()
				h.Probe3(uint32(worker), i, uint64(time.Now().UnixNano()), 0)
				m.record(time.Since(start))
				i++
			}
		}(w)
	}
	wg.Wait()

	if err := trace.Finalize(); err != nil {
		log.Fatalf("litl: finalize failed: %v", err)
	}

	s := m.summarize()
	fmt.Println("litlbench results")
	fmt.Printf("  threads:     %d\n", *numThreads)
	fmt.Printf("  buffer size: %d KB\n", *bufferKB)
	fmt.Printf("  iterations:  %d (errors: %d)\n", s.iterations, s.errors)
	fmt.Printf("  min/avg/max: %v / %v / %v\n", s.min, s.avg, s.max)
	fmt.Printf("  p50/p95/p99: %v / %v / %v\n", s.p50, s.p95, s.p99)
}
