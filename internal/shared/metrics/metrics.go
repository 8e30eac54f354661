package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	searchRunsTotal       atomic.Uint64
	jobsDiscoveredTotal   atomic.Uint64
	lettersGeneratedTotal atomic.Uint64
	emailsSentTotal       atomic.Uint64
	scrapesTotal          atomic.Uint64

	searchDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncSearchRuns increments the aggregated-search counter.
func IncSearchRuns() {
	searchRunsTotal.Add(1)
}

// AddJobsDiscovered adds to the discovered-offer counter.
func AddJobsDiscovered(n int) {
	if n > 0 {
		jobsDiscoveredTotal.Add(uint64(n))
	}
}

// IncLettersGenerated increments the cover-letter counter.
func IncLettersGenerated() {
	lettersGeneratedTotal.Add(1)
}

// IncEmailsSent increments the sent-application counter.
func IncEmailsSent() {
	emailsSentTotal.Add(1)
}

// IncScrapes increments the company-scrape counter.
func IncScrapes() {
	scrapesTotal.Add(1)
}

// ObserveSearchDurationMs records one aggregated search duration in milliseconds.
func ObserveSearchDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	searchDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "search_runs_total", "Total aggregated searches run", searchRunsTotal.Load())
	writeCounter(&buf, "jobs_discovered_total", "Total offers returned by providers", jobsDiscoveredTotal.Load())
	writeCounter(&buf, "letters_generated_total", "Total cover letters generated", lettersGeneratedTotal.Load())
	writeCounter(&buf, "emails_sent_total", "Total application emails sent", emailsSentTotal.Load())
	writeCounter(&buf, "scrapes_total", "Total company pages scraped", scrapesTotal.Load())
	writeHistogram(&buf, "search_duration_ms", "Aggregated search duration in milliseconds", searchDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
