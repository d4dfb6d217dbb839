package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Metrics holds all application metrics
type Metrics struct {
	mu sync.RWMutex

	// Report metrics
	ReportsBuiltTotal   int64
	ReportErrorsTotal   int64
	lastReportDuration  time.Duration
	reportDurationTotal time.Duration

	// Record fetch metrics
	FetchPagesTotal  int64
	FetchRowsTotal   int64
	FetchErrorsTotal int64

	// Stream metrics
	StreamConnectionsTotal    int64
	StreamDisconnectionsTotal int64
	activeStreamClients       int64

	// HTTP metrics
	httpRequestsTotal map[string]map[int]int64 // endpoint -> status -> count

	// Timing
	startTime time.Time
}

// Global metrics instance
var instance *Metrics
var once sync.Once

// Get returns the singleton metrics instance
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			httpRequestsTotal: make(map[string]map[int]int64),
			startTime:         time.Now(),
		}
	})
	return instance
}

// RecordReportBuilt records a successful report build
func (m *Metrics) RecordReportBuilt(duration time.Duration) {
	m.mu.Lock()
	m.ReportsBuiltTotal++
	m.lastReportDuration = duration
	m.reportDurationTotal += duration
	m.mu.Unlock()
}

// RecordReportError increments the report build error counter
func (m *Metrics) RecordReportError() {
	m.mu.Lock()
	m.ReportErrorsTotal++
	m.mu.Unlock()
}

// RecordFetchPage records one fetched page and its row count
func (m *Metrics) RecordFetchPage(rows int) {
	m.mu.Lock()
	m.FetchPagesTotal++
	m.FetchRowsTotal += int64(rows)
	m.mu.Unlock()
}

// RecordFetchError increments the record fetch error counter
func (m *Metrics) RecordFetchError() {
	m.mu.Lock()
	m.FetchErrorsTotal++
	m.mu.Unlock()
}

// RecordStreamConnect increments stream connection counters
func (m *Metrics) RecordStreamConnect() {
	m.mu.Lock()
	m.StreamConnectionsTotal++
	m.activeStreamClients++
	m.mu.Unlock()
}

// RecordStreamDisconnect increments the stream disconnection counter
func (m *Metrics) RecordStreamDisconnect() {
	m.mu.Lock()
	m.StreamDisconnectionsTotal++
	m.activeStreamClients--
	m.mu.Unlock()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(endpoint string, statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.httpRequestsTotal[endpoint] == nil {
		m.httpRequestsTotal[endpoint] = make(map[int]int64)
	}
	m.httpRequestsTotal[endpoint][statusCode]++
}

// ActiveStreamClients returns the current stream client count
func (m *Metrics) ActiveStreamClients() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeStreamClients
}

// Handler returns an HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.mu.RLock()
		defer m.mu.RUnlock()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		fmt.Fprintf(w, "reports_built_total %d\n", m.ReportsBuiltTotal)
		fmt.Fprintf(w, "report_errors_total %d\n", m.ReportErrorsTotal)
		fmt.Fprintf(w, "report_last_duration_seconds %f\n", m.lastReportDuration.Seconds())
		if m.ReportsBuiltTotal > 0 {
			avg := m.reportDurationTotal.Seconds() / float64(m.ReportsBuiltTotal)
			fmt.Fprintf(w, "report_avg_duration_seconds %f\n", avg)
		}

		fmt.Fprintf(w, "fetch_pages_total %d\n", m.FetchPagesTotal)
		fmt.Fprintf(w, "fetch_rows_total %d\n", m.FetchRowsTotal)
		fmt.Fprintf(w, "fetch_errors_total %d\n", m.FetchErrorsTotal)

		fmt.Fprintf(w, "stream_connections_total %d\n", m.StreamConnectionsTotal)
		fmt.Fprintf(w, "stream_disconnections_total %d\n", m.StreamDisconnectionsTotal)
		fmt.Fprintf(w, "stream_active_clients %d\n", m.activeStreamClients)

		for endpoint, statuses := range m.httpRequestsTotal {
			for status, count := range statuses {
				fmt.Fprintf(w, "http_requests_total{endpoint=%q,status=\"%d\"} %d\n", endpoint, status, count)
			}
		}

		fmt.Fprintf(w, "uptime_seconds %f\n", time.Since(m.startTime).Seconds())
	}
}
