package observability

import (
	"sort"
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for portal requests and backend calls.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	backendCount map[string]int64
	backendTime  map[string]time.Duration
}

// Counter is one exported metric sample.
type Counter struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// BackendSample aggregates calls to one backend route.
type BackendSample struct {
	Key       string  `json:"key"`
	Count     int64   `json:"count"`
	AverageMs float64 `json:"average_ms"`
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	Requests []Counter       `json:"requests"`
	Errors   []Counter       `json:"errors"`
	Backend  []BackendSample `json:"backend"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		backendCount: make(map[string]int64),
		backendTime:  make(map[string]time.Duration),
	}
}

// RecordRequest increments counters for portal requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordBackendCall tracks one outbound call to the REST backend. A status of 0
// means the call never produced a response.
func (m *Metrics) RecordBackendCall(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backendCount[key]++
	m.backendTime[key] += duration
}

// Snapshot copies the current counters sorted by key.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Requests: counters(m.requestCount),
		Errors:   counters(m.errorCount),
	}
	for key, count := range m.backendCount {
		avg := float64(m.backendTime[key].Microseconds()) / 1000 / float64(count)
		snap.Backend = append(snap.Backend, BackendSample{Key: key, Count: count, AverageMs: avg})
	}
	sort.Slice(snap.Backend, func(i, j int) bool { return snap.Backend[i].Key < snap.Backend[j].Key })
	return snap
}

func counters(src map[string]int64) []Counter {
	out := make([]Counter, 0, len(src))
	for key, count := range src {
		out = append(out, Counter{Key: key, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
