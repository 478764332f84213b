package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu             sync.Mutex
	requestCount   map[string]int64
	errorCount     map[string]int64
	classifyCount  int64
	cacheHitCount  int64
	wordsAdded     map[string]int64
	wordsDuplicate map[string]int64
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Requests       map[string]int64 `json:"requests"`
	Errors         map[string]int64 `json:"errors"`
	Classified     int64            `json:"classified"`
	CacheHits      int64            `json:"cache_hits"`
	WordsAdded     map[string]int64 `json:"words_added"`
	WordsDuplicate map[string]int64 `json:"words_duplicate"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:   make(map[string]int64),
		errorCount:     make(map[string]int64),
		wordsAdded:     make(map[string]int64),
		wordsDuplicate: make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, _ time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
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

// RecordClassification counts a classification, noting cache hits.
func (m *Metrics) RecordClassification(cacheHit bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classifyCount++
	if cacheHit {
		m.cacheHitCount++
	}
}

// RecordWordInsert counts dictionary inserts per dictionary and outcome.
func (m *Metrics) RecordWordInsert(dictionary string, added bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if added {
		m.wordsAdded[dictionary]++
	} else {
		m.wordsDuplicate[dictionary]++
	}
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{
		Requests:       copyCounts(m.requestCount),
		Errors:         copyCounts(m.errorCount),
		Classified:     m.classifyCount,
		CacheHits:      m.cacheHitCount,
		WordsAdded:     copyCounts(m.wordsAdded),
		WordsDuplicate: copyCounts(m.wordsDuplicate),
	}
}

func copyCounts(src map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
