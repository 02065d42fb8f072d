package pokeapi

import (
	"fmt"
	"sync"

	"github.com/okian/pokedex/pkg/metrics"
)

// Memo is a per-URL permanent memoization of upstream responses. Upstream
// payloads never change once published, so entries are kept for the process
// lifetime. Safe for concurrent use.
type Memo struct {
	mu     sync.RWMutex
	store  map[string][]byte
	hits   int64
	misses int64
}

// MemoStats is the observable state of the memo cache.
type MemoStats struct {
	Hits    int64  `json:"hits"`
	Misses  int64  `json:"misses"`
	Size    int    `json:"size"`
	HitRate string `json:"hitRate"`
}

// NewMemo creates an empty memo cache.
func NewMemo() *Memo {
	return &Memo{store: make(map[string][]byte)}
}

// Get returns the memoized body for url, if any.
func (m *Memo) Get(url string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	body, ok := m.store[url]
	if !ok {
		m.misses++
		metrics.RecordMemoMiss()
		return nil, false
	}
	m.hits++
	metrics.RecordMemoHit()
	return body, true
}

// Set memoizes the body for url.
func (m *Memo) Set(url string, body []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store[url] = body
	metrics.UpdateMemoSize(len(m.store))
}

// Stats returns a point-in-time view of the cache counters.
func (m *Memo) Stats() MemoStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := m.hits + m.misses
	rate := "0%"
	if total > 0 {
		rate = fmt.Sprintf("%.1f%%", float64(m.hits)/float64(total)*100)
	}
	return MemoStats{
		Hits:    m.hits,
		Misses:  m.misses,
		Size:    len(m.store),
		HitRate: rate,
	}
}

// Reset drops all entries and counters.
func (m *Memo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string][]byte)
	m.hits = 0
	m.misses = 0
	metrics.UpdateMemoSize(0)
}
