// Package profiling accumulates wall-clock totals per named operation
// within a single tick, so the slowest subsystems show up in the periodic
// status log.
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	mu     sync.Mutex
	totals = make(map[string]time.Duration)
)

// Track starts a timer. The returned stop function folds the elapsed time
// into the running total for name.
// Usage: defer profiling.Track("world.Tick")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		totals[name] += d
		mu.Unlock()
	}
}

// ResetFrame discards all accumulated totals. Call once per tick.
func ResetFrame() {
	mu.Lock()
	totals = make(map[string]time.Duration)
	mu.Unlock()
}

// TopN reports the n most expensive operations since the last reset as
// "name:1.2ms" pairs, most expensive first.
func TopN(n int) string {
	type entry struct {
		name string
		dur  time.Duration
	}
	mu.Lock()
	list := make([]entry, 0, len(totals))
	for k, v := range totals {
		list = append(list, entry{name: k, dur: v})
	}
	mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].dur > list[j].dur })
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ms := float64(list[i].dur.Microseconds()) / 1000
		parts = append(parts, fmt.Sprintf("%s:%.1fms", list[i].name, ms))
	}
	return strings.Join(parts, ", ")
}
