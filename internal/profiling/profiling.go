package profiling

import (
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Lightweight named CPU timer for meshing passes and frame-level insights.

var (
	mu     sync.Mutex
	totals = make(map[string]time.Duration)
	counts = make(map[string]int)
)

// Sample is the accumulated time and call count for one name.
type Sample struct {
	Name  string
	Total time.Duration
	Calls int
}

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("subsystem.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		totals[name] += d
		counts[name]++
		mu.Unlock()
	}
}

// Reset clears all accumulated samples.
func Reset() {
	mu.Lock()
	clear(totals)
	clear(counts)
	mu.Unlock()
}

// Snapshot returns the current samples sorted by total time, longest first.
func Snapshot() []Sample {
	mu.Lock()
	out := make([]Sample, 0, len(totals))
	for name, d := range totals {
		out = append(out, Sample{Name: name, Total: d, Calls: counts[name]})
	}
	mu.Unlock()

	slices.SortFunc(out, func(a, b Sample) int {
		if a.Total != b.Total {
			if a.Total > b.Total {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// TopN formats the n longest samples.
// Example: "meshing.BuildChunk:4.2ms, world.Generate:2.1ms"
func TopN(n int) string {
	ss := Snapshot()
	n = min(n, len(ss))
	parts := make([]string, 0, n)
	for _, s := range ss[:n] {
		parts = append(parts, s.Name+":"+formatMs(s.Total))
	}
	return strings.Join(parts, ", ")
}

// one decimal, ".0" dropped
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	return strings.TrimSuffix(strconv.FormatFloat(ms, 'f', 1, 64), ".0") + "ms"
}
