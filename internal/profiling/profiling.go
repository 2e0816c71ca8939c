package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Stage names recorded by the raster backend and the viewers.
const (
	StageVertex   = "raster.vertex"
	StageSetup    = "raster.setup"
	StageFragment = "raster.fragment"
	StageUpload   = "gl.upload"
	StageDraw     = "gl.draw"
	StageFrame    = "frame"
)

type entry struct {
	total time.Duration
	calls int
}

var (
	mu     sync.Mutex
	frames = make(map[string]*entry)
)

// Track returns a stop function that adds the elapsed time to name.
// Usage: defer profiling.Track(profiling.StageVertex)()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		e := frames[name]
		if e == nil {
			e = &entry{}
			frames[name] = e
		}
		e.total += d
		e.calls++
		mu.Unlock()
	}
}

// ResetFrame clears the accumulated totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frames)
	mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frames))
	for k, e := range frames {
		out[k] = e.total
	}
	return out
}

// Calls returns how many times name was tracked since the last reset.
func Calls(name string) int {
	mu.Lock()
	defer mu.Unlock()
	if e := frames[name]; e != nil {
		return e.calls
	}
	return 0
}

// TopN formats the n slowest entries, e.g. "raster.fragment:4.2ms, raster.vertex:0.3ms".
func TopN(n int) string {
	ss := Snapshot()
	names := make([]string, 0, len(ss))
	for k := range ss {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool { return ss[names[i]] > ss[names[j]] })
	if n > len(names) {
		n = len(names)
	}
	parts := make([]string, 0, n)
	for _, name := range names[:n] {
		ms := float64(ss[name].Microseconds()) / 1000
		parts = append(parts, name+":"+strconv.FormatFloat(ms, 'f', 1, 64)+"ms")
	}
	return strings.Join(parts, ", ")
}
