package telemetry

import "sync"

// Recorder keeps every reported point in arrival order.
type Recorder struct {
	mu     sync.RWMutex
	points []Point
	limit  int
}

// NewRecorder keeps at most limit points; limit <= 0 keeps everything.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Report implements Reporter.
func (r *Recorder) Report(p Point) {
	r.mu.Lock()
	r.points = append(r.points, p)
	if r.limit > 0 && len(r.points) > r.limit {
		r.points = r.points[len(r.points)-r.limit:]
	}
	r.mu.Unlock()
}

// History returns a copy of the recorded points.
func (r *Recorder) History() []Point {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Point, len(r.points))
	copy(out, r.points)
	return out
}
