package status

import "sync"

// Recorder is an Indicator that keeps every change, for tests and replays.
type Recorder struct {
	mu     sync.Mutex
	modes  []int
	status []bool
}

func (r *Recorder) ShowMode(mode int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modes = append(r.modes, mode)
}

func (r *Recorder) SetStatus(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = append(r.status, on)
}

// Mode returns the lit mode output, or -1 if ShowMode was never called.
func (r *Recorder) Mode() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.modes) == 0 {
		return -1
	}
	return r.modes[len(r.modes)-1]
}

// Modes returns every ShowMode argument in call order.
func (r *Recorder) Modes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.modes...)
}

// Status returns every SetStatus argument in call order.
func (r *Recorder) Status() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.status...)
}

// Reset forgets all recorded changes.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modes = nil
	r.status = nil
}
