package main

import "sync"

// trajPool recycles trajectory buffers across repetitions so that large
// round counts don't allocate one fresh backing array per repetition. The
// pool is bounded; overflow buffers are simply dropped for the GC.
type trajPool struct {
	mu   sync.Mutex
	free []Trajectory
	max  int
}

func newTrajPool(max int) *trajPool {
	return &trajPool{free: make([]Trajectory, 0, max), max: max}
}

// Get returns a zero-length buffer with at least capHint capacity.
func (p *trajPool) Get(capHint int) Trajectory {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.free); n > 0 {
		buf := p.free[n-1]
		p.free = p.free[:n-1]
		if cap(buf) >= capHint {
			return buf[:0]
		}
		// Too small for this run; let it go and size a new one.
	}
	return make(Trajectory, 0, capHint)
}

// Put hands a buffer back once its contents have been aggregated.
func (p *trajPool) Put(buf Trajectory) {
	if buf == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.free) >= p.max {
		return
	}
	p.free = append(p.free, buf[:0])
}

// trajectories is shared across workers; sized to comfortably cover any
// realistic worker count.
var trajectories = newTrajPool(64)
