package browser

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Pool keeps a fixed number of long-lived browser processes and hands out
// one isolated session per job. Acquire blocks once all processes are
// checked out and resumes when a session is released.
type Pool struct {
	cfg    LaunchConfig
	size   int
	idle   chan *instance
	launch func(LaunchConfig) (*instance, error)

	mu      sync.Mutex
	started int
	closed  bool
}

// NewPool creates a pool bounding concurrent browser processes to size.
// Processes are launched lazily on first demand.
func NewPool(cfg LaunchConfig, size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		cfg:    cfg,
		size:   size,
		idle:   make(chan *instance, size),
		launch: launch,
	}
}

// Acquire checks out a session, launching a new browser process if the pool
// is below capacity, or waiting for a released one otherwise.
func (p *Pool) Acquire(ctx context.Context) (*Session, error) {
	inst, err := p.acquireInstance(ctx)
	if err != nil {
		return nil, err
	}

	session, err := inst.openSession()
	if err != nil {
		// The process is likely unhealthy, retire it so a later Acquire
		// can launch a replacement.
		p.retire(inst)
		return nil, err
	}

	return session, nil
}

// Release returns a session's browser process to the pool. The session must
// not be used after release.
func (p *Pool) Release(s *Session) {
	if s == nil {
		return
	}
	s.closeSession()
	p.releaseInstance(s.inst)
}

// Shutdown closes all pooled browser processes. Sessions still checked out
// are closed as they are released.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	for {
		select {
		case inst := <-p.idle:
			inst.close()
		default:
			log.Println("Browser pool stopped")
			return
		}
	}
}

func (p *Pool) acquireInstance(ctx context.Context) (*instance, error) {
	// Prefer an idle process over launching a new one.
	select {
	case inst := <-p.idle:
		return inst, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, fmt.Errorf("browser pool is shut down")
	}
	if p.started < p.size {
		p.started++
		p.mu.Unlock()

		inst, err := p.launch(p.cfg)
		if err != nil {
			p.mu.Lock()
			p.started--
			p.mu.Unlock()
			return nil, err
		}
		return inst, nil
	}
	p.mu.Unlock()

	select {
	case inst := <-p.idle:
		return inst, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for a browser session: %w", ctx.Err())
	}
}

func (p *Pool) releaseInstance(inst *instance) {
	if inst == nil {
		return
	}

	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()

	if closed {
		inst.close()
		return
	}

	select {
	case p.idle <- inst:
	default:
		// Should not happen: the channel is sized to the pool.
		inst.close()
	}
}

func (p *Pool) retire(inst *instance) {
	inst.close()
	p.mu.Lock()
	p.started--
	p.mu.Unlock()
}
