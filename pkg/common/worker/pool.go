package worker

import (
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

// DefaultSize is the pool capacity used when Submit runs before Init.
const DefaultSize = 4

type Job func()

var (
	pool     *ants.Pool
	initOnce sync.Once
	initErr  error
	mu       sync.RWMutex
	stats    = struct {
		Submitted uint64
		Completed uint64
		LastErr   string
		LastDur   time.Duration
		LastAt    time.Time
	}{}
)

// Init initializes the global worker pool with the given size. Safe to call
// multiple times; only the first size wins. Submit blocks while every
// worker is busy.
func Init(size int) error {
	initOnce.Do(func() {
		pool, initErr = ants.NewPool(size)
	})
	return initErr
}

// Submit enqueues a job for asynchronous execution.
func Submit(j Job) error {
	if err := Init(DefaultSize); err != nil {
		return err
	}
	mu.Lock()
	stats.Submitted++
	mu.Unlock()
	return pool.Submit(func() {
		start := time.Now()
		defer func() {
			r := recover()
			mu.Lock()
			if r != nil {
				log.Error().Interface("panic", r).Msg("worker panic recovered")
				stats.LastErr = fmt.Sprint(r)
			}
			stats.Completed++
			stats.LastDur = time.Since(start)
			stats.LastAt = time.Now()
			mu.Unlock()
		}()
		j()
	})
}

// Cap returns pool capacity.
func Cap() int {
	if pool == nil {
		return 0
	}
	return pool.Cap()
}

// Running returns currently running goroutines.
func Running() int {
	if pool == nil {
		return 0
	}
	return pool.Running()
}

// StatsSnapshot returns a copy of current pool statistics.
func StatsSnapshot() map[string]any {
	mu.RLock()
	defer mu.RUnlock()
	return map[string]any{
		"capacity":         Cap(),
		"running":          Running(),
		"submitted":        stats.Submitted,
		"completed":        stats.Completed,
		"last_error":       stats.LastErr,
		"last_duration_ms": stats.LastDur.Milliseconds(),
	}
}

// Group runs a batch of jobs on the pool and collects the first error.
type Group struct {
	wg  sync.WaitGroup
	mu  sync.Mutex
	err error
}

// Go submits fn. A panic in fn is recovered by the pool and reported as an error.
func (g *Group) Go(fn func() error) error {
	g.wg.Add(1)
	err := Submit(func() {
		defer g.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				g.setErr(fmt.Errorf("job panicked: %v", r))
				panic(r)
			}
		}()
		if err := fn(); err != nil {
			g.setErr(err)
		}
	})
	if err != nil {
		g.wg.Done()
		return fmt.Errorf("submit job: %w", err)
	}
	return nil
}

// Wait blocks until every submitted job finished and returns the first error.
func (g *Group) Wait() error {
	g.wg.Wait()
	return g.err
}

func (g *Group) setErr(err error) {
	g.mu.Lock()
	if g.err == nil {
		g.err = err
	}
	g.mu.Unlock()
}
