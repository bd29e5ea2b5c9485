package concurrent

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrScheduleTimeout = errors.New("schedule error: timed out")
	ErrPoolClosed      = errors.New("schedule error: pool closed")
)

// Pool. bounded set of goroutines running scheduled tasks. goroutines are spawned lazily up to size
// and exit when the pool is closed.
type Pool struct {
	sem  chan struct{}
	work chan func()

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

func NewPool(size, queue int) *Pool {
	return &Pool{
		sem:  make(chan struct{}, max(1, size)),
		work: make(chan func(), queue),
		done: make(chan struct{}),
	}
}

// Spawn starts n goroutines up front, n is capped at the pool size.
func (p *Pool) Spawn(n int) {
	for i := 0; i < n; i++ {
		select {
		case p.sem <- struct{}{}:
			p.wg.Add(1)
			go p.worker(func() {})
		default:
			return
		}
	}
}

// Schedule blocks until task is queued or picked up by a goroutine.
func (p *Pool) Schedule(task func()) error {
	return p.schedule(task, nil)
}

// ScheduleTimeout is Schedule bounded by timeout, ErrScheduleTimeout when every goroutine stays busy.
func (p *Pool) ScheduleTimeout(timeout time.Duration, task func()) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	return p.schedule(task, timer.C)
}

func (p *Pool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	default:
	}

	select {
	case <-p.done:
		return ErrPoolClosed
	case <-timeout:
		return ErrScheduleTimeout
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		p.wg.Add(1)
		go p.worker(task)
		return nil
	}
}

func (p *Pool) worker(task func()) {
	defer func() {
		<-p.sem
		p.wg.Done()
	}()

	task()
	for {
		select {
		case <-p.done:
			return
		case task := <-p.work:
			task()
		}
	}
}

// Close stops accepting tasks and waits for the running ones.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}
