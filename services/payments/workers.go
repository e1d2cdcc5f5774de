package payments

import (
	// Go Internal Packages
	"context"
	"fmt"
	"sync"

	// External Packages
	"go.uber.org/zap"
)

// Task is a unit of background work. ctx is the pool's base context, it is
// not cancelled by Stop.
type Task func(ctx context.Context)

// WorkerPool runs tasks on a fixed number of goroutines fed by a buffered
// queue. Schedule never blocks the caller.
type WorkerPool struct {
	base   context.Context
	tasks  chan Task
	done   chan struct{}
	once   sync.Once
	logger *zap.Logger
}

func NewWorkerPool(base context.Context, workers, queueSize int, logger *zap.Logger) *WorkerPool {
	p := &WorkerPool{
		base:   base,
		tasks:  make(chan Task, queueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
	for i := 0; i < workers; i++ {
		go p.work(i)
	}
	return p
}

// Schedule queues task. When the queue is full the hand-off moves to its own
// goroutine so the caller returns immediately.
func (p *WorkerPool) Schedule(task Task) {
	select {
	case <-p.done:
		p.logger.Warn("worker pool stopped, task dropped")
		return
	default:
	}

	select {
	case p.tasks <- task:
	default:
		go func() {
			select {
			case p.tasks <- task:
			case <-p.done:
				p.logger.Warn("worker pool stopped, task dropped")
			}
		}()
	}
}

// Stop makes the workers exit once their current task returns. It does not
// wait for them and queued tasks are abandoned.
func (p *WorkerPool) Stop() {
	p.once.Do(func() { close(p.done) })
}

func (p *WorkerPool) work(id int) {
	for {
		select {
		case <-p.done:
			return
		case task := <-p.tasks:
			p.run(id, task)
		}
	}
}

func (p *WorkerPool) run(id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked", zap.Int("worker", id), zap.String("panic", fmt.Sprint(r)))
		}
	}()
	task(p.base)
}
