package gamejolt

import "sync"

// Dispatcher decides where completions run. Dispatch must eventually
// deliver result to call exactly once.
type Dispatcher interface {
	Dispatch(call *Call, result CallResult, done Completion)
}

// InlineDispatcher runs the completion on the goroutine that finished the
// request. Completions of different calls may run concurrently.
type InlineDispatcher struct{}

// Dispatch implements Dispatcher.
func (InlineDispatcher) Dispatch(call *Call, result CallResult, done Completion) {
	call.deliver(result, done)
}

type dispatchJob struct {
	call   *Call
	result CallResult
	done   Completion
}

// QueueDispatcher runs every completion on a single worker goroutine in the
// order the calls finished, so handlers never run concurrently with each
// other. Handlers must not block waiting on another call of the same
// dispatcher, and must not call Close: Close waits for the worker that is
// running the handler.
type QueueDispatcher struct {
	jobs     chan dispatchJob
	quit     chan struct{}
	quitOnce sync.Once
	mu       sync.RWMutex
	closed   bool
	wg       sync.WaitGroup
}

// NewQueueDispatcher starts the worker. buffer bounds how many finished
// calls may wait for their handler before transports block.
func NewQueueDispatcher(buffer int) *QueueDispatcher {
	if buffer < 0 {
		buffer = 0
	}
	q := &QueueDispatcher{
		jobs: make(chan dispatchJob, buffer),
		quit: make(chan struct{}),
	}
	q.wg.Add(1)
	go q.run()
	return q
}

func (q *QueueDispatcher) run() {
	defer q.wg.Done()
	for job := range q.jobs {
		q.handle(job)
	}
}

func (q *QueueDispatcher) handle(job dispatchJob) {
	// A panicking handler must not stop the worker; the call is resolved by
	// deliver's deferred close either way.
	defer func() { _ = recover() }()
	job.call.deliver(job.result, job.done)
}

// Dispatch implements Dispatcher. After Close, and while Close is pending
// behind a full queue, completions run inline.
func (q *QueueDispatcher) Dispatch(call *Call, result CallResult, done Completion) {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		call.deliver(result, done)
		return
	}
	select {
	case q.jobs <- dispatchJob{call: call, result: result, done: done}:
		q.mu.RUnlock()
	case <-q.quit:
		q.mu.RUnlock()
		call.deliver(result, done)
	}
}

// Close stops accepting jobs and waits for queued completions to finish.
// Dispatch calls blocked on a full queue are released and run inline.
func (q *QueueDispatcher) Close() {
	q.quitOnce.Do(func() { close(q.quit) })
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()
	q.wg.Wait()
}
