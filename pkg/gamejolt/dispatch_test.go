package gamejolt

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCallDeliversOnce(t *testing.T) {
	call := newCall(EndpointUsers)
	var runs int32
	done := func(CallResult) { atomic.AddInt32(&runs, 1) }

	call.deliver(CallResult{Reached: true, Succeeded: true}, done)
	call.deliver(CallResult{}, done)

	res, ok := call.Result()
	if !ok || !res.OK() {
		t.Fatalf("expected first result to stick, got %+v ok=%v", res, ok)
	}
	if atomic.LoadInt32(&runs) != 1 {
		t.Fatalf("completion ran %d times", runs)
	}
}

func TestCallCompletionRunsBeforeResolve(t *testing.T) {
	call := newCall(EndpointUsers)
	var handled atomic.Bool
	go InlineDispatcher{}.Dispatch(call, CallResult{Reached: true}, func(CallResult) {
		time.Sleep(10 * time.Millisecond)
		handled.Store(true)
	})

	if _, err := call.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !handled.Load() {
		t.Fatalf("Wait returned before the completion finished")
	}
}

func TestCallWaitHonoursContext(t *testing.T) {
	call := newCall(EndpointUsers)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := call.Wait(ctx); err == nil {
		t.Fatalf("expected context error")
	}
	if _, ok := call.Result(); ok {
		t.Fatalf("unresolved call reported a result")
	}
}

func TestQueueDispatcherSerializesCompletions(t *testing.T) {
	q := NewQueueDispatcher(4)
	defer q.Close()

	var active, maxActive int32
	var wg sync.WaitGroup
	calls := make([]*Call, 20)
	for i := range calls {
		calls[i] = newCall(EndpointUsers)
		wg.Add(1)
		go func(call *Call) {
			defer wg.Done()
			q.Dispatch(call, CallResult{Reached: true}, func(CallResult) {
				n := atomic.AddInt32(&active, 1)
				for {
					m := atomic.LoadInt32(&maxActive)
					if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
			})
		}(calls[i])
	}
	wg.Wait()

	for _, call := range calls {
		if _, err := call.Wait(context.Background()); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if maxActive != 1 {
		t.Fatalf("completions overlapped: max concurrent %d", maxActive)
	}
}

func TestQueueDispatcherSurvivesPanickingHandler(t *testing.T) {
	q := NewQueueDispatcher(0)
	defer q.Close()

	first := newCall(EndpointUsers)
	q.Dispatch(first, CallResult{}, func(CallResult) { panic("boom") })
	<-first.Done()

	second := newCall(EndpointUsers)
	q.Dispatch(second, CallResult{Reached: true}, nil)
	res, err := second.Wait(context.Background())
	if err != nil || !res.Reached {
		t.Fatalf("worker stopped after panic: %+v %v", res, err)
	}
}

func TestQueueDispatcherRunsInlineAfterClose(t *testing.T) {
	q := NewQueueDispatcher(1)
	q.Close()
	q.Close()

	call := newCall(EndpointUsers)
	ran := false
	q.Dispatch(call, CallResult{}, func(CallResult) { ran = true })
	if !ran {
		t.Fatalf("expected inline completion after Close")
	}
	if _, ok := call.Result(); !ok {
		t.Fatalf("call not resolved")
	}
}

func TestQueueDispatcherCloseReleasesBlockedDispatch(t *testing.T) {
	q := NewQueueDispatcher(0)
	gate := make(chan struct{})

	busy := newCall(EndpointUsers)
	started := make(chan struct{})
	q.Dispatch(busy, CallResult{}, func(CallResult) {
		close(started)
		<-gate
	})
	<-started

	blocked := newCall(EndpointUsers)
	go q.Dispatch(blocked, CallResult{Reached: true}, nil)

	closed := make(chan struct{})
	go func() {
		q.Close()
		close(closed)
	}()

	select {
	case <-blocked.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("dispatch stayed blocked behind a busy worker during Close")
	}
	if res, _ := blocked.Result(); !res.Reached {
		t.Fatalf("unexpected result %+v", res)
	}

	close(gate)
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatalf("Close did not return after the worker finished")
	}
	if _, ok := busy.Result(); !ok {
		t.Fatalf("busy call not resolved")
	}
}
