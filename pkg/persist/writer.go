// Package persist serializes durable writes per slot key so that two
// rapid mutations of the same slot can never reach storage out of
// order: the last value issued is the last value written.
package persist

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/codelish/institute/pkg/kv"
	"github.com/codelish/institute/pkg/metrics"
)

type slotOp struct {
	value  string
	remove bool
}

// keyWorker owns one slot key. Its mailbox holds at most one pending
// op; an op enqueued while another waits supersedes it.
type keyWorker struct {
	mu      sync.Mutex
	pending *slotOp
	signal  chan struct{}
}

// Writer fans slot writes out to one goroutine per key. Writes are
// fire-and-forget: failures are logged and counted, never retried.
type Writer struct {
	store   kv.Store
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu      sync.Mutex
	workers map[string]*keyWorker
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	ops     sync.WaitGroup
	started bool
}

// NewWriter builds a writer over the given store.
func NewWriter(store kv.Store, logger *zap.Logger, m *metrics.Metrics) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	return &Writer{
		store:   store,
		logger:  logger,
		metrics: m,
		workers: make(map[string]*keyWorker),
	}
}

// Start makes the writer accept ops. Safe to call once.
func (w *Writer) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.started = true
}

// Set queues a durable write of value under key.
func (w *Writer) Set(key string, value string) {
	w.enqueue(key, slotOp{value: value})
}

// Remove queues deletion of the slot, ordered after any earlier write
// to the same key.
func (w *Writer) Remove(key string) {
	w.enqueue(key, slotOp{remove: true})
}

// Flush blocks until every queued op has reached the store.
func (w *Writer) Flush() {
	w.ops.Wait()
}

// Stop flushes pending ops and shuts the workers down.
func (w *Writer) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.started = false
	cancel := w.cancel
	w.mu.Unlock()

	w.ops.Wait()
	cancel()
	w.wg.Wait()
}

func (w *Writer) enqueue(key string, op slotOp) {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		w.logger.Sugar().Warnw("write dropped, writer not started", "key", key)
		return
	}
	worker, ok := w.workers[key]
	if !ok {
		worker = &keyWorker{signal: make(chan struct{}, 1)}
		w.workers[key] = worker
		w.wg.Add(1)
		go w.run(key, worker)
	}
	w.mu.Unlock()

	w.ops.Add(1)
	worker.mu.Lock()
	if worker.pending != nil {
		// Superseded before it ever hit storage.
		w.metrics.WritesDropped.WithLabelValues(key).Inc()
		w.ops.Done()
	}
	worker.pending = &op
	worker.mu.Unlock()

	select {
	case worker.signal <- struct{}{}:
	default:
	}
}

func (w *Writer) run(key string, worker *keyWorker) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			w.drain(key, worker)
			return
		case <-worker.signal:
			w.drain(key, worker)
		}
	}
}

func (w *Writer) drain(key string, worker *keyWorker) {
	for {
		worker.mu.Lock()
		op := worker.pending
		worker.pending = nil
		worker.mu.Unlock()
		if op == nil {
			return
		}
		w.apply(key, *op)
		w.ops.Done()
	}
}

func (w *Writer) apply(key string, op slotOp) {
	w.metrics.WritesTotal.WithLabelValues(key).Inc()

	var err error
	if op.remove {
		err = w.store.Remove(context.Background(), key)
	} else {
		err = w.store.Set(context.Background(), key, op.value)
	}
	if err != nil {
		w.metrics.WriteFailures.WithLabelValues(key).Inc()
		w.logger.Sugar().Errorw("durable write failed", "key", key, "remove", op.remove, "error", err)
	}
}
