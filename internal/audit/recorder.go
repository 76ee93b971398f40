// Package audit consumes transaction events and writes them to the audit log.
package audit

import (
	"context"
	"sync"

	"budzet/internal/amqp"
	"budzet/internal/log"
)

// Source delivers transaction events until ctx is done.
type Source interface {
	ConsumeTransactionEvents(ctx context.Context, handler func(context.Context, *amqp.TransactionEvent) error) error
}

// Recorder logs every event it sees and keeps per-action counts.
type Recorder struct {
	logger *log.Logger

	mu     sync.Mutex
	counts map[amqp.Action]int
}

func NewRecorder(logger *log.Logger) *Recorder {
	return &Recorder{
		logger: logger.WithComponent(log.ComponentAudit),
		counts: make(map[amqp.Action]int),
	}
}

// Handle records one event. It never fails, so a delivered message is
// always acked.
func (r *Recorder) Handle(ctx context.Context, evt *amqp.TransactionEvent) error {
	r.mu.Lock()
	r.counts[evt.Action]++
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "Transaction event",
		"action", evt.Action,
		log.FieldTransactionID, evt.TransactionID,
		log.FieldUserID, evt.UserID,
		"event_time", evt.Timestamp)
	return nil
}

// Consume returns a task that feeds src into the recorder.
func (r *Recorder) Consume(src Source) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return src.ConsumeTransactionEvents(ctx, r.Handle)
	}
}

func (r *Recorder) Count(action amqp.Action) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[action]
}

func (r *Recorder) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.counts {
		n += c
	}
	return n
}
