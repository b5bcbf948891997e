// internal/service/dispatch/executor.go
package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	domain "artisan-catalog-service/internal/domain/dispatch"
	xerrors "artisan-catalog-service/internal/pkg/errors"
	"artisan-catalog-service/internal/service/message"

	"go.uber.org/zap"
)

// Transport is the outbound WhatsApp channel. Send delivers one
// addressed message and returns the provider's message reference.
// Implementations must be safe for concurrent use by multiple workers.
type Transport interface {
	Send(ctx context.Context, phone, body, attachmentURL string) (string, error)
}

const (
	errTimeout   = "timeout"
	errCancelled = "cancelled"
)

// Executor runs personalized sends through the transport with bounded
// concurrency. Per-recipient failures are recorded, never propagated;
// the summary's outcome order always matches the job's recipient order
// regardless of completion order.
type Executor struct {
	transport   Transport
	concurrency int
	sendTimeout time.Duration
	cancelGrace time.Duration
	logger      *zap.Logger
}

func NewExecutor(transport Transport, concurrency int, sendTimeout, cancelGrace time.Duration, logger *zap.Logger) *Executor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Executor{
		transport:   transport,
		concurrency: concurrency,
		sendTimeout: sendTimeout,
		cancelGrace: cancelGrace,
		logger:      logger,
	}
}

// Dispatch sends the job to every recipient and reports per-recipient
// outcomes. Empty recipient lists are rejected with ErrInvalidJob; the
// resolver should already have surfaced ErrEmptySelection upstream.
//
// Cancelling ctx stops submission of further recipients; in-flight
// sends get a grace period to finish, then everything still pending is
// recorded as failed with "cancelled". Already-completed outcomes are
// retained, so Sent+Failed == Total holds in every case.
func (e *Executor) Dispatch(ctx context.Context, job domain.Job) (*domain.Summary, error) {
	if len(job.Recipients) == 0 {
		return nil, xerrors.ErrInvalidJob
	}

	outcomes := make([]domain.Outcome, len(job.Recipients))
	tasks := make(chan int)

	var sent, failed int64
	var wg sync.WaitGroup

	limit := e.concurrency
	if limit > len(job.Recipients) {
		limit = len(job.Recipients)
	}

	for w := 0; w < limit; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				rec := job.Recipients[i]
				out := e.sendOne(ctx, job, i)
				outcomes[i] = out
				if out.Status == domain.StatusSent {
					atomic.AddInt64(&sent, 1)
				} else {
					atomic.AddInt64(&failed, 1)
					e.logger.Warn("send failed",
						zap.String("customer_id", rec.ID),
						zap.String("reason", out.Error),
					)
				}
			}
		}()
	}

	// Each recipient is enqueued exactly once; stop feeding as soon as
	// the caller cancels.
feed:
	for i := range job.Recipients {
		select {
		case tasks <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(tasks)
	wg.Wait()

	// Recipients never submitted still owe an outcome.
	for i := range outcomes {
		if outcomes[i].Status == "" {
			rec := job.Recipients[i]
			outcomes[i] = domain.Outcome{
				CustomerID:   rec.ID,
				CustomerName: rec.Name,
				Phone:        rec.Phone,
				Status:       domain.StatusFailed,
				Error:        errCancelled,
			}
			atomic.AddInt64(&failed, 1)
		}
	}

	summary := &domain.Summary{
		Total:    len(job.Recipients),
		Sent:     int(atomic.LoadInt64(&sent)),
		Failed:   int(atomic.LoadInt64(&failed)),
		Outcomes: outcomes,
	}

	e.logger.Info("dispatch complete",
		zap.Int("total", summary.Total),
		zap.Int("sent", summary.Sent),
		zap.Int("failed", summary.Failed),
	)

	return summary, nil
}

// sendOne renders and submits a single recipient's message, bounding
// the transport call with the per-send timeout. A caller cancellation
// mid-flight grants the send cancelGrace to land before it is recorded
// as cancelled.
func (e *Executor) sendOne(ctx context.Context, job domain.Job, idx int) domain.Outcome {
	rec := job.Recipients[idx]
	out := domain.Outcome{
		CustomerID:   rec.ID,
		CustomerName: rec.Name,
		Phone:        rec.Phone,
	}

	body := message.Render(job.MessageTemplate, rec, job.DefaultTemplate)

	// Detach from the caller's cancellation so in-flight sends survive
	// into the grace window; the per-send timeout still applies.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.sendTimeout)
	defer cancel()

	type result struct {
		ref string
		err error
	}
	done := make(chan result, 1)
	go func() {
		ref, err := e.transport.Send(sendCtx, rec.Phone, body, job.Catalog.URL)
		done <- result{ref: ref, err: err}
	}()

	finish := func(r result) domain.Outcome {
		if r.err != nil {
			out.Status = domain.StatusFailed
			if sendCtx.Err() == context.DeadlineExceeded {
				out.Error = errTimeout
			} else {
				out.Error = r.err.Error()
			}
			return out
		}
		out.Status = domain.StatusSent
		out.TransportRef = r.ref
		return out
	}

	select {
	case r := <-done:
		return finish(r)

	case <-sendCtx.Done():
		// A hung transport must not block the slot past the timeout.
		out.Status = domain.StatusFailed
		out.Error = errTimeout
		return out

	case <-ctx.Done():
		select {
		case r := <-done:
			return finish(r)
		case <-sendCtx.Done():
			out.Status = domain.StatusFailed
			out.Error = errTimeout
			return out
		case <-time.After(e.cancelGrace):
			out.Status = domain.StatusFailed
			out.Error = errCancelled
			return out
		}
	}
}
