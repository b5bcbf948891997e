package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"artisan-catalog-service/internal/domain/catalog"
	"artisan-catalog-service/internal/domain/customer"
	domain "artisan-catalog-service/internal/domain/dispatch"
	xerrors "artisan-catalog-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type transportFunc func(ctx context.Context, phone, body, attachmentURL string) (string, error)

func (f transportFunc) Send(ctx context.Context, phone, body, attachmentURL string) (string, error) {
	return f(ctx, phone, body, attachmentURL)
}

func recipients(n int) []customer.Customer {
	out := make([]customer.Customer, n)
	for i := range out {
		out[i] = customer.Customer{
			ID:    fmt.Sprintf("c%d", i+1),
			Name:  fmt.Sprintf("Customer %d", i+1),
			Phone: fmt.Sprintf("+9190000000%02d", i+1),
		}
	}
	return out
}

func testJob(recs []customer.Customer) domain.Job {
	return domain.Job{
		Catalog:         catalog.Reference{URL: "https://cdn.example.com/catalog.pdf"},
		Recipients:      recs,
		MessageTemplate: "Hi {name}",
		DefaultTemplate: "Hello {name}",
	}
}

func TestDispatchEmptyJobIsInvalid(t *testing.T) {
	e := NewExecutor(transportFunc(func(context.Context, string, string, string) (string, error) {
		return "ref", nil
	}), 2, time.Second, time.Second, zap.NewNop())

	_, err := e.Dispatch(context.Background(), testJob(nil))
	assert.ErrorIs(t, err, xerrors.ErrInvalidJob)
}

func TestDispatchTalliesMixedOutcomes(t *testing.T) {
	transport := transportFunc(func(_ context.Context, phone, _, _ string) (string, error) {
		if phone == "+919000000002" {
			return "", errors.New("unreachable number")
		}
		return "ref-" + phone, nil
	})
	e := NewExecutor(transport, 3, time.Second, time.Second, zap.NewNop())

	recs := recipients(3)
	summary, err := e.Dispatch(context.Background(), testJob(recs))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Sent)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Outcomes, 3)

	assert.Equal(t, domain.StatusSent, summary.Outcomes[0].Status)
	assert.Equal(t, "ref-+919000000001", summary.Outcomes[0].TransportRef)

	assert.Equal(t, domain.StatusFailed, summary.Outcomes[1].Status)
	assert.Equal(t, "unreachable number", summary.Outcomes[1].Error)
	assert.Empty(t, summary.Outcomes[1].TransportRef)

	assert.Equal(t, domain.StatusSent, summary.Outcomes[2].Status)
}

func TestDispatchPreservesRecipientOrder(t *testing.T) {
	// Later recipients finish first; outcomes must still line up with
	// the job's recipient order.
	transport := transportFunc(func(_ context.Context, phone, _, _ string) (string, error) {
		if phone == "+919000000001" {
			time.Sleep(40 * time.Millisecond)
		}
		return "ref-" + phone, nil
	})
	e := NewExecutor(transport, 4, time.Second, time.Second, zap.NewNop())

	recs := recipients(4)
	summary, err := e.Dispatch(context.Background(), testJob(recs))
	require.NoError(t, err)

	for i, out := range summary.Outcomes {
		assert.Equal(t, recs[i].ID, out.CustomerID)
		assert.Equal(t, recs[i].Phone, out.Phone)
	}
	assert.Equal(t, summary.Total, summary.Sent+summary.Failed)
}

func TestDispatchBoundsConcurrency(t *testing.T) {
	var inFlight, peak int64
	transport := transportFunc(func(context.Context, string, string, string) (string, error) {
		n := atomic.AddInt64(&inFlight, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		return "ref", nil
	})
	e := NewExecutor(transport, 3, time.Second, time.Second, zap.NewNop())

	summary, err := e.Dispatch(context.Background(), testJob(recipients(12)))
	require.NoError(t, err)

	assert.Equal(t, 12, summary.Sent)
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(3))
	assert.Greater(t, atomic.LoadInt64(&peak), int64(1))
}

func TestDispatchPersonalizesPerRecipient(t *testing.T) {
	var mu sync.Mutex
	bodies := make(map[string]string)
	transport := transportFunc(func(_ context.Context, phone, body, attachmentURL string) (string, error) {
		mu.Lock()
		bodies[phone] = body
		mu.Unlock()
		assert.Equal(t, "https://cdn.example.com/catalog.pdf", attachmentURL)
		return "ref", nil
	})
	e := NewExecutor(transport, 2, time.Second, time.Second, zap.NewNop())

	recs := []customer.Customer{
		{ID: "c1", Name: "Ana", Phone: "+919000000001"},
		{ID: "c2", Name: "Bo", Phone: "+919000000002"},
	}
	_, err := e.Dispatch(context.Background(), testJob(recs))
	require.NoError(t, err)

	assert.Equal(t, "Hi Ana", bodies["+919000000001"])
	assert.Equal(t, "Hi Bo", bodies["+919000000002"])
}

func TestDispatchSlowSendTimesOut(t *testing.T) {
	transport := transportFunc(func(ctx context.Context, phone, _, _ string) (string, error) {
		if phone == "+919000000001" {
			<-ctx.Done()
			return "", ctx.Err()
		}
		return "ref", nil
	})
	e := NewExecutor(transport, 2, 30*time.Millisecond, time.Second, zap.NewNop())

	summary, err := e.Dispatch(context.Background(), testJob(recipients(2)))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, domain.StatusFailed, summary.Outcomes[0].Status)
	assert.Equal(t, "timeout", summary.Outcomes[0].Error)
	assert.Equal(t, domain.StatusSent, summary.Outcomes[1].Status)
}

func TestDispatchCancellationStopsFeedingAndBackfills(t *testing.T) {
	started := make(chan struct{}, 16)
	transport := transportFunc(func(_ context.Context, phone, _, _ string) (string, error) {
		started <- struct{}{}
		time.Sleep(30 * time.Millisecond)
		return "ref-" + phone, nil
	})
	e := NewExecutor(transport, 1, time.Second, 500*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	summary, err := e.Dispatch(ctx, testJob(recipients(3)))
	require.NoError(t, err)

	// The in-flight send lands inside the grace window; the recipients
	// never fed are recorded as cancelled.
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, summary.Total, summary.Sent+summary.Failed)
	assert.Equal(t, domain.StatusSent, summary.Outcomes[0].Status)
	assert.Equal(t, domain.StatusFailed, summary.Outcomes[1].Status)
	assert.Equal(t, "cancelled", summary.Outcomes[1].Error)
	assert.Equal(t, domain.StatusFailed, summary.Outcomes[2].Status)
	assert.Equal(t, "cancelled", summary.Outcomes[2].Error)
}

func TestDispatchAllFailuresIsStillASummary(t *testing.T) {
	transport := transportFunc(func(context.Context, string, string, string) (string, error) {
		return "", errors.New("provider down")
	})
	e := NewExecutor(transport, 2, time.Second, time.Second, zap.NewNop())

	summary, err := e.Dispatch(context.Background(), testJob(recipients(4)))
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 0, summary.Sent)
	assert.Equal(t, 4, summary.Failed)
	for _, out := range summary.Outcomes {
		assert.Equal(t, domain.StatusFailed, out.Status)
		assert.Equal(t, "provider down", out.Error)
	}
}
