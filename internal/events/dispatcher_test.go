package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vcsystems/incident-service/internal/domain"
)

func testEvent(kind Kind) Event {
	return Event{
		ID:        "evt-1",
		Kind:      kind,
		Incident:  domain.Incident{ID: "inc-1", Status: domain.IncidentStatusPending},
		Timestamp: time.Now(),
	}
}

func TestDispatcher_HandlersRunInSubscriptionOrder(t *testing.T) {
	d := NewAsyncDispatcher(zap.NewNop())

	var mu sync.Mutex
	var order []int
	done := make(chan struct{})

	for i := 1; i <= 3; i++ {
		i := i
		d.Subscribe(KindIncidentCreated, func(context.Context, Event) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			if i == 3 {
				close(done)
			}
			return nil
		})
	}

	d.Publish(context.Background(), testEvent(KindIncidentCreated))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handlers did not run")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestDispatcher_PublishDoesNotWaitForHandlers(t *testing.T) {
	d := NewAsyncDispatcher(zap.NewNop())

	release := make(chan struct{})
	started := make(chan struct{})
	d.Subscribe(KindStatusChanged, func(context.Context, Event) error {
		close(started)
		<-release
		return nil
	})

	returned := make(chan struct{})
	go func() {
		d.Publish(context.Background(), testEvent(KindStatusChanged))
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow handler")
	}

	<-started
	close(release)
	d.Close()
}

func TestDispatcher_HandlerErrorDoesNotStopLaterHandlers(t *testing.T) {
	d := NewAsyncDispatcher(zap.NewNop())

	ran := make(chan struct{})
	d.Subscribe(KindIncidentCreated, func(context.Context, Event) error {
		return errors.New("smtp down")
	})
	d.Subscribe(KindIncidentCreated, func(context.Context, Event) error {
		close(ran)
		return nil
	})

	d.Publish(context.Background(), testEvent(KindIncidentCreated))

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler never ran after first returned an error")
	}
}

func TestDispatcher_HandlerPanicIsContained(t *testing.T) {
	d := NewAsyncDispatcher(zap.NewNop())

	ran := make(chan struct{})
	d.Subscribe(KindTechnicianAssigned, func(context.Context, Event) error {
		panic("boom")
	})
	d.Subscribe(KindTechnicianAssigned, func(context.Context, Event) error {
		close(ran)
		return nil
	})

	d.Publish(context.Background(), testEvent(KindTechnicianAssigned))

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("handler after panic never ran")
	}
}

func TestDispatcher_HandlersOutliveCallerContext(t *testing.T) {
	d := NewAsyncDispatcher(zap.NewNop())

	sawLiveContext := make(chan bool, 1)
	d.Subscribe(KindStatusChanged, func(ctx context.Context, _ Event) error {
		// Caller's cancellation must not reach a detached handler.
		sawLiveContext <- ctx.Err() == nil
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	d.Publish(ctx, testEvent(KindStatusChanged))
	cancel()

	select {
	case alive := <-sawLiveContext:
		assert.True(t, alive)
	case <-time.After(2 * time.Second):
		t.Fatal("handler never ran")
	}
}

func TestDispatcher_CloseWaitsAndDropsNewEvents(t *testing.T) {
	d := NewAsyncDispatcher(zap.NewNop())

	var mu sync.Mutex
	var count int
	d.Subscribe(KindIncidentCreated, func(context.Context, Event) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})

	d.Publish(context.Background(), testEvent(KindIncidentCreated))
	d.Close()

	mu.Lock()
	require.Equal(t, 1, count, "Close must wait for in-flight handlers")
	mu.Unlock()

	d.Publish(context.Background(), testEvent(KindIncidentCreated))
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	assert.Equal(t, 1, count, "events published after Close must be dropped")
	mu.Unlock()
}

func TestDispatcher_NoSubscribersIsANoOp(t *testing.T) {
	d := NewAsyncDispatcher(zap.NewNop())
	d.Publish(context.Background(), testEvent(KindStatusChanged))
	d.Close()
}
