package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	"github.com/SscSPs/team_cfo_backend/internal/notify"
)

type recordingSink struct {
	mu    sync.Mutex
	got   []domain.Notification
	err   error
	block chan struct{}
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Send(_ context.Context, n domain.Notification) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, n)
	return s.err
}

func (s *recordingSink) events() []domain.NotificationEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.NotificationEvent, len(s.got))
	for i, n := range s.got {
		out[i] = n.Event
	}
	return out
}

func TestWorker_DeliversToEverySinkAndDrainsOnShutdown(t *testing.T) {
	first := &recordingSink{}
	failing := &recordingSink{err: errors.New("smtp down")}
	w := notify.NewWorker(10, []notify.Sink{failing, first})
	w.Start()

	w.Notify(context.Background(), domain.Notification{Event: domain.EventApprovalRecorded, TeamID: "t"})
	w.Notify(context.Background(), domain.Notification{Event: domain.EventSpendIntentAuthorized, TeamID: "t"})
	w.Shutdown()

	assert.Equal(t, []domain.NotificationEvent{domain.EventApprovalRecorded, domain.EventSpendIntentAuthorized}, first.events())
	assert.Len(t, failing.events(), 2, "a failing sink does not stop delivery")
}

func TestWorker_DropsWhenFull(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	w := notify.NewWorker(1, []notify.Sink{sink})
	w.Start()

	// Whatever does not fit in the buffer while the sink is stuck is dropped.
	w.Notify(context.Background(), domain.Notification{Event: "one"})
	w.Notify(context.Background(), domain.Notification{Event: "two"})

	done := make(chan struct{})
	go func() {
		w.Notify(context.Background(), domain.Notification{Event: "three"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full queue")
	}

	close(sink.block)
	w.Shutdown()
	got := sink.events()
	require.NotEmpty(t, got)
	assert.Less(t, len(got), 3)
	assert.Equal(t, domain.NotificationEvent("one"), got[0])
}

func TestWorker_StampsOccurredAt(t *testing.T) {
	sink := &recordingSink{}
	w := notify.NewWorker(1, []notify.Sink{sink})
	w.Start()
	w.Notify(context.Background(), domain.Notification{Event: "x"})
	w.Shutdown()

	require.Len(t, sink.got, 1)
	assert.False(t, sink.got[0].OccurredAt.IsZero())
}

func TestPosthogSink_UninitializedClientIsNoop(t *testing.T) {
	client, err := notify.NewPosthogClient("", discardLogger())
	require.NoError(t, err)
	assert.False(t, client.IsInitialized())

	sink := notify.PosthogSink{Client: client}
	assert.NoError(t, sink.Send(context.Background(), domain.Notification{Event: "x", TeamID: "t"}))
	client.Close()
}
