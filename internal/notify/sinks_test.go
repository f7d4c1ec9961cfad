package notify_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	"github.com/SscSPs/team_cfo_backend/internal/notify"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOutbox struct {
	mock.Mock
}

func (m *MockOutbox) SaveNotification(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func TestOutboxSink_Persists(t *testing.T) {
	outbox := new(MockOutbox)
	n := domain.Notification{Event: domain.EventPolicyExceptionRaised, TeamID: "team-1"}
	outbox.On("SaveNotification", mock.Anything, n).Return(nil).Once()

	err := notify.OutboxSink{Outbox: outbox}.Send(context.Background(), n)

	assert.NoError(t, err)
	outbox.AssertExpectations(t)
}

func TestLogSink_WritesEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := notify.LogSink{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	err := sink.Send(context.Background(), domain.Notification{Event: domain.EventApprovalRecorded, TeamID: "team-1", Subject: "hi"})

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"event":"approval.recorded"`)
	assert.Contains(t, buf.String(), `"team_id":"team-1"`)
}
