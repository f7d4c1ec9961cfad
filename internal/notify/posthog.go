package notify

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

const posthogEndpoint = "https://eu.i.posthog.com"

// PosthogClient wraps posthog.Client so an unconfigured client is a no-op.
type PosthogClient struct {
	client posthog.Client
	logger *slog.Logger
}

// NewPosthogClient returns a client, or a no-op one when apiKey is empty.
func NewPosthogClient(apiKey string, logger *slog.Logger) (*PosthogClient, error) {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, not initializing posthog client.")
		return &PosthogClient{logger: logger}, nil
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: posthogEndpoint})
	if err != nil {
		return nil, err
	}
	return &PosthogClient{client: client, logger: logger}, nil
}

// IsInitialized reports whether events are actually sent.
func (w *PosthogClient) IsInitialized() bool {
	return w != nil && w.client != nil
}

// Enqueue sends one capture event.
func (w *PosthogClient) Enqueue(distinctID, event string, properties posthog.Properties) error {
	if !w.IsInitialized() {
		return nil
	}
	if w.logger != nil {
		w.logger.Debug("Enqueueing posthog event", slog.String("distinct_id", distinctID), slog.String("event", event))
	}
	return w.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
}

// Close flushes pending events.
func (w *PosthogClient) Close() {
	if !w.IsInitialized() {
		return
	}
	if err := w.client.Close(); err != nil && w.logger != nil {
		w.logger.Error("Failed to close posthog client", slog.String("error", err.Error()))
	}
}
