// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event being published.
type EventType string

const (
	// ScrollToRowEvent requests the grid to bring a row index into view.
	ScrollToRowEvent EventType = "scroll-to-row"

	// ScrollToColumnEvent requests the grid to bring a column index into view.
	ScrollToColumnEvent EventType = "scroll-to-column"

	// DatasetChangedEvent signals that the backing dataset was modified on disk.
	DatasetChangedEvent EventType = "dataset-changed"

	// LogEntryEvent carries a formatted log line for the debug overlay.
	LogEntryEvent EventType = "log-entry"
)

// Event represents a published event with a typed payload.
// ID is a correlation identifier for tracing an event through the
// update loop and into log output.
type Event[T any] struct {
	ID        uuid.UUID
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
