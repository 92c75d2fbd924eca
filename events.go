package coltrans

import "github.com/stillgbx/coltrans/pivot"

const (
	PREVIEW_BEGIN EventType = iota
	PREVIEW_APPLY
	PREVIEW_END
	COMMIT
	RESET
)

type EventType uint8

// Event interface - all engine lifecycle events implement this
type Event interface {
	Type() EventType
}

// PreviewBeginEvent fires when a baseline is captured and preview starts.
type PreviewBeginEvent struct {
	Collection string
	Roots      int
}

func (e PreviewBeginEvent) Type() EventType { return PREVIEW_BEGIN }

// PreviewApplyEvent fires on every preview re-application.
type PreviewApplyEvent struct {
	Collection string
	Pivot      pivot.Mode
}

func (e PreviewApplyEvent) Type() EventType { return PREVIEW_APPLY }

// PreviewEndEvent fires when a live session is restored and discarded,
// whether by reset, preview toggle-off, collection change or commit drain.
type PreviewEndEvent struct {
	Collection string
}

func (e PreviewEndEvent) Type() EventType { return PREVIEW_END }

// CommitEvent fires after the single durable apply of a commit.
type CommitEvent struct {
	Report Report
}

func (e CommitEvent) Type() EventType { return COMMIT }

// ResetEvent fires when the user resets the panel fields.
type ResetEvent struct {
	Collection string
}

func (e ResetEvent) Type() EventType { return RESET }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 16),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}

	e.buffer = e.buffer[:0]
}
