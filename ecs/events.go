package ecs

// EventType identifies what an Event reports.
type EventType string

const (
	// EventSound carries a component.Sound cue in Data.
	EventSound EventType = "sound"
	// EventStateChanged carries the new component.State in Data.
	EventStateChanged EventType = "state_changed"
	// EventObstacleHit is emitted when an obstacle is struck from below.
	EventObstacleHit EventType = "obstacle_hit"
	// EventLevelComplete is emitted once the flag sequence finishes.
	EventLevelComplete EventType = "level_complete"
	// EventPlayerDead is emitted when the player entity is removed after
	// its death sequence.
	EventPlayerDead EventType = "player_dead"
)

// Event is a generic ECS event payload.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Emit is shorthand for pushing an event onto the world queue.
func Emit(w *World, typ EventType, e Entity, data any) {
	w.Events().Push(Event{Type: typ, Entity: e, Data: data})
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
