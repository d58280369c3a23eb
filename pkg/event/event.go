// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Common event types
const (
	VehicleAdded       Type = "vehicle_added"
	VehicleRemoved     Type = "vehicle_removed"
	FlightStarted      Type = "flight_started"
	FlightStopped      Type = "flight_stopped"
	FlightCompleted    Type = "flight_completed"
	WaypointReached    Type = "waypoint_reached"
	AuthorityGranted   Type = "authority_granted"
	AuthorityDenied    Type = "authority_denied"
	AuthorityReleased  Type = "authority_released"
	ControlModeChanged Type = "control_mode_changed"
	SimStarted         Type = "sim_started"
	SimStopped         Type = "sim_stopped"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription represents an active event subscription
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, reg := range regs {
		if reg.id == id {
			b.handlers[eventType] = append(regs[:i], regs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := make([]registration, len(b.handlers[event.GetType()]))
	copy(regs, b.handlers[event.GetType()])
	b.mu.RUnlock()

	// Call each handler
	for _, reg := range regs {
		reg.handler(event)
	}
}

// Specific event implementations

// VehicleEvent contains information about vehicle lifecycle events
type VehicleEvent struct {
	BaseEvent
	VehicleID uint64
}

// NewVehicleEvent creates a new vehicle event
func NewVehicleEvent(eventType Type, source interface{}, vehicleID uint64) *VehicleEvent {
	return &VehicleEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		VehicleID: vehicleID,
	}
}

// FlightEvent contains information about scripted flight progress
type FlightEvent struct {
	BaseEvent
	VehicleID uint64
	Waypoint  int
}

// NewFlightEvent creates a new flight event
func NewFlightEvent(eventType Type, source interface{}, vehicleID uint64, waypoint int) *FlightEvent {
	return &FlightEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		VehicleID: vehicleID,
		Waypoint:  waypoint,
	}
}

// AuthorityEvent contains information about control authority changes
type AuthorityEvent struct {
	BaseEvent
	VehicleID uint64
	Requester uint64
	Level     int
}

// NewAuthorityEvent creates a new authority event
func NewAuthorityEvent(eventType Type, source interface{}, vehicleID, requester uint64, level int) *AuthorityEvent {
	return &AuthorityEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		VehicleID: vehicleID,
		Requester: requester,
		Level:     level,
	}
}
