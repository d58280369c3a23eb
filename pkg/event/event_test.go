// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"
)

// TestNewEventBus tests the creation of a new event bus
func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}

	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}

	if bus.nextID != 1 {
		t.Errorf("expected nextID to be 1, got %d", bus.nextID)
	}
}

// TestBaseEvent tests the BaseEvent functionality
func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{
			name:      "FlightStarted event",
			eventType: FlightStarted,
			source:    "test_source",
		},
		{
			name:      "WaypointReached event",
			eventType: WaypointReached,
			source:    123,
		},
		{
			name:      "Empty source",
			eventType: SimStarted,
			source:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &BaseEvent{
				EventType: tt.eventType,
				Source:    tt.source,
			}

			if event.GetType() != tt.eventType {
				t.Errorf("GetType() = %v, want %v", event.GetType(), tt.eventType)
			}

			if event.GetSource() != tt.source {
				t.Errorf("GetSource() = %v, want %v", event.GetSource(), tt.source)
			}
		})
	}
}

// TestBusSubscribe tests event subscription functionality
func TestBusSubscribe_SingleHandler_ReturnsValidSubscription(t *testing.T) {
	bus := NewEventBus()

	handler := func(e Event) {
		// Handler for testing subscription
	}

	sub := bus.Subscribe(VehicleAdded, handler)

	if sub == nil {
		t.Fatal("Subscribe() returned nil subscription")
	}

	if sub.ID == 0 {
		t.Error("subscription ID should not be 0")
	}

	if sub.Cancel == nil {
		t.Error("subscription Cancel function should not be nil")
	}

	// Verify handler was registered
	bus.mu.RLock()
	handlers := bus.handlers[VehicleAdded]
	bus.mu.RUnlock()

	if len(handlers) != 1 {
		t.Errorf("expected 1 handler, got %d", len(handlers))
	}
}

// TestBusSubscribe_MultipleHandlers tests multiple subscriptions
func TestBusSubscribe_MultipleHandlers_AllRegistered(t *testing.T) {
	bus := NewEventBus()

	handler := func(e Event) {}

	sub1 := bus.Subscribe(VehicleAdded, handler)
	sub2 := bus.Subscribe(VehicleAdded, handler)
	_ = bus.Subscribe(WaypointReached, handler)

	// Check unique IDs
	if sub1.ID == sub2.ID {
		t.Error("subscriptions should have unique IDs")
	}

	// Check handlers count
	bus.mu.RLock()
	vehicleHandlers := bus.handlers[VehicleAdded]
	waypointHandlers := bus.handlers[WaypointReached]
	bus.mu.RUnlock()

	if len(vehicleHandlers) != 2 {
		t.Errorf("expected 2 handlers for VehicleAdded, got %d", len(vehicleHandlers))
	}

	if len(waypointHandlers) != 1 {
		t.Errorf("expected 1 handler for WaypointReached, got %d", len(waypointHandlers))
	}
}

// TestBusPublish tests event publishing functionality
func TestBusPublish_WithSubscribers_CallsAllHandlers(t *testing.T) {
	bus := NewEventBus()
	var callCount int
	var receivedEvents []Event

	handler1 := func(e Event) {
		callCount++
		receivedEvents = append(receivedEvents, e)
	}

	handler2 := func(e Event) {
		callCount++
		receivedEvents = append(receivedEvents, e)
	}

	bus.Subscribe(FlightStarted, handler1)
	bus.Subscribe(FlightStarted, handler2)

	event := &BaseEvent{
		EventType: FlightStarted,
		Source:    "test",
	}

	bus.Publish(event)

	if callCount != 2 {
		t.Errorf("expected 2 handler calls, got %d", callCount)
	}

	if len(receivedEvents) != 2 {
		t.Errorf("expected 2 received events, got %d", len(receivedEvents))
	}

	for _, e := range receivedEvents {
		if e.GetType() != FlightStarted {
			t.Errorf("expected event type %v, got %v", FlightStarted, e.GetType())
		}
	}
}

// TestBusPublish_NoSubscribers tests publishing without subscribers
func TestBusPublish_NoSubscribers_NoError(t *testing.T) {
	bus := NewEventBus()

	event := &BaseEvent{
		EventType: FlightStarted,
		Source:    "test",
	}

	// Should not panic or error
	bus.Publish(event)
}

// TestBusPublish_WrongEventType tests publishing to non-subscribed event type
func TestBusPublish_WrongEventType_HandlersNotCalled(t *testing.T) {
	bus := NewEventBus()
	handlerCalled := false

	handler := func(e Event) {
		handlerCalled = true
	}

	bus.Subscribe(FlightStarted, handler)

	event := &BaseEvent{
		EventType: FlightStopped,
		Source:    "test",
	}

	bus.Publish(event)

	if handlerCalled {
		t.Error("handler should not have been called for different event type")
	}
}

// TestSubscriptionCancel tests canceling subscriptions
func TestSubscriptionCancel_ValidSubscription_RemovesHandler(t *testing.T) {
	bus := NewEventBus()
	handlerCalled := false

	handler := func(e Event) {
		handlerCalled = true
	}

	sub := bus.Subscribe(VehicleAdded, handler)

	// Verify handler is registered
	bus.mu.RLock()
	handlersBefore := len(bus.handlers[VehicleAdded])
	bus.mu.RUnlock()

	if handlersBefore != 1 {
		t.Errorf("expected 1 handler before cancel, got %d", handlersBefore)
	}

	// Cancel subscription
	sub.Cancel()

	// Verify handler is removed
	bus.mu.RLock()
	handlersAfter := len(bus.handlers[VehicleAdded])
	bus.mu.RUnlock()

	if handlersAfter != 0 {
		t.Errorf("expected 0 handlers after cancel, got %d", handlersAfter)
	}

	// Verify handler is not called after cancellation
	event := &BaseEvent{
		EventType: VehicleAdded,
		Source:    "test",
	}

	bus.Publish(event)

	if handlerCalled {
		t.Error("handler should not be called after cancellation")
	}
}

// TestConcurrentAccess tests thread safety
func TestBusSubscribe_ConcurrentAccess_ThreadSafe(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup
	handlerCount := 0
	var mu sync.Mutex

	handler := func(e Event) {
		mu.Lock()
		handlerCount++
		mu.Unlock()
	}

	// Start multiple goroutines to subscribe concurrently
	numGoroutines := 10
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			bus.Subscribe(VehicleAdded, handler)
		}()
	}

	wg.Wait()

	// Verify all subscriptions were registered
	bus.mu.RLock()
	handlers := bus.handlers[VehicleAdded]
	bus.mu.RUnlock()

	if len(handlers) != numGoroutines {
		t.Errorf("expected %d handlers, got %d", numGoroutines, len(handlers))
	}

	// Test concurrent publishing
	event := &BaseEvent{
		EventType: VehicleAdded,
		Source:    "test",
	}

	wg.Add(3)
	for i := 0; i < 3; i++ {
		go func() {
			defer wg.Done()
			bus.Publish(event)
		}()
	}

	wg.Wait()

	mu.Lock()
	expectedCalls := numGoroutines * 3
	if handlerCount != expectedCalls {
		t.Errorf("expected %d handler calls, got %d", expectedCalls, handlerCount)
	}
	mu.Unlock()
}

// TestNewVehicleEvent tests vehicle event creation
func TestNewVehicleEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
		vehicleID uint64
	}{
		{
			name:      "Vehicle added event",
			eventType: VehicleAdded,
			source:    "sim_engine",
			vehicleID: 12345,
		},
		{
			name:      "Vehicle removed event",
			eventType: VehicleRemoved,
			source:    nil,
			vehicleID: 67890,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := NewVehicleEvent(tt.eventType, tt.source, tt.vehicleID)

			if event == nil {
				t.Fatal("NewVehicleEvent() returned nil")
			}

			if event.GetType() != tt.eventType {
				t.Errorf("GetType() = %v, want %v", event.GetType(), tt.eventType)
			}

			if event.GetSource() != tt.source {
				t.Errorf("GetSource() = %v, want %v", event.GetSource(), tt.source)
			}

			if event.VehicleID != tt.vehicleID {
				t.Errorf("VehicleID = %v, want %v", event.VehicleID, tt.vehicleID)
			}
		})
	}
}

// TestNewFlightEvent tests flight event creation
func TestNewFlightEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	eventType := WaypointReached
	source := "flight_system"
	vehicleID := uint64(555)
	waypoint := 3

	event := NewFlightEvent(eventType, source, vehicleID, waypoint)

	if event == nil {
		t.Fatal("NewFlightEvent() returned nil")
	}

	if event.GetType() != eventType {
		t.Errorf("GetType() = %v, want %v", event.GetType(), eventType)
	}

	if event.GetSource() != source {
		t.Errorf("GetSource() = %v, want %v", event.GetSource(), source)
	}

	if event.VehicleID != vehicleID {
		t.Errorf("VehicleID = %v, want %v", event.VehicleID, vehicleID)
	}

	if event.Waypoint != waypoint {
		t.Errorf("Waypoint = %v, want %v", event.Waypoint, waypoint)
	}
}

// TestNewAuthorityEvent tests authority event creation
func TestNewAuthorityEvent_ValidParameters_ReturnsCorrectEvent(t *testing.T) {
	source := "control_system"
	vehicleID := uint64(100)
	requester := uint64(200)
	level := 80

	event := NewAuthorityEvent(AuthorityGranted, source, vehicleID, requester, level)

	if event == nil {
		t.Fatal("NewAuthorityEvent() returned nil")
	}

	if event.GetType() != AuthorityGranted {
		t.Errorf("GetType() = %v, want %v", event.GetType(), AuthorityGranted)
	}

	if event.GetSource() != source {
		t.Errorf("GetSource() = %v, want %v", event.GetSource(), source)
	}

	if event.VehicleID != vehicleID {
		t.Errorf("VehicleID = %v, want %v", event.VehicleID, vehicleID)
	}

	if event.Requester != requester {
		t.Errorf("Requester = %v, want %v", event.Requester, requester)
	}

	if event.Level != level {
		t.Errorf("Level = %v, want %v", event.Level, level)
	}
}

// TestEventTypes tests that all event type constants are properly defined
func TestEventTypes_Constants_AllDefined(t *testing.T) {
	expectedTypes := []Type{
		VehicleAdded,
		VehicleRemoved,
		FlightStarted,
		FlightStopped,
		FlightCompleted,
		WaypointReached,
		AuthorityGranted,
		AuthorityDenied,
		AuthorityReleased,
		ControlModeChanged,
		SimStarted,
		SimStopped,
	}

	for _, eventType := range expectedTypes {
		if string(eventType) == "" {
			t.Errorf("event type %v is empty", eventType)
		}
	}
}

// TestCancelMultipleSubscriptions tests canceling multiple subscriptions
func TestCancelMultipleSubscriptions_DifferentTypes_OnlyTargetRemoved(t *testing.T) {
	bus := NewEventBus()

	handler1Called := false
	handler2Called := false
	handler3Called := false

	handler1 := func(e Event) { handler1Called = true }
	handler2 := func(e Event) { handler2Called = true }
	handler3 := func(e Event) { handler3Called = true }

	sub1 := bus.Subscribe(FlightStarted, handler1)
	_ = bus.Subscribe(FlightStarted, handler2)
	_ = bus.Subscribe(WaypointReached, handler3)

	// Cancel only the first subscription
	sub1.Cancel()

	flightEvent := &BaseEvent{EventType: FlightStarted, Source: "test"}
	bus.Publish(flightEvent)

	waypointEvent := &BaseEvent{EventType: WaypointReached, Source: "test"}
	bus.Publish(waypointEvent)

	if handler1Called {
		t.Error("handler1 should not be called after cancellation")
	}

	if !handler2Called {
		t.Error("handler2 should be called")
	}

	if !handler3Called {
		t.Error("handler3 should be called")
	}
}
