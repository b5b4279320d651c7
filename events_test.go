package viewer

import "testing"

type sliceSink struct{ events []Event }

func (s *sliceSink) EmitEvent(e Event) { s.events = append(s.events, e) }

func TestEventTypeString(t *testing.T) {
	if EventStateChange.String() != "state_change" || EventAnimationEnd.String() != "animation_end" {
		t.Error("unexpected event names")
	}
	if EventType(200).String() != "unknown" {
		t.Error("out-of-range event type should be unknown")
	}
}

func TestEventSinkReceivesEvents(t *testing.T) {
	c := NewController(Options{})
	sink := &sliceSink{}
	c.SetEventSink(sink)

	c.SetScaling(true)
	c.ApplyInteraction(ScaleRequest(2, nil))
	c.SetScaling(false)

	want := []EventType{EventTransformStart, EventStateChange, EventTransformUpdate, EventTransformEnd}
	if len(sink.events) != len(want) {
		t.Fatalf("got %d events, want %d", len(sink.events), len(want))
	}
	for i, et := range want {
		if sink.events[i].Type != et {
			t.Errorf("event %d = %v, want %v", i, sink.events[i].Type, et)
		}
	}
	if sink.events[1].State.Scale != 2 {
		t.Errorf("state change carried %+v", sink.events[1].State)
	}

	c.SetEventSink(nil)
	c.ApplyInteraction(PanRequest(Vec2{1, 1}))
	if len(sink.events) != len(want) {
		t.Error("removed sink still received events")
	}
}

func TestHandlerRemovesItselfWhileFiring(t *testing.T) {
	c := NewController(Options{})
	var h CallbackHandle
	first, second := 0, 0
	h = c.OnStateChange(func(State) {
		first++
		h.Remove()
	})
	c.OnStateChange(func(State) { second++ })

	c.ApplyInteraction(PanRequest(Vec2{1, 0}))
	c.ApplyInteraction(PanRequest(Vec2{1, 0}))
	if first != 1 || second != 2 {
		t.Errorf("first = %d, second = %d, want 1 and 2", first, second)
	}
}

func TestOnIgnoresInvalidRegistrations(t *testing.T) {
	c := NewController(Options{})
	h := c.On(EventType(99), func(Event) {})
	h.Remove()
	h = c.On(EventStateChange, nil)
	h.Remove()
	c.ApplyInteraction(PanRequest(Vec2{1, 0}))
}
