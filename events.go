package viewer

// EventType identifies a controller notification.
type EventType uint8

const (
	EventStateChange     EventType = iota // fires after every published state change
	EventTransformStart                   // fires when panning or scaling begins
	EventTransformUpdate                  // fires on each state change while transforming
	EventTransformEnd                     // fires when neither panning nor scaling remain
	EventAnimationStart                   // fires when an animated transition begins
	EventAnimationEnd                     // fires when an animated transition finishes or is stopped
	eventTypeCount
)

var eventTypeNames = [eventTypeCount]string{
	"state_change", "transform_start", "transform_update",
	"transform_end", "animation_start", "animation_end",
}

func (t EventType) String() string {
	if t < eventTypeCount {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event carries a notification and the controller state at the time it fired.
type Event struct {
	Type  EventType
	State State
}

// EventSink receives every controller event. Set one with
// Controller.SetEventSink to bridge notifications into another system.
type EventSink interface {
	EmitEvent(event Event)
}

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	handlers [eventTypeCount][]eventHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	s := h.reg.handlers[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.handlers[h.event] = s[:len(s)-1]
			return
		}
	}
}

func (r *handlerRegistry) add(t EventType, fn func(Event)) CallbackHandle {
	r.nextID++
	r.handlers[t] = append(r.handlers[t], eventHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: t}
}

// On registers fn for events of type t.
func (c *Controller) On(t EventType, fn func(Event)) CallbackHandle {
	if t >= eventTypeCount || fn == nil {
		return CallbackHandle{}
	}
	return c.handlers.add(t, fn)
}

// OnStateChange registers fn to be called with every newly published state.
func (c *Controller) OnStateChange(fn func(State)) CallbackHandle {
	return c.On(EventStateChange, func(e Event) { fn(e.State) })
}

// SetEventSink forwards every event to sink in addition to registered
// callbacks. Pass nil to remove it.
func (c *Controller) SetEventSink(sink EventSink) {
	c.sink = sink
}

// emit fires an event synchronously: callbacks first, then the sink.
func (c *Controller) emit(t EventType) {
	ev := Event{Type: t, State: c.state}
	// Copy so handlers may remove themselves while firing.
	hs := append([]eventHandler(nil), c.handlers.handlers[t]...)
	for _, h := range hs {
		h.fn(ev)
	}
	if c.sink != nil {
		c.sink.EmitEvent(ev)
	}
}
