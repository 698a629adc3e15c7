package transfer

import (
	"math"
)

type State int

const (
	StateIdle State = iota
	StateDragging
	// StateDropped only exists while a drop is being resolved.
	StateDropped
)

func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateDropped:
		return "dropped"
	default:
		return "idle"
	}
}

type PointerEventType string

const (
	PointerDown   PointerEventType = "down"
	PointerMove   PointerEventType = "move"
	PointerUp     PointerEventType = "up"
	PointerCancel PointerEventType = "cancel"
)

type PointerEvent struct {
	Type  PointerEventType `json:"type"`
	Point Point            `json:"point"`
}

// Drop is produced when a drag ends over the table. Over is nil when the
// pointer was released outside every zone.
type Drop struct {
	ActiveID string
	Source   Side
	Over     *Zone
}

type Overlay struct {
	ID       string `json:"id"`
	Side     Side   `json:"side"`
	Position Point  `json:"position"`
}

// DefaultActivationDistance is the pointer travel, in pixels, that turns a
// press on a row into a drag.
const DefaultActivationDistance = 5

// Engine is the pointer driven drag state machine. It never mutates lists
// itself; Handle reports a Drop for the caller to apply.
type Engine struct {
	threshold float64
	zones     *ZoneTable

	state   State
	pressed bool
	grabbed Zone
	origin  Point
	pointer Point
}

func NewEngine(threshold float64, zones *ZoneTable) *Engine {
	if threshold < 0 {
		threshold = 0
	}
	if zones == nil {
		zones = NewZoneTable()
	}
	return &Engine{threshold: threshold, zones: zones}
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Zones() *ZoneTable {
	return e.zones
}

// Active returns the dragged id and its source list while dragging.
func (e *Engine) Active() (string, Side, bool) {
	if e.state != StateDragging {
		return "", "", false
	}
	return e.grabbed.ID, e.grabbed.Side, true
}

func (e *Engine) Overlay() (Overlay, bool) {
	if e.state != StateDragging {
		return Overlay{}, false
	}
	return Overlay{ID: e.grabbed.ID, Side: e.grabbed.Side, Position: e.pointer}, true
}

func (e *Engine) Handle(ev PointerEvent) (Drop, bool) {
	switch ev.Type {
	case PointerDown:
		e.down(ev.Point)
	case PointerMove:
		e.move(ev.Point)
	case PointerUp:
		return e.up(ev.Point)
	case PointerCancel:
		e.reset()
	}
	return Drop{}, false
}

// Cancel aborts a pending press or an ongoing drag.
func (e *Engine) Cancel() {
	e.reset()
}

func (e *Engine) down(p Point) {
	if e.state != StateIdle {
		return
	}
	e.pointer = p
	zone, ok := e.zones.HitTest(p)
	if !ok || zone.Kind != ZoneRow {
		e.pressed = false
		return
	}
	e.pressed = true
	e.grabbed = zone
	e.origin = p
}

func (e *Engine) move(p Point) {
	e.pointer = p
	if e.state != StateIdle || !e.pressed {
		return
	}
	if math.Hypot(p.X-e.origin.X, p.Y-e.origin.Y) > e.threshold {
		e.state = StateDragging
	}
}

func (e *Engine) up(p Point) (Drop, bool) {
	if e.state != StateDragging {
		e.reset()
		return Drop{}, false
	}
	e.pointer = p
	e.state = StateDropped
	drop := Drop{ActiveID: e.grabbed.ID, Source: e.grabbed.Side}
	if zone, ok := e.zones.HitTest(p); ok {
		if zone.Kind == ZoneCheckbox {
			zone.Kind = ZoneRow
		}
		drop.Over = &zone
	}
	e.reset()
	return drop, true
}

func (e *Engine) reset() {
	e.state = StateIdle
	e.pressed = false
	e.grabbed = Zone{}
	e.origin = Point{}
}
