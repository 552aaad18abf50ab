// Package session models the client's upload/transform/display flow as an
// explicit state machine. State values only change through Apply.
package session

import "github.com/ds124wfegd/animegen/internal/entity"

type Phase int

const (
	Idle Phase = iota
	Selected
	Transforming
	Done
	Errored
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Selected:
		return "selected"
	case Transforming:
		return "transforming"
	case Done:
		return "done"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// State is one client session. The zero value is the Idle state.
type State struct {
	phase       Phase
	original    entity.Payload
	transformed entity.Payload
	errMessage  string
	seq         uint64
}

func (s State) Phase() Phase                { return s.phase }
func (s State) Original() entity.Payload    { return s.original }
func (s State) Transformed() entity.Payload { return s.transformed }
func (s State) ErrorMessage() string        { return s.errMessage }
func (s State) HasOriginal() bool           { return !s.original.Empty() }
func (s State) HasTransformed() bool        { return !s.transformed.Empty() }

// Seq identifies the latest Select, Generate or Reset. Outcomes carrying an
// older value are dropped.
func (s State) Seq() uint64 { return s.seq }

type Event interface {
	isEvent()
}

// Select stores a newly chosen image.
type Select struct {
	Payload entity.Payload
}

// Generate starts a transform of the original image.
type Generate struct{}

// Succeed settles the transform started at Seq.
type Succeed struct {
	Seq    uint64
	Output entity.Payload
}

// Fail settles the transform started at Seq with an error message.
type Fail struct {
	Seq     uint64
	Message string
}

// Reset drops both images and any error.
type Reset struct{}

func (Select) isEvent()   {}
func (Generate) isEvent() {}
func (Succeed) isEvent()  {}
func (Fail) isEvent()     {}
func (Reset) isEvent()    {}

// Apply returns the state after ev and whether anything changed.
func Apply(s State, ev Event) (State, bool) {
	switch ev := ev.(type) {
	case Select:
		if ev.Payload.Empty() {
			return s, false
		}
		return State{phase: Selected, original: ev.Payload, seq: s.seq + 1}, true

	case Generate:
		switch s.phase {
		case Selected, Done, Errored:
			return State{phase: Transforming, original: s.original, seq: s.seq + 1}, true
		default:
			// Idle has nothing to send, Transforming already has a call in flight
			return s, false
		}

	case Succeed:
		if s.phase != Transforming || ev.Seq != s.seq {
			return s, false
		}
		s.phase = Done
		s.transformed = ev.Output
		return s, true

	case Fail:
		if s.phase != Transforming || ev.Seq != s.seq {
			return s, false
		}
		msg := ev.Message
		if msg == "" {
			msg = entity.MsgGenericFailure
		}
		s.phase = Errored
		s.transformed = ""
		s.errMessage = msg
		return s, true

	case Reset:
		return State{phase: Idle, seq: s.seq + 1}, true

	default:
		return s, false
	}
}
