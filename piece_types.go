package piecegraph

// RejectReason explains why a candidate piece was turned down.
type RejectReason string

const (
	RejectOverlap    RejectReason = "overlap"     // too close to something already placed
	RejectLoop       RejectReason = "loop"        // would join back onto its own component
	RejectQuality    RejectReason = "quality"     // sockets meet too far apart / at too steep an angle
	RejectNoEligible RejectReason = "no-eligible" // nothing in the library fits the slot
)

var allRejectReasons = []RejectReason{RejectOverlap, RejectLoop, RejectQuality, RejectNoEligible}

// AllRejectReasons returns all known RejectReason enums
func AllRejectReasons() []RejectReason {
	return allRejectReasons
}

// Phase of a generation run.
//
//	Idle -> Seeding -> Growing -> Capping -> Done
type Phase int

const (
	Idle Phase = iota
	Seeding
	Growing
	Capping
	Done
)

var phaseNames = map[Phase]string{
	Idle:    "idle",
	Seeding: "seeding",
	Growing: "growing",
	Capping: "capping",
	Done:    "done",
}

func (p Phase) String() string {
	name, ok := phaseNames[p]
	if !ok {
		return "unknown"
	}
	return name
}

// Event is what a single Step() did.
type Event int

const (
	EventNone      Event = iota
	EventSeeded          // the first piece went down
	EventPlaced          // a candidate was accepted
	EventRejected        // a candidate was turned down, see StepOutcome.Reason
	EventSkipped         // an open socket was dropped without trying a candidate
	EventCapped          // an open socket got a terminal piece
	EventExhausted       // growth ran out of open sockets before the target
	EventFinished        // the run is Done
)

var eventNames = map[Event]string{
	EventNone:      "none",
	EventSeeded:    "seeded",
	EventPlaced:    "placed",
	EventRejected:  "rejected",
	EventSkipped:   "skipped",
	EventCapped:    "capped",
	EventExhausted: "exhausted",
	EventFinished:  "finished",
}

func (e Event) String() string {
	name, ok := eventNames[e]
	if !ok {
		return "unknown"
	}
	return name
}

// StepOutcome reports a single Step().
type StepOutcome struct {
	// Phase the step ran in
	Phase Phase

	Event  Event
	Reason RejectReason `json:",omitempty"` // set on EventRejected

	// Piece is the handle of the piece placed / capped, or of the anchor
	// piece for a rejection. -1 if there isn't one.
	Piece int

	// Forced is true if the placement only passed thanks to force completion
	Forced bool `json:",omitempty"`
}
