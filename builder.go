package piecegraph

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/voidshard/piecegraph/internal/align"
	"github.com/voidshard/piecegraph/internal/graph"
	"github.com/voidshard/piecegraph/internal/placement"
	"github.com/voidshard/piecegraph/internal/selector"

	"github.com/go-logr/logr"
)

// Option configures a Builder
type Option func(*Builder)

// WithLogr sets the logger. Rejections are logged at V(1).
var WithLogr = func(log logr.Logger) Option {
	return func(b *Builder) {
		b.log = log
	}
}

// WithRandom supplies an already seeded random source instead of seeding one
// from Config.Seed. Config.Seed is recorded in Stats as given, so leave it 0
// if the source's seed isn't known.
var WithRandom = func(rng Random) Option {
	return func(b *Builder) {
		b.rng = rng
	}
}

// WithCapOnCancel decides if a run cancelled via Run()'s context still gets
// end capped (if EndCapping is set) or is left with open sockets.
var WithCapOnCancel = func(capping bool) Option {
	return func(b *Builder) {
		b.capOnCancel = capping
	}
}

// openSocket is a socket waiting for a neighbour
type openSocket struct {
	ref      SocketRef
	depth    int // of the piece that owns the socket
	attempts int
}

// Builder grows a Piecegraph one Step() at a time.
//
// Every Step is one accept-or-reject of a candidate piece (or one cap) so
// a caller may pause between steps as it likes; pausing never changes the result.
// A Builder is not safe for concurrent use.
type Builder struct {
	cfg Config
	log logr.Logger
	rng Random

	capOnCancel bool

	// eligible prototypes, in library order
	all       []*Prototype
	branches  []*Prototype // non terminal
	terminals []*Prototype

	phase     Phase
	pieces    []*PlacedPiece
	occupied  *placement.Occupied
	links     *graph.Graph
	validator *placement.Validator
	stats     *Stats

	// branching strategy work queue
	queue    []*openSocket
	refilled bool

	// linear strategy cursor & the other sockets of the cursor's piece
	cursor      *openSocket
	cursorPiece int
	cursorPool  []int

	// rejections in a row, drives force completion
	streak int

	// sockets still to cap
	caps []SocketRef
}

// NewBuilder checks the config & library and returns a Builder ready to Step().
// All configuration problems are returned here (wrapping ErrConfiguration),
// nothing after this point is a hard error.
func NewBuilder(cfg *Config, lib []*Prototype, opts ...Option) (*Builder, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateLibrary(lib); err != nil {
		return nil, err
	}

	b := &Builder{
		cfg:       cfg.resolved(),
		log:       logr.Discard(),
		all:       []*Prototype{},
		branches:  []*Prototype{},
		terminals: []*Prototype{},
		pieces:    []*PlacedPiece{},
		occupied:  placement.NewOccupied(),
		links:     graph.New(),
		queue:     []*openSocket{},
		caps:      []SocketRef{},
	}

	for _, p := range lib {
		if !p.eligible() {
			continue
		}
		b.all = append(b.all, p)
		if p.Terminal {
			b.terminals = append(b.terminals, p)
		} else {
			b.branches = append(b.branches, p)
		}
	}
	if len(b.branches) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, ErrNoEligiblePrototypes)
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.rng == nil {
		if b.cfg.Seed == 0 {
			b.cfg.Seed = time.Now().UnixNano()
		}
		b.rng = rand.New(rand.NewSource(b.cfg.Seed))
	}
	b.stats = newStats(b.cfg.Seed)
	b.validator = placement.NewValidator(b.cfg.OverlapRadius, b.cfg.PreventLoops, b.occupied, b.links)
	b.validator.LoopFactor = b.cfg.LoopFactor

	return b, nil
}

// Phase the builder is in.
func (b *Builder) Phase() Phase {
	return b.phase
}

// Stats so far.
func (b *Builder) Stats() *Stats {
	return b.stats
}

// Step does one unit of work & reports what happened.
// Once Done, Step does nothing & reports EventFinished.
func (b *Builder) Step() StepOutcome {
	if b.phase == Done {
		return StepOutcome{Phase: Done, Event: EventFinished, Piece: -1}
	}

	b.stats.Steps++
	switch b.phase {
	case Idle, Seeding:
		return b.seed()
	case Growing:
		return b.grow()
	default:
		return b.capNext()
	}
}

// Run steps until Done. If ctx is cancelled everything committed so far is
// kept, the run is capped or not according to WithCapOnCancel & ctx.Err() is returned.
func (b *Builder) Run(ctx context.Context) error {
	for b.phase != Done {
		select {
		case <-ctx.Done():
			b.Stop(b.capOnCancel)
			for b.phase != Done {
				b.Step()
			}
			return ctx.Err()
		default:
		}
		b.Step()
	}
	return nil
}

// Stop ends growth early. If capping is true (and the config has EndCapping)
// open sockets are still capped by subsequent Step()s, otherwise the run is Done.
func (b *Builder) Stop(capping bool) {
	switch b.phase {
	case Idle, Seeding:
		b.finish()
	case Growing:
		if capping {
			b.endGrowth()
		} else {
			b.finish()
		}
	case Capping:
		if !capping {
			b.finish()
		}
	}
}

// Graph returns what has been built so far. Once the builder is Done the graph
// is final & must be treated as read-only.
func (b *Builder) Graph() *Piecegraph {
	pieces := make([]*PlacedPiece, len(b.pieces))
	copy(pieces, b.pieces)
	return &Piecegraph{
		Pieces: pieces,
		Stats:  b.stats,
		Seed:   b.cfg.Seed,
	}
}

// seed places the first piece at the origin.
func (b *Builder) seed() StepOutcome {
	b.setPhase(Seeding)

	proto, _ := selector.Select(b.branches, weightOf, b.rng) // never empty, see NewBuilder
	seed := b.instantiate(proto, align.Identity(), 0)
	b.commit(seed)
	b.stats.Placed++

	b.log.Info("seeded", "prototype", proto.ID, "seed", b.cfg.Seed, "sockets", len(seed.Sockets))

	b.setPhase(Growing)
	if b.cfg.Branching {
		for i := range seed.Sockets {
			b.queue = append(b.queue, &openSocket{ref: SocketRef{Piece: seed.Handle, Socket: i}})
		}
	} else {
		b.moveCursorTo(seed)
	}

	if b.stats.Placed >= b.cfg.TargetPieces {
		b.endGrowth()
	}

	return StepOutcome{Phase: Seeding, Event: EventSeeded, Piece: seed.Handle}
}

// grow runs one step of whichever strategy is configured
func (b *Builder) grow() StepOutcome {
	var out StepOutcome
	if b.cfg.Branching {
		out = b.growBranching()
	} else {
		out = b.growLinear()
	}

	if b.phase == Growing && b.stats.Placed >= b.cfg.TargetPieces {
		b.endGrowth()
	}
	return out
}

// forcing returns if checks are currently relaxed
func (b *Builder) forcing() bool {
	return b.cfg.ForceCompletion && b.streak >= b.cfg.ForceAfterRejections
}

// exhausted ends growth short of the target
func (b *Builder) exhausted() StepOutcome {
	b.stats.Exhausted = true
	b.log.Info("ran out of open sockets", "placed", b.stats.Placed, "target", b.cfg.TargetPieces)
	b.endGrowth()
	return StepOutcome{Phase: Growing, Event: EventExhausted, Piece: -1}
}

// endGrowth moves on to capping (if configured) or finishes.
func (b *Builder) endGrowth() {
	b.queue = nil
	b.cursor = nil
	b.cursorPool = nil

	if !b.cfg.EndCapping {
		b.finish()
		return
	}

	b.setPhase(Capping)
	for _, p := range b.pieces {
		for _, i := range p.OpenSockets() {
			b.caps = append(b.caps, SocketRef{Piece: p.Handle, Socket: i})
		}
	}
}

// finish freezes the graph
func (b *Builder) finish() {
	b.caps = nil
	b.stats.OpenSockets = 0
	for _, p := range b.pieces {
		b.stats.OpenSockets += len(p.OpenSockets())
	}
	b.setPhase(Done)
	b.log.Info("finished",
		"placed", b.stats.Placed,
		"capped", b.stats.Capped,
		"open", b.stats.OpenSockets,
		"rejected", b.stats.TotalRejected(),
		"forced", b.stats.Forced,
		"steps", b.stats.Steps,
	)
}

func (b *Builder) setPhase(p Phase) {
	if b.phase == p {
		return
	}
	b.log.V(1).Info("phase", "from", b.phase, "to", p)
	b.phase = p
}

// instantiate builds (but doesn't commit) a piece from proto with the given transform.
// The handle is where it'd land if committed.
func (b *Builder) instantiate(proto *Prototype, t align.Transform, depth int) *PlacedPiece {
	p := &PlacedPiece{
		Handle:      len(b.pieces),
		PrototypeID: proto.ID,
		Position:    t.Translation,
		Yaw:         t.Yaw,
		Orientation: t.Rotation,
		Depth:       depth,
		Sockets:     make([]*PlacedSocket, len(proto.Sockets)),
		proto:       proto,
	}
	for i, s := range proto.Sockets {
		p.Sockets[i] = &PlacedSocket{
			Name:      s.Name,
			Position:  t.Apply(s.Position),
			Direction: t.ApplyDir(s.Direction),
		}
	}
	return p
}

// commit publishes a piece: it's added to the piece list, occupied set &
// connection graph together.
func (b *Builder) commit(p *PlacedPiece) {
	h := b.links.Add()
	if h != p.Handle || h != len(b.pieces) {
		// handles are indexes into all three, if these disagree we're broken
		panic(fmt.Sprintf("piece handle %d out of step with graph handle %d", p.Handle, h))
	}
	b.pieces = append(b.pieces, p)
	b.occupied.Add(h, p.Position)
}

// link two sockets on committed pieces to each other
func (b *Builder) link(x, y SocketRef) {
	sx := b.socket(x)
	sy := b.socket(y)

	sx.Used, sx.LinkedTo = true, &SocketRef{Piece: y.Piece, Socket: y.Socket}
	sy.Used, sy.LinkedTo = true, &SocketRef{Piece: x.Piece, Socket: x.Socket}

	// can't fail, both pieces are committed
	_ = b.links.Link(x.Piece, y.Piece)
}

func (b *Builder) socket(r SocketRef) *PlacedSocket {
	return b.pieces[r.Piece].Sockets[r.Socket]
}

// weightOf is the selection weight of a prototype
func weightOf(p *Prototype) int {
	if !p.eligible() {
		return 0
	}
	return p.Weight
}
